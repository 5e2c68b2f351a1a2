// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package node

import (
	"context"
	"encoding/binary"

	"code.vegaprotocol.io/searchmarket/core/instructions"
	"code.vegaprotocol.io/searchmarket/core/ledger"
	"code.vegaprotocol.io/searchmarket/core/native"
	"code.vegaprotocol.io/searchmarket/core/processor"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"
	vgrand "code.vegaprotocol.io/searchmarket/libs/rand"
	"code.vegaprotocol.io/searchmarket/wallet"
)

// Submit signs and runs the instructions as a single transaction.
func (n *Node) Submit(ctx context.Context, signers []ledger.Signer, ixs ...types.Instruction) (string, error) {
	nonce := binary.BigEndian.Uint64(vgrand.RandomBytes(8))
	tx := ledger.NewTransaction(nonce, ixs...).Sign(signers...)
	return n.ledger.Submit(ctx, tx)
}

// createAccount returns a fresh key and the instruction allocating its
// account to the search market program.
func createAccount(payer types.Address, space int) (*wallet.Keypair, types.Instruction, error) {
	k, err := wallet.GenerateKeypair()
	if err != nil {
		return nil, types.Instruction{}, err
	}
	return k, native.NewCreateAccountInstruction(payer, k.Address(), 0, uint64(space), processor.ProgramID), nil
}

func freshAddress() (types.Address, error) {
	k, err := wallet.GenerateKeypair()
	if err != nil {
		return types.NoAddress, err
	}
	return k.Address(), nil
}

// CreateMarket allocates and writes a new market decided by authority.
func (n *Node) CreateMarket(ctx context.Context, payer, authority ledger.Signer, expiresAt uint64, searchString string) (types.Address, error) {
	market, alloc, err := createAccount(payer.Address(), types.MarketSpace)
	if err != nil {
		return types.NoAddress, err
	}
	ix := instructions.NewCreateMarket(processor.ProgramID, market.Address(), authority.Address(), expiresAt, searchString)
	if _, err := n.Submit(ctx, []ledger.Signer{payer, market, authority}, alloc, ix); err != nil {
		return types.NoAddress, err
	}
	return market.Address(), nil
}

// CreateResult adds a candidate answer to market.
func (n *Node) CreateResult(ctx context.Context, payer ledger.Signer, market types.Address, url, name, snippet string) (instructions.Claims, error) {
	result, alloc, err := createAccount(payer.Address(), types.ResultSpace)
	if err != nil {
		return instructions.Claims{}, err
	}
	c := instructions.Claims{Market: market, Result: result.Address()}
	if c.YesMint, err = freshAddress(); err != nil {
		return instructions.Claims{}, err
	}
	if c.NoMint, err = freshAddress(); err != nil {
		return instructions.Claims{}, err
	}
	ix, err := instructions.NewCreateResult(processor.ProgramID, result.Address(), c, url, name, snippet)
	if err != nil {
		return instructions.Claims{}, err
	}
	if _, err := n.Submit(ctx, []ledger.Signer{payer, result}, alloc, ix); err != nil {
		return instructions.Claims{}, err
	}
	return c, nil
}

// OpenClaimAccounts creates the Yes and No token accounts of owner for
// the claims of a result.
func (n *Node) OpenClaimAccounts(ctx context.Context, owner types.Address, c instructions.Claims) (yes, no types.Address, err error) {
	if yes, err = freshAddress(); err != nil {
		return
	}
	if no, err = freshAddress(); err != nil {
		return
	}
	_, err = n.Submit(ctx, nil,
		token.NewInitializeAccountInstruction(yes, c.YesMint, owner),
		token.NewInitializeAccountInstruction(no, c.NoMint, owner),
	)
	return yes, no, err
}

func (n *Node) Decide(ctx context.Context, authority ledger.Signer, market, result types.Address) error {
	ix := instructions.NewDecide(processor.ProgramID, market, authority.Address(), result)
	_, err := n.Submit(ctx, []ledger.Signer{authority}, ix)
	return err
}

func (n *Node) Deposit(ctx context.Context, depositor ledger.Signer, c instructions.Claims, yes, no types.Address, amount uint64) error {
	ix, err := instructions.NewDeposit(processor.ProgramID, c, depositor.Address(), yes, no, amount)
	if err != nil {
		return err
	}
	_, err = n.Submit(ctx, []ledger.Signer{depositor}, ix)
	return err
}

func (n *Node) Withdraw(ctx context.Context, owner ledger.Signer, recipient types.Address, c instructions.Claims, yes, no types.Address, amount uint64) error {
	ix, err := instructions.NewWithdraw(processor.ProgramID, c, recipient, owner.Address(), yes, no, amount)
	if err != nil {
		return err
	}
	_, err = n.Submit(ctx, []ledger.Signer{owner}, ix)
	return err
}

// CreateOrder allocates the order account and places the order. s.Order
// is ignored, a fresh address is used.
func (n *Node) CreateOrder(ctx context.Context, payer ledger.Signer, s instructions.OrderSubmission, signers ...ledger.Signer) (types.Address, error) {
	order, alloc, err := createAccount(payer.Address(), types.OrderSpace)
	if err != nil {
		return types.NoAddress, err
	}
	s.Order = order.Address()
	ix, err := instructions.NewCreateOrder(processor.ProgramID, s)
	if err != nil {
		return types.NoAddress, err
	}
	all := append([]ledger.Signer{payer, order}, signers...)
	if _, err := n.Submit(ctx, all, alloc, ix); err != nil {
		return types.NoAddress, err
	}
	return order.Address(), nil
}

func (n *Node) FillOrder(ctx context.Context, executor ledger.Signer, f instructions.Fill) error {
	f.ExecutionAuthority = executor.Address()
	ix, err := instructions.NewFillOrder(processor.ProgramID, f)
	if err != nil {
		return err
	}
	_, err = n.Submit(ctx, []ledger.Signer{executor}, ix)
	return err
}

// FillFor builds the fill of two stored orders, delivering to the accounts
// they named.
func (n *Node) FillFor(buy, sell types.Address) (instructions.Fill, error) {
	b, err := n.Order(buy)
	if err != nil {
		return instructions.Fill{}, err
	}
	s, err := n.Order(sell)
	if err != nil {
		return instructions.Fill{}, err
	}
	return instructions.Fill{
		BuyOrder:         buy,
		BuyerClaim:       b.ReceiveAccount,
		BuyerRefund:      b.SettlementAccount,
		SellOrder:        sell,
		SellerSettlement: s.ReceiveAccount,
	}, nil
}

// CancelOrder returns the escrow of order to the account which funded it.
func (n *Node) CancelOrder(ctx context.Context, signer ledger.Signer, order types.Address) error {
	o, err := n.Order(order)
	if err != nil {
		return err
	}
	settlement, claims := o.SettlementAccount, o.ReceiveAccount
	if o.Side == types.SideSell {
		settlement, claims = o.ReceiveAccount, o.SettlementAccount
	}
	ix, err := instructions.NewCancelOrder(processor.ProgramID, order, o.Side, settlement, claims, signer.Address())
	if err != nil {
		return err
	}
	_, err = n.Submit(ctx, []ledger.Signer{signer}, ix)
	return err
}

func (n *Node) Market(addr types.Address) (*types.Market, error) {
	acc, err := n.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	return types.LoadMarket(acc, processor.ProgramID)
}

func (n *Node) Result(addr types.Address) (*types.Result, error) {
	acc, err := n.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	return types.LoadResult(acc, processor.ProgramID)
}

func (n *Node) Order(addr types.Address) (*types.Order, error) {
	acc, err := n.ledger.Account(addr)
	if err != nil {
		return nil, err
	}
	return types.LoadOrder(acc, processor.ProgramID)
}

// Claims returns the claim accounts of a stored result.
func (n *Node) Claims(result types.Address) (instructions.Claims, error) {
	r, err := n.Result(result)
	if err != nil {
		return instructions.Claims{}, err
	}
	return instructions.Claims{
		Market:  r.Market,
		Result:  result,
		YesMint: r.YesClaimType,
		NoMint:  r.NoClaimType,
	}, nil
}

// TokenBalance returns the amount held by a token account.
func (n *Node) TokenBalance(addr types.Address) (uint64, error) {
	acc, err := n.ledger.Account(addr)
	if err != nil {
		return 0, err
	}
	return n.tokens.Balance(acc)
}

func (n *Node) Lamports(addr types.Address) (uint64, error) {
	acc, err := n.ledger.Account(addr)
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// ResultEntry is a result record with its address.
type ResultEntry struct {
	ID     types.Address
	Result types.Result
}

// Results lists the results created for market.
func (n *Node) Results(market types.Address) ([]ResultEntry, error) {
	accounts, err := n.ledger.Accounts(processor.ProgramID)
	if err != nil {
		return nil, err
	}
	out := []ResultEntry{}
	for _, acc := range accounts {
		if types.RecordType(acc.Data) != types.AccountTypeResult {
			continue
		}
		r, err := types.ResultFromAccount(acc)
		if err != nil || r.Market != market {
			continue
		}
		out = append(out, ResultEntry{ID: acc.Address, Result: *r})
	}
	return out, nil
}
