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

package instructions

import (
	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/types"
)

// Claims names the accounts of a result and its two claim types.
type Claims struct {
	Market  types.Address
	Result  types.Address
	YesMint types.Address
	NoMint  types.Address
}

// MintAuthority derives the account holding the collateral of market and
// signing for the claim mints of all its results.
func MintAuthority(program, market types.Address) (types.Address, uint8, error) {
	return derive.Find(types.MintAuthorityLabel, market, program)
}

// Escrow derives the escrow of an order.
func Escrow(program, order types.Address, side types.Side) (types.Address, uint8, error) {
	return derive.Find(side.EscrowLabel(), order, program)
}

func NewCreateMarket(program, market, authority types.Address, expiresAt uint64, searchString string) types.Instruction {
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(market),
			types.ReadOnlySigner(authority),
		},
		Data: Marshal(CreateMarket{ExpiresAt: expiresAt, SearchString: searchString}),
	}
}

func NewCreateResult(program types.Address, result types.Address, c Claims, url, name, snippet string) (types.Instruction, error) {
	authority, nonce, err := MintAuthority(program, c.Market)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(result),
			types.ReadOnly(c.Market),
			types.Writable(c.YesMint),
			types.Writable(c.NoMint),
			types.ReadOnly(authority),
		},
		Data: Marshal(CreateResult{URL: url, Name: name, Snippet: snippet, MintAuthorityNonce: nonce}),
	}, nil
}

func NewDecide(program, market, authority, result types.Address) types.Instruction {
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(market),
			types.ReadOnlySigner(authority),
			types.ReadOnly(result),
		},
		Data: Marshal(Decide{}),
	}
}

// NewDeposit locks amount tokens of collateral from depositor and mints
// the claims into yesAccount and noAccount.
func NewDeposit(program types.Address, c Claims, depositor, yesAccount, noAccount types.Address, amount uint64) (types.Instruction, error) {
	authority, _, err := MintAuthority(program, c.Market)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.ReadOnly(c.Market),
			types.ReadOnly(c.Result),
			types.WritableSigner(depositor),
			types.Writable(authority),
			types.Writable(c.YesMint),
			types.Writable(yesAccount),
			types.Writable(c.NoMint),
			types.Writable(noAccount),
		},
		Data: Marshal(Deposit{Amount: amount}),
	}, nil
}

// NewWithdraw burns claims held by owner and pays the collateral to
// recipient.
func NewWithdraw(program types.Address, c Claims, recipient, owner, yesAccount, noAccount types.Address, amount uint64) (types.Instruction, error) {
	authority, _, err := MintAuthority(program, c.Market)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.ReadOnly(c.Market),
			types.ReadOnly(c.Result),
			types.Writable(recipient),
			types.Writable(authority),
			types.ReadOnlySigner(owner),
			types.Writable(c.YesMint),
			types.Writable(yesAccount),
			types.Writable(c.NoMint),
			types.Writable(noAccount),
		},
		Data: Marshal(Withdraw{Amount: amount}),
	}, nil
}

// OrderSubmission describes a new order. For a buy, Settlement pays the
// collateral and Receive is the claim account credited on fills. For a
// sell, Settlement is the claim account funding the order, ClaimAuthority
// its owner, and Receive collects the proceeds.
type OrderSubmission struct {
	Order              types.Address
	Claims             Claims
	ClaimType          types.Address
	Side               types.Side
	Price              uint64
	Quantity           uint64
	Settlement         types.Address
	Receive            types.Address
	ClaimAuthority     types.Address
	ExecutionAuthority types.Address
}

func NewCreateOrder(program types.Address, s OrderSubmission) (types.Instruction, error) {
	escrow, nonce, err := Escrow(program, s.Order, s.Side)
	if err != nil {
		return types.Instruction{}, err
	}
	settlement := types.Writable(s.Settlement)
	if s.Side == types.SideBuy {
		settlement = types.WritableSigner(s.Settlement)
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(s.Order),
			types.ReadOnly(s.Claims.Market),
			types.ReadOnly(s.Claims.Result),
			settlement,
			types.Writable(s.Receive),
			types.ReadOnly(s.ClaimType),
			types.ReadOnlySigner(s.ClaimAuthority),
			types.Writable(escrow),
			types.ReadOnly(s.ExecutionAuthority),
		},
		Data: Marshal(CreateOrder{Side: s.Side, Price: s.Price, Quantity: s.Quantity, EscrowNonce: nonce}),
	}, nil
}

// Fill names the two orders crossed by a fill and the accounts they
// settle into.
type Fill struct {
	BuyOrder           types.Address
	BuyerClaim         types.Address
	BuyerRefund        types.Address
	SellOrder          types.Address
	SellerSettlement   types.Address
	ExecutionAuthority types.Address
}

func NewFillOrder(program types.Address, f Fill) (types.Instruction, error) {
	buyEscrow, buyNonce, err := Escrow(program, f.BuyOrder, types.SideBuy)
	if err != nil {
		return types.Instruction{}, err
	}
	sellEscrow, sellNonce, err := Escrow(program, f.SellOrder, types.SideSell)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(f.BuyOrder),
			types.Writable(f.BuyerClaim),
			types.Writable(f.SellOrder),
			types.Writable(f.SellerSettlement),
			types.Writable(buyEscrow),
			types.Writable(sellEscrow),
			types.ReadOnlySigner(f.ExecutionAuthority),
			types.Writable(f.BuyerRefund),
		},
		Data: Marshal(FillOrder{BuyEscrowNonce: buyNonce, SellEscrowNonce: sellNonce}),
	}, nil
}

// NewCancelOrder returns the escrow of order to settlement for a buy or
// to claimAccount for a sell.
func NewCancelOrder(program, order types.Address, side types.Side, settlement, claimAccount, executionAuthority types.Address) (types.Instruction, error) {
	escrow, _, err := Escrow(program, order, side)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		Program: program,
		Accounts: []types.AccountMeta{
			types.Writable(order),
			types.Writable(settlement),
			types.Writable(claimAccount),
			types.Writable(escrow),
			types.ReadOnlySigner(executionAuthority),
		},
		Data: Marshal(CancelOrder{}),
	}, nil
}
