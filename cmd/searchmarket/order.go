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

package main

import (
	"context"
	"fmt"

	"code.vegaprotocol.io/searchmarket/core/instructions"
	"code.vegaprotocol.io/searchmarket/core/orderindex"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

type OrderCmd struct {
	Create OrderCreateCmd `command:"create" description:"Place a limit order"`
	Fill   OrderFillCmd   `command:"fill" description:"Cross a buy and a sell order"`
	Cancel OrderCancelCmd `command:"cancel" description:"Cancel an order and release its escrow"`
	Book   OrderBookCmd   `command:"book" description:"Show the open orders on a claim"`
}

// ClaimTypeFlags selects one of the two claims of a result.
type ClaimTypeFlags struct {
	Result types.Address `long:"result" required:"true" description:"Address of the result"`
	Claim  string        `long:"claim" default:"yes" choice:"yes" choice:"no" description:"Claim traded"`
}

func (f ClaimTypeFlags) claims(s *session) (instructions.Claims, types.Address, error) {
	c, err := s.Claims(f.Result)
	if err != nil {
		return c, types.NoAddress, err
	}
	if f.Claim == "no" {
		return c, c.NoMint, nil
	}
	return c, c.YesMint, nil
}

type OrderCreateCmd struct {
	LedgerFlags
	ClaimTypeFlags

	Key                string        `long:"key" required:"true" description:"Name of the key placing the order"`
	Side               types.Side    `long:"side" required:"true" description:"buy or sell"`
	Price              uint64        `long:"price" required:"true" description:"Limit price in lamports per claim"`
	Quantity           uint64        `long:"quantity" required:"true" description:"Number of claims"`
	ClaimAccount       types.Address `long:"claim-account" required:"true" description:"Claim account credited by a buy or funding a sell"`
	Proceeds           types.Address `long:"proceeds" description:"Account receiving the proceeds of a sell, the key by default"`
	ExecutionAuthority types.Address `long:"execution-authority" description:"Address allowed to fill the order, the key by default"`
}

var orderCmd OrderCmd

func (opts *OrderCreateCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	c, claimType, err := opts.claims(s)
	if err != nil {
		return err
	}
	sub := instructions.OrderSubmission{
		Claims:             c,
		ClaimType:          claimType,
		Side:               opts.Side,
		Price:              opts.Price,
		Quantity:           opts.Quantity,
		ClaimAuthority:     k.Address(),
		ExecutionAuthority: opts.ExecutionAuthority,
	}
	if sub.ExecutionAuthority.IsZero() {
		sub.ExecutionAuthority = k.Address()
	}
	switch opts.Side {
	case types.SideBuy:
		sub.Settlement, sub.Receive = k.Address(), opts.ClaimAccount
	case types.SideSell:
		sub.Settlement, sub.Receive = opts.ClaimAccount, opts.Proceeds
		if sub.Receive.IsZero() {
			sub.Receive = k.Address()
		}
	}

	order, err := s.CreateOrder(context.Background(), k, sub)
	if err != nil {
		return err
	}
	return s.print(struct {
		Order string `json:"order"`
	}{order.String()}, func() {
		fmt.Printf("order: %s\n", order)
	})
}

type OrderFillCmd struct {
	LedgerFlags

	Key  string        `long:"key" required:"true" description:"Name of the execution authority of either order"`
	Buy  types.Address `long:"buy" required:"true" description:"Address of the buy order"`
	Sell types.Address `long:"sell" required:"true" description:"Address of the sell order"`
}

func (opts *OrderFillCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	f, err := s.FillFor(opts.Buy, opts.Sell)
	if err != nil {
		return err
	}
	if err := s.FillOrder(context.Background(), k, f); err != nil {
		return err
	}
	buy, err := s.Order(opts.Buy)
	if err != nil {
		return err
	}
	sell, err := s.Order(opts.Sell)
	if err != nil {
		return err
	}
	return s.print(struct {
		Buy  uint64 `json:"buyRemaining"`
		Sell uint64 `json:"sellRemaining"`
	}{buy.Quantity, sell.Quantity}, func() {
		fmt.Printf("filled, remaining buy %d sell %d\n", buy.Quantity, sell.Quantity)
	})
}

type OrderCancelCmd struct {
	LedgerFlags

	Key   string        `long:"key" required:"true" description:"Name of the key cancelling the order"`
	Order types.Address `long:"order" required:"true" description:"Address of the order"`
}

func (opts *OrderCancelCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	if err := s.CancelOrder(context.Background(), k, opts.Order); err != nil {
		return err
	}
	return s.print(struct {
		Order string `json:"cancelled"`
	}{opts.Order.String()}, func() {
		fmt.Printf("cancelled %s\n", opts.Order)
	})
}

type OrderBookCmd struct {
	LedgerFlags
	ClaimTypeFlags
}

type bookEntryView struct {
	Order       string `json:"order"`
	Price       uint64 `json:"price"`
	Probability string `json:"probability"`
	Quantity    uint64 `json:"quantity"`
	CreatedAt   uint64 `json:"createdAt"`
}

func newBookEntryViews(entries []orderindex.Entry) []bookEntryView {
	out := make([]bookEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, bookEntryView{
			Order:       e.ID.String(),
			Price:       e.Order.LimitPrice,
			Probability: e.Order.ImpliedProbability().StringFixed(4),
			Quantity:    e.Order.Quantity,
			CreatedAt:   e.Order.CreatedAt,
		})
	}
	return out
}

func (opts *OrderBookCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	_, claimType, err := opts.claims(s)
	if err != nil {
		return err
	}
	if err := s.LoadOrderIndex(); err != nil {
		return err
	}
	id := orderindex.BookID{Result: opts.Result, ClaimType: claimType}
	view := struct {
		Bids []bookEntryView `json:"bids"`
		Asks []bookEntryView `json:"asks"`
	}{
		Bids: newBookEntryViews(s.Index().Bids(id)),
		Asks: newBookEntryViews(s.Index().Asks(id)),
	}

	return s.print(view, func() {
		for i := len(view.Asks) - 1; i >= 0; i-- {
			a := view.Asks[i]
			fmt.Printf("%s %8d @ %-8d (%s) %s\n", red("ask"), a.Quantity, a.Price, a.Probability, a.Order)
		}
		for _, b := range view.Bids {
			fmt.Printf("%s %8d @ %-8d (%s) %s\n", green("bid"), b.Quantity, b.Price, b.Probability, b.Order)
		}
		if bid, ask, ok := s.Index().Crossing(id); ok {
			fmt.Printf("\n%s buy %s crosses sell %s\n", green("crossing:"), bid.ID, ask.ID)
		}
	})
}

func Order(ctx context.Context, parser *flags.Parser) error {
	orderCmd = OrderCmd{}
	_, err := parser.AddCommand("order", "Trade claims", "Place, fill, cancel and list escrow backed limit orders", &orderCmd)
	return err
}
