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

package txn

// Command identifies an instruction of the search market program. It is
// the first byte of the instruction data.
type Command byte

const (
	CreateMarketCommand Command = 0x01
	CreateResultCommand Command = 0x02
	DepositCommand      Command = 0x03
	WithdrawCommand     Command = 0x04
	DecideCommand       Command = 0x05
	CreateOrderCommand  Command = 0x06
	FillOrderCommand    Command = 0x07
	CancelOrderCommand  Command = 0x08
)

var commandName = map[Command]string{
	CreateMarketCommand: "Create Market",
	CreateResultCommand: "Create Result",
	DepositCommand:      "Deposit",
	WithdrawCommand:     "Withdraw",
	DecideCommand:       "Decide",
	CreateOrderCommand:  "Create Order",
	FillOrderCommand:    "Fill Order",
	CancelOrderCommand:  "Cancel Order",
}

// IsOrderCommand returns true for the instructions handled by the order book.
func (cmd Command) IsOrderCommand() bool {
	switch cmd {
	case CreateOrderCommand, FillOrderCommand, CancelOrderCommand:
		return true
	default:
		return false
	}
}

func (cmd Command) IsValid() bool {
	_, ok := commandName[cmd]
	return ok
}

// String returns the human readable name of the command.
func (cmd Command) String() string {
	s, ok := commandName[cmd]
	if ok {
		return s
	}
	return ""
}
