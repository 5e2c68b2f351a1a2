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

package config

import (
	"fmt"

	"code.vegaprotocol.io/searchmarket/paths"
)

// Empty is used when a command or sub-command receives no argument.
type Empty struct{}

type HomeFlag struct {
	Home string `long:"home" description:"Path to the custom home for searchmarket"`
}

// Paths returns the file layout selected by the flag.
func (h HomeFlag) Paths() paths.Paths {
	return paths.New(h.Home)
}

type Output string

const (
	OutputHuman Output = "human"
	OutputJSON  Output = "json"
)

type OutputFlag struct {
	Output Output `long:"output" default:"human" choice:"human" choice:"json" description:"Specify the output format: json,human"`
}

func (f OutputFlag) GetOutput() (Output, error) {
	switch f.Output {
	case OutputHuman, OutputJSON:
		return f.Output, nil
	default:
		return "", fmt.Errorf("unsupported output %q", f.Output)
	}
}

func (o Output) IsHuman() bool {
	return o == OutputHuman
}

func (o Output) IsJSON() bool {
	return o == OutputJSON
}
