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
	"os"

	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
	"code.vegaprotocol.io/searchmarket/paths"
)

// EnsureNodeConfig reads the node configuration of the home described by
// p and returns it with its location.
func EnsureNodeConfig(p paths.Paths) (string, *Config, error) {
	path := p.ConfigPathFor(paths.NodeConfigFile)
	exists, err := vgfs.FileExists(path)
	if err != nil {
		return "", nil, fmt.Errorf("couldn't verify configuration presence: %w", err)
	}
	if !exists {
		return "", nil, fmt.Errorf("node has not been initialised, please run `%s init`", os.Args[0])
	}

	cfg, err := Read(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}
