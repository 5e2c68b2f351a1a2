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

package paths

import (
	"fmt"
	"path/filepath"

	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
)

const (
	// ConfigHome is the folder holding the configuration.
	ConfigHome ConfigPath = "searchmarket"
	// NodeConfigFile is the configuration of the local ledger.
	NodeConfigFile ConfigPath = "searchmarket/config.toml"

	// DataHome is the folder holding the user files.
	DataHome DataPath = "searchmarket"
	// KeysDataHome is the folder holding the key files.
	KeysDataHome DataPath = "searchmarket/keys"

	// StateHome is the folder holding the generated state.
	StateHome StatePath = "searchmarket"
	// LedgerStateHome is the folder holding the ledger database.
	LedgerStateHome StatePath = "searchmarket/ledger"
)

type ConfigPath string

func (p ConfigPath) String() string {
	return string(p)
}

// JoinConfigPath joins any number of path elements with a root config path
// into a single path, separating them with an OS specific Separator.
func JoinConfigPath(p ConfigPath, elem ...string) ConfigPath {
	return ConfigPath(filepath.Join(append([]string{p.String()}, elem...)...))
}

type DataPath string

func (p DataPath) String() string {
	return string(p)
}

// JoinDataPath joins any number of path elements with a root data path
// into a single path, separating them with an OS specific Separator.
func JoinDataPath(p DataPath, elem ...string) DataPath {
	return DataPath(filepath.Join(append([]string{p.String()}, elem...)...))
}

type StatePath string

func (p StatePath) String() string {
	return string(p)
}

// JoinStatePath joins any number of path elements with a root state path
// into a single path, separating them with an OS specific Separator.
func JoinStatePath(p StatePath, elem ...string) StatePath {
	return StatePath(filepath.Join(append([]string{p.String()}, elem...)...))
}

// KeyFileFor returns the path of the key file called name.
func KeyFileFor(name string) DataPath {
	return JoinDataPath(KeysDataHome, name+".json")
}

// createFileParent creates the parent folders of a file and returns the
// file path untouched.
func createFileParent(path string) (string, error) {
	if err := vgfs.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("couldn't create parent folder of %s: %w", path, err)
	}
	return path, nil
}

func createDir(path string) (string, error) {
	if err := vgfs.EnsureDir(path); err != nil {
		return "", fmt.Errorf("couldn't create folder %s: %w", path, err)
	}
	return path, nil
}
