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
	"path/filepath"
)

// CustomPaths builds every path under CustomHome, so a single folder holds
// a whole setup. Useful for tests and for running several ledgers side by
// side.
type CustomPaths struct {
	CustomHome string
}

func (p *CustomPaths) CreateConfigPathFor(relFilePath ConfigPath) (string, error) {
	return createFileParent(p.ConfigPathFor(relFilePath))
}

func (p *CustomPaths) CreateDataPathFor(relFilePath DataPath) (string, error) {
	return createFileParent(p.DataPathFor(relFilePath))
}

func (p *CustomPaths) CreateDataDirFor(relDirPath DataPath) (string, error) {
	return createDir(p.DataPathFor(relDirPath))
}

func (p *CustomPaths) CreateStateDirFor(relDirPath StatePath) (string, error) {
	return createDir(p.StatePathFor(relDirPath))
}

func (p *CustomPaths) ConfigPathFor(relFilePath ConfigPath) string {
	return filepath.Join(p.CustomHome, "config", relFilePath.String())
}

func (p *CustomPaths) DataPathFor(relFilePath DataPath) string {
	return filepath.Join(p.CustomHome, "data", relFilePath.String())
}

func (p *CustomPaths) StatePathFor(relFilePath StatePath) string {
	return filepath.Join(p.CustomHome, "state", relFilePath.String())
}
