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

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Config contains the configurable items for this package.
type Config struct {
	Environment string
	Level       Level
	File        FileConfig
}

// FileConfig copies the logs to a file rotated by size. Logs only go to
// stdout when Path is empty.
type FileConfig struct {
	Path    string `long:"path" description:"file the logs are copied to"`
	MaxSize int    `long:"max-size" description:"size in megabytes a log file grows to before being rotated"`
	MaxAge  int    `long:"max-age" description:"days rotated log files are kept"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
		Level:       InfoLevel,
		File: FileConfig{
			MaxSize: 100,
			MaxAge:  7,
		},
	}
}

// Binary constructs a field that carries an opaque binary blob.
func Binary(key string, val []byte) zap.Field {
	return zap.Binary(key, val)
}

// Bool constructs a field that carries a bool.
func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

// Error constructs a field that lazily stores err.Error() under the key "error".
func Error(val error) zap.Field {
	return zap.Error(val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Uint8 constructs a field with the given key and value.
func Uint8(key string, val uint8) zap.Field {
	return zap.Uint8(key, val)
}

// Uint64 constructs a field with the given key and value.
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// String constructs a field with the given key and value.
func String(key string, val string) zap.Field {
	return zap.String(key, val)
}

// Strings constructs a field that carries a slice of strings.
func Strings(key string, val []string) zap.Field {
	return zap.Strings(key, val)
}

// Stringer constructs a field from any value implementing fmt.Stringer.
func Stringer(key string, val fmt.Stringer) zap.Field {
	return zap.Stringer(key, val)
}
