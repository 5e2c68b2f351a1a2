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

package fs_test

import (
	"path/filepath"
	"testing"

	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
	vgtest "code.vegaprotocol.io/searchmarket/libs/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	ledger := filepath.Join(t.TempDir(), "state", "searchmarket", "ledger")

	t.Run("parents are created owner only", func(t *testing.T) {
		require.NoError(t, vgfs.EnsureDir(ledger))
		vgtest.AssertOwnerOnly(t, ledger)
		vgtest.AssertOwnerOnly(t, filepath.Dir(ledger))
	})

	t.Run("an existing folder is left as is", func(t *testing.T) {
		key := filepath.Join(ledger, "CURRENT")
		require.NoError(t, vgfs.WriteFile(key, []byte("MANIFEST-000001")))

		require.NoError(t, vgfs.EnsureDir(ledger))
		exists, err := vgfs.FileExists(key)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestExistence(t *testing.T) {
	home := t.TempDir()
	keyFile := filepath.Join(home, "alice.json")
	require.NoError(t, vgfs.WriteFile(keyFile, []byte("{}")))

	cases := []struct {
		name       string
		path       string
		pathExists bool
		fileExists bool
		fileErr    bool
	}{
		{name: "key file", path: keyFile, pathExists: true, fileExists: true},
		{name: "missing key file", path: filepath.Join(home, "bob.json")},
		{name: "keys folder", path: home, pathExists: true, fileErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exists, err := vgfs.PathExists(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.pathExists, exists)

			exists, err = vgfs.FileExists(tc.path)
			if tc.fileErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.fileExists, exists)
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	t.Run("written files are owner only", func(t *testing.T) {
		require.NoError(t, vgfs.WriteFile(path, []byte("BlockInterval = \"1s\"\n")))
		vgtest.AssertOwnerOnly(t, path)
	})

	t.Run("rewriting replaces the whole content", func(t *testing.T) {
		require.NoError(t, vgfs.WriteFile(path, []byte("x")))
		buf, err := vgfs.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), buf)
		vgtest.AssertOwnerOnly(t, path)
	})

	t.Run("a folder cannot be read as a file", func(t *testing.T) {
		buf, err := vgfs.ReadFile(filepath.Dir(path))
		assert.Error(t, err)
		assert.Empty(t, buf)
	})
}
