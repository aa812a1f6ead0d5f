/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	ws, err := loadWorkspace(path)
	require.NoError(t, err)
	assert.Equal(t, Workspace{}, ws)

	want := Workspace{Type: "vigenere", Period: 3, Ciphertext: "oyjafy", Key: "sun", Strict: true}
	require.NoError(t, want.save(path))
	got, err := loadWorkspace(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte("type: [\n"), 0600))
	_, err = loadWorkspace(path)
	assert.Error(t, err)

	assert.NoError(t, want.save(""))
}

func TestWorkspaceOpenAndCapture(t *testing.T) {
	r := catalog.New(nil)
	ws := Workspace{Type: "vigenere", Ciphertext: "oyjafyeyrluglbrtlvvarsnzaxaaauloadyfknuwgbghvkzhdf", Key: "sun"}
	c, err := ws.open(r)
	require.NoError(t, err)
	assert.Equal(t, plaintext, c.Decode())

	c.(cryptors.Substituter).Undo("")
	ws.capture(c)
	assert.Equal(t, "...", ws.Key)
	assert.Equal(t, 3, ws.Period)

	_, err = Workspace{}.open(r)
	assert.ErrorIs(t, err, cryptors.ErrUnknownType)
	_, err = Workspace{Type: "enigma"}.open(r)
	assert.ErrorIs(t, err, cryptors.ErrUnknownType)
	_, err = Workspace{Type: "vigenere", Ciphertext: "abc", Period: 9}.open(r)
	assert.ErrorIs(t, err, cryptors.ErrInvalidPeriod)
}
