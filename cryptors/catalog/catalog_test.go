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

package catalog

import (
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryType(t *testing.T) {
	r := New(score.Match(""))
	assert.Equal(t, []string{
		"amsco", "aristocrat", "baconian", "beaufort", "bifid", "cadenus", "digrafid",
		"gronsfeld", "homophonic", "myszkowski", "nicodemus", "playfair", "pollux", "porta",
		"quagmire1", "quagmire2", "quagmire3", "quagmire4", "route", "swagman", "variant", "vigenere",
	}, r.Types())
	for _, name := range r.Types() {
		id, c, err := r.New(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Type())
		got, ok := r.Get(id)
		require.True(t, ok, name)
		assert.Same(t, c, got)
	}
	assert.Equal(t, len(r.Types()), r.Len())
	_, _, err := r.New("enigma")
	assert.ErrorIs(t, err, cryptors.ErrUnknownType)
}

func TestCapabilities(t *testing.T) {
	r := New(nil)
	periodic := map[string]bool{}
	substituter := map[string]bool{}
	for _, name := range r.Types() {
		_, c, err := r.New(name)
		require.NoError(t, err)
		_, periodic[name] = c.(cryptors.Periodic)
		_, substituter[name] = c.(cryptors.Substituter)
	}
	for _, name := range []string{"vigenere", "quagmire3", "amsco", "bifid", "digrafid", "route"} {
		assert.True(t, periodic[name], name)
	}
	for _, name := range []string{"cadenus", "aristocrat", "pollux", "baconian", "homophonic"} {
		assert.False(t, periodic[name], name)
	}
	for _, name := range []string{"aristocrat", "vigenere", "porta", "quagmire1", "bifid", "homophonic"} {
		assert.True(t, substituter[name], name)
	}
}

func TestRoundTrip(t *testing.T) {
	const plaintext = "thetroopsmovenorthatdawn"
	keys := map[string]string{
		"aristocrat": "zyxwvutsrqponmlkjihgfedcba",
		"vigenere":   "cipher",
		"gronsfeld":  "31415",
		"porta":      "key",
		"bifid":      "phqgmeaylnofdxkrcvszwbuti",
		"digrafid":   "keyword fourths",
		"route":      "6 17 9",
		"swagman":    "1234 3412 2143 4321",
		"myszkowski": "tomato",
		"nicodemus":  "cat",
		"amsco":      "dbac 2",
		"homophonic": "lock",
		"pollux":     "-x.-.x.-x.",
	}
	r := New(nil)
	for name, key := range keys {
		_, c, err := r.New(name)
		require.NoError(t, err)
		require.NoError(t, c.SetCiphertext(cipherShaped(name, plaintext)), name)
		require.NoError(t, c.Restore(key), name)
		ct, err := c.Encode(plaintext)
		require.NoError(t, err, name)
		require.NoError(t, c.SetCiphertext(ct), name)
		assert.Equal(t, plaintext, c.Decode(), name)
	}
}

// cipherShaped returns a placeholder ciphertext of the right shape for
// ciphers that check the key against the ciphertext.
func cipherShaped(name, plaintext string) string {
	switch name {
	case "homophonic":
		return "0102"
	case "pollux":
		return "0"
	}
	return plaintext
}
