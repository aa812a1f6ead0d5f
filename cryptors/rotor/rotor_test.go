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

package rotor

import (
	"testing"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(r *Rotor, s string, mode cryptors.Mode) string {
	return string(r.Apply(make([]byte, len(s)), []byte(s), 0, mode))
}

func TestKinds(t *testing.T) {
	key := []int{11, 4, 12, 14, 13} // lemon
	cases := []struct {
		kind Kind
		pt   string
		ct   string
	}{
		{Additive, "attackatdawn", "lxfopvefrnhr"},
		{Subtractive, "attackatdawn", "pphmpzwhpnlj"},
		{Reciprocal, "attackatdawn", "lltolbetlnpr"},
	}
	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			r := New(c.kind, alphabet.Lower, alphabet.Lower, key)
			assert.Equal(t, c.ct, apply(r, c.pt, cryptors.Encode))
			assert.Equal(t, c.pt, apply(r, c.ct, cryptors.Decode))
		})
	}
}

func TestPortaIsReciprocal(t *testing.T) {
	r := New(Porta, alphabet.Lower, alphabet.Lower, []int{0, 1, 6})
	assert.Equal(t, 13, r.Values())
	ct := apply(r, "amnz", cryptors.Encode)
	assert.Equal(t, "nnhm", ct)
	assert.Equal(t, ct, apply(r, "amnz", cryptors.Decode))
	assert.Equal(t, "amnz", apply(r, ct, cryptors.Decode))
}

func TestUnknownColumnAndOffset(t *testing.T) {
	r := New(Additive, alphabet.Lower, alphabet.Lower, []int{1, Unknown})
	assert.Equal(t, "b c ", apply(r, "abbb", cryptors.Encode))
	out := r.Apply(make([]byte, 2), []byte("aa"), 1, cryptors.Encode)
	assert.Equal(t, " b", string(out))
}

func TestKeyFor(t *testing.T) {
	r := New(Reciprocal, alphabet.Lower, alphabet.Lower, []int{0})
	k, ok := r.KeyFor('a', 'l')
	require.True(t, ok)
	assert.Equal(t, 11, k)
	_, ok = r.KeyFor('a', '1')
	assert.False(t, ok)
}

func TestMismatchedAlphabetsPanic(t *testing.T) {
	assert.Panics(t, func() { New(Additive, alphabet.Lower, alphabet.NoJ, []int{0}) })
}
