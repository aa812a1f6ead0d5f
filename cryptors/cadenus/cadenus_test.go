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

package cadenus

import (
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	plaintext  = "aseverelimitationontheusefulnessofthecadenusisthateverymessagemustbeamultipleoftwentyfiveletterslong"
	ciphertext = "systretomtattlusoatleeesfiyheasdfnmschbhneuvsnpmtofarenuseieeieltarlmentieetogevesitfaisltngeeuvowul"
)

func TestEasy(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("EASY"))
	assert.Equal(t, "bacd easy", c.Key())
	ct, err := c.Encode(plaintext)
	require.NoError(t, err)
	assert.Equal(t, ciphertext, ct)

	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, 4, c.Period())
	assert.Equal(t, plaintext, c.Decode())
	require.NoError(t, c.Restore("bacd easy"))
	assert.Equal(t, plaintext, c.Decode())
}

func TestWSharesV(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("abcd wvwv"))
	assert.Equal(t, "abcd vvvv", c.Key())
}

func TestPartialKey(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("bacd e.sy"))
	text := c.Decode()
	assert.Equal(t, plaintext[:1]+" "+plaintext[2:5]+" ", text[:6])
	_, err := c.Encode(plaintext)
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
}

func TestValidation(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.SetCiphertext("abc"), cryptors.ErrInvalidLength)
	require.NoError(t, c.SetCiphertext(ciphertext))
	for _, bad := range []string{"", "abc", "abcde", "aacd easy", "bacd ea1y", "bacd eas", "a b c"} {
		assert.ErrorIs(t, c.Restore(bad), cryptors.ErrInvalidKey, bad)
	}
	assert.Equal(t, "", c.Key())
	require.NoError(t, c.Restore("easy"))
	_, err := c.Encode("short")
	assert.ErrorIs(t, err, cryptors.ErrInvalidLength)
}

func TestSolve(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	var best int
	s, err := c.Solve(search.Options{BestFit: func(search.Event) error {
		best++
		return nil
	}})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, "bacd easy", c.Key())
	assert.Equal(t, plaintext, c.Decode())
	assert.Positive(t, best)
}

func TestLocateTip(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	off, err := c.LocateTip("cadenus")
	require.NoError(t, err)
	assert.Equal(t, 37, off)
	assert.Equal(t, plaintext, c.Decode())
}
