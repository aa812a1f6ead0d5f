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

package bifid

import (
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	square     = "phqgmeaylnofdxkrcvszwbuti"
	plaintext  = "defendtheeastwallofthecastle"
	ciphertext = "ffyhmkhycpliashadtrlhcchlblr"
)

func TestKnownVectors(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("bgwkzqpndsioaxefclumthyvr"))
	ct, err := c.Encode("flee at once")
	require.NoError(t, err)
	assert.Equal(t, "uaeolwrins", ct)

	require.NoError(t, c.Restore(square))
	require.NoError(t, c.SetCiphertext(plaintext))
	require.NoError(t, c.SetPeriod(5))
	ct, err = c.Encode(plaintext)
	require.NoError(t, err)
	assert.Equal(t, ciphertext, ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, square, c.Key())
}

func TestPartialSquare(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.SetPeriod(5))
	assert.Equal(t, "                            ", c.Decode())
	_, err := c.Encode("abc")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("pp......................."), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("p1......................."), cryptors.ErrInvalidKey)
	require.NoError(t, c.Restore("phqgmeaylnofdx..........."))
	assert.Equal(t, "phqgmeaylnofdx...........", c.Key())
}

func TestSubstitute(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.SetPeriod(5))
	require.NoError(t, c.Restore("phqgmeaylnofdx..........."))

	res, err := c.Substitute("", "eastwall", 9)
	require.NoError(t, err)
	assert.Equal(t, tracker.NewMapping, res.Kind)
	assert.Equal(t, "defen   eeas  all f  e      ", c.Decode())

	_, err = c.Substitute("abc", "east", 9)
	assert.ErrorIs(t, err, tracker.ErrLengthMismatch)
	_, err = c.Substitute("abcd", "east", 9)
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
	_, err = c.Substitute("", "eastwall", 25)
	assert.ErrorIs(t, err, cryptors.ErrInvalidLength)

	c.Undo("e")
	r, col := c.grid.Position('e')
	assert.Equal(t, tracker.Unknown, r)
	assert.Equal(t, tracker.Unknown, col)
	c.Undo("")
	assert.Equal(t, ".........................", c.Key())
}

func TestLocateTip(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.SetPeriod(5))
	off, err := c.LocateTip("defendthe")
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	for _, tc := range []struct {
		tip string
		off int
	}{
		{"eastwall", 9},
		{"thecastle", 19},
		{"wallofthe", 13},
	} {
		require.NoError(t, c.Restore("phqgmeaylnofdx..........."))
		off, err := c.LocateTip(tc.tip)
		require.NoError(t, err, tc.tip)
		assert.Equal(t, tc.off, off, tc.tip)
	}

	require.NoError(t, c.Restore(square))
	_, err = c.LocateTip("zzzz")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
}

func TestSolve(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.SetPeriod(5))
	require.NoError(t, c.Restore("phfgmeaylnoqdxkrcvszwbuti"))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, square, c.Key())
	assert.Equal(t, plaintext, c.Decode())
}
