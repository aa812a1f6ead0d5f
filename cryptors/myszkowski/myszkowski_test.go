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

package myszkowski

import (
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plaintext = "wearediscoveredfleeatonce"

func TestTomato(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("TOMATO"))
	assert.Equal(t, "dcbadc", c.Key())
	assert.Equal(t, 6, c.Period())
	ct, err := c.Encode("We are discovered, flee at once!")
	require.NoError(t, err)
	assert.Equal(t, "rofoacdtedseeeacweivrlene", ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, plaintext, c.Decode())
}

func TestDistinctRanksAreColumnar(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("bac"))
	ct, err := c.Encode("abcdefgh")
	require.NoError(t, err)
	assert.Equal(t, "behadgcf", ct)
}

func TestRoundTrip(t *testing.T) {
	orders := search.WeakOrders(4)
	n := 0
	for orders.Next() {
		n++
		c := New(nil)
		c.period, c.ranks = 4, append([]int(nil), orders.Value()...)
		ct, err := c.Encode(plaintext)
		require.NoError(t, err)
		require.NoError(t, c.SetCiphertext(ct))
		assert.Equal(t, plaintext, c.Decode(), c.Key())
	}
	assert.Equal(t, 75, n)
}

func TestRestoreValidation(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("abcdef"))
	assert.Equal(t, "      ", c.Decode())
	require.NoError(t, c.Restore("aab"))
	assert.ErrorIs(t, c.Restore("a1b"), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("abcdefg"), cryptors.ErrInvalidPeriod)
	assert.ErrorIs(t, c.Restore(""), cryptors.ErrInvalidPeriod)
	assert.Equal(t, "aab", c.Key())
}

func TestSolveAndLocateTip(t *testing.T) {
	enc := New(nil)
	require.NoError(t, enc.Restore("abba"))
	ct, err := enc.Encode(plaintext)
	require.NoError(t, err)

	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ct))
	require.NoError(t, c.SetPeriod(4))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, plaintext, c.Decode())

	require.NoError(t, c.SetPeriod(4))
	off, err := c.LocateTip("fleeat")
	require.NoError(t, err)
	assert.Equal(t, 15, off)
	assert.Equal(t, plaintext, c.Decode())
	_, err = c.LocateTip("zzz")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
}
