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

package route

import (
	"sort"
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plaintext = "fallbacktothenorthbridgeatfirstlight"

func TestRoutesOnSquare(t *testing.T) {
	cases := []struct {
		read int
		want string
	}{
		{1, "abcdefghi"},
		{2, "adgbehcfi"},
		{3, "cbafedihg"},
		{5, "ghidefabc"},
		{9, "abcfedghi"},
		{17, "abdcegfhi"},
		{33, "abcfihgde"},
		{41, "edghifcba"},
	}
	for _, tc := range cases {
		t.Run(Name(tc.read), func(t *testing.T) {
			c := New(nil)
			require.NoError(t, c.Restore(Key{Width: 3, Read: tc.read, Write: 1}.String()))
			ct, err := c.Encode("abcdefghi")
			require.NoError(t, err)
			assert.Equal(t, tc.want, ct)
		})
	}
}

func TestIdentityRoute(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("abcdefghi"))
	require.NoError(t, c.Restore("3 1 1"))
	assert.Equal(t, "abcdefghi", c.Decode())
	assert.Equal(t, "NW rows straight", Name(1))
}

func TestEveryRouteIsABijection(t *testing.T) {
	rt := NewRouter()
	for _, w := range []int{1, 3, 4, 12} {
		for r := 1; r <= Routes; r++ {
			seq := append([]int(nil), rt.Route(r, w, 12/w)...)
			sort.Ints(seq)
			for i, v := range seq {
				require.Equal(t, i, v, "route %d width %d", r, w)
			}
		}
	}
	n := rt.Len()
	rt.Route(7, 3, 4)
	assert.Equal(t, n, rt.Len())
	assert.Panics(t, func() { rt.Route(49, 3, 4) })
}

func TestRoundTrip(t *testing.T) {
	for read := 1; read <= Routes; read += 5 {
		for write := 1; write <= Routes; write += 7 {
			c := New(nil)
			require.NoError(t, c.Restore(Key{Width: 4, Read: read, Write: write}.String()))
			ct, err := c.Encode(plaintext)
			require.NoError(t, err)
			require.NoError(t, c.SetCiphertext(ct))
			assert.Equal(t, plaintext, c.Decode(), c.Key())
		}
	}
}

func TestKnownVector(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("6 17 9"))
	ct, err := c.Encode(plaintext)
	require.NoError(t, err)
	assert.Equal(t, "fahltelonebtogaakrdttctifhhrigbrislt", ct)
}

func TestValidation(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("abcdefghij"))
	for _, bad := range []string{"", "2 1", "2 0 1", "2 1 49", "x 1 1", "3 1 1", "11 1 1"} {
		assert.Error(t, c.Restore(bad), bad)
	}
	assert.ErrorIs(t, c.SetPeriod(3), cryptors.ErrInvalidPeriod)
	require.NoError(t, c.SetPeriod(5))
	assert.Equal(t, "          ", c.Decode())
	require.NoError(t, c.Restore("2 4 6"))
	_, err := c.Encode("abc")
	assert.ErrorIs(t, err, cryptors.ErrInvalidLength)
	assert.ErrorIs(t, c.SetCiphertext("abc"), cryptors.ErrInvalidLength)
	assert.Equal(t, "abcdefghij", c.Ciphertext())
}

func TestSolve(t *testing.T) {
	enc := New(nil)
	require.NoError(t, enc.Restore("6 17 9"))
	ct, err := enc.Encode(plaintext)
	require.NoError(t, err)

	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ct))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, plaintext, c.Decode())
}

func TestLocateTip(t *testing.T) {
	enc := New(nil)
	require.NoError(t, enc.Restore("6 17 9"))
	ct, err := enc.Encode(plaintext)
	require.NoError(t, err)

	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ct))
	require.NoError(t, c.SetPeriod(6))
	off, err := c.LocateTip("bridge")
	require.NoError(t, err)
	assert.Equal(t, 18, off)
	assert.Equal(t, plaintext, c.Decode())
	_, err = c.LocateTip("qqq")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
}
