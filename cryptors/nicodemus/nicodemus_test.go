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

package nicodemus

import (
	"errors"
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plaintext = "theenemyisadvancingalongtheriverroadtonight"

func TestKnownVectors(t *testing.T) {
	cases := []struct{ keyword, key, ct string }{
		{"cat", "bac cat", "hnyaavgouxxxbwgianhieiqvtgezxoraoggqvkvkwga"},
		{"bird", "acdb bird", "uojwjhbgfdpmaivvdrexmujsujuuglwpdwwevvrehpk"},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			c := New(nil)
			require.NoError(t, c.Restore(tc.keyword))
			assert.Equal(t, tc.key, c.Key())
			ct, err := c.Encode(plaintext)
			require.NoError(t, err)
			assert.Equal(t, tc.ct, ct)
			require.NoError(t, c.SetCiphertext(ct))
			assert.Equal(t, plaintext, c.Decode())

			d := New(nil)
			require.NoError(t, d.SetCiphertext(ct))
			require.NoError(t, d.Restore(tc.key))
			assert.Equal(t, plaintext, d.Decode())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	perms := search.Permutations(4)
	for perms.Next() {
		c := New(nil)
		c.period, c.order, c.shifts = 4, append([]int(nil), perms.Value()...), []int{3, 0, 25, 11}
		ct, err := c.Encode(plaintext[:37])
		require.NoError(t, err)
		require.NoError(t, c.SetCiphertext(ct))
		assert.Equal(t, plaintext[:37], c.Decode(), c.Key())
	}
}

func TestPartialKey(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("hnyaavgouxxxbwgianhieiqvtgezxoraoggqvkvkwga"))
	require.NoError(t, c.Restore("bac c.t"))
	text := c.Decode()
	assert.Equal(t, "t e", text[:3])
	_, err := c.Encode("abc")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
}

func TestRestoreValidation(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("abcdef"))
	require.NoError(t, c.Restore("bac cat"))
	for _, bad := range []string{"", "abb cat", "ab cat", "bac c1t", "a b c", "toolongword"} {
		assert.Error(t, c.Restore(bad), bad)
	}
	assert.Equal(t, "bac cat", c.Key())
	require.NoError(t, c.SetPeriod(2))
	assert.Equal(t, "", c.Key())
	assert.Equal(t, "      ", c.Decode())
}

func TestSolve(t *testing.T) {
	enc := New(nil)
	require.NoError(t, enc.Restore("bird"))
	ct, err := enc.Encode(plaintext)
	require.NoError(t, err)

	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ct))
	require.NoError(t, c.SetPeriod(4))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, "acdb bird", c.Key())
	assert.Equal(t, plaintext, c.Decode())

	require.NoError(t, c.SetPeriod(4))
	stop := errors.New("stop")
	_, err = c.Solve(search.Options{BestFit: func(search.Event) error { return stop }})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "", c.Key())
}

func TestLocateTip(t *testing.T) {
	enc := New(nil)
	require.NoError(t, enc.Restore("cat"))
	ct, err := enc.Encode(plaintext)
	require.NoError(t, err)

	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ct))
	require.NoError(t, c.SetPeriod(3))
	off, err := c.LocateTip("riverroad")
	require.NoError(t, err)
	assert.Equal(t, 27, off)
	assert.Equal(t, "bac cat", c.Key())
}
