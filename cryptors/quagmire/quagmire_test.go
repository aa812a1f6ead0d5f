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

package quagmire

import (
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	plaintext = "thefaultdearbrutusisnotinourstarsbutinourselves"
	spring    = "springfeathbcdjklmoquvwxyz"
	flower    = "flowerabcdghijkmnpqstuvxyz"
)

func TestVariants(t *testing.T) {
	cases := []struct {
		variant int
		key     string
		full    string
		ct      string
	}{
		{1, "springfeather cold", spring + " cold", "dqkbcatehnlxfixeoggvyymyyyxxuplxurxexkvpwgklpnd"},
		{2, "springfeather cold", spring + " cold", "gzuoccpfkwlndthffhygzftvzfhnnblnnqhfugneihuyewa"},
		{3, spring + " cold", spring + " cold", "dukbcnyjmmlekcrjyhbgarmaarrenqlenvrjejszfhkvzma"},
		{4, "springfeather flower cold", spring + " " + flower + " cold", "defbckdgjllwhvjgttvleioeeijwfwlwfrjgwyhuotfpuls"},
	}
	for _, tc := range cases {
		c := New(tc.variant, nil)
		t.Run(c.Type(), func(t *testing.T) {
			require.NoError(t, c.Restore(tc.key))
			assert.Equal(t, tc.full, c.Key())
			assert.Equal(t, 4, c.Period())
			ct, err := c.Encode(plaintext)
			require.NoError(t, err)
			assert.Equal(t, tc.ct, ct)
			require.NoError(t, c.SetCiphertext(ct))
			assert.Equal(t, plaintext, c.Decode())
		})
	}
}

func TestIndicatorSitsUnderA(t *testing.T) {
	c := New(1, nil)
	require.NoError(t, c.Restore("paper a"))
	ct, err := c.Encode("pa")
	require.NoError(t, err)
	assert.Equal(t, "za", ct)
}

func TestRestoreValidation(t *testing.T) {
	c := New(4, nil)
	require.NoError(t, c.Restore("springfeather flower cold"))
	before := c.Key()
	assert.ErrorIs(t, c.Restore("springfeather cold"), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("spring fl0wer cold"), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("spring flower c0ld"), cryptors.ErrInvalidKey)
	assert.Equal(t, before, c.Key())
	assert.Panics(t, func() { New(5, nil) })
}

func TestLocateTipWithKnownAlphabets(t *testing.T) {
	c := New(2, nil)
	require.NoError(t, c.SetCiphertext("gzuoccpfkwlndthffhygzftvzfhnnblnnqhfugneihuyewa"))
	require.NoError(t, c.Restore("springfeather ...."))
	off, err := c.LocateTip("notinourstars")
	require.NoError(t, err)
	assert.Equal(t, 20, off)
	assert.Equal(t, spring+" cold", c.Key())
	assert.Equal(t, plaintext, c.Decode())
}

func TestSolveFitsIndicator(t *testing.T) {
	c := New(3, score.Match(plaintext))
	require.NoError(t, c.SetCiphertext("dukbcnyjmmlekcrjyhbgarmaarrenqlenvrjejszfhkvzma"))
	require.NoError(t, c.Restore(spring+" ...."))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, spring+" cold", c.Key())
}

func TestSolveNeedsPeriod(t *testing.T) {
	c := New(1, nil)
	_, err := c.Solve(search.Options{})
	assert.ErrorIs(t, err, cryptors.ErrNoCiphertext)
	require.NoError(t, c.SetCiphertext("abcdef"))
	_, err = c.Solve(search.Options{})
	assert.ErrorIs(t, err, cryptors.ErrNoPeriod)
}
