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

package aristocrat

import (
	"errors"
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	partners   = "qwertyuiopasdfghjklzxcvbnm"
	plaintext  = "thewizardquicklyjinxedthegnomesbeforetheyvaporized"
	ciphertext = "epcbhtkdmaghvrsfqhyucmepcoyizclxcnidcepcfwkjidhtcm"
)

func TestEncodeDecode(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.Restore(partners))
	ct, err := c.Encode("The wizard quickly jinxed the gnomes before they vaporized.")
	require.NoError(t, err)
	assert.Equal(t, ciphertext, ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz "+partners, c.Key())
}

func TestRestoreRejectsDuplicates(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("abc xyz"))
	before := c.Key()
	err := c.Restore("ab xx")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
	assert.Equal(t, before, c.Key())
	assert.ErrorIs(t, c.Restore("abc xy"), cryptors.ErrInvalidKey)
}

func TestPartialKeyDecodesBlanks(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext("abca"))
	require.NoError(t, c.Restore("a. x."))
	assert.Equal(t, "x  x", c.Decode())
	_, err := c.Encode("xy")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
}

func TestSubstituteAlternate(t *testing.T) {
	c := New(nil)
	res, err := c.Substitute("abc", "xyz", 0)
	require.NoError(t, err)
	assert.Equal(t, tracker.NewMapping, res.Kind)
	res, err = c.Substitute("a", "q", 0)
	require.NoError(t, err)
	assert.Equal(t, tracker.AlternateMapping, res.Kind)
	assert.Equal(t, []byte("x"), res.Displaced)

	c.SetStrict(true)
	_, err = c.Substitute("a", "r", 0)
	assert.ErrorIs(t, err, tracker.ErrBadSub)

	c.Undo("")
	c.Undo("")
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz ..........................", c.Key())
}

func TestSubstituteAtOffset(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	_, err := c.Substitute("", "the", 0)
	require.NoError(t, err)
	assert.Equal(t, "the", c.Decode()[:3])
	_, err = c.Substitute("", "toolong", len(ciphertext)-2)
	assert.ErrorIs(t, err, cryptors.ErrInvalidLength)
}

func TestLocateTip(t *testing.T) {
	c := New(nil)
	_, err := c.LocateTip("the")
	assert.ErrorIs(t, err, cryptors.ErrNoCiphertext)
	require.NoError(t, c.SetCiphertext(ciphertext))

	for _, tc := range []struct {
		tip string
		off int
	}{
		{"theyvaporized", 37},
		{"before", 31},
		{"wizard", 3},
		{"gnomes", 25},
	} {
		off, err := c.LocateTip(tc.tip)
		require.NoError(t, err, tc.tip)
		assert.Equal(t, tc.off, off, tc.tip)
		assert.Equal(t, tc.tip, c.Decode()[off:off+len(tc.tip)])
	}
	_, err = c.LocateTip("aaaa")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
}

func TestSolve(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	var best []search.Event
	s, err := c.Solve(search.Options{BestFit: func(e search.Event) error {
		best = append(best, e)
		return nil
	}})
	require.NoError(t, err)
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, float64(len(plaintext)), s)
	require.NotEmpty(t, best)
	assert.Equal(t, plaintext, best[len(best)-1].Text)
}

func TestSolveAbortKeepsKey(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("ab xy"))
	stop := errors.New("stop")
	_, err := c.Solve(search.Options{Interval: 5, Progress: func(search.Event) error { return stop }})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz xy........................", c.Key())
}
