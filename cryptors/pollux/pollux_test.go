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

package pollux

import (
	"errors"
	"testing"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	key        = "-x.-.x.-x."
	plaintext  = "wewillmeetatthebridgeatmidnightunlessthemoonisfull"
	ciphertext = "20314567089214369527468031952871405387169245680924163952487691032548671053789210465398241706592468319275048639214569284691752469821035703870317456982461920456938274619024"
)

func TestKnownVector(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore(key))
	ct, err := c.Encode(plaintext)
	require.NoError(t, err)
	assert.Equal(t, ciphertext, ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, key, c.Key())
}

func TestEncodeCyclesDigits(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("..x--?????"))
	ct, err := c.Encode("sos")
	require.NoError(t, err)
	assert.Equal(t, "01023432101", ct)

	require.NoError(t, c.Restore(".-????????"))
	_, err = c.Encode("sos")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
}

func TestDecodeSeparatorsAndBlanks(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("..x--?????"))
	require.NoError(t, c.SetCiphertext("2201 22 3422 0103"))
	assert.Equal(t, "imv", c.Decode())
	require.NoError(t, c.SetCiphertext("0525"))
	assert.Equal(t, "  ", c.Decode())
	require.NoError(t, c.SetCiphertext("01010120"))
	assert.Equal(t, " e", c.Decode())
}

func TestValidation(t *testing.T) {
	c := New(nil)
	assert.Equal(t, "??????????", c.Key())
	assert.ErrorIs(t, c.SetCiphertext("12a"), cryptors.ErrInvalidChar)
	assert.ErrorIs(t, c.SetCiphertext(" "), cryptors.ErrInvalidLength)
	assert.ErrorIs(t, c.Restore("-x.-."), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("-x.-.x.-xy"), cryptors.ErrInvalidKey)
	require.NoError(t, c.Restore("-x.-. x.-x."))
	assert.Equal(t, key, c.Key())
	_, err := c.Solve(search.Options{})
	assert.ErrorIs(t, err, cryptors.ErrNoCiphertext)
}

func TestPartialKey(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("-x.-.x????"))
	assert.Equal(t, "we     a     g t       e   m      ", c.Decode())
}

func TestSolve(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	var progress int
	s, err := c.Solve(search.Options{Interval: 1000, Progress: func(search.Event) error {
		progress++
		return nil
	}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, key, c.Key())
	assert.Equal(t, plaintext, c.Decode())
	assert.Equal(t, 59, progress)
}

func TestSolveAbort(t *testing.T) {
	stop := errors.New("stop")
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	_, err := c.Solve(search.Options{Interval: 1, Progress: func(search.Event) error { return stop }})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "??????????", c.Key())
}

func TestLocateTip(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("-x.-.x????"))
	off, err := c.LocateTip("bridge")
	require.NoError(t, err)
	assert.Equal(t, 15, off)
	assert.Equal(t, key, c.Key())

	require.NoError(t, c.Restore("-x.-.x????"))
	_, err = c.LocateTip("zzz")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
	assert.Equal(t, "-x.-.x????", c.Key())
}
