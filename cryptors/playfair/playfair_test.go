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

package playfair

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
	plaintext  = "meetmeatthesecondmilestoneafterthebridgeatdawn"
	ciphertext = "clklclrspdillenacresilprmgoilkdzcfdakbifrsbrny"
)

func TestPlayfairExample(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("Playfair Example"))
	assert.Equal(t, "playfirexmbcdghknoqstuvwz", c.Key())
	ct, err := c.Encode("Hide the gold in the tree stump")
	require.NoError(t, err)
	assert.Equal(t, "bmodzbxdnabekudmuixmmouvif", ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, "hidethegoldinthetrexestump", c.Decode())
}

func TestDigraphs(t *testing.T) {
	assert.Equal(t, "balxloon", string(Digraphs([]byte("balloon"))))
	assert.Equal(t, "xqxa", string(Digraphs([]byte("xxa"))))
	assert.Equal(t, "ax", string(Digraphs([]byte("a"))))
}

func TestRoundTrip(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Restore("monarchybdefgiklpqstuvwxz"))
	ct, err := c.Encode(plaintext)
	require.NoError(t, err)
	assert.Equal(t, ciphertext, ct)
	require.NoError(t, c.SetCiphertext(ct))
	assert.Equal(t, plaintext, c.Decode())
}

func TestValidation(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.SetCiphertext("abc"), cryptors.ErrInvalidLength)
	require.NoError(t, c.SetCiphertext("jack"))
	assert.Equal(t, "iack", c.Ciphertext())
	assert.Equal(t, "    ", c.Decode())
	_, err := c.Encode("abc")
	assert.ErrorIs(t, err, cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("abc1"), cryptors.ErrInvalidKey)
	assert.ErrorIs(t, c.Restore("aacdefghiklmnopqrstuvwxyz"), cryptors.ErrInvalidKey)
	assert.Equal(t, "", c.Key())
}

func TestSolve(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("monqrchybdefgiklpastuvwxz"))
	s, err := c.Solve(search.Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(len(plaintext)), s)
	assert.Equal(t, "monarchybdefgiklpqstuvwxz", c.Key())
	assert.Equal(t, plaintext, c.Decode())
}

func TestSolveAbortKeepsKey(t *testing.T) {
	c := New(score.Match(plaintext))
	require.NoError(t, c.SetCiphertext(ciphertext))
	require.NoError(t, c.Restore("monqrchybdefgiklpastuvwxz"))
	stop := errors.New("stop")
	_, err := c.Solve(search.Options{Interval: 10, Progress: func(search.Event) error { return stop }})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "monqrchybdefgiklpastuvwxz", c.Key())
}

func TestLocateTip(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetCiphertext(ciphertext))
	off, err := c.LocateTip("milestone")
	require.NoError(t, err)
	assert.Equal(t, 2, off)
	assert.True(t, c.fits([]byte("milestone"), 17))
	_, err = c.LocateTip("aaaa")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
	_, err = c.LocateTip("a")
	assert.ErrorIs(t, err, cryptors.ErrTipNotFound)
}
