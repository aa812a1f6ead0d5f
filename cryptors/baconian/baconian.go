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

// Package baconian implements the Baconian.  Every ciphertext letter stands
// for an a or a b, and each group of five a/b symbols is one plaintext letter
// of the 24 letter Bacon alphabet, in which i and j share a code as do u and
// v.
package baconian

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/bitops"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "baconian"

const group = 5

// bacon holds the letters in code order, aaaaa first.
var bacon = alphabet.New("abcdefghiklmnopqrstuwxyz")

// folds writes j as i and v as u.
var folds = []string{"ji", "vu"}

var _ cryptors.Cipher = (*Cipher)(nil)

// Cipher is a Baconian.  For each ciphertext letter, known records whether
// its symbol is known and isB which symbol it is.
type Cipher struct {
	scorer     score.Scorer
	ct         []byte
	known, isB []byte
}

func New(s score.Scorer) *Cipher {
	n := alphabet.Lower.Len()
	return &Cipher{scorer: s, known: bitops.New(n), isB: bitops.New(n)}
}

func (c *Cipher) Type() string { return Type }

// SetCiphertext requires whole groups of five letters.
func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 || len(b)%group != 0 {
		return fmt.Errorf("%w: %d letters do not make groups of %d", cryptors.ErrInvalidLength, len(b), group)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// decode reads each group through flags, writing invalid for a group with
// no Bacon letter and a blank for a group holding a letter of unknown
// symbol.
func decode(ct []byte, flags func(l int) (b, ok bool), invalid byte) string {
	out := make([]byte, len(ct)/group)
next:
	for i := range out {
		v := 0
		for _, l := range ct[i*group : (i+1)*group] {
			b, ok := flags(alphabet.Lower.Index(l))
			if !ok {
				out[i] = alphabet.Blank
				continue next
			}
			v <<= 1
			if b {
				v |= 1
			}
		}
		if v < bacon.Len() {
			out[i] = bacon.Symbol(v)
		} else {
			out[i] = invalid
		}
	}
	return string(out)
}

func (c *Cipher) flag(l int) (bool, bool) {
	return bitops.GetBit(c.isB, uint(l)), bitops.GetBit(c.known, uint(l))
}

func (c *Cipher) Decode() string { return decode(c.ct, c.flag, alphabet.Blank) }

// Encode writes each a and each b with the next letter standing for it in
// turn.
func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower, folds...)
	if err != nil {
		return "", err
	}
	var cover [2][]byte
	for l := 0; l < alphabet.Lower.Len(); l++ {
		if b, ok := c.flag(l); ok {
			i := 0
			if b {
				i = 1
			}
			cover[i] = append(cover[i], alphabet.Lower.Symbol(l))
		}
	}
	if len(cover[0]) == 0 || len(cover[1]) == 0 {
		return "", fmt.Errorf("%w: key %q needs letters for both a and b", cryptors.ErrInvalidKey, c.Key())
	}
	var used [2]int
	out := make([]byte, 0, group*len(pt))
	for _, p := range pt {
		v := bacon.Index(p)
		for bit := group - 1; bit >= 0; bit-- {
			s := (v >> bit) & 1
			out = append(out, cover[s][used[s]%len(cover[s])])
			used[s]++
		}
	}
	return string(out), nil
}

// Key lists the symbol of each letter a..z, '.' when unknown.
func (c *Cipher) Key() string {
	b := make([]byte, alphabet.Lower.Len())
	for l := range b {
		switch isB, ok := c.flag(l); {
		case !ok:
			b[l] = '.'
		case isB:
			b[l] = 'b'
		default:
			b[l] = 'a'
		}
	}
	return string(b)
}

// Known returns the number of letters whose symbol is known.
func (c *Cipher) Known() int { return bitops.Count(c.known) }

// Restore installs 26 symbols from "ab.".
func (c *Cipher) Restore(key string) error {
	key = strings.ToLower(strings.Join(strings.Fields(key), ""))
	n := alphabet.Lower.Len()
	if len(key) != n {
		return fmt.Errorf("%w: want %d symbols, got %q", cryptors.ErrInvalidKey, n, key)
	}
	known, isB := bitops.New(n), bitops.New(n)
	for l := 0; l < n; l++ {
		switch key[l] {
		case 'a':
			bitops.SetBit(known, uint(l))
		case 'b':
			bitops.SetBit(known, uint(l))
			bitops.SetBit(isB, uint(l))
		case '.':
		default:
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, key[l], key)
		}
	}
	c.known, c.isB = known, isB
	return nil
}

// Solve hill climbs over single letter flips, starting from the installed
// key with unknown letters taken as a.  A group outside the Bacon alphabet
// is scored as z.  Every letter of the ciphertext is known afterwards.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	key := make([]int, alphabet.Lower.Len())
	for l := range key {
		if b, _ := c.flag(l); b {
			key[l] = 1
		}
	}
	text := func(k []int, invalid byte) string {
		return decode(c.ct, func(l int) (bool, bool) { return k[l] == 1, true }, invalid)
	}
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return c.scorer.Score(text(k, 'z')) },
		Describe: func(k []int) (string, string) {
			b := make([]byte, len(k))
			for l, v := range k {
				b[l] = "ab"[v]
			}
			return string(b), text(k, alphabet.Blank)
		},
	}
	res, err := search.HillClimb(key, search.Flips(key), p, opts)
	if err != nil {
		return 0, err
	}
	for _, l := range c.ct {
		bitops.SetBit(c.known, uint(alphabet.Lower.Index(l)))
	}
	for l, v := range res.Key {
		bitops.PutBit(c.isB, uint(l), v == 1)
	}
	return res.Score, nil
}

// LocateTip finds the first group whose letters can spell tip: every
// letter must take the same symbol wherever it appears and agree with the
// known symbols.  The symbols implied by the tip are installed.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower, folds...)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty tip", cryptors.ErrTipNotFound)
	}
	groups := len(c.ct) / group
next:
	for off := 0; off+len(t) <= groups; off++ {
		known := append([]byte(nil), c.known...)
		isB := append([]byte(nil), c.isB...)
		for i, p := range t {
			v := bacon.Index(p)
			for j, l := range c.ct[(off+i)*group : (off+i+1)*group] {
				li := uint(alphabet.Lower.Index(l))
				b := (v>>(group-1-j))&1 == 1
				if bitops.GetBit(known, li) {
					if bitops.GetBit(isB, li) != b {
						continue next
					}
					continue
				}
				bitops.SetBit(known, li)
				bitops.PutBit(isB, li, b)
			}
		}
		c.known, c.isB = known, isB
		return off, nil
	}
	return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
}
