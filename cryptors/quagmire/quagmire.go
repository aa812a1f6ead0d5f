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

// Package quagmire implements Quagmire I to IV, periodic ciphers that slide
// a keyed ciphertext alphabet against a plaintext alphabet.  Enciphering p
// in a column with indicator k gives C[P.index(p) + s] where the shift s puts
// k under plaintext a.
package quagmire

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/vigenere"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

var (
	_ cryptors.Cipher      = (*Cipher)(nil)
	_ cryptors.Periodic    = (*Cipher)(nil)
	_ cryptors.Substituter = (*Cipher)(nil)
	_ cryptors.Strictable  = (*Cipher)(nil)
)

// Cipher is a Quagmire of one of the four kinds.  Tips, substitutions and
// decoding are those of a Vigenère over the installed alphabets.
type Cipher struct {
	*vigenere.Cipher
	variant int
	scorer  score.Scorer
}

// New returns Quagmire variant 1 to 4 with straight alphabets.  It panics on
// any other variant.
func New(variant int, s score.Scorer) *Cipher {
	if variant < 1 || variant > 4 {
		panic(fmt.Sprintf("quagmire: no variant %d", variant))
	}
	return &Cipher{
		Cipher:  vigenere.NewMixed(fmt.Sprintf("quagmire%d", variant), s),
		variant: variant,
		scorer:  s,
	}
}

// fields is the number of alphabets written in the key.
func (c *Cipher) fields() int {
	if c.variant == 4 {
		return 2
	}
	return 1
}

// alphabets expands the key alphabets to the plaintext and ciphertext
// alphabets of the variant.
func (c *Cipher) alphabets(keyed []*alphabet.Alphabet) (pt, ct *alphabet.Alphabet) {
	switch c.variant {
	case 1:
		return keyed[0], alphabet.Lower
	case 2:
		return alphabet.Lower, keyed[0]
	case 3:
		return keyed[0], keyed[0]
	}
	return keyed[0], keyed[1]
}

// keyed returns the alphabets written in the key.
func (c *Cipher) keyed() []*alphabet.Alphabet {
	pt, ct := c.Alphabets()
	switch c.variant {
	case 1, 3:
		return []*alphabet.Alphabet{pt}
	case 2:
		return []*alphabet.Alphabet{ct}
	}
	return []*alphabet.Alphabet{pt, ct}
}

// Key renders the keyed alphabet(s) followed by the indicator.
func (c *Cipher) Key() string {
	var parts []string
	for _, a := range c.keyed() {
		parts = append(parts, a.String())
	}
	return strings.Join(append(parts, c.Cipher.Key()), " ")
}

// Restore takes the alphabet field(s) and an indicator word.  An alphabet
// field is either a full 26 letter arrangement or a keyword.  The indicator
// sets the period; '.' marks an unknown column.
func (c *Cipher) Restore(key string) error {
	f := strings.Fields(strings.ToLower(key))
	if len(f) != c.fields()+1 {
		return fmt.Errorf("%w: %s wants %d alphabet(s) and an indicator", cryptors.ErrInvalidKey, c.Type(), c.fields())
	}
	keyed := make([]*alphabet.Alphabet, c.fields())
	for i := range keyed {
		a, err := alphabet.Parse(f[i], alphabet.Lower)
		if err != nil {
			if a, err = alphabet.Keyed(f[i], alphabet.Lower); err != nil {
				return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
			}
		}
		keyed[i] = a
	}
	oldPT, oldCT := c.Alphabets()
	c.SetAlphabets(c.alphabets(keyed))
	if err := c.Cipher.Restore(f[len(f)-1]); err != nil {
		c.SetAlphabets(oldPT, oldCT)
		return err
	}
	return nil
}

func arrangement(key []int) *alphabet.Alphabet {
	b := make([]byte, len(key))
	for i, v := range key {
		b[i] = alphabet.Lower.Symbol(v)
	}
	return alphabet.New(string(b))
}

// install sets the alphabets encoded by key, 26 positions per keyed
// alphabet.
func (c *Cipher) install(key []int) {
	keyed := make([]*alphabet.Alphabet, c.fields())
	for i := range keyed {
		keyed[i] = arrangement(key[i*26 : (i+1)*26])
	}
	c.SetAlphabets(c.alphabets(keyed))
}

// fit finds the best shifts for the installed alphabets, starting from
// nothing, and returns them with their score.
func (c *Cipher) fit() ([]int, float64) {
	shifts := make([]int, c.Period())
	for i := range shifts {
		shifts[i] = -1
	}
	trial := append([]int(nil), shifts...)
	s := search.FitColumns(shifts, 26, func(col, v int) { trial[col] = v }, func() float64 {
		return c.scorer.Score(c.DecodeWith(trial))
	})
	return shifts, s
}

// Solve hill climbs over exchanges of two letters of the keyed alphabet(s).
// Each trial arrangement gets its best indicator by column fitting.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.Ciphertext()) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if c.Period() == 0 {
		return 0, cryptors.ErrNoPeriod
	}
	oldPT, oldCT := c.Alphabets()
	oldShifts := c.Shifts()
	var key []int
	for _, a := range c.keyed() {
		for i := 0; i < a.Len(); i++ {
			key = append(key, alphabet.Lower.Index(a.Symbol(i)))
		}
	}
	var shifts []int
	p := search.Problem{
		Name: c.Type(),
		Eval: func(k []int) float64 {
			c.install(k)
			var s float64
			shifts, s = c.fit()
			return s
		},
		Describe: func(k []int) (string, string) {
			c.SetShifts(shifts)
			return c.Key(), c.Decode()
		},
	}
	res, err := search.HillClimb(key, search.BlockSwaps(key, 26), p, opts)
	if err != nil {
		c.SetAlphabets(oldPT, oldCT)
		c.SetShifts(oldShifts)
		return 0, err
	}
	c.install(res.Key)
	shifts, _ = c.fit()
	c.SetShifts(shifts)
	return res.Score, nil
}
