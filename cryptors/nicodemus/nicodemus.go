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

// Package nicodemus implements the Nicodemus.  The plaintext is written in
// rows under a keyword, each column is enciphered by Vigenère with its key
// letter, and the columns are read out in keyword order five rows at a time.
package nicodemus

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/cryptors/rotor"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "nicodemus"

// blockRows is the depth of each block read off the columns.
const blockRows = 5

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Cipher is a Nicodemus.  The key is a column order and a Vigenère shift
// per column; shifts may be unknown.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	period int
	order  alphabet.Permutation
	shifts []int
	trial  []int
	rotor  *rotor.Rotor
	perm   permutator.Permutator
}

func New(s score.Scorer) *Cipher {
	return &Cipher{scorer: s, rotor: rotor.New(rotor.Additive, alphabet.Lower, alphabet.Lower, nil)}
}

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 || c.period > len(b) {
		return fmt.Errorf("%w: %d letters for period %d", cryptors.ErrInvalidLength, len(b), c.period)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the keyword length and forgets the key.
func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)); err != nil {
		return err
	}
	c.period, c.order = p, nil
	c.shifts = unknown(p)
	return nil
}

func (c *Cipher) Period() int { return c.period }

func unknown(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = rotor.Unknown
	}
	return s
}

// positions maps ciphertext to plaintext positions.
func positions(length int, order alphabet.Permutation) []int {
	p := len(order)
	rows := (length + p - 1) / p
	read := order.Order()
	m := make([]int, 0, length)
	for top := 0; top < rows; top += blockRows {
		for _, col := range read {
			for r := top; r < top+blockRows && r < rows; r++ {
				if i := r*p + col; i < length {
					m = append(m, i)
				}
			}
		}
	}
	return m
}

// untranspose undoes the transposition of the ciphertext, leaving the
// Vigenère layer in plaintext order.
func (c *Cipher) untranspose(order alphabet.Permutation) []byte {
	c.perm.Update(positions(len(c.ct), order))
	return c.perm.Transform(c.ct, cryptors.Decode)
}

func (c *Cipher) shift(text []byte, shifts []int, mode cryptors.Mode) []byte {
	c.rotor.SetShifts(shifts)
	return c.rotor.Apply(make([]byte, len(text)), text, 0, mode)
}

func (c *Cipher) Decode() string {
	if c.order == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return string(c.shift(c.untranspose(c.order), c.shifts, cryptors.Decode))
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.order == nil {
		return "", fmt.Errorf("%w: no column order", cryptors.ErrInvalidKey)
	}
	for _, s := range c.shifts {
		if s == rotor.Unknown {
			return "", fmt.Errorf("%w: key %q is incomplete", cryptors.ErrInvalidKey, c.Key())
		}
	}
	c.perm.Update(positions(len(pt), c.order))
	return string(c.perm.Transform(c.shift(pt, c.shifts, cryptors.Encode), cryptors.Encode)), nil
}

func letters(shifts []int) string {
	b := make([]byte, len(shifts))
	for i, s := range shifts {
		if s == rotor.Unknown {
			b[i] = '.'
		} else {
			b[i] = alphabet.Lower.Symbol(s)
		}
	}
	return string(b)
}

func render(order alphabet.Permutation, shifts []int) string {
	return order.String() + " " + letters(shifts)
}

// Key renders the column order and the shift letters, '.' where a shift is
// unknown.
func (c *Cipher) Key() string {
	if c.order == nil {
		return ""
	}
	return render(c.order, c.shifts)
}

// Restore accepts a keyword, which gives both the column order and the
// shifts, or "order shifts" as Key writes it.
func (c *Cipher) Restore(key string) error {
	f := strings.Fields(strings.ToLower(key))
	var (
		order alphabet.Permutation
		word  string
		err   error
	)
	switch len(f) {
	case 1:
		word = f[0]
		order, err = alphabet.RankKeyword(word)
	case 2:
		word = f[1]
		order, err = alphabet.ParsePermutation(f[0])
	default:
		return fmt.Errorf("%w: %q", cryptors.ErrInvalidKey, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	if len(word) != len(order) {
		return fmt.Errorf("%w: %d shifts for %d columns", cryptors.ErrInvalidKey, len(word), len(order))
	}
	shifts := make([]int, len(word))
	for i := 0; i < len(word); i++ {
		if word[i] == '.' {
			shifts[i] = rotor.Unknown
		} else if shifts[i] = alphabet.Lower.Index(word[i]); shifts[i] < 0 {
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, word[i], word)
		}
	}
	if err := cryptors.CheckPeriod(len(order), len(c.ct)); err != nil {
		return err
	}
	c.period, c.order, c.shifts = len(order), order, shifts
	return nil
}

// fit finds the best shifts for a column order and leaves them in c.trial.
func (c *Cipher) fit(order []int) string {
	x := c.untranspose(order)
	c.trial = unknown(c.period)
	cols := unknown(c.period)
	search.FitColumns(cols, alphabet.Lower.Len(),
		func(col, v int) { c.trial[col] = v },
		func() float64 { return c.scorer.Score(string(c.shift(x, c.trial, cryptors.Decode))) })
	return string(c.shift(x, c.trial, cryptors.Decode))
}

// search tries every column order, fitting the shifts of each, and ranks
// the fitted plaintexts with s.
func (c *Cipher) search(s score.Scorer, opts search.Options) (search.Result, error) {
	var text string
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 {
			text = c.fit(k)
			return s.Score(text)
		},
		Describe: func(k []int) (string, string) { return render(k, c.trial), text },
	}
	return search.Exhaustive(search.Permutations(c.period), p, opts)
}

func (c *Cipher) check() error {
	if len(c.ct) == 0 {
		return cryptors.ErrNoCiphertext
	}
	if c.period == 0 {
		return cryptors.ErrNoPeriod
	}
	return nil
}

func (c *Cipher) install(order []int) {
	c.fit(order)
	c.order = append(alphabet.Permutation(nil), order...)
	c.shifts = append([]int(nil), c.trial...)
}

// Solve tries every column order and fits the shifts of each.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	res, err := c.search(c.scorer, opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.install(res.Key)
	return res.Score, nil
}

// LocateTip installs the best key whose fitted plaintext contains tip.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if err := c.check(); err != nil {
		return 0, err
	}
	res, err := c.search(score.RequireTip(c.scorer, string(t)), search.Options{})
	if err != nil {
		return 0, err
	}
	if res.Key == nil {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
	}
	c.install(res.Key)
	return cryptors.Locate(c.Decode(), string(t))
}
