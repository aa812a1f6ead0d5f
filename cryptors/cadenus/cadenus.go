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

// Package cadenus implements the Cadenus.  The plaintext fills 25 rows under
// a keyword, the columns are put in keyword order, each column is rotated up
// by the place of its key letter in the Cadenus alphabet and the rows are
// read across.
package cadenus

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "cadenus"

// Rows is the depth of every column.
const Rows = 25

// Alphabet numbers the rotations; v and w share a place.
var Alphabet = alphabet.New("azyxvutsrqponmlkjihgfedcb")

const unknown = -1

var _ cryptors.Cipher = (*Cipher)(nil)

// Cipher is a Cadenus.  The number of columns is fixed by the ciphertext
// length.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	order  alphabet.Permutation
	rots   []int
	trial  []int
	perm   permutator.Permutator
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s} }

func (c *Cipher) Type() string { return Type }

// SetCiphertext requires a whole number of 25 letter rows' worth of
// columns.  A key of the wrong width is forgotten.
func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 || len(b)%Rows != 0 {
		return fmt.Errorf("%w: %d is not a multiple of %d", cryptors.ErrInvalidLength, len(b), Rows)
	}
	c.ct = b
	if len(c.order)*Rows != len(b) {
		c.order, c.rots = nil, nil
	}
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// Period returns the number of columns.
func (c *Cipher) Period() int { return len(c.ct) / Rows }

// positions maps ciphertext to plaintext positions.  Ciphertext column j
// holds plaintext column order.Order()[j] rotated up by its key letter.
func positions(order alphabet.Permutation, rots []int) []int {
	n := len(order)
	at := order.Order()
	m := make([]int, n*Rows)
	for r := 0; r < Rows; r++ {
		for j, col := range at {
			if rots[col] == unknown {
				m[r*n+j] = permutator.Unmapped
				continue
			}
			m[r*n+j] = ((r+rots[col])%Rows)*n + col
		}
	}
	return m
}

func (c *Cipher) transform(text []byte, order alphabet.Permutation, rots []int, mode cryptors.Mode) string {
	c.perm.Update(positions(order, rots))
	return string(c.perm.Transform(text, mode))
}

func (c *Cipher) Decode() string {
	if c.order == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return c.transform(c.ct, c.order, c.rots, cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.order == nil {
		return "", fmt.Errorf("%w: no keyword", cryptors.ErrInvalidKey)
	}
	for _, r := range c.rots {
		if r == unknown {
			return "", fmt.Errorf("%w: key %q is incomplete", cryptors.ErrInvalidKey, c.Key())
		}
	}
	if len(pt) != len(c.order)*Rows {
		return "", fmt.Errorf("%w: %d letters for %d columns", cryptors.ErrInvalidLength, len(pt), len(c.order))
	}
	return c.transform(pt, c.order, c.rots, cryptors.Encode), nil
}

func render(order alphabet.Permutation, rots []int) string {
	b := make([]byte, len(rots))
	for i, r := range rots {
		if r == unknown {
			b[i] = '.'
		} else {
			b[i] = Alphabet.Symbol(r)
		}
	}
	return order.String() + " " + string(b)
}

func (c *Cipher) Key() string {
	if c.order == nil {
		return ""
	}
	return render(c.order, c.rots)
}

// Restore accepts a keyword or "order rotations" as Key writes it.  The
// keyword must have one letter per column.
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
	if len(word) != len(order) || (len(c.ct) > 0 && len(order) != c.Period()) {
		return fmt.Errorf("%w: %q for %d columns", cryptors.ErrInvalidKey, key, c.Period())
	}
	rots := make([]int, len(word))
	for i := 0; i < len(word); i++ {
		switch ch := word[i]; {
		case ch == '.':
			rots[i] = unknown
		case ch == 'w':
			rots[i] = Alphabet.Index('v')
		case Alphabet.Contains(ch):
			rots[i] = Alphabet.Index(ch)
		default:
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, ch, word)
		}
	}
	c.order, c.rots = order, rots
	return nil
}

// fit finds the best rotations for a column order, leaving them in c.trial.
func (c *Cipher) fit(order []int) string {
	n := len(order)
	c.trial = make([]int, n)
	cols := make([]int, n)
	for i := range cols {
		c.trial[i], cols[i] = unknown, unknown
	}
	search.FitColumns(cols, Rows,
		func(col, v int) { c.trial[col] = v },
		func() float64 { return c.scorer.Score(c.transform(c.ct, order, c.trial, cryptors.Decode)) })
	return c.transform(c.ct, order, c.trial, cryptors.Decode)
}

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
	return search.Exhaustive(search.Permutations(c.Period()), p, opts)
}

func (c *Cipher) install(order []int) {
	c.fit(order)
	c.order = append(alphabet.Permutation(nil), order...)
	c.rots = append([]int(nil), c.trial...)
}

// Solve tries every column order and fits the rotation of each column.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	res, err := c.search(c.scorer, opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.install(res.Key)
	return res.Score, nil
}

func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
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
