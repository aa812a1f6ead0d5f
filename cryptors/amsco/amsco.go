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

// Package amsco implements the Amsco, a columnar transposition whose
// plaintext is written in cells that alternate between one and two letters.
package amsco

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "amsco"

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Cipher is an Amsco.  The key is a column order and the size of the first
// cell.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	period int
	order  alphabet.Permutation
	first  int
	perm   permutator.Permutator
}

// New returns an Amsco with no ciphertext or key.
func New(s score.Scorer) *Cipher { return &Cipher{scorer: s, first: 1} }

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return fmt.Errorf("%w: empty ciphertext", cryptors.ErrInvalidLength)
	}
	if c.period > len(b) {
		return fmt.Errorf("%w: period %d for length %d", cryptors.ErrInvalidLength, c.period, len(b))
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the number of columns and forgets the column order.
func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)); err != nil {
		return err
	}
	c.period, c.order = p, nil
	return nil
}

func (c *Cipher) Period() int { return c.period }

// cellSize returns the number of letters in the cell at row r, column col.
// Sizes alternate along rows and down columns.
func cellSize(first, r, col int) int {
	if (r+col)%2 == 0 {
		return first
	}
	return 3 - first
}

// cells lays out length letters in period columns and returns, for each
// column, the plaintext positions it holds from top to bottom.
func cells(length, period, first int) [][]int {
	cols := make([][]int, period)
	pos := 0
	for r := 0; pos < length; r++ {
		for col := 0; col < period && pos < length; col++ {
			for n := cellSize(first, r, col); n > 0 && pos < length; n-- {
				cols[col] = append(cols[col], pos)
				pos++
			}
		}
	}
	return cols
}

// ColumnLengths returns the number of letters in each column.
func ColumnLengths(length, period, first int) []int {
	cols := cells(length, period, first)
	lens := make([]int, period)
	for i, col := range cols {
		lens[i] = len(col)
	}
	return lens
}

// positions builds the map from ciphertext to plaintext positions.  order
// gives each column's rank; columns are read out by increasing rank.
func positions(length int, order []int, first int) []int {
	cols := cells(length, len(order), first)
	read := alphabet.Permutation(order).Order()
	m := make([]int, 0, length)
	for _, col := range read {
		m = append(m, cols[col]...)
	}
	return m
}

func (c *Cipher) transform(text []byte, order []int, first int, mode cryptors.Mode) string {
	c.perm.Update(positions(len(text), order, first))
	return string(c.perm.Transform(text, mode))
}

func (c *Cipher) Decode() string {
	if c.order == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return c.transform(c.ct, c.order, c.first, cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.order == nil {
		return "", fmt.Errorf("%w: no column order", cryptors.ErrInvalidKey)
	}
	return c.transform(pt, c.order, c.first, cryptors.Encode), nil
}

func render(order []int, first int) string {
	return fmt.Sprintf("%s %d", alphabet.Permutation(order), first)
}

func (c *Cipher) Key() string {
	if c.order == nil {
		return ""
	}
	return render(c.order, c.first)
}

// Restore installs a key of the form "order [first]", where order lists the
// rank of each column as a letter (a first) and first is 1 or 2.  The
// period becomes the length of order.
func (c *Cipher) Restore(key string) error {
	f := strings.Fields(strings.ToLower(key))
	if len(f) < 1 || len(f) > 2 {
		return fmt.Errorf("%w: %q", cryptors.ErrInvalidKey, key)
	}
	order, err := alphabet.ParsePermutation(f[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	first := 1
	if len(f) == 2 {
		if first, err = strconv.Atoi(f[1]); err != nil || first < 1 || first > 2 {
			return fmt.Errorf("%w: first cell size %q", cryptors.ErrInvalidKey, f[1])
		}
	}
	if err := cryptors.CheckPeriod(len(order), len(c.ct)); err != nil {
		return err
	}
	c.period, c.order, c.first = len(order), order, first
	return nil
}

// problem scores a key made of a column order followed by the first cell
// size less one.
func (c *Cipher) problem(s score.Scorer) search.Problem {
	return search.Problem{
		Name: Type,
		Eval: func(k []int) float64 {
			return s.Score(c.transform(c.ct, k[:c.period], k[c.period]+1, cryptors.Decode))
		},
		Describe: func(k []int) (string, string) {
			return render(k[:c.period], k[c.period]+1), c.transform(c.ct, k[:c.period], k[c.period]+1, cryptors.Decode)
		},
	}
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

func (c *Cipher) install(k []int) {
	c.order = append(alphabet.Permutation(nil), k[:c.period]...)
	c.first = k[c.period] + 1
}

// Solve tries every column order with both first cell sizes.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	src := search.Extend(search.Permutations(c.period), 2)
	res, err := search.Exhaustive(src, c.problem(c.scorer), opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.install(res.Key)
	return res.Score, nil
}

// LocateTip installs the best scoring key whose plaintext contains tip.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if err := c.check(); err != nil {
		return 0, err
	}
	src := search.Extend(search.Permutations(c.period), 2)
	res, err := search.Exhaustive(src, c.problem(score.RequireTip(c.scorer, string(t))), search.Options{})
	if err != nil {
		return 0, err
	}
	if res.Key == nil {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
	}
	c.install(res.Key)
	return cryptors.Locate(c.Decode(), string(t))
}
