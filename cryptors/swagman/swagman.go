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

// Package swagman implements the Swagman transposition.  The plaintext is
// written in n rows; the key is an n x n Latin square that moves each letter
// of a column to a new row, and the result is read down the columns.
package swagman

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "swagman"

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Cipher is a Swagman.  The key is held flattened, row major, with values
// 0..n-1.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	n      int
	square []int
	perm   permutator.Permutator
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s} }

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 || (c.n > 0 && len(b)%c.n != 0) {
		return fmt.Errorf("%w: %d letters for %d rows", cryptors.ErrInvalidLength, len(b), c.n)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the number of rows, which must divide the ciphertext
// length, and forgets the key.
func (c *Cipher) SetPeriod(n int) error {
	if err := cryptors.CheckPeriod(n, len(c.ct)); err != nil {
		return err
	}
	if n > 9 || len(c.ct)%n != 0 {
		return fmt.Errorf("%w: %d rows for %d letters", cryptors.ErrInvalidPeriod, n, len(c.ct))
	}
	c.n, c.square = n, nil
	return nil
}

func (c *Cipher) Period() int { return c.n }

// positions maps ciphertext to plaintext positions.  Letter j of plaintext
// row r lands in row square[r][j mod n] of ciphertext column j.
func positions(length, n int, square []int) []int {
	cols := length / n
	m := make([]int, length)
	for r := 0; r < n; r++ {
		for j := 0; j < cols; j++ {
			m[j*n+square[r*n+j%n]] = r*cols + j
		}
	}
	return m
}

func (c *Cipher) transform(text []byte, square []int, mode cryptors.Mode) string {
	c.perm.Update(positions(len(text), c.n, square))
	return string(c.perm.Transform(text, mode))
}

func (c *Cipher) Decode() string {
	if c.square == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return c.transform(c.ct, c.square, cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.square == nil {
		return "", fmt.Errorf("%w: no key square", cryptors.ErrInvalidKey)
	}
	if len(pt) == 0 || len(pt)%c.n != 0 {
		return "", fmt.Errorf("%w: %d letters for %d rows", cryptors.ErrInvalidLength, len(pt), c.n)
	}
	return c.transform(pt, c.square, cryptors.Encode), nil
}

func render(n int, square []int) string {
	rows := make([]string, n)
	for r := range rows {
		b := make([]byte, n)
		for j := range b {
			b[j] = alphabet.Digits.Symbol(square[r*n+j] + 1)
		}
		rows[r] = string(b)
	}
	return strings.Join(rows, " ")
}

// Key writes the square as rows of digits 1..n separated by spaces.
func (c *Cipher) Key() string {
	if c.square == nil {
		return ""
	}
	return render(c.n, c.square)
}

// Restore installs a Latin square given as rows of digits 1..n.  The
// period becomes the number of rows.
func (c *Cipher) Restore(key string) error {
	rows := strings.Fields(key)
	n := len(rows)
	if n == 0 || n > 9 {
		return fmt.Errorf("%w: %d rows in %q", cryptors.ErrInvalidKey, n, key)
	}
	square := make([]int, n*n)
	for r, row := range rows {
		if len(row) != n {
			return fmt.Errorf("%w: row %q of a %d row square", cryptors.ErrInvalidKey, row, n)
		}
		for j := 0; j < n; j++ {
			v := alphabet.Digits.Index(row[j]) - 1
			if v < 0 || v >= n {
				return fmt.Errorf("%w: %q in row %q", cryptors.ErrInvalidKey, row[j], row)
			}
			square[r*n+j] = v
		}
	}
	for i := 0; i < n; i++ {
		row := make([]int, n)
		col := make([]int, n)
		for j := 0; j < n; j++ {
			row[j], col[j] = square[i*n+j], square[j*n+i]
		}
		if alphabet.CheckPermutation(row) != nil || alphabet.CheckPermutation(col) != nil {
			return fmt.Errorf("%w: %q is not a Latin square", cryptors.ErrInvalidKey, key)
		}
	}
	if len(c.ct) > 0 && len(c.ct)%n != 0 {
		return fmt.Errorf("%w: %d rows for %d letters", cryptors.ErrInvalidPeriod, n, len(c.ct))
	}
	c.n, c.square = n, square
	return nil
}

func (c *Cipher) check() error {
	if len(c.ct) == 0 {
		return cryptors.ErrNoCiphertext
	}
	if c.n == 0 {
		return cryptors.ErrNoPeriod
	}
	return nil
}

func (c *Cipher) search(s score.Scorer, opts search.Options) (search.Result, error) {
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return s.Score(c.transform(c.ct, k, cryptors.Decode)) },
		Describe: func(k []int) (string, string) {
			return render(c.n, k), c.transform(c.ct, k, cryptors.Decode)
		},
	}
	return search.Exhaustive(search.LatinSquares(c.n), p, opts)
}

// Solve tries every Latin square of the period's size.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	res, err := c.search(c.scorer, opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.square = res.Key
	return res.Score, nil
}

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
	c.square = res.Key
	return cryptors.Locate(c.Decode(), string(t))
}
