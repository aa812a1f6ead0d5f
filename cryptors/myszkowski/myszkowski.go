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

// Package myszkowski implements the Myszkowski transposition.  Columns
// whose key letters tie are read out together, row by row and left to right.
package myszkowski

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "myszkowski"

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Cipher is a Myszkowski.  The key gives each column a rank; ranks are dense
// and may repeat.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	period int
	ranks  []int
	perm   permutator.Permutator
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s} }

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

func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)); err != nil {
		return err
	}
	c.period, c.ranks = p, nil
	return nil
}

func (c *Cipher) Period() int { return c.period }

// positions maps ciphertext to plaintext positions for text written in rows
// of len(ranks) letters.
func positions(length int, ranks []int) []int {
	p := len(ranks)
	top := -1
	for _, r := range ranks {
		if r > top {
			top = r
		}
	}
	m := make([]int, 0, length)
	for rank := 0; rank <= top; rank++ {
		for row := 0; row*p < length; row++ {
			for col, r := range ranks {
				if i := row*p + col; r == rank && i < length {
					m = append(m, i)
				}
			}
		}
	}
	return m
}

func (c *Cipher) transform(text []byte, ranks []int, mode cryptors.Mode) string {
	c.perm.Update(positions(len(text), ranks))
	return string(c.perm.Transform(text, mode))
}

func (c *Cipher) Decode() string {
	if c.ranks == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return c.transform(c.ct, c.ranks, cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.ranks == nil {
		return "", fmt.Errorf("%w: no column ranks", cryptors.ErrInvalidKey)
	}
	return c.transform(pt, c.ranks, cryptors.Encode), nil
}

func render(ranks []int) string {
	b := make([]byte, len(ranks))
	for i, r := range ranks {
		b[i] = alphabet.Lower.Symbol(r)
	}
	return string(b)
}

// Key writes the ranks as letters, a for the first.
func (c *Cipher) Key() string { return render(c.ranks) }

// Restore accepts any keyword; its letters rank the columns.  The period
// becomes the keyword length.
func (c *Cipher) Restore(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	ranks, err := alphabet.Ranks(key)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	if err := cryptors.CheckPeriod(len(ranks), len(c.ct)); err != nil {
		return err
	}
	c.period, c.ranks = len(ranks), ranks
	return nil
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

func (c *Cipher) search(s score.Scorer, opts search.Options) (search.Result, error) {
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return s.Score(c.transform(c.ct, k, cryptors.Decode)) },
		Describe: func(k []int) (string, string) {
			return render(k), c.transform(c.ct, k, cryptors.Decode)
		},
	}
	return search.Exhaustive(search.WeakOrders(c.period), p, opts)
}

// Solve tries every ranking of the columns, ties included.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	res, err := c.search(c.scorer, opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.ranks = res.Key
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
	c.ranks = res.Key
	return cryptors.Locate(c.Decode(), string(t))
}
