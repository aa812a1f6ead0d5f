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

// Package digrafid implements the Digrafid.  Each plaintext pair is turned
// into three numbers through a 3x9 and a 9x3 grid of the 27 symbol alphabet;
// the numbers of a block are written in columns, read across in threes and
// turned back into ciphertext pairs.
package digrafid

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "digrafid"

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Cipher is a Digrafid.  The first grid is 3 rows by 9 columns and the
// second 9 rows by 3 columns; both are nil until a key is installed.
type Cipher struct {
	scorer       score.Scorer
	ct           []byte
	period       int
	first, other *alphabet.Square
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s} }

func (c *Cipher) Type() string { return Type }

// SetCiphertext requires whole pairs of letters and #.
func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Hash27)
	if err != nil {
		return err
	}
	if len(b) == 0 || len(b)%2 != 0 || 2*c.period > len(b) {
		return fmt.Errorf("%w: %d symbols for period %d", cryptors.ErrInvalidLength, len(b), c.period)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the number of pairs in a block.  Until it is set the whole
// text is one block.
func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)/2); err != nil {
		return err
	}
	c.period = p
	return nil
}

func (c *Cipher) Period() int { return c.period }

// numbers returns the three numbers of a pair.
func numbers(g1, g2 *alphabet.Square, a, b byte) (int, int, int) {
	r1, c1, _ := g1.Find(a)
	r2, c2, _ := g2.Find(b)
	return c1, r1*3 + c2, r2
}

// pair is the inverse of numbers.
func pair(g1, g2 *alphabet.Square, x, y, z int) (byte, byte) {
	return g1.At(y/3, x), g2.At(z, y%3)
}

// transform runs text through the grids block by block.
func (c *Cipher) transform(g1, g2 *alphabet.Square, text []byte, mode cryptors.Mode) []byte {
	out := make([]byte, len(text))
	pairs := len(text) / 2
	p := c.period
	if p == 0 {
		p = pairs
	}
	seq := make([]int, 3*p)
	for start := 0; start < pairs; start += p {
		n := p
		if start+n > pairs {
			n = pairs - start
		}
		seq := seq[:3*n]
		for k := 0; k < n; k++ {
			i := 2 * (start + k)
			x, y, z := numbers(g1, g2, text[i], text[i+1])
			if mode == cryptors.Encode {
				seq[k], seq[n+k], seq[2*n+k] = x, y, z
			} else {
				seq[3*k], seq[3*k+1], seq[3*k+2] = x, y, z
			}
		}
		for k := 0; k < n; k++ {
			i := 2 * (start + k)
			if mode == cryptors.Encode {
				out[i], out[i+1] = pair(g1, g2, seq[3*k], seq[3*k+1], seq[3*k+2])
			} else {
				out[i], out[i+1] = pair(g1, g2, seq[k], seq[n+k], seq[2*n+k])
			}
		}
	}
	return out
}

func (c *Cipher) Decode() string {
	if c.first == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return string(c.transform(c.first, c.other, c.ct, cryptors.Decode))
}

// Encode pads an odd length plaintext with x.
func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Hash27)
	if err != nil {
		return "", err
	}
	if c.first == nil {
		return "", fmt.Errorf("%w: no key grids", cryptors.ErrInvalidKey)
	}
	if len(pt)%2 != 0 {
		pt = append(pt, 'x')
	}
	return string(c.transform(c.first, c.other, pt, cryptors.Encode)), nil
}

// Key writes the two grids row by row, separated by a space.
func (c *Cipher) Key() string {
	if c.first == nil {
		return ""
	}
	return c.first.String() + " " + c.other.String()
}

func parseGrid(s string, rows, cols int) (*alphabet.Square, error) {
	if len(s) == alphabet.Hash27.Len() {
		return alphabet.ParseSquare(s, alphabet.Hash27, rows, cols)
	}
	a, err := alphabet.Keyed(s, alphabet.Hash27)
	if err != nil {
		return nil, err
	}
	return alphabet.NewSquare(a, rows, cols), nil
}

// Restore installs one or two grids, each written as 27 symbols or as a
// keyword.  A single grid is used for both.
func (c *Cipher) Restore(key string) error {
	f := strings.Fields(strings.ToLower(key))
	if len(f) == 1 {
		f = append(f, f[0])
	}
	if len(f) != 2 {
		return fmt.Errorf("%w: %q", cryptors.ErrInvalidKey, key)
	}
	g1, err := parseGrid(f[0], 3, 9)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	g2, err := parseGrid(f[1], 9, 3)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	c.first, c.other = g1, g2
	return nil
}

func grids(key []int) (*alphabet.Square, *alphabet.Square) {
	n := alphabet.Hash27.Len()
	b := make([]byte, len(key))
	for i, v := range key {
		b[i] = alphabet.Hash27.Symbol(v)
	}
	return alphabet.NewSquare(alphabet.New(string(b[:n])), 3, 9),
		alphabet.NewSquare(alphabet.New(string(b[n:])), 9, 3)
}

// Solve hill climbs over swaps within each grid, starting from the
// installed grids or two straight alphabets.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	start := alphabet.Hash27.String() + alphabet.Hash27.String()
	if c.first != nil {
		start = c.first.String() + c.other.String()
	}
	key := make([]int, len(start))
	for i := range key {
		key[i] = alphabet.Hash27.Index(start[i])
	}
	decode := func(k []int) string {
		g1, g2 := grids(k)
		return string(c.transform(g1, g2, c.ct, cryptors.Decode))
	}
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return c.scorer.Score(decode(k)) },
		Describe: func(k []int) (string, string) {
			g1, g2 := grids(k)
			return g1.String() + " " + g2.String(), decode(k)
		},
	}
	res, err := search.HillClimb(key, search.BlockSwaps(key, alphabet.Hash27.Len()), p, opts)
	if err != nil {
		return 0, err
	}
	c.first, c.other = grids(res.Key)
	return res.Score, nil
}

// LocateTip finds tip in the plaintext of the installed key.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Hash27)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	return cryptors.Locate(c.Decode(), string(t))
}
