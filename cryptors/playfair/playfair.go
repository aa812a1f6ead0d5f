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

// Package playfair implements the Playfair, a digraphic substitution through
// a 5x5 key square of the alphabet without j.
package playfair

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "playfair"

const size = 5

var _ cryptors.Cipher = (*Cipher)(nil)

// Cipher is a Playfair.  A nil square is an unknown key.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	square *alphabet.Square
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s} }

func (c *Cipher) Type() string { return Type }

// SetCiphertext folds j into i and requires an even number of letters.
func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.NoJ, "ji")
	if err != nil {
		return err
	}
	if len(b) == 0 || len(b)%2 != 0 {
		return fmt.Errorf("%w: %d letters do not form digraphs", cryptors.ErrInvalidLength, len(b))
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// apply transforms digraphs in place.  step is +1 to encipher and -1 to
// decipher.
func apply(sq *alphabet.Square, text []byte, step int) []byte {
	for i := 0; i+1 < len(text); i += 2 {
		r1, c1, _ := sq.Find(text[i])
		r2, c2, _ := sq.Find(text[i+1])
		switch {
		case r1 == r2:
			c1, c2 = (c1+step+size)%size, (c2+step+size)%size
		case c1 == c2:
			r1, r2 = (r1+step+size)%size, (r2+step+size)%size
		default:
			c1, c2 = c2, c1
		}
		text[i], text[i+1] = sq.At(r1, c1), sq.At(r2, c2)
	}
	return text
}

func (c *Cipher) Decode() string {
	if c.square == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return string(apply(c.square, append([]byte(nil), c.ct...), -1))
}

// Digraphs splits plaintext into digraphs, separating doubled letters with
// x (q for a doubled x) and padding an odd final letter the same way.
func Digraphs(pt []byte) []byte {
	out := make([]byte, 0, len(pt)+len(pt)/2+1)
	for i := 0; i < len(pt); {
		a := pt[i]
		filler := byte('x')
		if a == 'x' {
			filler = 'q'
		}
		if i+1 == len(pt) || pt[i+1] == a {
			out = append(out, a, filler)
			i++
			continue
		}
		out = append(out, a, pt[i+1])
		i += 2
	}
	return out
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.NoJ, "ji")
	if err != nil {
		return "", err
	}
	if c.square == nil {
		return "", fmt.Errorf("%w: no key square", cryptors.ErrInvalidKey)
	}
	return string(apply(c.square, Digraphs(pt), 1)), nil
}

func (c *Cipher) Key() string {
	if c.square == nil {
		return ""
	}
	return c.square.String()
}

// ParseSquare reads a 25 letter square, or builds one from a keyword.
// j is written as i.
func ParseSquare(key string) (*alphabet.Square, error) {
	key = strings.ReplaceAll(strings.ToLower(strings.Join(strings.Fields(key), "")), "j", "i")
	if len(key) == alphabet.NoJ.Len() {
		return alphabet.ParseSquare(key, alphabet.NoJ, size, size)
	}
	a, err := alphabet.Keyed(key, alphabet.NoJ)
	if err != nil {
		return nil, err
	}
	return alphabet.NewSquare(a, size, size), nil
}

// Restore installs a 25 letter square or a keyword.
func (c *Cipher) Restore(key string) error {
	sq, err := ParseSquare(key)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	c.square = sq
	return nil
}

func squareOf(key []int) *alphabet.Square {
	b := make([]byte, len(key))
	for i, v := range key {
		b[i] = alphabet.NoJ.Symbol(v)
	}
	return alphabet.NewSquare(alphabet.New(string(b)), size, size)
}

// Solve hill climbs over swaps of two cells, starting from the installed
// square or the straight alphabet.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	start := alphabet.NoJ.String()
	if c.square != nil {
		start = c.square.String()
	}
	key := make([]int, len(start))
	for i := range key {
		key[i] = alphabet.NoJ.Index(start[i])
	}
	buf := make([]byte, len(c.ct))
	decode := func(k []int) string {
		copy(buf, c.ct)
		return string(apply(squareOf(k), buf, -1))
	}
	p := search.Problem{
		Name:     Type,
		Eval:     func(k []int) float64 { return c.scorer.Score(decode(k)) },
		Describe: func(k []int) (string, string) { return squareOf(k).String(), decode(k) },
	}
	res, err := search.HillClimb(key, search.Swaps(key), p, opts)
	if err != nil {
		return 0, err
	}
	c.square = squareOf(res.Key)
	return res.Score, nil
}

// fits reports whether tip can stand at plaintext offset off.  Every whole
// digraph of the tip must avoid doubled and self enciphered letters, and
// the digraph mapping, taken with its reversal, must be one to one.
func (c *Cipher) fits(tip []byte, off int) bool {
	seen := make(map[[2]byte][2]byte)
	back := make(map[[2]byte][2]byte)
	i := off % 2
	for ; i+1 < len(tip); i += 2 {
		p := [2]byte{tip[i], tip[i+1]}
		q := [2]byte{c.ct[off+i], c.ct[off+i+1]}
		if p[0] == p[1] || q[0] == q[1] || p[0] == q[0] || p[1] == q[1] {
			return false
		}
		rp, rq := [2]byte{p[1], p[0]}, [2]byte{q[1], q[0]}
		for _, pair := range [][2][2]byte{{p, q}, {rp, rq}} {
			if prev, ok := seen[pair[0]]; ok && prev != pair[1] {
				return false
			}
			if prev, ok := back[pair[1]]; ok && prev != pair[0] {
				return false
			}
			seen[pair[0]], back[pair[1]] = pair[1], pair[0]
		}
	}
	return true
}

// LocateTip returns the first offset where tip is consistent with the
// digraph structure of the ciphertext.  The key is not changed.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.NoJ, "ji")
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if len(t) < 2 {
		return 0, fmt.Errorf("%w: tip %q is shorter than a digraph", cryptors.ErrTipNotFound, tip)
	}
	for off := 0; off+len(t) <= len(c.ct); off++ {
		if c.fits(t, off) {
			return off, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
}
