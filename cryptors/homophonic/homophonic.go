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

// Package homophonic implements the Homophonic, in which every plaintext
// letter has four numeric equivalents.  Four key letters head four rows of
// the numbers 1..100, each row running 25 numbers through the alphabet
// without j starting at its key letter.  100 is written 00.
package homophonic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
)

const Type = "homophonic"

const rows = 4

var (
	_ cryptors.Cipher      = (*Cipher)(nil)
	_ cryptors.Substituter = (*Cipher)(nil)
	_ cryptors.Strictable  = (*Cipher)(nil)
)

// Cipher is a Homophonic.  The ciphertext is held as numbers 0..99, the
// number less one, and the key as the alphabet index of each row's letter.
type Cipher struct {
	scorer score.Scorer
	ct     []int
	key    *tracker.Columns
}

func New(s score.Scorer) *Cipher {
	return &Cipher{scorer: s, key: tracker.NewColumns(rows)}
}

func (c *Cipher) Type() string { return Type }

func parseNumbers(raw string) ([]int, error) {
	b, err := cryptors.Clean(raw, alphabet.Digits)
	if err != nil {
		return nil, err
	}
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("%w: %d digits do not make whole numbers", cryptors.ErrInvalidLength, len(b))
	}
	out := make([]int, len(b)/2)
	for i := range out {
		n, _ := strconv.Atoi(string(b[2*i : 2*i+2]))
		if n == 0 {
			n = 100
		}
		out[i] = n - 1
	}
	return out, nil
}

// SetCiphertext takes two digit numbers, with or without spaces between
// them.
func (c *Cipher) SetCiphertext(raw string) error {
	ct, err := parseNumbers(raw)
	if err != nil {
		return err
	}
	if len(ct) == 0 {
		return fmt.Errorf("%w: empty ciphertext", cryptors.ErrInvalidLength)
	}
	c.ct = ct
	return nil
}

func format(nums []int) string {
	f := make([]string, len(nums))
	for i, n := range nums {
		f[i] = fmt.Sprintf("%02d", (n+1)%100)
	}
	return strings.Join(f, " ")
}

// Ciphertext returns the numbers separated by spaces.
func (c *Cipher) Ciphertext() string { return format(c.ct) }

func decode(ct, key []int) string {
	n := alphabet.NoJ.Len()
	b := make([]byte, len(ct))
	for i, v := range ct {
		k := key[v/n]
		if k == tracker.Unknown {
			b[i] = alphabet.Blank
			continue
		}
		b[i] = alphabet.NoJ.Symbol((k + v%n) % n)
	}
	return string(b)
}

func (c *Cipher) Decode() string { return decode(c.ct, c.key.Values()) }

// Encode takes the rows in turn, so each letter of the plaintext uses the
// next row's number for it.
func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.NoJ, "ji")
	if err != nil {
		return "", err
	}
	key := c.key.Values()
	for _, k := range key {
		if k == tracker.Unknown {
			return "", fmt.Errorf("%w: key %q is incomplete", cryptors.ErrInvalidKey, c.Key())
		}
	}
	n := alphabet.NoJ.Len()
	out := make([]int, len(pt))
	for i, p := range pt {
		r := i % rows
		out[i] = r*n + ((alphabet.NoJ.Index(p)-key[r])%n+n)%n
	}
	return format(out), nil
}

func render(key []int) string {
	b := make([]byte, len(key))
	for i, k := range key {
		if k == tracker.Unknown {
			b[i] = '.'
		} else {
			b[i] = alphabet.NoJ.Symbol(k)
		}
	}
	return string(b)
}

// Key returns the four row letters, '.' for a row not yet known.
func (c *Cipher) Key() string { return render(c.key.Values()) }

// Restore installs four row letters.
func (c *Cipher) Restore(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if len(key) != rows {
		return fmt.Errorf("%w: want %d letters, got %q", cryptors.ErrInvalidKey, rows, key)
	}
	vals := make([]int, rows)
	for i := 0; i < rows; i++ {
		ch := key[i]
		if ch == 'j' {
			ch = 'i'
		}
		switch {
		case ch == '.':
			vals[i] = tracker.Unknown
		case alphabet.NoJ.Contains(ch):
			vals[i] = alphabet.NoJ.Index(ch)
		default:
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, key[i], key)
		}
	}
	c.key.Set(vals)
	return nil
}

func (c *Cipher) SetStrict(strict bool) { c.key.SetStrict(strict) }

// assignments derives the row letters implied by numbers ct deciphering to
// pt.
func assignments(ct []int, pt []byte) []tracker.Assignment {
	n := alphabet.NoJ.Len()
	as := make([]tracker.Assignment, len(pt))
	for i, p := range pt {
		as[i] = tracker.Assignment{Col: ct[i] / n, Value: ((alphabet.NoJ.Index(p)-ct[i]%n)%n + n) % n}
	}
	return as
}

// Substitute sets the rows used by the numbers ct so that they decipher to
// pt.  An empty ct means the numbers starting at letter offset.
func (c *Cipher) Substitute(ct, pt string, offset int) (tracker.Result, error) {
	p, err := cryptors.Clean(pt, alphabet.NoJ, "ji")
	if err != nil {
		return tracker.Result{}, err
	}
	var f []int
	if ct == "" {
		if offset < 0 || offset+len(p) > len(c.ct) {
			return tracker.Result{}, fmt.Errorf("%w: fragment at %d runs past the ciphertext", cryptors.ErrInvalidLength, offset)
		}
		f = c.ct[offset : offset+len(p)]
	} else {
		if f, err = parseNumbers(ct); err != nil {
			return tracker.Result{}, err
		}
		if len(f) != len(p) {
			return tracker.Result{}, tracker.ErrLengthMismatch
		}
	}
	return c.key.Assign(assignments(f, p))
}

// Undo forgets the rows named by letters, a being the first row.  An empty
// argument forgets the whole key.
func (c *Cipher) Undo(letters string) {
	if letters == "" {
		c.key.Reset()
		return
	}
	for i := 0; i < len(letters); i++ {
		if r := alphabet.Lower.Index(letters[i]); r >= 0 {
			c.key.Undo(r)
		}
	}
}

// LocateTip installs the first offset whose implied row letters agree with
// each other and with the known rows.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.NoJ, "ji")
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty tip", cryptors.ErrTipNotFound)
	}
next:
	for off := 0; off+len(t) <= len(c.ct); off++ {
		as := assignments(c.ct[off:off+len(t)], t)
		seen := c.key.Values()
		for _, a := range as {
			if v := seen[a.Col]; v != tracker.Unknown && v != a.Value {
				continue next
			}
			seen[a.Col] = a.Value
		}
		if _, err := c.key.Assign(as); err != nil {
			return 0, err
		}
		return off, nil
	}
	return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
}

// Solve fits one row letter at a time until none changes.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return c.scorer.Score(decode(c.ct, k)) },
		Describe: func(k []int) (string, string) {
			return render(k), decode(c.ct, k)
		},
	}
	res, err := search.FitKey(c.key.Values(), alphabet.NoJ.Len(), p, opts)
	if err != nil {
		return 0, err
	}
	c.key.Set(res.Key)
	return res.Score, nil
}
