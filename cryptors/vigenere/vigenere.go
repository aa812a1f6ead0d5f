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

// Package vigenere implements the periodic shift ciphers: Vigenère, Variant,
// Beaufort, Gronsfeld and Porta.  They differ only in the rule applied by the
// rotor and in how a column setting is written in the key.
package vigenere

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/rotor"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
)

var (
	_ cryptors.Cipher      = (*Cipher)(nil)
	_ cryptors.Periodic    = (*Cipher)(nil)
	_ cryptors.Substituter = (*Cipher)(nil)
	_ cryptors.Strictable  = (*Cipher)(nil)
)

// Cipher is one member of the family.  Its key holds one setting per column,
// any of which may be unknown.
type Cipher struct {
	name   string
	kind   rotor.Kind
	digits bool
	scorer score.Scorer
	ct     []byte
	key    *tracker.Columns
	rotor  *rotor.Rotor
}

func newCipher(name string, kind rotor.Kind, digits bool, s score.Scorer) *Cipher {
	return &Cipher{
		name:   name,
		kind:   kind,
		digits: digits,
		scorer: s,
		key:    tracker.NewColumns(0),
		rotor:  rotor.New(kind, alphabet.Lower, alphabet.Lower, nil),
	}
}

// NewVigenere deciphers with p = c - k.
func NewVigenere(s score.Scorer) *Cipher { return newCipher("vigenere", rotor.Additive, false, s) }

// NewVariant deciphers with p = c + k.
func NewVariant(s score.Scorer) *Cipher { return newCipher("variant", rotor.Subtractive, false, s) }

// NewBeaufort deciphers with p = k - c.
func NewBeaufort(s score.Scorer) *Cipher { return newCipher("beaufort", rotor.Reciprocal, false, s) }

// NewGronsfeld is a Vigenère whose key is written in digits.
func NewGronsfeld(s score.Scorer) *Cipher { return newCipher("gronsfeld", rotor.Additive, true, s) }

// NewPorta uses the Porta tables; key letters pair up, ab selecting the
// first table.
func NewPorta(s score.Scorer) *Cipher { return newCipher("porta", rotor.Porta, false, s) }

func (c *Cipher) Type() string { return c.name }

// values is the number of settings one column can take.
func (c *Cipher) values() int {
	if c.digits {
		return 10
	}
	return c.rotor.Values()
}

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return fmt.Errorf("%w: empty ciphertext", cryptors.ErrInvalidLength)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)); err != nil {
		return err
	}
	c.key.Resize(p)
	return nil
}

func (c *Cipher) Period() int { return c.key.Len() }

func (c *Cipher) SetStrict(strict bool) { c.key.SetStrict(strict) }

func (c *Cipher) apply(src []byte, shifts []int, mode cryptors.Mode) string {
	c.rotor.SetShifts(shifts)
	return string(c.rotor.Apply(make([]byte, len(src)), src, 0, mode))
}

func (c *Cipher) Decode() string {
	if c.key.Len() == 0 {
		return cryptors.Blanks(len(c.ct))
	}
	return c.apply(c.ct, c.key.Values(), cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.key.Len() == 0 {
		return "", cryptors.ErrNoPeriod
	}
	shifts := c.key.Values()
	for _, v := range shifts {
		if v == rotor.Unknown {
			return "", fmt.Errorf("%w: key %q is incomplete", cryptors.ErrInvalidKey, c.Key())
		}
	}
	return c.apply(pt, shifts, cryptors.Encode), nil
}

// NewMixed returns a Vigenère over mixed alphabets, the engine of the
// Quagmire ciphers.  Its key letters are indicators: the ciphertext letter
// standing under plaintext a.
func NewMixed(name string, s score.Scorer) *Cipher {
	return newCipher(name, rotor.Additive, false, s)
}

// Alphabets returns the plaintext and ciphertext alphabets.
func (c *Cipher) Alphabets() (pt, ct *alphabet.Alphabet) { return c.rotor.Alphabets() }

// SetAlphabets replaces the alphabets, keeping the column settings.
func (c *Cipher) SetAlphabets(pt, ct *alphabet.Alphabet) {
	c.rotor.Update(c.kind, pt, ct, c.key.Values())
}

// Shifts returns the column settings, rotor.Unknown for unknown columns.
func (c *Cipher) Shifts() []int { return c.key.Values() }

// SetShifts installs column settings without consistency checks.
func (c *Cipher) SetShifts(shifts []int) { c.key.Set(shifts) }

// DecodeWith deciphers with trial column settings.
func (c *Cipher) DecodeWith(shifts []int) string { return c.apply(c.ct, shifts, cryptors.Decode) }

func (c *Cipher) symbol(v int) byte {
	switch {
	case v == rotor.Unknown:
		return '.'
	case c.digits:
		return alphabet.Digits.Symbol(v)
	case c.kind == rotor.Porta:
		return alphabet.Lower.Symbol(2 * v)
	}
	pt, ct := c.rotor.Alphabets()
	return ct.Symbol((v + pt.Index('a')) % ct.Len())
}

func (c *Cipher) value(s byte) (int, bool) {
	if s == '.' {
		return rotor.Unknown, true
	}
	if c.digits {
		v := alphabet.Digits.Index(s)
		return v, v >= 0
	}
	if c.kind == rotor.Porta {
		v := alphabet.Lower.Index(s)
		return v / 2, v >= 0
	}
	pt, ct := c.rotor.Alphabets()
	v := ct.Index(s)
	if v < 0 {
		return 0, false
	}
	n := ct.Len()
	return ((v-pt.Index('a'))%n + n) % n, true
}

func (c *Cipher) Key() string {
	b := make([]byte, c.key.Len())
	for i := range b {
		b[i] = c.symbol(c.key.Get(i))
	}
	return string(b)
}

// Restore installs a key word, which also sets the period.  '.' marks an
// unknown column.
func (c *Cipher) Restore(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if err := cryptors.CheckPeriod(len(key), len(c.ct)); err != nil {
		return err
	}
	vals := make([]int, len(key))
	for i := 0; i < len(key); i++ {
		v, ok := c.value(key[i])
		if !ok {
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, key[i], key)
		}
		vals[i] = v
	}
	c.key.Resize(len(vals))
	c.key.Set(vals)
	return nil
}

// assignments derives the column settings implied by pt at offset.
func (c *Cipher) assignments(ct, pt []byte, offset int) ([]tracker.Assignment, error) {
	as := make([]tracker.Assignment, len(pt))
	for i := range pt {
		k, ok := c.rotor.KeyFor(pt[i], ct[i])
		if !ok || k >= c.values() {
			return nil, fmt.Errorf("%w: no %s setting takes %q to %q", cryptors.ErrInvalidKey, c.name, pt[i], ct[i])
		}
		as[i] = tracker.Assignment{Col: (offset + i) % c.key.Len(), Value: k}
	}
	return as, nil
}

func (c *Cipher) fragment(ct string, offset, n int) ([]byte, error) {
	if ct != "" {
		b, err := cryptors.Clean(ct, alphabet.Lower)
		if err == nil && len(b) != n {
			err = tracker.ErrLengthMismatch
		}
		return b, err
	}
	if offset < 0 || offset+n > len(c.ct) {
		return nil, fmt.Errorf("%w: fragment at %d runs past the ciphertext", cryptors.ErrInvalidLength, offset)
	}
	return c.ct[offset : offset+n], nil
}

// Substitute sets the columns under plaintext offset so that ct deciphers to
// pt.  An empty ct means the ciphertext at offset.
func (c *Cipher) Substitute(ct, pt string, offset int) (tracker.Result, error) {
	if c.key.Len() == 0 {
		return tracker.Result{}, cryptors.ErrNoPeriod
	}
	p, err := cryptors.Clean(pt, alphabet.Lower)
	if err != nil {
		return tracker.Result{}, err
	}
	f, err := c.fragment(ct, offset, len(p))
	if err != nil {
		return tracker.Result{}, err
	}
	as, err := c.assignments(f, p, offset)
	if err != nil {
		return tracker.Result{}, err
	}
	return c.key.Assign(as)
}

// Undo clears the columns named by letters, a being the first column.  An
// empty argument clears the whole key.
func (c *Cipher) Undo(cols string) {
	if cols == "" {
		c.key.Reset()
		return
	}
	for i := 0; i < len(cols); i++ {
		if col := alphabet.Lower.Index(cols[i]); col >= 0 {
			c.key.Undo(col)
		}
	}
}

// LocateTip tries each offset in turn and installs the first one whose
// implied settings agree with each other and with the known columns.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if c.key.Len() == 0 {
		return 0, cryptors.ErrNoPeriod
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty tip", cryptors.ErrTipNotFound)
	}
next:
	for off := 0; off+len(t) <= len(c.ct); off++ {
		as, err := c.assignments(c.ct[off:off+len(t)], t, off)
		if err != nil {
			continue
		}
		seen := c.key.Values()
		for _, a := range as {
			if v := seen[a.Col]; v != rotor.Unknown && v != a.Value {
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

// Solve fits one column at a time, holding the others fixed, until no
// column changes.  Unknown columns start out blank so the first pass is a
// frequency fit.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if c.key.Len() == 0 {
		return 0, cryptors.ErrNoPeriod
	}
	p := search.Problem{
		Name: c.name,
		Eval: func(k []int) float64 { return c.scorer.Score(c.apply(c.ct, k, cryptors.Decode)) },
		Describe: func(k []int) (string, string) {
			b := make([]byte, len(k))
			for i, v := range k {
				b[i] = c.symbol(v)
			}
			return string(b), c.apply(c.ct, k, cryptors.Decode)
		},
	}
	res, err := search.FitKey(c.key.Values(), c.values(), p, opts)
	if err != nil {
		return 0, err
	}
	c.key.Set(res.Key)
	return res.Score, nil
}
