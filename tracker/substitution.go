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

// Package tracker builds cipher keys incrementally from ciphertext/plaintext
// correspondences while keeping them consistent.
package tracker

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bgallie/classic/alphabet"
)

var (
	// ErrBadSub marks a substitution that cannot be accepted.
	ErrBadSub         = errors.New("bad substitution")
	ErrLengthMismatch = errors.New("ciphertext and plaintext fragments differ in length")
	ErrSymbol         = errors.New("symbol not in alphabet")
)

// SubKind tells a caller whether a substitution overwrote earlier mappings.
type SubKind int

const (
	NewMapping SubKind = iota
	AlternateMapping
)

func (k SubKind) String() string {
	if k == AlternateMapping {
		return "alternate"
	}
	return "new"
}

// Result reports an accepted substitution.  For AlternateMapping, Displaced
// lists the symbols (from either side) that lost their partner, and Columns
// the key columns whose value was replaced.
type Result struct {
	Kind      SubKind
	Displaced []byte
	Columns   []int
}

// Conflict describes a rejected substitution.  It matches ErrBadSub with
// errors.Is.
type Conflict struct {
	CT, PT   byte
	Partner  byte
	Internal bool
}

func (c *Conflict) Error() string {
	where := "key"
	if c.Internal {
		where = "fragment"
	}
	return fmt.Sprintf("%v: %c=%c contradicts %c in %s", ErrBadSub, c.CT, c.PT, c.Partner, where)
}

func (c *Conflict) Unwrap() error { return ErrBadSub }

type slot struct {
	v  byte
	ok bool
}

// Substitution is a partial bijection between a ciphertext alphabet and a
// plaintext alphabet.  The forward and reverse tables are always mutual
// inverses over their populated entries.
type Substitution struct {
	ct, pt *alphabet.Alphabet
	fwd    [256]slot
	rev    [256]slot
	strict bool
}

// NewSubstitution returns an empty tracker.
func NewSubstitution(ct, pt *alphabet.Alphabet) *Substitution {
	return &Substitution{ct: ct, pt: pt}
}

// SetStrict makes conflicts with the existing key fatal instead of
// overwriting.
func (s *Substitution) SetStrict(strict bool) { s.strict = strict }

// Strict reports the strict mode.
func (s *Substitution) Strict() bool { return s.strict }

// Substitute installs ct[i] -> pt[i] for every i.  A fragment that
// contradicts itself is always rejected; one that contradicts the existing
// key is rejected in strict mode and otherwise overwrites it.  The tracker is
// unchanged when an error is returned.
func (s *Substitution) Substitute(ct, pt string) (Result, error) {
	if len(ct) != len(pt) {
		return Result{}, ErrLengthMismatch
	}
	var fwd, rev [256]slot
	alt := false
	for i := 0; i < len(ct); i++ {
		c, p := ct[i], pt[i]
		if !s.ct.Contains(c) {
			return Result{}, fmt.Errorf("%w: ciphertext %q", ErrSymbol, c)
		}
		if !s.pt.Contains(p) {
			return Result{}, fmt.Errorf("%w: plaintext %q", ErrSymbol, p)
		}
		if fwd[c].ok && fwd[c].v != p {
			return Result{}, &Conflict{CT: c, PT: p, Partner: fwd[c].v, Internal: true}
		}
		if rev[p].ok && rev[p].v != c {
			return Result{}, &Conflict{CT: c, PT: p, Partner: rev[p].v, Internal: true}
		}
		fwd[c], rev[p] = slot{p, true}, slot{c, true}

		var partner byte
		clash := false
		if f := s.fwd[c]; f.ok && f.v != p {
			partner, clash = f.v, true
		} else if r := s.rev[p]; r.ok && r.v != c {
			partner, clash = r.v, true
		}
		if clash {
			if s.strict {
				return Result{}, &Conflict{CT: c, PT: p, Partner: partner}
			}
			alt = true
		}
	}

	var lostPT, lostCT []byte
	for i := 0; i < len(ct); i++ {
		c, p := ct[i], pt[i]
		if old := s.fwd[c]; old.ok && old.v != p {
			s.rev[old.v] = slot{}
			lostPT = append(lostPT, old.v)
		}
		if old := s.rev[p]; old.ok && old.v != c {
			s.fwd[old.v] = slot{}
			lostCT = append(lostCT, old.v)
		}
		s.fwd[c], s.rev[p] = slot{p, true}, slot{c, true}
	}
	if !alt {
		return Result{Kind: NewMapping}, nil
	}

	res := Result{Kind: AlternateMapping}
	seen := make(map[byte]bool)
	for _, p := range lostPT {
		if !s.rev[p].ok && !seen[p] {
			seen[p] = true
			res.Displaced = append(res.Displaced, p)
		}
	}
	for _, c := range lostCT {
		if !s.fwd[c].ok && !seen[c] {
			seen[c] = true
			res.Displaced = append(res.Displaced, c)
		}
	}
	sort.Slice(res.Displaced, func(i, j int) bool { return res.Displaced[i] < res.Displaced[j] })
	return res, nil
}

// Undo clears the mappings of the given ciphertext symbols and their
// partners.  Symbols without a mapping are ignored.
func (s *Substitution) Undo(ct string) {
	for i := 0; i < len(ct); i++ {
		c := ct[i]
		if f := s.fwd[c]; f.ok {
			s.rev[f.v] = slot{}
			s.fwd[c] = slot{}
		}
	}
}

// Reset clears the whole key.
func (s *Substitution) Reset() {
	s.fwd = [256]slot{}
	s.rev = [256]slot{}
}

// Lookup returns the plaintext partner of ciphertext symbol c.
func (s *Substitution) Lookup(c byte) (byte, bool) {
	f := s.fwd[c]
	return f.v, f.ok
}

// Reverse returns the ciphertext partner of plaintext symbol p.
func (s *Substitution) Reverse(p byte) (byte, bool) {
	r := s.rev[p]
	return r.v, r.ok
}

// Len returns the number of populated mappings.
func (s *Substitution) Len() int {
	n := 0
	for i := 0; i < s.ct.Len(); i++ {
		if s.fwd[s.ct.Symbol(i)].ok {
			n++
		}
	}
	return n
}

// Decode maps ciphertext symbols to plaintext, writing alphabet.Blank for
// unmapped symbols and copying symbols outside the ciphertext alphabet.
func (s *Substitution) Decode(text string) string {
	b := []byte(text)
	for i, c := range b {
		if s.ct.Contains(c) {
			if f := s.fwd[c]; f.ok {
				b[i] = f.v
			} else {
				b[i] = alphabet.Blank
			}
		}
	}
	return string(b)
}

// Encode maps plaintext symbols to ciphertext; ok is false if a plaintext
// symbol has no partner.
func (s *Substitution) Encode(text string) (string, bool) {
	b := []byte(text)
	for i, p := range b {
		if s.pt.Contains(p) {
			c, ok := s.Reverse(p)
			if !ok {
				return "", false
			}
			b[i] = c
		}
	}
	return string(b), true
}

// Clone returns an independent copy.
func (s *Substitution) Clone() *Substitution {
	c := *s
	return &c
}

// String renders the key as the ciphertext alphabet followed by the
// plaintext partners, '.' marking unknown entries.
func (s *Substitution) String() string {
	b := make([]byte, s.ct.Len())
	for i := range b {
		if f := s.fwd[s.ct.Symbol(i)]; f.ok {
			b[i] = f.v
		} else {
			b[i] = '.'
		}
	}
	return s.ct.String() + " " + string(b)
}
