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

// Package alphabet holds the small fixed-size key models shared by every
// cipher: symbol alphabets, keyword mixed alphabets, permutation keys and
// key squares.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// Blank is written into plaintext positions that the current key cannot
// resolve.
const Blank = ' '

var (
	ErrDuplicate = errors.New("duplicate symbol")
	ErrSymbol    = errors.New("symbol not in alphabet")
)

// Alphabet is an ordered set of single byte symbols.
type Alphabet struct {
	symbols string
	index   [256]int16
}

var (
	Lower  = New("abcdefghijklmnopqrstuvwxyz")
	NoJ    = New("abcdefghiklmnopqrstuvwxyz")
	Digits = New("0123456789")
	Hash27 = New("abcdefghijklmnopqrstuvwxyz#")
	Alnum  = New("abcdefghijklmnopqrstuvwxyz0123456789")
)

// New creates an alphabet from symbols.  It panics on a repeated symbol since
// alphabets are program constants.
func New(symbols string) *Alphabet {
	a := &Alphabet{symbols: symbols}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		if a.index[symbols[i]] >= 0 {
			panic(fmt.Sprintf("alphabet: symbol %q repeated in %q", symbols[i], symbols))
		}
		a.index[symbols[i]] = int16(i)
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbol returns the i'th symbol.
func (a *Alphabet) Symbol(i int) byte { return a.symbols[i] }

// Index returns the position of c or -1.
func (a *Alphabet) Index(c byte) int { return int(a.index[c]) }

// Contains reports whether c is in the alphabet.
func (a *Alphabet) Contains(c byte) bool { return a.index[c] >= 0 }

func (a *Alphabet) String() string { return a.symbols }

// Keyed builds a keyword mixed alphabet: the distinct keyword symbols in order
// followed by the remaining symbols of base.  Keyword symbols outside base are
// an error.
func Keyed(keyword string, base *Alphabet) (*Alphabet, error) {
	var b strings.Builder
	var used [256]bool
	for i := 0; i < len(keyword); i++ {
		c := keyword[i]
		if !base.Contains(c) {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, c)
		}
		if !used[c] {
			used[c] = true
			b.WriteByte(c)
		}
	}
	for i := 0; i < base.Len(); i++ {
		if c := base.Symbol(i); !used[c] {
			b.WriteByte(c)
		}
	}
	return New(b.String()), nil
}

// Parse validates that s is a complete arrangement of base (every symbol
// exactly once) and returns it as an alphabet.
func Parse(s string, base *Alphabet) (*Alphabet, error) {
	if len(s) != base.Len() {
		return nil, fmt.Errorf("alphabet %q: want %d symbols, got %d", s, base.Len(), len(s))
	}
	var seen [256]bool
	for i := 0; i < len(s); i++ {
		if !base.Contains(s[i]) {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, s[i])
		}
		if seen[s[i]] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, s[i])
		}
		seen[s[i]] = true
	}
	return New(s), nil
}
