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

// Package rotor is the transform engine of the periodic substitution
// ciphers.  Position i of the text is enciphered by the alphabet setting of
// column i mod period.
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
)

// Kind selects the enciphering rule for plaintext index p, key value k and
// alphabet size n.
type Kind int

const (
	// Additive is c = p + k (Vigenère, Gronsfeld, Quagmire).
	Additive Kind = iota
	// Subtractive is c = p - k (Variant).
	Subtractive
	// Reciprocal is c = k - p, its own inverse (Beaufort).
	Reciprocal
	// Porta uses the thirteen reciprocal Porta tables, k in [0,13).
	Porta
)

func (k Kind) String() string {
	switch k {
	case Additive:
		return "additive"
	case Subtractive:
		return "subtractive"
	case Reciprocal:
		return "reciprocal"
	case Porta:
		return "porta"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Unknown marks a column whose setting is not known.
const Unknown = -1

// Rotor enciphers plaintext symbols of pt into ciphertext symbols of ct.  The
// two alphabets must have the same length.
type Rotor struct {
	kind   Kind
	pt, ct *alphabet.Alphabet
	shifts []int
}

// New creates a rotor.  shifts holds one key value per column, Unknown for
// columns not yet determined.
func New(kind Kind, pt, ct *alphabet.Alphabet, shifts []int) *Rotor {
	var r Rotor
	r.Update(kind, pt, ct, shifts)
	return &r
}

// Update replaces the rotor settings.
func (r *Rotor) Update(kind Kind, pt, ct *alphabet.Alphabet, shifts []int) {
	if pt.Len() != ct.Len() {
		panic(fmt.Sprintf("rotor: alphabets of %d and %d symbols", pt.Len(), ct.Len()))
	}
	r.kind = kind
	r.pt, r.ct = pt, ct
	r.SetShifts(shifts)
}

// SetShifts replaces the column settings only.
func (r *Rotor) SetShifts(shifts []int) {
	r.shifts = append(r.shifts[:0], shifts...)
}

// Alphabets returns the plaintext and ciphertext alphabets.
func (r *Rotor) Alphabets() (pt, ct *alphabet.Alphabet) { return r.pt, r.ct }

// Period returns the number of columns.
func (r *Rotor) Period() int { return len(r.shifts) }

// Values returns the number of distinct settings of one column.
func (r *Rotor) Values() int {
	if r.kind == Porta {
		return r.pt.Len() / 2
	}
	return r.pt.Len()
}

func mod(a, n int) int { return (a%n + n) % n }

// encipher maps plaintext index p under key value k to a ciphertext index.
func (r *Rotor) encipher(p, k int) int {
	n := r.pt.Len()
	switch r.kind {
	case Subtractive:
		return mod(p-k, n)
	case Reciprocal:
		return mod(k-p, n)
	case Porta:
		h := n / 2
		if p < h {
			return h + mod(p+k, h)
		}
		return mod(p-h-k, h)
	}
	return mod(p+k, n)
}

// decipher is the inverse of encipher.
func (r *Rotor) decipher(c, k int) int {
	n := r.ct.Len()
	switch r.kind {
	case Subtractive:
		return mod(c+k, n)
	case Reciprocal, Porta:
		return r.encipher(c, k)
	}
	return mod(c-k, n)
}

// Apply transforms src into dst, starting at text position offset.  In
// Encode mode src is plaintext.  Symbols in an Unknown column are written as
// alphabet.Blank.
func (r *Rotor) Apply(dst, src []byte, offset int, mode cryptors.Mode) []byte {
	if len(r.shifts) == 0 {
		panic("rotor: no columns")
	}
	for i, s := range src {
		k := r.shifts[(offset+i)%len(r.shifts)]
		if k == Unknown {
			dst[i] = alphabet.Blank
			continue
		}
		if mode == cryptors.Encode {
			dst[i] = r.ct.Symbol(r.encipher(r.pt.Index(s), k))
		} else {
			dst[i] = r.pt.Symbol(r.decipher(r.ct.Index(s), k))
		}
	}
	return dst
}

// KeyFor returns the smallest key value that enciphers plaintext symbol p
// as c.
func (r *Rotor) KeyFor(p, c byte) (int, bool) {
	pi, ci := r.pt.Index(p), r.ct.Index(c)
	if pi < 0 || ci < 0 {
		return 0, false
	}
	for k := 0; k < r.Values(); k++ {
		if r.encipher(pi, k) == ci {
			return k, true
		}
	}
	return 0, false
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("rotor.New(%v, %q, %q, []int{", r.kind, r.pt, r.ct))
	for i, v := range r.shifts {
		if i > 0 {
			output.WriteString(", ")
		}
		output.WriteString(fmt.Sprintf("%d", v))
	}
	output.WriteString("})")
	return output.String()
}
