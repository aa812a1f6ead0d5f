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

// Package permutator is the transform engine of the transposition ciphers.
// A transposition is described by a position map from ciphertext positions
// to plaintext positions; the permutator applies it in either direction.
package permutator

import (
	"bytes"
	"fmt"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/bitops"
)

// Unmapped marks a ciphertext position with no plaintext partner.
const Unmapped = -1

// Permutator holds a position map: ciphertext position i holds plaintext
// position perm[i].
type Permutator struct {
	perm []int
}

// New creates a permutator from a position map.  A map that sends two
// ciphertext positions to the same plaintext position, or outside the text,
// is a bug in the caller's position arithmetic and panics.
func New(perm []int) *Permutator {
	var p Permutator
	p.Update(perm)
	return &p
}

// Update replaces the position map, reusing the permutator.
func (p *Permutator) Update(perm []int) {
	used := bitops.New(len(perm))
	for i, v := range perm {
		if v == Unmapped {
			continue
		}
		if v < 0 || v >= len(perm) {
			panic(fmt.Sprintf("permutator: position %d maps to %d outside [0,%d)", i, v, len(perm)))
		}
		if bitops.GetBit(used, uint(v)) {
			panic(fmt.Sprintf("permutator: position %d mapped twice", v))
		}
		bitops.SetBit(used, uint(v))
	}
	p.perm = append(p.perm[:0], perm...)
}

// Len returns the text length the permutator handles.
func (p *Permutator) Len() int { return len(p.perm) }

// Apply transforms src into dst.  In Encode mode src is plaintext and dst
// ciphertext; in Decode mode the reverse.  Positions without a partner are
// written as alphabet.Blank.  dst and src must both be Len bytes long.
func (p *Permutator) Apply(dst, src []byte, mode cryptors.Mode) []byte {
	if len(dst) != len(p.perm) || len(src) != len(p.perm) {
		panic(fmt.Sprintf("permutator: buffers of %d and %d bytes for a %d position map", len(dst), len(src), len(p.perm)))
	}
	for i := range dst {
		dst[i] = alphabet.Blank
	}
	for i, v := range p.perm {
		if v == Unmapped {
			continue
		}
		if mode == cryptors.Encode {
			dst[i] = src[v]
		} else {
			dst[v] = src[i]
		}
	}
	return dst
}

// Transform is Apply into a fresh buffer.
func (p *Permutator) Transform(src []byte, mode cryptors.Mode) []byte {
	return p.Apply(make([]byte, len(p.perm)), src, mode)
}

func (p *Permutator) String() string {
	var output bytes.Buffer
	output.WriteString("permutator.New([]int{")
	for i, v := range p.perm {
		if i > 0 {
			output.WriteString(", ")
		}
		output.WriteString(fmt.Sprintf("%d", v))
	}
	output.WriteString("})")
	return output.String()
}
