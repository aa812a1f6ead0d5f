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

package tracker

import (
	"fmt"

	"github.com/bgallie/classic/alphabet"
)

// Unknown marks a coordinate that has not been determined.
const Unknown = -1

// Axis selects the row or column coordinate of a symbol.
type Axis int

const (
	Row Axis = iota
	Col
)

// Ref names one coordinate of one symbol.
type Ref struct {
	Symbol byte
	Axis   Axis
}

// Equal states that two coordinates are the same number.
type Equal struct {
	A, B Ref
}

// GridConflict reports a contradiction found while merging.
type GridConflict struct {
	Symbol, Other byte
	Axis          Axis
	Have, Want    int
}

func (g *GridConflict) Error() string {
	if g.Other != 0 {
		return fmt.Sprintf("%v: %c and %c share a cell", ErrBadSub, g.Symbol, g.Other)
	}
	axis := "row"
	if g.Axis == Col {
		axis = "col"
	}
	return fmt.Sprintf("%v: %c %s is %d, not %d", ErrBadSub, g.Symbol, axis, g.Have+1, g.Want+1)
}

func (g *GridConflict) Unwrap() error { return ErrBadSub }

// Grid tracks the key square position of each symbol where either half of a
// position may still be unknown, together with the coordinate equalities
// learned from tips.  Every change is merged to a fixed point.
type Grid struct {
	alpha      *alphabet.Alphabet
	rows, cols int
	pos        [256][2]int
	eqs        []Equal
}

// NewGrid returns an empty rows x cols tracker over alpha.
func NewGrid(alpha *alphabet.Alphabet, rows, cols int) *Grid {
	g := &Grid{alpha: alpha, rows: rows, cols: cols}
	g.Reset()
	return g
}

// Reset forgets every position and constraint.
func (g *Grid) Reset() {
	for i := range g.pos {
		g.pos[i] = [2]int{Unknown, Unknown}
	}
	g.eqs = nil
}

// Position returns the row and column of sym; either may be Unknown.
func (g *Grid) Position(sym byte) (row, col int) {
	return g.pos[sym][Row], g.pos[sym][Col]
}

// Known reports whether both coordinates of sym are determined.
func (g *Grid) Known(sym byte) bool {
	return g.pos[sym][Row] != Unknown && g.pos[sym][Col] != Unknown
}

// At returns the symbol known to occupy row r, column c.
func (g *Grid) At(r, c int) (byte, bool) {
	for i := 0; i < g.alpha.Len(); i++ {
		s := g.alpha.Symbol(i)
		if g.pos[s][Row] == r && g.pos[s][Col] == c {
			return s, true
		}
	}
	return 0, false
}

// Set merges a (possibly partial) position for sym.  Unknown leaves a
// coordinate untouched.
func (g *Grid) Set(sym byte, row, col int) error {
	if !g.alpha.Contains(sym) {
		return fmt.Errorf("%w: %q", ErrSymbol, sym)
	}
	if row < Unknown || row >= g.rows || col < Unknown || col >= g.cols {
		return fmt.Errorf("position (%d,%d) outside %dx%d square", row+1, col+1, g.rows, g.cols)
	}
	return g.merge(func(n *Grid) error {
		if err := n.fill(Ref{sym, Row}, row); err != nil {
			return err
		}
		return n.fill(Ref{sym, Col}, col)
	})
}

// Constrain adds coordinate equalities and propagates them.
func (g *Grid) Constrain(eqs ...Equal) error {
	for _, e := range eqs {
		if !g.alpha.Contains(e.A.Symbol) || !g.alpha.Contains(e.B.Symbol) {
			return fmt.Errorf("%w: constraint %c/%c", ErrSymbol, e.A.Symbol, e.B.Symbol)
		}
	}
	return g.merge(func(n *Grid) error {
		n.eqs = append(n.eqs, eqs...)
		return nil
	})
}

// Undo forgets the positions of the given symbols and every constraint that
// mentions them.
func (g *Grid) Undo(syms string) {
	drop := make(map[byte]bool, len(syms))
	for i := 0; i < len(syms); i++ {
		drop[syms[i]] = true
		g.pos[syms[i]] = [2]int{Unknown, Unknown}
	}
	kept := g.eqs[:0]
	for _, e := range g.eqs {
		if !drop[e.A.Symbol] && !drop[e.B.Symbol] {
			kept = append(kept, e)
		}
	}
	g.eqs = kept
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	n := *g
	n.eqs = append([]Equal(nil), g.eqs...)
	return &n
}

// merge applies change to a copy, propagates it, and commits only if no
// contradiction was found.
func (g *Grid) merge(change func(*Grid) error) error {
	n := g.Clone()
	if err := change(n); err != nil {
		return err
	}
	if err := n.propagate(); err != nil {
		return err
	}
	*g = *n
	return nil
}

func (g *Grid) fill(r Ref, v int) error {
	if v == Unknown {
		return nil
	}
	have := g.pos[r.Symbol][r.Axis]
	if have != Unknown && have != v {
		return &GridConflict{Symbol: r.Symbol, Axis: r.Axis, Have: have, Want: v}
	}
	g.pos[r.Symbol][r.Axis] = v
	return nil
}

// propagate copies known coordinates across equalities until a pass makes
// no change.  Each productive pass fills at least one unknown coordinate, so
// there are at most 2*alphabet+1 passes.
func (g *Grid) propagate() error {
	for changed := true; changed; {
		changed = false
		for _, e := range g.eqs {
			a := g.pos[e.A.Symbol][e.A.Axis]
			b := g.pos[e.B.Symbol][e.B.Axis]
			switch {
			case a != Unknown && b != Unknown:
				if a != b {
					return &GridConflict{Symbol: e.B.Symbol, Axis: e.B.Axis, Have: b, Want: a}
				}
			case a != Unknown:
				g.pos[e.B.Symbol][e.B.Axis] = a
				changed = true
			case b != Unknown:
				g.pos[e.A.Symbol][e.A.Axis] = b
				changed = true
			}
		}
	}
	return g.checkCells()
}

// cellKey identifies a cell as far as it is known: each coordinate is
// either its value or the equivalence class it belongs to.
type cellKey [2]struct {
	known bool
	v     int
}

// checkCells fails when two letters are forced onto the same cell, either
// by known coordinates or because both of their coordinates are tied
// together by constraints.
func (g *Grid) checkCells() error {
	parent := make(map[Ref]Ref)
	var find func(r Ref) Ref
	find = func(r Ref) Ref {
		p, ok := parent[r]
		if !ok || p == r {
			return r
		}
		root := find(p)
		parent[r] = root
		return root
	}
	tied := make(map[byte]bool)
	for _, e := range g.eqs {
		a, b := find(e.A), find(e.B)
		if a != b {
			parent[a] = b
		}
		tied[e.A.Symbol], tied[e.B.Symbol] = true, true
	}
	owner := make(map[cellKey]byte)
	for i := 0; i < g.alpha.Len(); i++ {
		s := g.alpha.Symbol(i)
		if !g.Known(s) && !tied[s] {
			continue
		}
		var k cellKey
		for _, axis := range []Axis{Row, Col} {
			if v := g.pos[s][axis]; v != Unknown {
				k[axis].known, k[axis].v = true, v
			} else {
				root := find(Ref{s, axis})
				k[axis].v = int(root.Symbol)<<1 | int(root.Axis)
			}
		}
		if o, ok := owner[k]; ok {
			return &GridConflict{Symbol: o, Other: s}
		}
		owner[k] = s
	}
	return nil
}

// Square returns the key square if every symbol has a full position.
func (g *Grid) Square() (*alphabet.Square, bool) {
	cells := make([]byte, g.rows*g.cols)
	for i := 0; i < g.alpha.Len(); i++ {
		s := g.alpha.Symbol(i)
		if !g.Known(s) {
			return nil, false
		}
		cells[g.pos[s][Row]*g.cols+g.pos[s][Col]] = s
	}
	return alphabet.NewSquare(alphabet.New(string(cells)), g.rows, g.cols), true
}

// Load replaces the tracker contents with a complete square.
func (g *Grid) Load(sq *alphabet.Square) {
	g.Reset()
	for r := 0; r < sq.Rows; r++ {
		for c := 0; c < sq.Cols; c++ {
			g.pos[sq.At(r, c)] = [2]int{r, c}
		}
	}
}

// String renders the known square row by row with '.' for empty cells.
func (g *Grid) String() string {
	b := make([]byte, g.rows*g.cols)
	for i := range b {
		b[i] = '.'
	}
	for i := 0; i < g.alpha.Len(); i++ {
		s := g.alpha.Symbol(i)
		if g.Known(s) {
			b[g.pos[s][Row]*g.cols+g.pos[s][Col]] = s
		}
	}
	return string(b)
}
