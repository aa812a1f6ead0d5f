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

package alphabet

import "fmt"

// Square is a rows x cols key grid holding every symbol of an alphabet once.
type Square struct {
	Rows, Cols int
	cells      []byte
	pos        [256]int16
}

// NewSquare lays the symbols of a row by row into a rows x cols grid.
func NewSquare(a *Alphabet, rows, cols int) *Square {
	if a.Len() != rows*cols {
		panic(fmt.Sprintf("alphabet: %d symbols do not fill a %dx%d square", a.Len(), rows, cols))
	}
	s := &Square{Rows: rows, Cols: cols, cells: []byte(a.String())}
	s.reindex()
	return s
}

// ParseSquare validates spec as a complete arrangement of base and builds the
// square from it.
func ParseSquare(spec string, base *Alphabet, rows, cols int) (*Square, error) {
	a, err := Parse(spec, base)
	if err != nil {
		return nil, fmt.Errorf("key square: %w", err)
	}
	return NewSquare(a, rows, cols), nil
}

func (s *Square) reindex() {
	for i := range s.pos {
		s.pos[i] = -1
	}
	for i, c := range s.cells {
		s.pos[c] = int16(i)
	}
}

// At returns the symbol at row r, column c.
func (s *Square) At(r, c int) byte { return s.cells[r*s.Cols+c] }

// Find returns the row and column of symbol c; ok is false if c is absent.
func (s *Square) Find(c byte) (r, col int, ok bool) {
	p := s.pos[c]
	if p < 0 {
		return 0, 0, false
	}
	return int(p) / s.Cols, int(p) % s.Cols, true
}

// Len returns the number of cells.
func (s *Square) Len() int { return len(s.cells) }

// Clone returns an independent copy.
func (s *Square) Clone() *Square {
	c := *s
	c.cells = append([]byte(nil), s.cells...)
	return &c
}

func (s *Square) String() string { return string(s.cells) }
