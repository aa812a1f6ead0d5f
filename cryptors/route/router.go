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

package route

import "fmt"

// Routes is the number of traversal orders.
const Routes = 48

// Kinds of traversal, eight routes each.
const (
	straight = iota
	alternating
	diagonal
	alternatingDiagonal
	spiralIn
	spiralOut
)

var (
	kindNames   = []string{"straight", "alternating", "diagonal", "alternating diagonal", "inward spiral", "outward spiral"}
	cornerNames = []string{"NW", "NE", "SW", "SE"}
	axisNames   = []string{"rows", "columns"}
)

// Name describes route r, numbered from 1.  Route 1 is NW rows straight,
// row by row from the top left.
func Name(r int) string {
	i := r - 1
	return fmt.Sprintf("%s %s %s", cornerNames[(i%8)/2], axisNames[i%2], kindNames[i/8])
}

// canonical returns the cells of a w x h grid in traversal order for the
// given kind, starting in the top left and leading along the first row.
func canonical(kind, w, h int) []int {
	cells := make([]int, 0, w*h)
	add := func(r, c int) { cells = append(cells, r*w+c) }
	switch kind {
	case straight, alternating:
		for r := 0; r < h; r++ {
			for i := 0; i < w; i++ {
				c := i
				if kind == alternating && r%2 == 1 {
					c = w - 1 - i
				}
				add(r, c)
			}
		}
	case diagonal, alternatingDiagonal:
		for d := 0; d < w+h-1; d++ {
			for i := 0; i < h; i++ {
				r := i
				if kind == alternatingDiagonal && d%2 == 1 {
					r = h - 1 - i
				}
				if c := d - r; c >= 0 && c < w {
					add(r, c)
				}
			}
		}
	case spiralIn, spiralOut:
		top, bottom, left, right := 0, h-1, 0, w-1
		for top <= bottom && left <= right {
			for c := left; c <= right; c++ {
				add(top, c)
			}
			top++
			for r := top; r <= bottom; r++ {
				add(r, right)
			}
			right--
			if top <= bottom {
				for c := right; c >= left; c-- {
					add(bottom, c)
				}
				bottom--
			}
			if left <= right {
				for r := bottom; r >= top; r-- {
					add(r, left)
				}
				left++
			}
		}
		if kind == spiralOut {
			for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
				cells[i], cells[j] = cells[j], cells[i]
			}
		}
	}
	return cells
}

// generate returns the row major cell index of each step of route r on a
// grid w wide and h high.
func generate(r, w, h int) []int {
	i := r - 1
	kind, corner, axis := i/8, (i%8)/2, i%2
	var seq []int
	if axis == 0 {
		seq = canonical(kind, w, h)
	} else {
		seq = canonical(kind, h, w)
	}
	for j, s := range seq {
		row, col := s/w, s%w
		if axis == 1 {
			row, col = s%h, s/h
		}
		if corner == 1 || corner == 3 {
			col = w - 1 - col
		}
		if corner == 2 || corner == 3 {
			row = h - 1 - row
		}
		seq[j] = row*w + col
	}
	return seq
}

type routeKey struct{ route, w, h int }

// Router hands out route sequences, computing each one once.
type Router struct {
	memo map[routeKey][]int
}

func NewRouter() *Router { return &Router{memo: make(map[routeKey][]int)} }

// Route returns the cells of route r, numbered from 1, on a w x h grid.
// The slice is shared and must not be modified.
func (rt *Router) Route(r, w, h int) []int {
	if r < 1 || r > Routes || w < 1 || h < 1 {
		panic(fmt.Sprintf("route: no route %d on a %dx%d grid", r, w, h))
	}
	k := routeKey{r, w, h}
	seq, ok := rt.memo[k]
	if !ok {
		seq = generate(r, w, h)
		rt.memo[k] = seq
	}
	return seq
}

// Len returns the number of sequences computed so far.
func (rt *Router) Len() int { return len(rt.memo) }
