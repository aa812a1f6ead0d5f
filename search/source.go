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

package search

// Source is a lazy, finite, restartable sequence of candidate keys.  The
// slice returned by Value is owned by the source and only valid until the
// next call to Next.
type Source interface {
	Next() bool
	Value() []int
	Reset()
}

// permutations enumerates permutations in lexicographic order.
type permutations struct {
	p       []int
	started bool
	done    bool
}

// Permutations returns a source visiting all n! permutations of [0,n)
// exactly once, starting with the identity.
func Permutations(n int) Source {
	return &permutations{p: make([]int, n)}
}

func (s *permutations) Reset() {
	s.started, s.done = false, false
}

func (s *permutations) Value() []int { return s.p }

func (s *permutations) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		for i := range s.p {
			s.p[i] = i
		}
		return true
	}
	p := s.p
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		s.done = true
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// odometer is a mixed radix counter.
type odometer struct {
	radix   []int
	v       []int
	started bool
	done    bool
}

// Odometer returns a source visiting every vector v with 0 <= v[i] < radix[i],
// the last position turning fastest.
func Odometer(radix ...int) Source {
	return &odometer{radix: append([]int(nil), radix...), v: make([]int, len(radix))}
}

func (s *odometer) Reset() {
	s.started, s.done = false, false
}

func (s *odometer) Value() []int { return s.v }

func (s *odometer) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		for i := range s.v {
			s.v[i] = 0
			if s.radix[i] <= 0 {
				s.done = true
				return false
			}
		}
		return true
	}
	for i := len(s.v) - 1; i >= 0; i-- {
		s.v[i]++
		if s.v[i] < s.radix[i] {
			return true
		}
		s.v[i] = 0
	}
	s.done = true
	return false
}

// weakOrders filters an odometer down to dense rank vectors.
type weakOrders struct {
	odo  *odometer
	seen []bool
}

// WeakOrders returns a source visiting every rank vector of length n whose
// distinct values are exactly 0..m-1 for some m, i.e. every column ordering
// with ties.  The count grows as the ordered Bell numbers; n beyond 7 is
// impractical.
func WeakOrders(n int) Source {
	radix := make([]int, n)
	for i := range radix {
		radix[i] = n
	}
	return &weakOrders{odo: Odometer(radix...).(*odometer), seen: make([]bool, n)}
}

func (s *weakOrders) Reset() { s.odo.Reset() }

func (s *weakOrders) Value() []int { return s.odo.v }

func (s *weakOrders) Next() bool {
	for s.odo.Next() {
		if s.dense() {
			return true
		}
	}
	return false
}

func (s *weakOrders) dense() bool {
	for i := range s.seen {
		s.seen[i] = false
	}
	max := -1
	for _, v := range s.odo.v {
		s.seen[v] = true
		if v > max {
			max = v
		}
	}
	for i := 0; i <= max; i++ {
		if !s.seen[i] {
			return false
		}
	}
	return true
}

// latinSquares enumerates n x n Latin squares by depth first search over the
// permutations used as rows.
type latinSquares struct {
	n       int
	rows    [][]int
	idx     []int
	v       []int
	started bool
	done    bool
}

// LatinSquares returns a source of flattened (row major) n x n Latin squares
// over the values 0..n-1.
func LatinSquares(n int) Source {
	s := &latinSquares{n: n, idx: make([]int, n), v: make([]int, n*n)}
	perms := Permutations(n)
	for perms.Next() {
		s.rows = append(s.rows, append([]int(nil), perms.Value()...))
	}
	return s
}

func (s *latinSquares) Reset() {
	s.started, s.done = false, false
}

func (s *latinSquares) Value() []int { return s.v }

func (s *latinSquares) fits(depth int, row []int) bool {
	for r := 0; r < depth; r++ {
		prev := s.rows[s.idx[r]]
		for c, v := range row {
			if prev[c] == v {
				return false
			}
		}
	}
	return true
}

func (s *latinSquares) Next() bool {
	if s.done || s.n == 0 {
		s.done = true
		return false
	}
	depth := s.n - 1
	if !s.started {
		s.started = true
		depth = 0
		s.idx[0] = -1
	}
	for depth >= 0 {
		s.idx[depth]++
		for s.idx[depth] < len(s.rows) && !s.fits(depth, s.rows[s.idx[depth]]) {
			s.idx[depth]++
		}
		if s.idx[depth] == len(s.rows) {
			depth--
			continue
		}
		if depth == s.n-1 {
			for r := 0; r < s.n; r++ {
				copy(s.v[r*s.n:], s.rows[s.idx[r]])
			}
			return true
		}
		depth++
		s.idx[depth] = -1
	}
	s.done = true
	return false
}

// extend pairs an inner source with an outer odometer.
type extend struct {
	inner   Source
	outer   *odometer
	v       []int
	started bool
}

// Extend appends the digits of an odometer over radix to every value of
// src.  The odometer is the outer loop, so src is fully enumerated for each
// setting of the extra digits.
func Extend(src Source, radix ...int) Source {
	return &extend{inner: src, outer: Odometer(radix...).(*odometer)}
}

func (s *extend) Reset() {
	s.inner.Reset()
	s.outer.Reset()
	s.started = false
}

func (s *extend) Value() []int { return s.v }

func (s *extend) Next() bool {
	if !s.started {
		s.started = true
		if !s.outer.Next() {
			return false
		}
		s.inner.Reset()
	}
	for !s.inner.Next() {
		if !s.outer.Next() {
			return false
		}
		s.inner.Reset()
	}
	s.v = append(append(s.v[:0], s.inner.Value()...), s.outer.Value()...)
	return true
}
