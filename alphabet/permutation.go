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

import (
	"fmt"
	"sort"
)

// Permutation is a bijection on [0, len).  A value of this type returned by
// this package is always valid.
type Permutation []int

// Identity returns the identity permutation of size n.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// CheckPermutation verifies that p is a bijection on [0, len(p)).
func CheckPermutation(p []int) error {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) {
			return fmt.Errorf("permutation value %d out of range [0,%d)", v, len(p))
		}
		if seen[v] {
			return fmt.Errorf("%w: permutation value %d", ErrDuplicate, v)
		}
		seen[v] = true
	}
	return nil
}

// ParsePermutation reads a column order written as letters: the column
// holding 'a' is read first, then 'b', and so on.  The spec must use exactly
// the first len(spec) letters of the alphabet, each once.
func ParsePermutation(spec string) (Permutation, error) {
	if len(spec) == 0 || len(spec) > Lower.Len() {
		return nil, fmt.Errorf("permutation %q: length must be 1..%d", spec, Lower.Len())
	}
	p := make(Permutation, len(spec))
	for i := 0; i < len(spec); i++ {
		v := Lower.Index(spec[i])
		if v < 0 || v >= len(spec) {
			return nil, fmt.Errorf("permutation %q: %q out of range", spec, spec[i])
		}
		p[i] = v
	}
	if err := CheckPermutation(p); err != nil {
		return nil, fmt.Errorf("permutation %q: %w", spec, err)
	}
	return p, nil
}

// String renders p in the form accepted by ParsePermutation.
func (p Permutation) String() string {
	b := make([]byte, len(p))
	for i, v := range p {
		b[i] = Lower.Symbol(v)
	}
	return string(b)
}

// Inverse returns q with q[p[i]] == i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Order converts a rank vector (p[col] = rank) into the reading order
// (order[rank] = col).  It is the inverse for a bijection.
func (p Permutation) Order() []int {
	return p.Inverse()
}

// RankKeyword ranks the letters of a keyword alphabetically, ties broken left
// to right, giving a permutation (rank of each column).
func RankKeyword(word string) (Permutation, error) {
	if len(word) == 0 {
		return nil, fmt.Errorf("keyword is empty")
	}
	cols := make([]int, len(word))
	for i := range cols {
		if !Lower.Contains(word[i]) {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, word[i])
		}
		cols[i] = i
	}
	sort.SliceStable(cols, func(i, j int) bool { return word[cols[i]] < word[cols[j]] })
	p := make(Permutation, len(word))
	for rank, col := range cols {
		p[col] = rank
	}
	return p, nil
}

// Ranks returns dense ranks of a keyword where equal letters share a rank,
// e.g. "tomato" gives [3 2 1 0 3 2].
func Ranks(word string) ([]int, error) {
	var present [256]bool
	for i := 0; i < len(word); i++ {
		if !Lower.Contains(word[i]) {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, word[i])
		}
		present[word[i]] = true
	}
	var rank [256]int
	n := 0
	for c := 0; c < 256; c++ {
		if present[c] {
			rank[c] = n
			n++
		}
	}
	r := make([]int, len(word))
	for i := 0; i < len(word); i++ {
		r[i] = rank[word[i]]
	}
	return r, nil
}
