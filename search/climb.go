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

import "math"

// Neighborhood is the set of single moves from the current key.  Apply and
// Revert mutate the key slice the neighborhood was built over.
type Neighborhood interface {
	Len() int
	Apply(m int)
	Revert(m int)
}

type swaps struct {
	key   []int
	pairs [][2]int
}

// Swaps is the neighborhood of all C(n,2) exchanges of two key positions.
func Swaps(key []int) Neighborhood {
	return BlockSwaps(key, len(key))
}

// BlockSwaps only exchanges positions within the same block of size block,
// for keys that concatenate several independent arrangements.
func BlockSwaps(key []int, block int) Neighborhood {
	s := &swaps{key: key}
	if block <= 0 {
		return s
	}
	for b := 0; b < len(key); b += block {
		end := b + block
		if end > len(key) {
			end = len(key)
		}
		for i := b; i < end; i++ {
			for j := i + 1; j < end; j++ {
				s.pairs = append(s.pairs, [2]int{i, j})
			}
		}
	}
	return s
}

func (s *swaps) Len() int { return len(s.pairs) }

func (s *swaps) Apply(m int) {
	i, j := s.pairs[m][0], s.pairs[m][1]
	s.key[i], s.key[j] = s.key[j], s.key[i]
}

func (s *swaps) Revert(m int) { s.Apply(m) }

type flips struct{ key []int }

// Flips toggles one 0/1 key position per move.
func Flips(key []int) Neighborhood { return flips{key} }

func (f flips) Len() int     { return len(f.key) }
func (f flips) Apply(m int)  { f.key[m] ^= 1 }
func (f flips) Revert(m int) { f.key[m] ^= 1 }

// HillClimb improves key in place by trying every move of nb, keeping a move
// only if it strictly raises the score, and sweeping again until a whole
// sweep keeps nothing.  The result is a local maximum: no single move from
// the returned key scores higher.
func HillClimb(key []int, nb Neighborhood, p Problem, opts Options) (Result, error) {
	r := newRun("hillclimb", p, opts)
	if _, _, err := r.visit(key); err != nil {
		return Result{}, err
	}
	for improved := true; improved; {
		improved = false
		for m := 0; m < nb.Len(); m++ {
			nb.Apply(m)
			_, better, err := r.visit(key)
			if err != nil {
				return Result{}, err
			}
			if better {
				improved = true
				continue
			}
			nb.Revert(m)
		}
	}
	r.obs.done()
	if r.res.Key == nil {
		r.res.Key = append([]int(nil), key...)
	}
	return r.res, nil
}

// FitColumn tries every value in [0, values) for one key column while the
// rest of the key is held fixed and keeps the best.  current is the column's
// present value or -1 when unknown; a known value is only replaced by one
// that scores strictly higher.  set installs a value, eval scores the
// installed key.
func FitColumn(current, values int, set func(v int), eval func() float64) (int, float64) {
	best, bv := math.Inf(-1), current
	if current >= 0 {
		set(current)
		best = eval()
	}
	for v := 0; v < values; v++ {
		if v == current {
			continue
		}
		set(v)
		if s := eval(); s > best {
			best, bv = s, v
		}
	}
	if bv < 0 {
		bv = 0
	}
	set(bv)
	return bv, best
}

// FitColumns runs FitColumn over every column of key, repeating passes until
// one changes nothing.  Unknown columns are marked -1 in key and are always
// assigned.  Each change strictly raises the score so the loop terminates.
func FitColumns(key []int, values int, set func(col, v int), eval func() float64) float64 {
	score := math.Inf(-1)
	for changed := true; changed; {
		changed = false
		for col := range key {
			v, s := FitColumn(key[col], values, func(v int) { set(col, v) }, eval)
			if v != key[col] {
				key[col] = v
				changed = true
			}
			score = s
		}
	}
	return score
}

// FitKey is FitColumns as a reported search run: every trial value counts as
// a candidate for the callbacks and metrics.  Columns marked -1 are unknown
// and are always assigned.  Because a partial key may score above a complete
// one, the result is the final key and its score rather than the best
// candidate seen.
func FitKey(key []int, values int, p Problem, opts Options) (Result, error) {
	r := newRun("columnfit", p, opts)
	for changed := true; changed; {
		changed = false
		for col := range key {
			cur := key[col]
			best, bv := math.Inf(-1), cur
			if cur >= 0 {
				s, _, err := r.visit(key)
				if err != nil {
					return Result{}, err
				}
				best = s
			}
			for v := 0; v < values; v++ {
				if v == cur {
					continue
				}
				key[col] = v
				s, _, err := r.visit(key)
				if err != nil {
					return Result{}, err
				}
				if s > best {
					best, bv = s, v
				}
			}
			if bv < 0 {
				bv = 0
			}
			key[col] = bv
			if bv != cur {
				changed = true
			}
		}
	}
	r.obs.done()
	return Result{
		Key:        append([]int(nil), key...),
		Score:      p.Eval(key),
		Iterations: r.res.Iterations,
	}, nil
}
