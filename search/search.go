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

// Package search is the best-fit key search engine shared by the cipher
// families: exhaustive enumeration of a candidate source, hill climbing over
// a neighborhood of moves, and per-column fitting.
//
// Searches run synchronously on the calling goroutine.  The problem's Eval
// function normally installs the trial key into a cipher and scores the
// resulting plaintext, so a cipher must not be used by anything else while a
// search over it is running.  The only way to stop a search early is for a
// callback to return an error; the error is returned unchanged and no key is
// committed by the caller.
package search

import (
	"math"
)

// Event describes a candidate reported to a callback.
type Event struct {
	Iteration uint64
	Key       string
	Score     float64
	Text      string
}

// Callback receives progress or best fit events.  A non-nil error aborts the
// search.
type Callback func(Event) error

// Options controls callbacks and instrumentation of a search run.
type Options struct {
	// Interval is the number of candidates between Progress calls.  Zero
	// disables progress reporting.
	Interval uint64
	// Progress is called with the current candidate every Interval
	// candidates.
	Progress Callback
	// BestFit is called each time a strictly better candidate is found.
	BestFit Callback
	// Metrics, if set, records candidate and improvement counts.
	Metrics *Metrics
}

// Problem binds a key search to a cipher.
type Problem struct {
	// Name labels metrics, e.g. "amsco".
	Name string
	// Eval installs key as the trial key and returns the score of the
	// resulting plaintext.
	Eval func(key []int) float64
	// Describe renders the key and plaintext for a callback.  It is only
	// called directly after Eval with the same key.
	Describe func(k []int) (key string, text string)
}

// Result is the outcome of a search.  Key is nil when no candidate scored
// above negative infinity.
type Result struct {
	Key        []int
	Score      float64
	Iterations uint64
}

func (p Problem) event(it uint64, key []int, score float64) Event {
	e := Event{Iteration: it, Score: score}
	if p.Describe != nil {
		e.Key, e.Text = p.Describe(key)
	}
	return e
}

type run struct {
	p    Problem
	opts Options
	obs  observer
	res  Result
}

func newRun(algorithm string, p Problem, opts Options) *run {
	return &run{
		p:    p,
		opts: opts,
		obs:  opts.Metrics.observe(algorithm, p.Name),
		res:  Result{Score: math.Inf(-1)},
	}
}

// visit scores key and reports it.  It returns the score and whether key is
// a new best.
func (r *run) visit(key []int) (float64, bool, error) {
	r.res.Iterations++
	s := r.p.Eval(key)
	r.obs.candidate()
	if r.opts.Interval > 0 && r.opts.Progress != nil && r.res.Iterations%r.opts.Interval == 0 {
		if err := r.opts.Progress(r.p.event(r.res.Iterations, key, s)); err != nil {
			return s, false, err
		}
	}
	if !(s > r.res.Score) {
		return s, false, nil
	}
	r.res.Score = s
	r.res.Key = append(r.res.Key[:0], key...)
	r.obs.improvement(s)
	if r.opts.BestFit != nil {
		if err := r.opts.BestFit(r.p.event(r.res.Iterations, key, s)); err != nil {
			return s, true, err
		}
	}
	return s, true, nil
}

// Exhaustive evaluates every candidate of src and returns the best.  Ties keep
// the first candidate found.
func Exhaustive(src Source, p Problem, opts Options) (Result, error) {
	r := newRun("exhaustive", p, opts)
	src.Reset()
	for src.Next() {
		if _, _, err := r.visit(src.Value()); err != nil {
			return Result{}, err
		}
	}
	r.obs.done()
	return r.res, nil
}
