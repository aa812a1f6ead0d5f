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

// Package score supplies the language statistics used to rank candidate
// decryptions.  Higher scores are more English-like.
package score

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"strings"
)

// Scorer rates a candidate plaintext.  Score must depend only on text.
type Scorer interface {
	Score(text string) float64
}

// Func adapts a function to Scorer.
type Func func(string) float64

func (f Func) Score(text string) float64 { return f(text) }

//go:embed english.txt
var english string

// Ngram scores text by log10 n-gram probabilities learned from a corpus.
// Every letter position contributes the n-gram starting there when the
// n letters are all present; otherwise (at a blank, the end of the text, or
// a word break) it contributes its single letter probability.
type Ngram struct {
	n       int
	grams   map[string]float64
	letters [26]float64
	floor   float64
}

// NewNgram learns n-gram statistics from the letters of corpus.  Anything
// that is not a letter is ignored, so n-grams run across word breaks.
func NewNgram(corpus io.Reader, n int) (*Ngram, error) {
	if n < 1 {
		return nil, fmt.Errorf("n-gram size %d must be at least 1", n)
	}
	var letters []byte
	rdr := bufio.NewReader(corpus)
	for {
		c, err := rdr.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) < n {
		return nil, fmt.Errorf("corpus has %d letters, need at least %d", len(letters), n)
	}

	counts := make(map[string]int)
	for i := 0; i+n <= len(letters); i++ {
		counts[string(letters[i:i+n])]++
	}
	var single [26]int
	for _, c := range letters {
		single[c-'a']++
	}

	g := &Ngram{n: n, grams: make(map[string]float64, len(counts))}
	total := float64(len(letters) - n + 1)
	for k, v := range counts {
		g.grams[k] = math.Log10(float64(v) / total)
	}
	g.floor = math.Log10(0.01 / total)
	for i, v := range single {
		if v == 0 {
			g.letters[i] = math.Log10(0.01 / float64(len(letters)))
		} else {
			g.letters[i] = math.Log10(float64(v) / float64(len(letters)))
		}
	}
	return g, nil
}

// English returns an n-gram scorer trained on the built in English sample.
func English(n int) (*Ngram, error) {
	return NewNgram(strings.NewReader(english), n)
}

// N returns the n-gram size.
func (g *Ngram) N() int { return g.n }

func letter(c byte) bool { return c >= 'a' && c <= 'z' }

// Score implements Scorer.  Characters other than lower case letters
// contribute nothing and break n-grams.
func (g *Ngram) Score(text string) float64 {
	s := 0.0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !letter(c) {
			continue
		}
		if i+g.n <= len(text) && whole(text[i:i+g.n]) {
			if v, ok := g.grams[text[i:i+g.n]]; ok {
				s += v
			} else {
				s += g.floor
			}
			continue
		}
		s += g.letters[c-'a']
	}
	return s
}

func whole(w string) bool {
	for i := 0; i < len(w); i++ {
		if !letter(w[i]) {
			return false
		}
	}
	return true
}

type tipScorer struct {
	s   Scorer
	tip string
}

// RequireTip wraps s so that text not containing tip scores negative
// infinity.
func RequireTip(s Scorer, tip string) Scorer {
	return tipScorer{s: s, tip: tip}
}

func (t tipScorer) Score(text string) float64 {
	if !strings.Contains(text, t.tip) {
		return math.Inf(-1)
	}
	return t.s.Score(text)
}

// Letters strips everything but lower case letters, for scoring plaintext
// that keeps word breaks.
func Letters(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if letter(text[i]) {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// Match scores text by the number of positions that agree with a known
// plaintext.  It is useful for checking a solver against a known answer.
func Match(want string) Scorer {
	return Func(func(text string) float64 {
		n := 0
		for i := 0; i < len(text) && i < len(want); i++ {
			if text[i] == want[i] {
				n++
			}
		}
		return float64(n)
	})
}
