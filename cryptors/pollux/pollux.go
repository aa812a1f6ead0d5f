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

// Package pollux implements the Pollux, a Morse code cipher.  Each digit
// stands for a dot, a dash or the x that separates letters, and the
// encipherer picks freely among the digits standing for a symbol.
package pollux

import (
	"fmt"
	"math"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "pollux"

// symbols are the Morse symbols a digit can stand for, in key value order.
const symbols = ".-x"

// unknown marks a digit whose symbol is not known.
const unknown = '?'

var morse = map[byte]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".", 'f': "..-.",
	'g': "--.", 'h': "....", 'i': "..", 'j': ".---", 'k': "-.-", 'l': ".-..",
	'm': "--", 'n': "-.", 'o': "---", 'p': ".--.", 'q': "--.-", 'r': ".-.",
	's': "...", 't': "-", 'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-",
	'y': "-.--", 'z': "--..",
}

var letters = func() map[string]byte {
	m := make(map[string]byte, len(morse))
	for l, code := range morse {
		m[code] = l
	}
	return m
}()

var _ cryptors.Cipher = (*Cipher)(nil)

// Cipher is a Pollux.  key holds the symbol of each digit.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	key    [10]byte
}

func New(s score.Scorer) *Cipher {
	c := &Cipher{scorer: s}
	for i := range c.key {
		c.key[i] = unknown
	}
	return c
}

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Digits)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return fmt.Errorf("%w: empty ciphertext", cryptors.ErrInvalidLength)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// decode reads the Morse letters of ct under key.  A letter holding an
// unknown digit or an invalid code decodes as a blank; runs of separators
// decode as nothing.  bad counts the invalid letters.
func decode(ct []byte, key *[10]byte) (text string, bad int) {
	var out strings.Builder
	var code []byte
	known := true
	flush := func() {
		switch {
		case len(code) == 0:
		case !known:
			out.WriteByte(alphabet.Blank)
		default:
			if l, ok := letters[string(code)]; ok {
				out.WriteByte(l)
			} else {
				out.WriteByte(alphabet.Blank)
				bad++
			}
		}
		code, known = code[:0], true
	}
	for _, d := range ct {
		s := key[d-'0']
		switch s {
		case 'x':
			flush()
		case unknown:
			known = false
			code = append(code, s)
		default:
			code = append(code, s)
		}
	}
	flush()
	return out.String(), bad
}

func (c *Cipher) Decode() string {
	text, _ := decode(c.ct, &c.key)
	return text
}

// Encode writes each symbol with the next of its digits in turn.  Every
// symbol needs at least one digit.
func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	var digits [3][]byte
	for d, s := range c.key {
		if i := strings.IndexByte(symbols, s); i >= 0 {
			digits[i] = append(digits[i], byte('0'+d))
		}
	}
	for i, ds := range digits {
		if len(ds) == 0 {
			return "", fmt.Errorf("%w: no digit stands for %q", cryptors.ErrInvalidKey, symbols[i])
		}
	}
	var used [3]int
	var out []byte
	put := func(s byte) {
		i := strings.IndexByte(symbols, s)
		out = append(out, digits[i][used[i]%len(digits[i])])
		used[i]++
	}
	for i, l := range pt {
		if i > 0 {
			put('x')
		}
		for _, s := range []byte(morse[l]) {
			put(s)
		}
	}
	return string(out), nil
}

// Key lists the symbol of digits 0 through 9, '?' for an unknown digit.
func (c *Cipher) Key() string { return string(c.key[:]) }

// Restore installs ten symbols from ".-x?".
func (c *Cipher) Restore(key string) error {
	key = strings.ToLower(strings.Join(strings.Fields(key), ""))
	if len(key) != len(c.key) {
		return fmt.Errorf("%w: want %d symbols, got %q", cryptors.ErrInvalidKey, len(c.key), key)
	}
	for i := 0; i < len(key); i++ {
		if key[i] != unknown && strings.IndexByte(symbols, key[i]) < 0 {
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, key[i], key)
		}
	}
	copy(c.key[:], key)
	return nil
}

// candidates is the search space: the known digits are held and every
// unknown digit runs through the three symbols.
func (c *Cipher) candidates() (search.Source, func([]int) *[10]byte) {
	radix := make([]int, len(c.key))
	for i, s := range c.key {
		radix[i] = 1
		if s == unknown {
			radix[i] = len(symbols)
		}
	}
	var k [10]byte
	return search.Odometer(radix...), func(v []int) *[10]byte {
		for i, s := range c.key {
			k[i] = s
			if s == unknown {
				k[i] = symbols[v[i]]
			}
		}
		return &k
	}
}

// problem scores a key by the mean score per letter of its decoding, so
// that keys producing fewer letters do not win on length alone.  A key
// producing an invalid letter scores -Inf.
func (c *Cipher) problem(s score.Scorer, key func([]int) *[10]byte) search.Problem {
	return search.Problem{
		Name: Type,
		Eval: func(v []int) float64 {
			text, bad := decode(c.ct, key(v))
			if bad > 0 || len(text) == 0 {
				return math.Inf(-1)
			}
			return s.Score(text) / float64(len(text))
		},
		Describe: func(v []int) (string, string) {
			k := key(v)
			text, _ := decode(c.ct, k)
			return string(k[:]), text
		},
	}
}

func (c *Cipher) search(s score.Scorer, opts search.Options) (search.Result, error) {
	src, key := c.candidates()
	res, err := search.Exhaustive(src, c.problem(s, key), opts)
	if err != nil {
		return search.Result{}, err
	}
	if res.Key != nil {
		c.key = *key(res.Key)
	}
	return res, nil
}

// Solve tries every assignment of the unknown digits.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	res, err := c.search(c.scorer, opts)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// LocateTip solves over the keys whose decoding contains tip and installs
// the best of them.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	res, err := c.search(score.RequireTip(c.scorer, string(t)), search.Options{})
	if err != nil {
		return 0, err
	}
	if res.Key == nil {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
	}
	return cryptors.Locate(c.Decode(), string(t))
}
