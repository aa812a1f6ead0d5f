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

// Package aristocrat implements the Aristocrat, a simple substitution of the
// 26 letter alphabet.
package aristocrat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
)

const Type = "aristocrat"

// frequencyOrder lists English letters from most to least common.  A solve
// without a partial key starts by pairing it with the ciphertext frequencies.
const frequencyOrder = "etaoinshrdlcumwfgypbvkjxqz"

var (
	_ cryptors.Cipher      = (*Cipher)(nil)
	_ cryptors.Substituter = (*Cipher)(nil)
	_ cryptors.Strictable  = (*Cipher)(nil)
)

// Cipher is an Aristocrat.  Its key is a substitution tracker from
// ciphertext to plaintext letters that may be only partly known.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	key    *tracker.Substitution
}

// New returns an Aristocrat with no ciphertext and an empty key.
func New(s score.Scorer) *Cipher {
	return &Cipher{scorer: s, key: tracker.NewSubstitution(alphabet.Lower, alphabet.Lower)}
}

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
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

func (c *Cipher) Decode() string { return c.key.Decode(string(c.ct)) }

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	ct, ok := c.key.Encode(string(pt))
	if !ok {
		return "", fmt.Errorf("%w: key does not cover the plaintext", cryptors.ErrInvalidKey)
	}
	return ct, nil
}

// Restore accepts either the 26 plaintext partners of a..z or a ciphertext
// alphabet and its partners as two fields.  '.' marks an unknown partner.
func (c *Cipher) Restore(key string) error {
	fields := strings.Fields(strings.ToLower(key))
	var cts, pts string
	switch len(fields) {
	case 1:
		cts, pts = alphabet.Lower.String(), fields[0]
	case 2:
		cts, pts = fields[0], fields[1]
	default:
		return fmt.Errorf("%w: %q", cryptors.ErrInvalidKey, key)
	}
	if len(cts) != len(pts) {
		return fmt.Errorf("%w: %d ciphertext letters for %d partners", cryptors.ErrInvalidKey, len(cts), len(pts))
	}
	var sc, sp []byte
	for i := 0; i < len(pts); i++ {
		if pts[i] != '.' {
			sc = append(sc, cts[i])
			sp = append(sp, pts[i])
		}
	}
	n := tracker.NewSubstitution(alphabet.Lower, alphabet.Lower)
	n.SetStrict(true)
	if _, err := n.Substitute(string(sc), string(sp)); err != nil {
		return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
	}
	n.SetStrict(c.key.Strict())
	c.key = n
	return nil
}

func (c *Cipher) Key() string { return c.key.String() }

func (c *Cipher) SetStrict(strict bool) { c.key.SetStrict(strict) }

// Substitute records that the ciphertext fragment ct deciphers to pt.  With
// an empty ct the fragment is taken from the ciphertext at offset.
func (c *Cipher) Substitute(ct, pt string, offset int) (tracker.Result, error) {
	p, err := cryptors.Clean(pt, alphabet.Lower)
	if err != nil {
		return tracker.Result{}, err
	}
	var f []byte
	if ct == "" {
		if offset < 0 || offset+len(p) > len(c.ct) {
			return tracker.Result{}, fmt.Errorf("%w: fragment at %d runs past the ciphertext", cryptors.ErrInvalidLength, offset)
		}
		f = c.ct[offset : offset+len(p)]
	} else if f, err = cryptors.Clean(ct, alphabet.Lower); err != nil {
		return tracker.Result{}, err
	}
	return c.key.Substitute(string(f), string(p))
}

func (c *Cipher) Undo(ct string) {
	if ct == "" {
		c.key.Reset()
		return
	}
	c.key.Undo(strings.ToLower(ct))
}

// LocateTip finds the first ciphertext fragment whose letter pattern fits the
// tip and the key built so far, without any letter standing for itself, and
// adds the tip to the key.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty tip", cryptors.ErrTipNotFound)
	}
next:
	for off := 0; off+len(t) <= len(c.ct); off++ {
		f := c.ct[off : off+len(t)]
		for i := range f {
			if f[i] == t[i] {
				continue next
			}
		}
		trial := c.key.Clone()
		trial.SetStrict(true)
		if _, err := trial.Substitute(string(f), string(t)); err != nil {
			continue
		}
		if _, err := c.key.Substitute(string(f), string(t)); err != nil {
			return 0, err
		}
		return off, nil
	}
	return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
}

// startKey completes the installed key into a full assignment, indexed by
// ciphertext letter.  Unassigned ciphertext letters take the free plaintext
// letters in frequency order, most frequent first.
func (c *Cipher) startKey() []int {
	const n = 26
	key := make([]int, n)
	var used [n]bool
	var counts [n]int
	for _, ch := range c.ct {
		counts[alphabet.Lower.Index(ch)]++
	}
	var free []int
	for i := 0; i < n; i++ {
		key[i] = -1
		if p, ok := c.key.Lookup(alphabet.Lower.Symbol(i)); ok {
			key[i] = alphabet.Lower.Index(p)
			used[key[i]] = true
		} else {
			free = append(free, i)
		}
	}
	sort.SliceStable(free, func(i, j int) bool { return counts[free[i]] > counts[free[j]] })
	next := 0
	for _, ci := range free {
		for used[alphabet.Lower.Index(frequencyOrder[next])] {
			next++
		}
		key[ci] = alphabet.Lower.Index(frequencyOrder[next])
		used[key[ci]] = true
	}
	return key
}

func (c *Cipher) decodeWith(buf []byte, key []int) string {
	for i, ch := range c.ct {
		buf[i] = alphabet.Lower.Symbol(key[alphabet.Lower.Index(ch)])
	}
	return string(buf)
}

func render(key []int) string {
	b := make([]byte, len(key))
	for i, v := range key {
		b[i] = alphabet.Lower.Symbol(v)
	}
	return alphabet.Lower.String() + " " + string(b)
}

// Solve hill climbs over exchanges of two plaintext letters, starting from
// the installed key.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	key := c.startKey()
	buf := make([]byte, len(c.ct))
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return c.scorer.Score(c.decodeWith(buf, k)) },
		Describe: func(k []int) (string, string) {
			return render(k), c.decodeWith(make([]byte, len(c.ct)), k)
		},
	}
	res, err := search.HillClimb(key, search.Swaps(key), p, opts)
	if err != nil {
		return 0, err
	}
	if err := c.Restore(render(res.Key)); err != nil {
		panic(fmt.Sprintf("aristocrat: solved key rejected: %v", err))
	}
	return res.Score, nil
}
