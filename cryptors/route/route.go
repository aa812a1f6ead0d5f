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

// Package route implements the route transposition.  The plaintext is
// written into a rectangle along one route and read out along another.
package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/permutator"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
)

const Type = "route"

var (
	_ cryptors.Cipher   = (*Cipher)(nil)
	_ cryptors.Periodic = (*Cipher)(nil)
)

// Key is a grid width and the routes used to read and write the grid.
type Key struct {
	Width, Read, Write int
}

func (k Key) String() string { return fmt.Sprintf("%d %d %d", k.Width, k.Read, k.Write) }

// Cipher is a route transposition.  Its period is the grid width.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	width  int
	key    *Key
	router *Router
	inv    []int
	perm   permutator.Permutator
}

func New(s score.Scorer) *Cipher { return &Cipher{scorer: s, router: NewRouter()} }

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.Lower)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return fmt.Errorf("%w: empty ciphertext", cryptors.ErrInvalidLength)
	}
	if c.width > 0 && len(b)%c.width != 0 {
		return fmt.Errorf("%w: %d letters do not fill rows of %d", cryptors.ErrInvalidLength, len(b), c.width)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the grid width, which must divide the ciphertext length.
// It forgets the routes.
func (c *Cipher) SetPeriod(w int) error {
	if err := cryptors.CheckPeriod(w, len(c.ct)); err != nil {
		return err
	}
	if len(c.ct)%w != 0 {
		return fmt.Errorf("%w: %d does not divide %d", cryptors.ErrInvalidPeriod, w, len(c.ct))
	}
	c.width, c.key = w, nil
	return nil
}

func (c *Cipher) Period() int { return c.width }

// positions maps ciphertext to plaintext positions: plaintext letter i is
// written to cell write[i] and ciphertext letter j is read from cell
// read[j].
func (c *Cipher) positions(length int, k Key) []int {
	h := length / k.Width
	write := c.router.Route(k.Write, k.Width, h)
	read := c.router.Route(k.Read, k.Width, h)
	if cap(c.inv) < length {
		c.inv = make([]int, length)
	}
	inv := c.inv[:length]
	for i, cell := range write {
		inv[cell] = i
	}
	m := make([]int, length)
	for j, cell := range read {
		m[j] = inv[cell]
	}
	return m
}

func (c *Cipher) transform(text []byte, k Key, mode cryptors.Mode) string {
	c.perm.Update(c.positions(len(text), k))
	return string(c.perm.Transform(text, mode))
}

func (c *Cipher) Decode() string {
	if c.key == nil {
		return cryptors.Blanks(len(c.ct))
	}
	return c.transform(c.ct, *c.key, cryptors.Decode)
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.Lower)
	if err != nil {
		return "", err
	}
	if c.key == nil {
		return "", fmt.Errorf("%w: no routes", cryptors.ErrInvalidKey)
	}
	if len(pt) == 0 || len(pt)%c.key.Width != 0 {
		return "", fmt.Errorf("%w: %d letters do not fill rows of %d", cryptors.ErrInvalidLength, len(pt), c.key.Width)
	}
	return c.transform(pt, *c.key, cryptors.Encode), nil
}

func (c *Cipher) Key() string {
	if c.key == nil {
		return ""
	}
	return c.key.String()
}

// Restore installs a key "width read write", routes numbered 1 to 48.
func (c *Cipher) Restore(key string) error {
	f := strings.Fields(key)
	if len(f) != 3 {
		return fmt.Errorf("%w: want width, read and write route in %q", cryptors.ErrInvalidKey, key)
	}
	var v [3]int
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || (i > 0 && n > Routes) {
			return fmt.Errorf("%w: %q in %q", cryptors.ErrInvalidKey, s, key)
		}
		v[i] = n
	}
	k := Key{Width: v[0], Read: v[1], Write: v[2]}
	if len(c.ct) > 0 {
		if err := cryptors.CheckPeriod(k.Width, len(c.ct)); err != nil {
			return err
		}
		if len(c.ct)%k.Width != 0 {
			return fmt.Errorf("%w: %d does not divide %d", cryptors.ErrInvalidPeriod, k.Width, len(c.ct))
		}
	}
	c.width, c.key = k.Width, &k
	return nil
}

// widths lists the grid widths to search: the period if set, else every
// divisor of the ciphertext length.
func (c *Cipher) widths() []int {
	if c.width > 0 {
		return []int{c.width}
	}
	var ws []int
	for w := 1; w <= len(c.ct); w++ {
		if len(c.ct)%w == 0 {
			ws = append(ws, w)
		}
	}
	return ws
}

func (c *Cipher) search(s score.Scorer, opts search.Options) (Key, search.Result, error) {
	ws := c.widths()
	key := func(v []int) Key { return Key{Width: ws[v[0]], Read: v[1] + 1, Write: v[2] + 1} }
	p := search.Problem{
		Name: Type,
		Eval: func(v []int) float64 { return s.Score(c.transform(c.ct, key(v), cryptors.Decode)) },
		Describe: func(v []int) (string, string) {
			k := key(v)
			return k.String(), c.transform(c.ct, k, cryptors.Decode)
		},
	}
	res, err := search.Exhaustive(search.Odometer(len(ws), Routes, Routes), p, opts)
	if err != nil || res.Key == nil {
		return Key{}, res, err
	}
	return key(res.Key), res, nil
}

// Solve tries every pair of routes on every candidate width.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	k, res, err := c.search(c.scorer, opts)
	if err != nil || res.Key == nil {
		return res.Score, err
	}
	c.width, c.key = k.Width, &k
	return res.Score, nil
}

func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.Lower)
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	k, res, err := c.search(score.RequireTip(c.scorer, string(t)), search.Options{})
	if err != nil {
		return 0, err
	}
	if res.Key == nil {
		return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
	}
	c.width, c.key = k.Width, &k
	return cryptors.Locate(c.Decode(), string(t))
}
