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

// Package bifid implements the Bifid.  Each block of plaintext is written as
// its row coordinates followed by its column coordinates in a 5x5 square,
// and the coordinates are read back in pairs as ciphertext letters.
package bifid

import (
	"fmt"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
)

const Type = "bifid"

const size = 5

var (
	_ cryptors.Cipher      = (*Cipher)(nil)
	_ cryptors.Periodic    = (*Cipher)(nil)
	_ cryptors.Substituter = (*Cipher)(nil)
)

// Cipher is a Bifid.  The key square is tracked one coordinate at a time
// so that tips can fix rows and columns independently.
type Cipher struct {
	scorer score.Scorer
	ct     []byte
	period int
	grid   *tracker.Grid
}

func New(s score.Scorer) *Cipher {
	return &Cipher{scorer: s, grid: tracker.NewGrid(alphabet.NoJ, size, size)}
}

func (c *Cipher) Type() string { return Type }

func (c *Cipher) SetCiphertext(raw string) error {
	b, err := cryptors.Clean(raw, alphabet.NoJ, "ji")
	if err != nil {
		return err
	}
	if len(b) == 0 || c.period > len(b) {
		return fmt.Errorf("%w: %d letters for period %d", cryptors.ErrInvalidLength, len(b), c.period)
	}
	c.ct = b
	return nil
}

func (c *Cipher) Ciphertext() string { return string(c.ct) }

// SetPeriod sets the block length.  Until it is set the whole text is one
// block.
func (c *Cipher) SetPeriod(p int) error {
	if err := cryptors.CheckPeriod(p, len(c.ct)); err != nil {
		return err
	}
	c.period = p
	return nil
}

func (c *Cipher) Period() int { return c.period }

// block returns the start and length of the block holding position i of a
// text of n letters.
func (c *Cipher) block(i, n int) (start, length int) {
	p := c.period
	if p == 0 {
		p = n
	}
	start = i / p * p
	length = p
	if start+length > n {
		length = n - start
	}
	return start, length
}

// coords holds the row and column of every letter of a text.
type coords func(sym byte) (row, col int)

// decode deciphers ct with the given coordinate lookup; cell returns the
// letter at a position or false when unknown.
func (c *Cipher) decode(ct []byte, pos coords, cell func(r, col int) (byte, bool)) []byte {
	pt := make([]byte, len(ct))
	seq := make([]int, 0, 2*len(ct))
	for start := 0; start < len(ct); {
		_, n := c.block(start, len(ct))
		seq = seq[:0]
		for _, s := range ct[start : start+n] {
			r, col := pos(s)
			seq = append(seq, r, col)
		}
		for j := 0; j < n; j++ {
			pt[start+j] = alphabet.Blank
			r, col := seq[j], seq[n+j]
			if r == tracker.Unknown || col == tracker.Unknown {
				continue
			}
			if s, ok := cell(r, col); ok {
				pt[start+j] = s
			}
		}
		start += n
	}
	return pt
}

// squareDecode deciphers with a complete square.
func (c *Cipher) squareDecode(sq *alphabet.Square) string {
	pos := func(s byte) (int, int) {
		r, col, _ := sq.Find(s)
		return r, col
	}
	cell := func(r, col int) (byte, bool) { return sq.At(r, col), true }
	return string(c.decode(c.ct, pos, cell))
}

func (c *Cipher) Decode() string {
	return string(c.decode(c.ct, c.grid.Position, c.grid.At))
}

func (c *Cipher) Encode(plaintext string) (string, error) {
	pt, err := cryptors.Clean(plaintext, alphabet.NoJ, "ji")
	if err != nil {
		return "", err
	}
	sq, ok := c.grid.Square()
	if !ok {
		return "", fmt.Errorf("%w: key square %q is incomplete", cryptors.ErrInvalidKey, c.Key())
	}
	ct := make([]byte, len(pt))
	seq := make([]int, 0, 2*len(pt))
	for start := 0; start < len(pt); {
		_, n := c.block(start, len(pt))
		seq = seq[:0]
		for _, s := range pt[start : start+n] {
			r, _, _ := sq.Find(s)
			seq = append(seq, r)
		}
		for _, s := range pt[start : start+n] {
			_, col, _ := sq.Find(s)
			seq = append(seq, col)
		}
		for k := 0; k < n; k++ {
			ct[start+k] = sq.At(seq[2*k], seq[2*k+1])
		}
		start += n
	}
	return string(ct), nil
}

// Key renders the square row by row, '.' for unknown cells.
func (c *Cipher) Key() string { return c.grid.String() }

// Restore installs a 25 letter square, with '.' for unknown cells, or a
// keyword.
func (c *Cipher) Restore(key string) error {
	key = strings.ReplaceAll(strings.ToLower(strings.Join(strings.Fields(key), "")), "j", "i")
	g := tracker.NewGrid(alphabet.NoJ, size, size)
	if len(key) == size*size {
		for i := 0; i < len(key); i++ {
			if key[i] == '.' {
				continue
			}
			if err := g.Set(key[i], i/size, i%size); err != nil {
				return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
			}
		}
	} else {
		a, err := alphabet.Keyed(key, alphabet.NoJ)
		if err != nil {
			return fmt.Errorf("%w: %v", cryptors.ErrInvalidKey, err)
		}
		g.Load(alphabet.NewSquare(a, size, size))
	}
	c.grid = g
	return nil
}

// constraints returns the coordinate equalities that follow from plaintext
// pt standing at offset.
func (c *Cipher) constraints(pt []byte, offset int) []tracker.Equal {
	axis := func(s int) tracker.Axis {
		if s%2 == 0 {
			return tracker.Row
		}
		return tracker.Col
	}
	eqs := make([]tracker.Equal, 0, 2*len(pt))
	for i, p := range pt {
		start, n := c.block(offset+i, len(c.ct))
		j := offset + i - start
		for k, s := range []int{j, n + j} {
			eqs = append(eqs, tracker.Equal{
				A: tracker.Ref{Symbol: p, Axis: tracker.Axis(k)},
				B: tracker.Ref{Symbol: c.ct[start+s/2], Axis: axis(s)},
			})
		}
	}
	return eqs
}

func (c *Cipher) fragment(ct, pt string, offset int) ([]byte, error) {
	p, err := cryptors.Clean(pt, alphabet.NoJ, "ji")
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset+len(p) > len(c.ct) {
		return nil, fmt.Errorf("%w: fragment at %d runs past the ciphertext", cryptors.ErrInvalidLength, offset)
	}
	if ct != "" {
		f, err := cryptors.Clean(ct, alphabet.NoJ, "ji")
		if err != nil {
			return nil, err
		}
		if len(f) != len(p) {
			return nil, tracker.ErrLengthMismatch
		}
		if string(f) != string(c.ct[offset:offset+len(p)]) {
			return nil, fmt.Errorf("%w: %q is not the ciphertext at %d", cryptors.ErrInvalidKey, ct, offset)
		}
	}
	return p, nil
}

// Substitute merges what plaintext pt at offset implies about the square.
// A non-empty ct must be the ciphertext at that offset, since every Bifid
// letter depends on its whole block.
func (c *Cipher) Substitute(ct, pt string, offset int) (tracker.Result, error) {
	p, err := c.fragment(ct, pt, offset)
	if err != nil {
		return tracker.Result{}, err
	}
	if err := c.grid.Constrain(c.constraints(p, offset)...); err != nil {
		return tracker.Result{}, err
	}
	return tracker.Result{Kind: tracker.NewMapping}, nil
}

// Undo forgets the positions of the given letters, or the whole square.
func (c *Cipher) Undo(syms string) {
	if syms == "" {
		c.grid.Reset()
		return
	}
	c.grid.Undo(strings.ReplaceAll(strings.ToLower(syms), "j", "i"))
}

// LocateTip installs the constraints of tip at the first offset where they
// agree with each other and the known square.
func (c *Cipher) LocateTip(tip string) (int, error) {
	t, err := cryptors.Clean(tip, alphabet.NoJ, "ji")
	if err != nil {
		return 0, err
	}
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty tip", cryptors.ErrTipNotFound)
	}
	for off := 0; off+len(t) <= len(c.ct); off++ {
		g := c.grid.Clone()
		if g.Constrain(c.constraints(t, off)...) == nil {
			c.grid = g
			return off, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", cryptors.ErrTipNotFound, tip)
}

// start fills the unknown cells of the tracked square with the unplaced
// letters in alphabetical order.
func (c *Cipher) start() []int {
	key := make([]int, size*size)
	used := make([]bool, size*size)
	for i := range key {
		key[i] = tracker.Unknown
		if s, ok := c.grid.At(i/size, i%size); ok {
			key[i] = alphabet.NoJ.Index(s)
			used[key[i]] = true
		}
	}
	next := 0
	for i := range key {
		if key[i] != tracker.Unknown {
			continue
		}
		for used[next] {
			next++
		}
		key[i] = next
		used[next] = true
	}
	return key
}

func squareOf(key []int) *alphabet.Square {
	b := make([]byte, len(key))
	for i, v := range key {
		b[i] = alphabet.NoJ.Symbol(v)
	}
	return alphabet.NewSquare(alphabet.New(string(b)), size, size)
}

// Solve hill climbs over swaps of two cells, starting from the tracked
// square.
func (c *Cipher) Solve(opts search.Options) (float64, error) {
	if len(c.ct) == 0 {
		return 0, cryptors.ErrNoCiphertext
	}
	key := c.start()
	p := search.Problem{
		Name: Type,
		Eval: func(k []int) float64 { return c.scorer.Score(c.squareDecode(squareOf(k))) },
		Describe: func(k []int) (string, string) {
			sq := squareOf(k)
			return sq.String(), c.squareDecode(sq)
		},
	}
	res, err := search.HillClimb(key, search.Swaps(key), p, opts)
	if err != nil {
		return 0, err
	}
	c.grid.Load(squareOf(res.Key))
	return res.Score, nil
}
