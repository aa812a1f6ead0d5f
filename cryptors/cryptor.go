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

// Package cryptors defines the interface every classical cipher implements
// along with the pieces they share: the transform mode, the error taxonomy,
// ciphertext normalization and the cipher registry.
//
// A Cipher is not safe for concurrent use.  In particular Solve installs
// trial keys into the cipher while it runs, so nothing else may touch the
// cipher until Solve returns.
package cryptors

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/search"
	"github.com/bgallie/classic/tracker"
)

// Mode selects the direction of a transform.
type Mode int

const (
	Decode Mode = iota
	Encode
)

func (m Mode) String() string {
	if m == Encode {
		return "encode"
	}
	return "decode"
}

// Validation errors.  A cipher returning one of these is unchanged.
var (
	ErrInvalidChar   = errors.New("invalid character")
	ErrInvalidLength = errors.New("invalid length")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidKey    = errors.New("invalid key")
	ErrNoCiphertext  = errors.New("no ciphertext")
	ErrNoPeriod      = errors.New("no period")
	ErrTipNotFound   = errors.New("tip not found")
	ErrUnknownType   = errors.New("unknown cipher type")
)

// Cipher is implemented by every cipher family.
type Cipher interface {
	// Type is the registered name, e.g. "amsco".
	Type() string
	// SetCiphertext normalizes and validates raw and installs it.
	SetCiphertext(raw string) error
	Ciphertext() string
	// Decode applies the installed key.  Positions the key cannot resolve
	// are alphabet.Blank.
	Decode() string
	// Encode enciphers plaintext with the installed key.
	Encode(plaintext string) (string, error)
	// Restore parses and installs a key in the family's external format.
	Restore(key string) error
	// Key renders the installed key in the format Restore accepts.
	Key() string
	// LocateTip aligns a known plaintext fragment against the ciphertext,
	// installs what it implies about the key and returns its plaintext
	// offset.
	LocateTip(tip string) (int, error)
	// Solve searches for the best key, installs it and returns its score.
	// If a callback fails the error is returned and the key in place before
	// the call is restored.
	Solve(opts search.Options) (float64, error)
}

// Periodic ciphers have a period (key length, column count or block width).
type Periodic interface {
	SetPeriod(p int) error
	Period() int
}

// Substituter ciphers build their key incrementally from aligned fragments.
// offset is the plaintext position of pt for families whose key depends on
// position; an empty ct means the ciphertext at that offset.
type Substituter interface {
	Substitute(ct, pt string, offset int) (tracker.Result, error)
	// Undo forgets part of the key; an empty argument forgets all of it.
	Undo(ct string)
}

// Strictable ciphers can refuse to overwrite existing key entries.
type Strictable interface {
	SetStrict(strict bool)
}

// Clean lower cases raw and drops white space and punctuation that is not
// part of alpha.  Any other symbol outside alpha is an error.  subs lists
// two byte folds applied first, e.g. "ji" to write j as i.
func Clean(raw string, alpha *alphabet.Alphabet, subs ...string) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	for _, r := range strings.ToLower(raw) {
		if r < 256 {
			c := byte(r)
			for _, s := range subs {
				if len(s) == 2 && c == s[0] {
					c = s[1]
				}
			}
			if alpha.Contains(c) {
				out = append(out, c)
				continue
			}
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidChar, r)
	}
	return out, nil
}

// CheckPeriod rejects a period below one or longer than a non-empty text.
func CheckPeriod(p, length int) error {
	if p < 1 || (length > 0 && p > length) {
		return fmt.Errorf("%w: %d for length %d", ErrInvalidPeriod, p, length)
	}
	return nil
}

// Locate returns the offset of tip in text.
func Locate(text, tip string) (int, error) {
	if i := strings.Index(text, tip); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrTipNotFound, tip)
}

// Blanks returns n blank symbols, the decoding of text with no usable key.
func Blanks(n int) string {
	return strings.Repeat(string(rune(alphabet.Blank)), n)
}
