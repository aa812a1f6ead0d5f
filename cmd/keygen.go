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

package cmd

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bgallie/classic/alphabet"
	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/route"
	"github.com/bgallie/tntengine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var proFormaFileName string

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen [passphrase...]",
	Short: "Generate a random key for a cipher type",
	Long: `Generate a random key for the cipher type given by --type.  The key is
drawn from a TNT engine keyed with the passphrase, so the same passphrase and
proforma machine always give the same key.  The passphrase is read from the
terminal, the CLASSIC_SECRET environment variable or the command line, in
that order of preference.  --period sets the key length where the type has
one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cipherType == "" {
			return fmt.Errorf("%w: --type is required", cryptors.ErrUnknownType)
		}
		secret, err := passphrase(args)
		if err != nil {
			return err
		}
		src := newEngineSource(secret, proFormaFileName)
		defer src.Close()
		key, err := generateKey(src, cipherType, period)
		if err != nil {
			return err
		}
		logger.Debug("key generated", "type", cipherType, "period", period)
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVarP(&proFormaFileName, "proformafile", "f", "", "the file name containing the proforma machine to use instead of the builtin proforma machine.")
}

// passphrase obtains the secret from the terminal, the environment or the
// arguments.
func passphrase(args []string) (string, error) {
	var secret string
	if len(args) == 0 {
		if viper.IsSet("SECRET") {
			secret = viper.GetString("SECRET")
		} else if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "Enter the passphrase: ")
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr, "")
			if err != nil {
				return "", err
			}
			secret = string(b)
		}
	} else {
		secret = strings.Join(args, " ")
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("you must supply a passphrase")
	}
	return secret, nil
}

// source supplies uniformly distributed integers in [0,n).
type source interface {
	Intn(n int) int
}

// engineSource is a byte stream taken from a TNT engine enciphering blocks
// of zeros.
type engineSource struct {
	left  chan<- tntengine.CypherBlock
	right <-chan tntengine.CypherBlock
	buf   []byte
}

func newEngineSource(secret, proForma string) *engineSource {
	var tntMachine tntengine.TntEngine
	tntMachine.Init([]byte(secret), proForma)
	tntMachine.SetEngineType("E")
	tntMachine.BuildCipherMachine()
	tntMachine.SetIndex(tntengine.BigZero)
	return &engineSource{left: tntMachine.Left(), right: tntMachine.Right()}
}

func (s *engineSource) fill() {
	blk := *new(tntengine.CypherBlock)
	blk.Length = tntengine.CypherBlockBytes
	s.left <- blk
	blk = <-s.right
	s.buf = append(s.buf, blk.CypherBlock[:blk.Length]...)
}

func (s *engineSource) uint32() uint32 {
	for len(s.buf) < 4 {
		s.fill()
	}
	v := binary.BigEndian.Uint32(s.buf)
	s.buf = s.buf[4:]
	return v
}

// Intn rejects the top of the range so every value is equally likely.
func (s *engineSource) Intn(n int) int {
	if n <= 0 {
		panic("keygen: Intn of a non-positive bound")
	}
	limit := ^uint32(0) - ^uint32(0)%uint32(n)
	for {
		if v := s.uint32(); v < limit {
			return int(v % uint32(n))
		}
	}
}

// Close shuts the engine down by sending a block with a zero length.
func (s *engineSource) Close() {
	var blk tntengine.CypherBlock
	s.left <- blk
	<-s.right
}

func shuffle(src source, b []byte) []byte {
	for i := len(b) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		b[i], b[j] = b[j], b[i]
	}
	return b
}

func arrangement(src source, a *alphabet.Alphabet) string {
	return string(shuffle(src, []byte(a.String())))
}

func word(src source, a *alphabet.Alphabet, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = a.Symbol(src.Intn(a.Len()))
	}
	return string(b)
}

// latinSquare shuffles the rows, columns and symbols of the cyclic square of
// order n.
func latinSquare(src source, n int) string {
	rows := shuffle(src, []byte(alphabet.Digits.String()[1:n+1]))
	cols := shuffle(src, []byte(alphabet.Digits.String()[1:n+1]))
	syms := shuffle(src, []byte(alphabet.Digits.String()[1:n+1]))
	out := make([]string, n)
	for r := 0; r < n; r++ {
		b := make([]byte, n)
		for c := 0; c < n; c++ {
			b[c] = syms[(int(rows[r]-'1')+int(cols[c]-'1'))%n]
		}
		out[r] = string(b)
	}
	return strings.Join(out, " ")
}

// keyShape builds a key for one cipher type; n is the requested period.
type keyShape struct {
	period bool
	min    int
	max    int
	build  func(src source, n int) string
}

func letters(src source, n int) string { return word(src, alphabet.Lower, n) }

var keyShapes = map[string]keyShape{
	"aristocrat": {build: func(src source, _ int) string { return arrangement(src, alphabet.Lower) }},
	"vigenere":   {period: true, build: letters},
	"variant":    {period: true, build: letters},
	"beaufort":   {period: true, build: letters},
	"porta":      {period: true, build: letters},
	"gronsfeld": {period: true, build: func(src source, n int) string {
		return word(src, alphabet.Digits, n)
	}},
	"quagmire1": {period: true, build: quagmire(1)},
	"quagmire2": {period: true, build: quagmire(1)},
	"quagmire3": {period: true, build: quagmire(1)},
	"quagmire4": {period: true, build: quagmire(2)},
	"playfair":  {build: func(src source, _ int) string { return arrangement(src, alphabet.NoJ) }},
	"bifid":     {build: func(src source, _ int) string { return arrangement(src, alphabet.NoJ) }},
	"digrafid": {build: func(src source, _ int) string {
		return arrangement(src, alphabet.Hash27) + " " + arrangement(src, alphabet.Hash27)
	}},
	"route": {period: true, build: func(src source, n int) string {
		return fmt.Sprintf("%d %d %d", n, src.Intn(route.Routes)+1, src.Intn(route.Routes)+1)
	}},
	"swagman":    {period: true, min: 2, max: 9, build: latinSquare},
	"myszkowski": {period: true, build: letters},
	"nicodemus":  {period: true, build: letters},
	"cadenus":    {period: true, build: letters},
	"amsco": {period: true, build: func(src source, n int) string {
		order := shuffle(src, []byte(alphabet.Lower.String()[:n]))
		return string(order) + " " + strconv.Itoa(src.Intn(2)+1)
	}},
	"homophonic": {build: func(src source, _ int) string { return word(src, alphabet.NoJ, 4) }},
	"pollux":     {build: func(src source, _ int) string { return string(shuffle(src, []byte("....---xxx"))) }},
	"baconian": {build: func(src source, _ int) string {
		return string(shuffle(src, []byte(strings.Repeat("a", 13)+strings.Repeat("b", 13))))
	}},
}

func quagmire(alphabets int) func(source, int) string {
	return func(src source, n int) string {
		parts := make([]string, 0, alphabets+1)
		for i := 0; i < alphabets; i++ {
			parts = append(parts, arrangement(src, alphabet.Lower))
		}
		return strings.Join(append(parts, letters(src, n)), " ")
	}
}

// defaultPeriod is used when a periodic type is given no period.
const defaultPeriod = 6

// generateKey draws a key for typ from src in the form the type's Restore
// accepts.
func generateKey(src source, typ string, n int) (string, error) {
	shape, ok := keyShapes[typ]
	if !ok {
		return "", fmt.Errorf("%w: %q, keygen knows %s", cryptors.ErrUnknownType, typ, strings.Join(keygenTypes(), " "))
	}
	if shape.period {
		if n == 0 {
			n = defaultPeriod
		}
		hi := shape.max
		if hi == 0 {
			hi = alphabet.Lower.Len()
		}
		if n < 1 || n < shape.min || n > hi {
			return "", fmt.Errorf("%w: %d for %s", cryptors.ErrInvalidPeriod, n, typ)
		}
	}
	return shape.build(src, n), nil
}

// keygenTypes lists the types keygen knows, sorted.
func keygenTypes() []string {
	out := make([]string, 0, len(keyShapes))
	for t := range keyShapes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
