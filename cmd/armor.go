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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
)

const (
	armorType   = "CLASSIC CIPHERTEXT"
	asciiPrefix = "+CLASSIC|"
)

// armorOptions selects the transport form of a ciphertext.
type armorOptions struct {
	pem, ascii85, compress bool
}

// header is what an armored ciphertext records about itself.
type header struct {
	Type       string
	Period     int
	Compressed bool
}

// toPipe feeds rdr into a pipe so the filters can be chained on it.
func toPipe(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	go func() {
		_, err := io.Copy(rWrtr, rdr)
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// writeArmored writes text to w as plain text, a PEM block or an ascii85
// stream, optionally compressed first.
func writeArmored(w io.Writer, h header, text string, o armorOptions) error {
	if !o.pem && !o.ascii85 {
		if o.compress {
			return errors.New("compression needs --pem or --ascii85")
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}
	src := toPipe(strings.NewReader(text))
	if o.compress {
		src = toPipe(flate.ToFlate(src))
	}
	var err error
	if o.pem {
		var blck pem.Block
		blck.Type = armorType
		blck.Headers = map[string]string{
			"Cipher":      h.Type,
			"Period":      strconv.Itoa(h.Period),
			"Compression": strconv.FormatBool(o.compress),
		}
		_, err = io.Copy(w, pem.ToPem(bufio.NewReader(src), blck))
	} else {
		if _, err = fmt.Fprintf(w, "%s%s|%d|%v\n", asciiPrefix, h.Type, h.Period, o.compress); err != nil {
			return err
		}
		_, err = io.Copy(w, lines.SplitToLines(ascii85.ToASCII85(src)))
	}
	return err
}

// readArmored reverses writeArmored.  Plain text comes back unchanged with
// an empty header.
func readArmored(r io.Reader) (string, header, error) {
	var h header
	bRdr := bufio.NewReader(r)
	b, _ := bRdr.Peek(len(asciiPrefix))
	var data *io.PipeReader
	switch {
	case strings.HasPrefix(string(b), "-----"):
		var blck pem.Block
		data, blck = pem.FromPem(bRdr)
		h.Type = blck.Headers["Cipher"]
		h.Period, _ = strconv.Atoi(blck.Headers["Period"])
		h.Compressed = blck.Headers["Compression"] == "true"
	case string(b) == asciiPrefix:
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return "", h, err
		}
		fields := strings.Split(strings.TrimSpace(line), "|")
		if len(fields) != 4 {
			return "", h, fmt.Errorf("malformed header %q", strings.TrimSpace(line))
		}
		h.Type = fields[1]
		if h.Period, err = strconv.Atoi(fields[2]); err != nil {
			return "", h, fmt.Errorf("malformed header %q: %w", strings.TrimSpace(line), err)
		}
		h.Compressed = fields[3] == "true"
		data = ascii85.FromASCII85(lines.CombineLines(bRdr))
	default:
		all, err := io.ReadAll(bRdr)
		return string(all), h, err
	}
	if h.Compressed {
		data = flate.FromFlate(data)
	}
	all, err := io.ReadAll(data)
	return string(all), h, err
}
