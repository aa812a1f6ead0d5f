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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArmorRoundTrip(t *testing.T) {
	text := strings.Repeat("oyjafyeyrluglbrtlvvarsnzaxaaauloadyfknuwgbghvkzhdf", 4)
	h := header{Type: "vigenere", Period: 3}
	cases := map[string]armorOptions{
		"plain":           {},
		"pem":             {pem: true},
		"pem compressed":  {pem: true, compress: true},
		"ascii85":         {ascii85: true},
		"ascii85 deflate": {ascii85: true, compress: true},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeArmored(&buf, h, text, o))
			got, gh, err := readArmored(&buf)
			require.NoError(t, err)
			assert.Equal(t, text, strings.TrimSpace(got))
			if o.pem || o.ascii85 {
				assert.Equal(t, header{Type: h.Type, Period: h.Period, Compressed: o.compress}, gh)
			} else {
				assert.Equal(t, header{}, gh)
			}
		})
	}
}

func TestArmorErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeArmored(&buf, header{}, "abc", armorOptions{compress: true}))
	_, _, err := readArmored(strings.NewReader(asciiPrefix + "vigenere|x|false\n"))
	assert.Error(t, err)
	_, _, err = readArmored(strings.NewReader(asciiPrefix + "vigenere\n"))
	assert.Error(t, err)
}
