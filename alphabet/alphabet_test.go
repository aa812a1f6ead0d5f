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

package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed(t *testing.T) {
	cases := []struct {
		keyword, want string
	}{
		{"", "abcdefghijklmnopqrstuvwxyz"},
		{"keyword", "keywordabcfghijlmnpqstuvxz"},
		{"balloon", "baloncdefghijkmpqrstuvwxyz"},
	}
	for _, c := range cases {
		got, err := Keyed(c.keyword, Lower)
		require.NoError(t, err)
		assert.Equal(t, c.want, got.String(), "Keyed(%q)", c.keyword)
	}
	_, err := Keyed("j", NoJ)
	assert.ErrorIs(t, err, ErrSymbol)
}

func TestParse(t *testing.T) {
	_, err := Parse("abc", Lower)
	assert.Error(t, err)
	_, err = Parse("aacdefghijklmnopqrstuvwxyz", Lower)
	assert.ErrorIs(t, err, ErrDuplicate)
	a, err := Parse("zyxwvutsrqponmlkjihgfedcba", Lower)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Index('z'))
}

func TestParsePermutation(t *testing.T) {
	p, err := ParsePermutation("cab")
	require.NoError(t, err)
	assert.Equal(t, Permutation{2, 0, 1}, p)
	assert.Equal(t, "cab", p.String())
	assert.Equal(t, []int{1, 2, 0}, p.Order())

	for _, bad := range []string{"", "aa", "abd", "ab1"} {
		_, err := ParsePermutation(bad)
		assert.Error(t, err, "ParsePermutation(%q)", bad)
	}
}

func TestRankKeyword(t *testing.T) {
	p, err := RankKeyword("zebra")
	require.NoError(t, err)
	assert.Equal(t, Permutation{4, 2, 1, 3, 0}, p)

	p, err = RankKeyword("tomato")
	require.NoError(t, err)
	assert.Equal(t, Permutation{4, 2, 1, 0, 5, 3}, p)
	assert.NoError(t, CheckPermutation(p))
}

func TestRanks(t *testing.T) {
	r, err := Ranks("tomato")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1, 0, 3, 2}, r)
}

func TestSquare(t *testing.T) {
	s, err := ParseSquare("playfirexmbcdghknoqstuvwz", NoJ, 5, 5)
	require.NoError(t, err)
	r, c, ok := s.Find('x')
	require.True(t, ok)
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, byte('m'), s.At(1, 4))

	cl := s.Clone()
	assert.NotSame(t, s, cl)
	assert.Equal(t, s.String(), cl.String())
	r, c, _ = cl.Find('p')
	assert.Equal(t, 0, r)
	assert.Equal(t, 0, c)

	_, err = ParseSquare("playfirexmbcdghknoqstuvwj", NoJ, 5, 5)
	assert.Error(t, err)
}
