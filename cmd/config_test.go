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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Score.Ngram)
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.Tracker.Strict)
	assert.Zero(t, c.Progress.Interval)
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		key   string
		value interface{}
	}{
		{"log.level", "loud"},
		{"score.ngram", 0},
		{"score.ngram", 9},
		{"score.corpus", "/no/such/corpus.txt"},
	}
	for _, tc := range cases {
		v := viper.New()
		setDefaults(v)
		v.Set(tc.key, tc.value)
		_, err := loadConfig(v)
		assert.Error(t, err, "%s=%v", tc.key, tc.value)
	}

	v := viper.New()
	setDefaults(v)
	v.Set("progress.interval", 5000)
	v.Set("tracker.strict", true)
	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), c.Progress.Interval)
	assert.True(t, c.Tracker.Strict)
}

func TestNewScorer(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	c, err := loadConfig(v)
	require.NoError(t, err)
	s, err := newScorer(c)
	require.NoError(t, err)
	assert.Greater(t, s.Score("thequickbrownfox"), s.Score("xqzjvkwqxzjqvkxz"))

	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("the cat sat on the mat with the hat"), 0o600))
	c.Score.Corpus = corpus
	c.Score.Ngram = 2
	s, err = newScorer(c)
	require.NoError(t, err)
	assert.Greater(t, s.Score("thecat"), s.Score("qzxjvk"))
}
