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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestTextLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "period", 7)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "period=7")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", JSON: true, Writer: &buf})
	require.NoError(t, err)
	l.Debug("solve", "type", "amsco")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "solve", rec["msg"])
	assert.Equal(t, "amsco", rec["type"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestBadConfig(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.Error(t, err)
	Discard().Error("nothing")
}
