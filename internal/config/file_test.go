// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forof/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "forof.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
fix = true
diff = true
max-passes = 3
log-level = "debug"
ignore = ["*.min.js", "vendor/*"]
`)

	f, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, f.Fix)
	assert.True(t, f.Diff)
	assert.Equal(t, 3, f.MaxPasses)
	assert.Equal(t, []string{"*.min.js", "vendor/*"}, f.Ignore)

	level, err := f.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	b := f.Behavior()
	assert.True(t, b.Is(config.ApplyFixes))
	assert.True(t, b.Is(config.ShowDiff))
}

func TestLoadUnknownKey(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `fxi = true`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestLevel(t *testing.T) {
	t.Parallel()

	var f config.File

	level, err := f.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	f.LogLevel = "verbose"
	_, err = f.Level()
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestBehaviorSet(t *testing.T) {
	t.Parallel()

	var b config.Behavior

	b.Set(config.ApplyFixes, true)
	assert.True(t, b.Is(config.ApplyFixes))
	assert.False(t, b.Is(config.ShowDiff))

	b.Set(config.ApplyFixes, false)
	assert.False(t, b.Is(config.ApplyFixes))
}
