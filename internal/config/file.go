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

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKey reports an unrecognized key in a configuration file.
var ErrUnknownKey = errors.New("unknown configuration key")

// File is the on-disk configuration, read from a TOML file.
type File struct {
	// Fix enables writing safe rewrites back to the analyzed files.
	Fix bool `toml:"fix"`

	// Diff prints a unified diff of the rewrites.
	Diff bool `toml:"diff"`

	// MaxPasses caps the number of fix passes per file; zero keeps the
	// built-in default.
	MaxPasses int `toml:"max-passes"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log-level"`

	// Ignore lists path patterns excluded from analysis, matched against
	// the full path and the base name.
	Ignore []string `toml:"ignore"`
}

// Load reads a TOML configuration file. Unknown keys are rejected so a
// typo does not silently disable an option.
func Load(path string) (File, error) {
	var f File

	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("reading configuration %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, undecoded[0].String())
	}

	return f, nil
}

// Behavior converts the file settings to behavior flags.
func (f File) Behavior() Behavior {
	var b Behavior
	if f.Fix {
		b |= ApplyFixes
	}

	if f.Diff {
		b |= ShowDiff
	}

	return b
}

// Level parses the configured log level, defaulting to info.
func (f File) Level() (slog.Level, error) {
	switch strings.ToLower(f.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log-level %q", ErrUnknownKey, f.LogLevel)
	}
}
