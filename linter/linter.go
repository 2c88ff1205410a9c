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

// Package linter is the public entry point: it checks JavaScript sources
// for statement-level Array#forEach calls and rewrites the provably safe
// ones into for...of loops.
package linter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"forof/internal/config"
	"forof/internal/report"
	"forof/internal/run"
)

// Linter checks JavaScript files for statement-level Array#forEach calls
// and optionally rewrites them into for...of loops.
type Linter struct {
	logger    *slog.Logger
	out       io.Writer
	behavior  config.Behavior
	maxPasses int
	ignore    []string
}

// New creates a new linter. It allows for programmatic configuration
// using [Option], which is useful for integrating the linter into other
// tools.
func New(opts ...Option) *Linter {
	l := &Linter{
		logger: slog.Default(),
		out:    os.Stdout,
	}
	Options(opts).apply(l)

	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "linter configured",
		Options(opts).LogAttr())

	return l
}

// Check analyzes one source buffer and returns its diagnostics without
// modifying anything.
func (l *Linter) Check(ctx context.Context, name string, src []byte) ([]report.Diagnostic, error) {
	return run.Analyze(ctx, l.logger, name, src)
}

// Rewrite analyzes one source buffer and applies every safe rewrite,
// returning the final text together with the findings that remain
// unfixable.
func (l *Linter) Rewrite(ctx context.Context, name string, src []byte) (run.Outcome, error) {
	return run.Fix(ctx, l.logger, name, src, l.maxPasses)
}

// Run processes the given files from disk: findings are printed, and
// with fixing enabled the rewritten files are written back in place. It
// returns the number of findings reported; with fixing enabled that
// counts only the findings remaining after the rewrites.
func (l *Linter) Run(ctx context.Context, paths ...string) (int, error) {
	printer := report.NewPrinter(l.out)

	var found int
	for _, path := range paths {
		if l.ignored(path) {
			l.logger.DebugContext(ctx, "skipping ignored file", "file", path)

			continue
		}

		n, err := l.runFile(ctx, printer, path)
		if err != nil {
			return found, err
		}

		found += n
	}

	return found, nil
}

// ignored reports whether path matches a configured ignore pattern,
// against either the full path or its base name.
func (l *Linter) ignored(path string) bool {
	for _, pattern := range l.ignore {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}

		if ok, err := filepath.Match(pattern, filepath.Base(path)); err == nil && ok {
			return true
		}
	}

	return false
}

func (l *Linter) runFile(ctx context.Context, printer *report.Printer, path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	if !l.behavior.Is(config.ApplyFixes) {
		diagnostics, err := l.Check(ctx, path, src)
		if err != nil {
			return 0, err
		}

		for _, d := range diagnostics {
			printer.Print(d)
		}

		return len(diagnostics), nil
	}

	outcome, err := l.Rewrite(ctx, path, src)
	if err != nil {
		return 0, err
	}

	for _, d := range outcome.Diagnostics {
		printer.Print(d)
	}

	if outcome.Passes == 0 {
		return len(outcome.Diagnostics), nil
	}

	if l.behavior.Is(config.ShowDiff) {
		if err := printer.Diff(path, src, outcome.Src); err != nil {
			return len(outcome.Diagnostics), err
		}
	}

	if err := writeBack(path, outcome.Src); err != nil {
		return len(outcome.Diagnostics), err
	}

	l.logger.InfoContext(ctx, "rewrote file", "file", path, "passes", outcome.Passes)

	return len(outcome.Diagnostics), nil
}

// writeBack replaces the file contents, preserving its permission bits.
func writeBack(path string, src []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	if err := os.WriteFile(path, src, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
