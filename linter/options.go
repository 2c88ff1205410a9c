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

package linter

import (
	"io"
	"log/slog"

	"forof/internal/config"
)

// Option configures specific behavior of a [New] linter.
type Option interface {
	apply(l *Linter)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(l *Linter) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(l)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithFix is an [Option] to configure whether safe rewrites are written
// back to the analyzed files.
func WithFix(fix bool) Option { return fixOption{fix: fix} }

type fixOption struct{ fix bool }

func (o fixOption) apply(l *Linter) {
	l.behavior.Set(config.ApplyFixes, o.fix)
}

func (o fixOption) LogAttr() slog.Attr {
	return slog.Bool("fix", o.fix)
}

// WithDiff is an [Option] to configure printing a unified diff of the
// rewrites.
func WithDiff(diff bool) Option { return diffOption{diff: diff} }

type diffOption struct{ diff bool }

func (o diffOption) apply(l *Linter) {
	l.behavior.Set(config.ShowDiff, o.diff)
}

func (o diffOption) LogAttr() slog.Attr {
	return slog.Bool("diff", o.diff)
}

// WithMaxPasses is an [Option] to configure the fix-pass cap per file.
func WithMaxPasses(maxPasses int) Option { return maxPassesOption{maxPasses: maxPasses} }

type maxPassesOption struct{ maxPasses int }

func (o maxPassesOption) apply(l *Linter) {
	l.maxPasses = o.maxPasses
}

func (o maxPassesOption) LogAttr() slog.Attr {
	return slog.Int("maxPasses", o.maxPasses)
}

// WithIgnore is an [Option] to configure path patterns excluded from
// analysis.
func WithIgnore(patterns []string) Option { return ignoreOption{patterns: patterns} }

type ignoreOption struct{ patterns []string }

func (o ignoreOption) apply(l *Linter) {
	l.ignore = o.patterns
}

func (o ignoreOption) LogAttr() slog.Attr {
	return slog.Any("ignore", o.patterns)
}

// WithLogger is an [Option] to configure the structured logger.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(l *Linter) {
	if o.logger != nil {
		l.logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}

// WithOutput is an [Option] to configure where diagnostics and diffs are
// printed.
func WithOutput(w io.Writer) Option { return outputOption{w: w} }

type outputOption struct{ w io.Writer }

func (o outputOption) apply(l *Linter) {
	if o.w != nil {
		l.out = o.w
	}
}

func (o outputOption) LogAttr() slog.Attr {
	return slog.Bool("output", o.w != nil)
}
