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

// Command forof reports statement-level Array#forEach calls in JavaScript
// files and rewrites the safe ones into for...of loops.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"forof/internal/config"
	"forof/linter"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

type flags struct {
	fix        bool
	diff       bool
	maxPasses  int
	logLevel   string
	configPath string
}

func newCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "forof [flags] file...",
		Short: "Rewrite Array#forEach callbacks into for...of loops",
		Long: `forof reports every statement-level Array#forEach call in the given
JavaScript files. With --fix, call sites whose rewrite is provably
behavior-preserving are converted to for...of loops in place; the rest
are reported unchanged.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, f, args)
		},
	}

	cmd.Flags().BoolVar(&f.fix, "fix", false, "apply safe rewrites in place")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print a unified diff of the rewrites")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", 0, "cap on fix passes per file (0 = default)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.configPath, "config", "", "TOML configuration file")

	return cmd
}

// execute merges the configuration file with the command-line flags and
// runs the linter. Flags set on the command line win.
func execute(cmd *cobra.Command, f flags, args []string) error {
	var file config.File
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return err
		}

		file = loaded
	}

	if cmd.Flags().Changed("fix") {
		file.Fix = f.fix
	}

	if cmd.Flags().Changed("diff") {
		file.Diff = f.diff
	}

	if cmd.Flags().Changed("max-passes") {
		file.MaxPasses = f.maxPasses
	}

	if cmd.Flags().Changed("log-level") {
		file.LogLevel = f.logLevel
	}

	level, err := file.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	behavior := file.Behavior()

	l := linter.New(
		linter.WithFix(behavior.Is(config.ApplyFixes)),
		linter.WithDiff(behavior.Is(config.ShowDiff)),
		linter.WithMaxPasses(file.MaxPasses),
		linter.WithIgnore(file.Ignore),
		linter.WithLogger(logger),
		linter.WithOutput(cmd.OutOrStdout()),
	)

	found, err := l.Run(cmd.Context(), args...)
	if err != nil {
		return err
	}

	if found > 0 && !behavior.Is(config.ApplyFixes) {
		os.Exit(1)
	}

	return nil
}
