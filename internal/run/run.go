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

// Package run drives the per-file pipeline: parse, resolve scopes, collect
// usage, classify each candidate and compose patches. Analysis of one file
// is a single deterministic pass; fixing re-runs the pass on the patched
// text until no further rewrite is found.
package run

import (
	"context"
	"fmt"
	"log/slog"

	"forof/internal/analyze"
	"forof/internal/jstree"
	"forof/internal/report"
	"forof/internal/rewrite"
	"forof/internal/scope"
	"forof/internal/usage"
)

// MaxPasses caps the fix loop. One rewrite can expose a nested call site
// that only becomes a whole statement after the outer rewrite, so fixing
// iterates; the cap guards against a non-converging patch cycle.
const MaxPasses = 10

// Outcome is the result of fixing one file.
type Outcome struct {
	// Diagnostics are the findings of the final pass. When fixing
	// converges they carry no patches; when the pass cap is reached,
	// still-applicable patches remain attached.
	Diagnostics []report.Diagnostic

	// Src is the file content after all applied patches.
	Src []byte

	// Passes counts analysis passes that applied at least one patch.
	Passes int
}

// Analyze performs one analysis pass over src and returns the diagnostics
// in document order.
func Analyze(ctx context.Context, logger *slog.Logger, name string, src []byte) ([]report.Diagnostic, error) {
	tree, err := jstree.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	res := scope.Resolve(root, src)
	data := usage.Collect(root, src)

	diagnostics := make([]report.Diagnostic, 0, len(data.Candidates))
	for _, site := range data.Candidates {
		verdict := analyze.Classify(site, res, data, src)

		if !verdict.Fixable {
			logger.DebugContext(ctx, "call site not fixable",
				"file", name, "offset", site.Call.StartByte(), "reason", verdict.Reason)

			diagnostics = append(diagnostics, report.ForCallSite(name, site.Property, nil))

			continue
		}

		patch, err := rewrite.Compose(site, verdict, src)
		if err != nil {
			logger.ErrorContext(ctx, "fix composition failed",
				"file", name, "offset", site.Call.StartByte(), "err", err)

			diagnostics = append(diagnostics, report.ForInternalError(name, site.Property, err))

			continue
		}

		diagnostics = append(diagnostics, report.ForCallSite(name, site.Property, &patch))
	}

	return diagnostics, nil
}

// Fix analyzes src and applies every applicable patch, re-running the
// analysis on the rewritten text until a pass produces no patch or the
// pass cap is reached. It returns the final text and the findings that
// remain unfixable. A maxPasses of zero or less uses MaxPasses.
func Fix(ctx context.Context, logger *slog.Logger, name string, src []byte, maxPasses int) (Outcome, error) {
	if maxPasses <= 0 {
		maxPasses = MaxPasses
	}

	outcome := Outcome{Src: src}

	for pass := 1; pass <= maxPasses; pass++ {
		diagnostics, err := Analyze(ctx, logger, name, outcome.Src)
		if err != nil {
			return outcome, err
		}

		patch, remaining := takePatches(diagnostics)
		if len(patch.Edits) == 0 {
			outcome.Diagnostics = remaining

			return outcome, nil
		}

		fixed, err := patch.Apply(outcome.Src)
		if err != nil {
			return outcome, fmt.Errorf("applying patches to %s: %w", name, err)
		}

		outcome.Src = fixed
		outcome.Passes = pass

		logger.DebugContext(ctx, "applied patches",
			"file", name, "pass", pass, "edits", len(patch.Edits))
	}

	logger.WarnContext(ctx, "fix loop reached pass cap", "file", name, "passes", maxPasses)

	diagnostics, err := Analyze(ctx, logger, name, outcome.Src)
	if err != nil {
		return outcome, err
	}
	outcome.Diagnostics = diagnostics

	return outcome, nil
}

// takePatches merges all non-conflicting patches of one pass into a
// single atomic patch and returns the diagnostics that keep no patch.
// Patches are widened to their enclosing statement, so a patch nested
// inside an already accepted range (a forEach inside a forEach callback)
// is deferred to a later pass.
func takePatches(diagnostics []report.Diagnostic) (rewrite.Patch, []report.Diagnostic) {
	var combined rewrite.Patch

	remaining := make([]report.Diagnostic, 0, len(diagnostics))

	var claimed uint32
	for _, d := range diagnostics {
		if d.Patch == nil {
			remaining = append(remaining, d)

			continue
		}

		if len(combined.Edits) > 0 && d.Patch.Start < claimed {
			continue // Conflicts with an accepted patch, retry next pass
		}

		combined.Edits = append(combined.Edits, d.Patch.Edits...)
		claimed = d.Patch.End
	}

	return combined, remaining
}
