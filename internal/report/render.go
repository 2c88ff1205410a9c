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

package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Printer renders diagnostics and fix previews to a terminal.
type Printer struct {
	w io.Writer

	location *color.Color
	rule     *color.Color
	internal *color.Color
}

// NewPrinter creates a Printer writing to w. Colors degrade to plain text
// on non-terminal writers through the color package's global detection.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:        w,
		location: color.New(color.Bold),
		rule:     color.New(color.FgYellow),
		internal: color.New(color.FgRed, color.Bold),
	}
}

// Print renders one diagnostic as file:line:col, message and identifier.
func (p *Printer) Print(d Diagnostic) {
	tint := p.rule
	if d.ID == InternalError {
		tint = p.internal
	}

	fmt.Fprintf(p.w, "%s: %s %s\n",
		p.location.Sprintf("%s:%s", d.File, d.Pos),
		d.Message,
		tint.Sprintf("(%s)", d.ID))
}

// Diff renders a unified diff between the original and rewritten file
// contents, used for fix previews.
func (p *Printer) Diff(file string, before, after []byte) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: file,
		ToFile:   file,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("rendering diff for %s: %w", file, err)
	}

	_, err = io.WriteString(p.w, text)

	return err
}
