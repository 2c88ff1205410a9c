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

// Package report defines the diagnostics the linter emits and their
// terminal rendering.
package report

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/rewrite"
)

// Message identifiers. PreferForOf is the rule's user-facing finding;
// InternalError marks a consistency-check failure while composing a
// patch, which indicates a bug rather than a property of the user's code.
const (
	PreferForOf   = "prefer-for-of"
	InternalError = "internal-error"
)

// Position is a 1-based line/column source position.
type Position struct {
	Line, Column uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic is one finding: a location, a message identifier and an
// optional patch realizing the rewrite.
type Diagnostic struct {
	File    string
	Pos     Position
	ID      string
	Message string

	// Patch is nil when the call site is reported but cannot be safely
	// rewritten.
	Patch *rewrite.Patch
}

// position converts a node's start point to a 1-based source position.
func position(n *sitter.Node) Position {
	point := n.StartPoint()

	return Position{Line: point.Row + 1, Column: point.Column + 1}
}

// ForCallSite builds the rule diagnostic for a matched call site. The
// reported location is the method-name token, patch may be nil.
func ForCallSite(file string, property *sitter.Node, patch *rewrite.Patch) Diagnostic {
	return Diagnostic{
		File:    file,
		Pos:     position(property),
		ID:      PreferForOf,
		Message: "Use a for...of loop instead of Array#forEach(...).",
		Patch:   patch,
	}
}

// ForInternalError builds the distinguished diagnostic for a failed
// internal consistency check at a call site.
func ForInternalError(file string, property *sitter.Node, err error) Diagnostic {
	return Diagnostic{
		File:    file,
		Pos:     position(property),
		ID:      InternalError,
		Message: fmt.Sprintf("Internal error while composing fix: %v.", err),
	}
}
