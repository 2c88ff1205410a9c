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

package rewrite

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/analyze"
	"forof/internal/jstree"
	"forof/internal/match"
)

// Compose assembles the full patch for one fixable call site.
//
// The header edit replaces everything from the statement start up to the
// callback body with the synthesized loop head, which removes the
// receiver, method name, argument parentheses and parameter list in one
// stroke. The tail edit removes the closing delimiters after the body,
// including a trailing argument comma and the statement terminator. The
// return edits lie strictly inside the body, so the three groups cannot
// overlap.
//
// For a null-safe member access the loop is wrapped in a nullish guard,
// preserving the short-circuit on an absent receiver. The guard tests for
// undefined and null explicitly; a falsy receiver such as 0 or "" must
// still reach the loop head and throw there, as the original call does.
func Compose(site match.CallSite, verdict analyze.Verdict, src []byte) (Patch, error) {
	stmt, body := verdict.Stmt, verdict.Body

	if body.StartByte() <= stmt.StartByte() || body.EndByte() >= stmt.EndByte() {
		return Patch{}, fmt.Errorf("%w: callback body [%d,%d) not inside statement [%d,%d)",
			ErrUnexpectedShape, body.StartByte(), body.EndByte(), stmt.StartByte(), stmt.EndByte())
	}

	header := loopHead(site, verdict, src)
	if site.OptionalMember {
		receiver := jstree.Text(site.Receiver, src)
		header = fmt.Sprintf("if (%s !== undefined && %s !== null) { %s", receiver, receiver, header)
	}

	patch := Patch{
		Start: stmt.StartByte(),
		End:   stmt.EndByte(),
		Edits: []EditOperation{
			{Start: stmt.StartByte(), End: body.StartByte(), Text: header},
		},
	}

	for _, ret := range verdict.Returns {
		edits, err := transformReturn(ret, src)
		if err != nil {
			return Patch{}, err
		}

		patch.Edits = append(patch.Edits, edits...)
	}

	patch.Edits = append(patch.Edits, EditOperation{
		Start: body.EndByte(),
		End:   stmt.EndByte(),
		Text:  tail(site, stmt, body, src),
	})

	if err := patch.normalize(); err != nil {
		return Patch{}, err
	}

	return patch, nil
}

// tail computes the replacement for the closing-delimiter range between
// the callback body and the end of the statement.
func tail(site match.CallSite, stmt, body *sitter.Node, src []byte) string {
	blockBody := body.Type() == jstree.KindStatementBlock

	switch {
	case site.OptionalMember && blockBody:
		return " }"
	case site.OptionalMember:
		return "; }"
	case blockBody:
		return ""
	case jstree.EndsWithSemicolon(stmt, src):
		return ";"
	default:
		return ""
	}
}
