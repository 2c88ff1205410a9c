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
	"strings"

	"forof/internal/jstree"
	"forof/internal/usage"
)

const returnKeyword = "return"

// transformReturn converts one return statement inside the callback into a
// continue. A bare return becomes the keyword verbatim, a single statement
// replacing a single statement. A value-bearing return becomes the
// expression as a statement followed by continue; since that replacement
// is two statements, it is wrapped in a block when the return was the sole
// statement of a branch (the then/else arm of a braceless if, a labeled
// statement).
func transformReturn(ret usage.ReturnInfo, src []byte) ([]EditOperation, error) {
	start, end := ret.Node.StartByte(), ret.Node.EndByte()

	if !strings.HasPrefix(string(src[start:end]), returnKeyword) {
		return nil, fmt.Errorf("%w: statement at %d does not start with %q",
			ErrUnexpectedShape, start, returnKeyword)
	}

	if ret.Value == nil {
		return []EditOperation{{
			Start: start,
			End:   start + uint32(len(returnKeyword)),
			Text:  "continue",
		}}, nil
	}

	wrap := ret.ParentKind != jstree.KindStatementBlock

	var edits []EditOperation
	if wrap {
		edits = append(edits, EditOperation{Start: start, End: start, Text: "{ "})
	}

	edits = append(edits, valueEdits(ret, src, wrap)...)

	if wrap {
		edits = append(edits, EditOperation{Start: end, End: end, Text: " }"})
	}

	return edits, nil
}

// valueEdits strips the return keyword, leaving the value as an expression
// statement, and appends a continue after it.
func valueEdits(ret usage.ReturnInfo, src []byte, wrapped bool) []EditOperation {
	start, end := ret.Node.StartByte(), ret.Node.EndByte()
	value := ret.Value

	// Removing the keyword can merge the expression into the previous
	// statement under automatic semicolon insertion. A leading separator
	// prevents that; inside a freshly inserted block the brace already
	// separates.
	head := ""
	if !wrapped && startsAmbiguously(src, value.StartByte(), start) {
		head = ";"
	}

	edits := []EditOperation{
		{Start: start, End: value.StartByte(), Text: head},
	}

	// An object, function or class expression at statement position would
	// be parsed as a block or declaration. Defensive grouping keeps it an
	// expression.
	if needsGrouping(value.Type()) {
		edits = append(edits,
			EditOperation{Start: value.StartByte(), End: value.StartByte(), Text: "("},
			EditOperation{Start: value.EndByte(), End: value.EndByte(), Text: ")"},
		)
	}

	cont := "; continue;"
	if jstree.EndsWithSemicolon(ret.Node, src) {
		cont = " continue;"
	}
	edits = append(edits, EditOperation{Start: end, End: end, Text: cont})

	return edits
}

// startsAmbiguously reports whether an expression beginning at valuePos
// would attach to the preceding statement once the return keyword is gone:
// it starts with a continuation-prone token and the byte before the return
// statement does not already terminate a statement.
func startsAmbiguously(src []byte, valuePos, stmtPos uint32) bool {
	first, ok := jstree.FirstNonSpace(src, valuePos)
	if !ok {
		return false
	}

	switch first {
	case '(', '[', '`', '+', '-', '/', '*':
	default:
		return false
	}

	prev, ok := jstree.PrevNonSpace(src, stmtPos)
	if !ok {
		return false
	}

	switch prev {
	case ';', '{', '}', ':':
		return false
	default:
		return true
	}
}

// needsGrouping reports whether kind is misparsed at statement position.
func needsGrouping(kind string) bool {
	switch kind {
	case jstree.KindObject, jstree.KindClass,
		jstree.KindFunctionExpression, jstree.KindFunction, jstree.KindGeneratorFunction:
		return true
	default:
		return false
	}
}
