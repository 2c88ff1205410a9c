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

// Package rewrite turns a fixable call site into a patch: the loop-head
// replacement, the per-return continuation edits and the closing-delimiter
// cleanup, composed into one atomic set of text edits.
package rewrite

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlappingEdits reports two edits in one patch touching the same
// byte range. This indicates an internal bug, not a user error.
var ErrOverlappingEdits = errors.New("overlapping edits in patch")

// ErrUnexpectedShape reports a syntax tree that violates an internal
// consistency check, such as a return statement not starting with the
// return keyword.
var ErrUnexpectedShape = errors.New("unexpected syntax shape")

// EditOperation replaces the source bytes in [Start, End) with Text. A
// zero-width range is an insertion.
type EditOperation struct {
	Start, End uint32
	Text       string
}

// Patch is an ordered, non-overlapping set of edits applied atomically.
// Start and End declare the range the patch claims, widened to the whole
// enclosing statement so sibling diagnostics in the same pass cannot
// propose a conflicting patch.
type Patch struct {
	Start, End uint32
	Edits      []EditOperation
}

// normalize sorts the edits by position, drops exact duplicates and
// verifies the non-overlap invariant. The sort is stable so that multiple
// insertions at the same offset keep their generation order.
func (p *Patch) normalize() error {
	sort.SliceStable(p.Edits, func(i, j int) bool {
		if p.Edits[i].Start != p.Edits[j].Start {
			return p.Edits[i].Start < p.Edits[j].Start
		}

		return p.Edits[i].End < p.Edits[j].End
	})

	deduped := p.Edits[:0]
	for i, e := range p.Edits {
		if i > 0 && e == p.Edits[i-1] {
			continue
		}

		deduped = append(deduped, e)
	}
	p.Edits = deduped

	for i := 1; i < len(p.Edits); i++ {
		prev, cur := p.Edits[i-1], p.Edits[i]
		if cur.Start < prev.End {
			return fmt.Errorf("%w: [%d,%d) and [%d,%d)",
				ErrOverlappingEdits, prev.Start, prev.End, cur.Start, cur.End)
		}
	}

	return nil
}

// Apply splices the edits into src and returns the rewritten text. The
// input slice is not modified.
func (p *Patch) Apply(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src))

	var pos uint32
	for _, e := range p.Edits {
		if e.Start < pos || e.End > uint32(len(src)) {
			return nil, fmt.Errorf("%w: edit [%d,%d) outside remaining source",
				ErrOverlappingEdits, e.Start, e.End)
		}

		out = append(out, src[pos:e.Start]...)
		out = append(out, e.Text...)
		pos = e.End
	}

	return append(out, src[pos:]...), nil
}
