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

	"forof/internal/analyze"
	"forof/internal/jstree"
	"forof/internal/match"
)

// loopHead builds the replacement for...of header, including the trailing
// space before the loop body.
//
// A two-parameter callback receives (element, index), but enumerated
// iteration yields [index, element] pairs, so the destructuring pattern
// inverts the parameter order and the source expression gains an
// .entries() call.
func loopHead(site match.CallSite, verdict analyze.Verdict, src []byte) string {
	keyword := "const"
	if verdict.Reassigned {
		keyword = "let"
	}

	source := jstree.Text(site.Receiver, src)

	binding := jstree.Text(verdict.Params[0], src)
	if len(verdict.Params) == 2 {
		binding = fmt.Sprintf("[%s, %s]", jstree.Text(verdict.Params[1], src), binding)
		source += ".entries()"
	}

	return fmt.Sprintf("for (%s %s of %s) ", keyword, binding, source)
}
