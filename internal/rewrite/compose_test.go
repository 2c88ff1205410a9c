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

package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forof/internal/analyze"
	"forof/internal/jstree"
	"forof/internal/rewrite"
	"forof/internal/scope"
	"forof/internal/usage"
)

// fix parses src, classifies its first candidate and applies the composed
// patch.
func fix(t *testing.T, src string) string {
	t.Helper()

	tree, err := jstree.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	res := scope.Resolve(root, []byte(src))
	data := usage.Collect(root, []byte(src))
	require.NotEmpty(t, data.Candidates)

	verdict := analyze.Classify(data.Candidates[0], res, data, []byte(src))
	require.True(t, verdict.Fixable, "reason: %s", verdict.Reason)

	patch, err := rewrite.Compose(data.Candidates[0], verdict, []byte(src))
	require.NoError(t, err)

	out, err := patch.Apply([]byte(src))
	require.NoError(t, err)

	return string(out)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src  string
		want string
	}{
		"block body": {
			src:  `list.forEach(x => { console.log(x); });`,
			want: `for (const x of list) { console.log(x); }`,
		},
		"expression body": {
			src:  `list.forEach(x => console.log(x))`,
			want: `for (const x of list) console.log(x)`,
		},
		"expression body with terminator": {
			src:  `list.forEach(x => console.log(x));`,
			want: `for (const x of list) console.log(x);`,
		},
		"index pair": {
			src:  `list.forEach((x, i) => console.log(i, x))`,
			want: `for (const [i, x] of list.entries()) console.log(i, x)`,
		},
		"bare return in branch": {
			src:  `list.forEach(x => { if (x) return; console.log(x); });`,
			want: `for (const x of list) { if (x) continue; console.log(x); }`,
		},
		"value return in branch": {
			src:  `list.forEach(x => { if (!x) return f(x); g(x); });`,
			want: `for (const x of list) { if (!x) { f(x); continue; } g(x); }`,
		},
		"value return in block": {
			src:  `list.forEach(x => { h(x); return f(x); });`,
			want: `for (const x of list) { h(x); f(x); continue; }`,
		},
		"reassigned parameter": {
			src:  `list.forEach(x => { x = wrap(x); use(x); });`,
			want: `for (let x of list) { x = wrap(x); use(x); }`,
		},
		"function expression": {
			src:  `list.forEach(function (x) { use(x); });`,
			want: `for (const x of list) { use(x); }`,
		},
		"grouped callback": {
			src:  `list.forEach((function (x) { use(x); }));`,
			want: `for (const x of list) { use(x); }`,
		},
		"null-safe member": {
			src:  `list?.forEach(x => { f(x); });`,
			want: `if (list !== undefined && list !== null) { for (const x of list) { f(x); } }`,
		},
		"null-safe member with expression body": {
			src:  `list?.forEach(x => f(x));`,
			want: `if (list !== undefined && list !== null) { for (const x of list) f(x); }`,
		},
		"null-safe member on null-safe chain": {
			src:  `a?.b?.forEach(x => { f(x); });`,
			want: `if (a?.b !== undefined && a?.b !== null) { for (const x of a?.b) { f(x); } }`,
		},
		"parenthesized receiver": {
			src:  `(a || b).forEach(x => { use(x); });`,
			want: `for (const x of (a || b)) { use(x); }`,
		},
		"object return needs grouping": {
			src:  `list.forEach(x => { return {v: x}; });`,
			want: `for (const x of list) { ({v: x}); continue; }`,
		},
		"separator before ambiguous expression": {
			src: `list.forEach(x => {
  g(x)
  return [x]
})`,
			want: `for (const x of list) {
  g(x)
  ;[x]; continue;
}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fix(t, tt.src))
		})
	}
}
