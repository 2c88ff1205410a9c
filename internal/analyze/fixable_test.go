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

package analyze_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forof/internal/analyze"
	"forof/internal/jstree"
	"forof/internal/scope"
	"forof/internal/usage"
)

// classify parses src and classifies its first candidate call site.
func classify(t *testing.T, src string) analyze.Verdict {
	t.Helper()

	tree, err := jstree.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	res := scope.Resolve(root, []byte(src))
	data := usage.Collect(root, []byte(src))

	require.NotEmpty(t, data.Candidates, "no candidate call site in %q", src)

	return analyze.Classify(data.Candidates[0], res, data, []byte(src))
}

func TestFixable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src        string
		params     int
		reassigned bool
		returns    int
	}{
		"arrow block body": {
			src:    `list.forEach(x => { use(x); });`,
			params: 1,
		},
		"arrow expression body": {
			src:    `list.forEach(x => use(x));`,
			params: 1,
		},
		"two parameters": {
			src:    `list.forEach((x, i) => use(i, x));`,
			params: 2,
		},
		"function expression": {
			src:    `list.forEach(function (x) { use(x); });`,
			params: 1,
		},
		"grouped callback": {
			src:    `list.forEach((function (x) { use(x); }));`,
			params: 1,
		},
		"reassigned parameter": {
			src:        `list.forEach(x => { x = wrap(x); use(x); });`,
			params:     1,
			reassigned: true,
		},
		"bare return": {
			src:     `list.forEach(x => { if (!x) return; use(x); });`,
			params:  1,
			returns: 1,
		},
		"this in arrow": {
			src:    `list.forEach(x => { this.use(x); });`,
			params: 1,
		},
		"shadowing parameter is safe": {
			src:    `items.forEach(x => { use(x); });`,
			params: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			verdict := classify(t, tt.src)

			require.True(t, verdict.Fixable, "reason: %s", verdict.Reason)
			assert.Len(t, verdict.Params, tt.params)
			assert.Equal(t, tt.reassigned, verdict.Reassigned)
			assert.Len(t, verdict.Returns, tt.returns)
			require.NotNil(t, verdict.Stmt)
			require.NotNil(t, verdict.Body)
		})
	}
}

func TestUnfixable(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"optional call":              `list.forEach?.(x => use(x));`,
		"optional receiver chain":    `a?.b.forEach(x => use(x));`,
		"optional receiver call":     `make?.().forEach(x => use(x));`,
		"deep optional plain member": `a?.b.c.forEach(x => use(x));`,
		"grouped callee":             `(list.forEach)(x => use(x));`,
		"not a statement":            `log(list.forEach(x => use(x)));`,
		"grouped statement":          `(list.forEach(x => use(x)));`,
		"second argument":            `list.forEach(x => use(x), thisArg);`,
		"no arguments":               `list.forEach();`,
		"non-function argument":      `list.forEach(cb);`,
		"async callback":             `list.forEach(async x => { await use(x); });`,
		"generator callback":         `list.forEach(function* (x) { yield x; });`,
		"destructured parameter":     `list.forEach(([a, b]) => use(a, b));`,
		"rest parameter":             `list.forEach((...xs) => use(xs));`,
		"default parameter":          `list.forEach((x = 1) => use(x));`,
		"three parameters":           `list.forEach((x, i, all) => use(all[i], x));`,
		"this in function":           `list.forEach(function (x) { this.use(x); });`,
		"arguments in function":      `list.forEach(function (x) { use(arguments); });`,
		"recursive callback":         `list.forEach(function again(x) { again(x); });`,
		"return in nested loop":      `list.forEach(x => { while (x) { return; } });`,
		"return in for loop":         `list.forEach(x => { for (const y of x) { if (y) return; } });`,
		"captured parameter":         `const x = pick(); items[x].forEach(x => use(x));`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			verdict := classify(t, src)

			assert.False(t, verdict.Fixable)
			assert.NotEmpty(t, verdict.Reason)
		})
	}
}

// A return belonging to a nested function does not block the rewrite of
// the outer callback.
func TestNestedFunctionReturn(t *testing.T) {
	t.Parallel()

	verdict := classify(t, `list.forEach(x => { const f = () => { return x; }; use(f); });`)

	require.True(t, verdict.Fixable, "reason: %s", verdict.Reason)
	assert.Empty(t, verdict.Returns)
}
