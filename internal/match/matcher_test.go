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

package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forof/internal/jstree"
	"forof/internal/match"
	"forof/internal/usage"
)

// candidates parses src and returns the matched call sites.
func candidates(t *testing.T, src string) []match.CallSite {
	t.Helper()

	tree, err := jstree.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return usage.Collect(tree.RootNode(), []byte(src)).Candidates
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src  string
		want func(t *testing.T, site match.CallSite)
	}{
		"plain": {
			src: `list.forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.False(t, site.OptionalCall)
				assert.False(t, site.GroupedCallee)
				assert.Len(t, site.Args, 1)
			},
		},
		"optional member": {
			src: `list?.forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.True(t, site.OptionalMember)
				assert.False(t, site.OptionalCall)
				assert.False(t, site.OptionalReceiver)
			},
		},
		"optional receiver chain": {
			src: `a?.b.forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.True(t, site.OptionalReceiver)
			},
		},
		"optional subscript receiver": {
			src: `a?.[0].forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.True(t, site.OptionalReceiver)
			},
		},
		"optional call receiver": {
			src: `make?.().forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.True(t, site.OptionalReceiver)
			},
		},
		"parenthesized optional is not on the spine": {
			src: `(a?.b).forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.False(t, site.OptionalReceiver)
			},
		},
		"optional in subscript index is not on the spine": {
			src: `items[a?.b].forEach(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.False(t, site.OptionalMember)
				assert.False(t, site.OptionalReceiver)
			},
		},
		"optional call": {
			src: `list.forEach?.(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.True(t, site.OptionalCall)
			},
		},
		"grouped callee": {
			src: `(list.forEach)(x => use(x));`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.True(t, site.GroupedCallee)
			},
		},
		"two arguments": {
			src: `list.forEach(cb, thisArg);`,
			want: func(t *testing.T, site match.CallSite) {
				t.Helper()
				assert.Len(t, site.Args, 2)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sites := candidates(t, tt.src)
			require.Len(t, sites, 1)
			tt.want(t, sites[0])
		})
	}
}

func TestNoMatch(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"different method":  `list.map(x => use(x));`,
		"plain call":        `forEach(x => use(x));`,
		"computed property": `list["forEach"](x => use(x));`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, candidates(t, src))
		})
	}
}

func TestAllowlist(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"lodash":         `_.forEach(list, cb);`,
		"jquery":         `$.forEach(list, cb);`,
		"react children": `React.Children.forEach(children, cb);`,
		"this":           `this.forEach(cb);`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, candidates(t, src))
		})
	}
}
