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

// Package config holds the linter's behavior settings. The rule itself
// has no configuration surface; everything here controls the tool around
// it.
package config

// Behavior represents configuration options for a linter run.
type Behavior uint8

const (
	// ApplyFixes specifies whether safe rewrites are written back instead
	// of only reported.
	ApplyFixes Behavior = 1 << iota

	// ShowDiff specifies whether a unified diff of the rewrites is
	// printed.
	ShowDiff
)

// Is reports whether all bits of flag are set.
func (b Behavior) Is(flag Behavior) bool {
	return b&flag == flag
}

// Set sets or clears the bits of flag.
func (b *Behavior) Set(flag Behavior, value bool) {
	if value {
		*b |= flag
	} else {
		*b &^= flag
	}
}
