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

package match

import (
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/jstree"
)

// allowedReceivers lists receiver names whose forEach is not array
// iteration: collection helpers and libraries that define an incompatible
// method of the same name. Call sites on these receivers are never
// reported.
var allowedReceivers = []string{
	"React.Children",
	"Children",
	"R",
	"_",
	"lodash",
	"underscore",
	"Async",
	"async",
	"this",
	"$",
	"jQuery",
}

// Allowlisted reports whether the receiver's static name is a known
// non-array forEach provider.
func Allowlisted(receiver *sitter.Node, src []byte) bool {
	name := strings.Join(strings.Fields(jstree.Text(receiver, src)), "")

	return slices.Contains(allowedReceivers, name)
}
