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

package jstree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Text returns the source text covered by a node.
func Text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

// Same reports whether two node handles refer to the same syntax node.
//
// Tree-sitter hands out fresh node wrappers on every navigation call, so
// pointer identity is meaningless; a node is identified by its kind and
// byte range within one tree.
func Same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// HasAnonChild reports whether n has a direct anonymous child with the
// given token text, such as "?.", "async" or "*".
func HasAnonChild(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}

	return false
}

// NamedChildren returns the named children of n, skipping comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)

	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == KindComment {
			continue
		}

		children = append(children, child)
	}

	return children
}

// isSpace matches the JavaScript whitespace bytes relevant for edit
// placement. Multi-byte Unicode spaces never appear as the first byte of a
// token we probe for, so byte-level scanning is sufficient.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// PrevNonSpace returns the last non-whitespace byte strictly before pos,
// or false when the scan reaches the start of the source.
func PrevNonSpace(src []byte, pos uint32) (byte, bool) {
	for i := int(pos) - 1; i >= 0; i-- {
		if !isSpace(src[i]) {
			return src[i], true
		}
	}

	return 0, false
}

// FirstNonSpace returns the first non-whitespace byte at or after pos,
// or false when the scan reaches the end of the source.
func FirstNonSpace(src []byte, pos uint32) (byte, bool) {
	for i := int(pos); i < len(src); i++ {
		if !isSpace(src[i]) {
			return src[i], true
		}
	}

	return 0, false
}

// EndsWithSemicolon reports whether the last byte of the node's text is a
// statement terminator.
func EndsWithSemicolon(n *sitter.Node, src []byte) bool {
	end := n.EndByte()

	return end > n.StartByte() && src[end-1] == ';'
}
