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

// Package usage performs the single document-order traversal of a file,
// collecting per-function metadata, the flat identifier reference list and
// the candidate call-site list. All accumulation is scoped to one run and
// discarded afterwards.
package usage

import (
	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/jstree"
	"forof/internal/match"
)

// ReturnInfo records one return statement inside a function.
type ReturnInfo struct {
	// Node is the return_statement node.
	Node *sitter.Node

	// Value is the returned expression, nil for a bare return.
	Value *sitter.Node

	// InNestedLoop is set when the return sits inside a loop construct
	// nested within the same function. Such returns block rewriting.
	InNestedLoop bool

	// ParentKind is the node kind of the immediate syntactic parent,
	// used to decide whether the replacement needs block wrapping.
	ParentKind string
}

// FuncInfo is the per-function metadata gathered during traversal.
type FuncInfo struct {
	Node  *sitter.Node
	Arrow bool

	// Returns are the return statements belonging directly to this
	// function (not to nested functions).
	Returns []ReturnInfo

	// UsesThis and UsesArguments are set when the function's own body
	// (outside nested non-arrow functions) references this or arguments.
	UsesThis      bool
	UsesArguments bool
}

// Identifier is one identifier reference seen during traversal.
type Identifier struct {
	Start, End uint32
	Name       string
}

// Result is the outcome of one traversal.
type Result struct {
	// Functions is keyed by the function node's start byte.
	Functions map[uint32]*FuncInfo

	Identifiers []Identifier
	Candidates  []match.CallSite
}

// FuncAt returns the metadata for the function node starting at the given
// offset, or nil.
func (r Result) FuncAt(n *sitter.Node) *FuncInfo {
	info, ok := r.Functions[n.StartByte()]
	if !ok || !jstree.Same(info.Node, n) {
		return nil
	}

	return info
}

type collector struct {
	src    []byte
	result Result

	// funcs is the function nesting stack; loops counts loop nesting
	// since the innermost function entry, with one base slot for the top
	// level. The stacks keep every return attributed to its immediately
	// enclosing function.
	funcs []*FuncInfo
	loops []int
}

// Collect traverses the file once and gathers all per-file data the
// classification step needs.
func Collect(root *sitter.Node, src []byte) Result {
	c := &collector{
		src: src,
		result: Result{
			Functions: make(map[uint32]*FuncInfo),
		},
		loops: []int{0},
	}

	c.visit(root)

	return c.result
}

func (c *collector) visit(n *sitter.Node) {
	kind := n.Type()

	switch {
	case jstree.IsFunctionScope(kind):
		info := &FuncInfo{Node: n, Arrow: kind == jstree.KindArrowFunction}
		c.result.Functions[n.StartByte()] = info

		c.funcs = append(c.funcs, info)
		c.loops = append(c.loops, 0)

		c.visitChildren(n)

		c.funcs = c.funcs[:len(c.funcs)-1]
		c.loops = c.loops[:len(c.loops)-1]

		return

	case jstree.IsLoop(kind):
		c.loops[len(c.loops)-1]++
		c.visitChildren(n)
		c.loops[len(c.loops)-1]--

		return

	case kind == jstree.KindCallExpression:
		if site, ok := match.Match(n, c.src); ok {
			c.result.Candidates = append(c.result.Candidates, site)
		}

	case kind == jstree.KindReturnStatement:
		c.handleReturn(n)

	case kind == jstree.KindIdentifier, kind == jstree.KindShorthandProperty:
		c.handleIdent(n)

		return // Leaf

	case kind == jstree.KindThis:
		if fn := c.nearestNonArrow(); fn != nil {
			fn.UsesThis = true
		}

		return // Leaf

	case kind == jstree.KindComment:
		return
	}

	c.visitChildren(n)
}

func (c *collector) visitChildren(n *sitter.Node) {
	for _, child := range jstree.NamedChildren(n) {
		c.visit(child)
	}
}

// handleReturn attributes a return statement to the innermost enclosing
// function. Top-level returns are not valid JavaScript and are skipped.
func (c *collector) handleReturn(n *sitter.Node) {
	if len(c.funcs) == 0 {
		return
	}

	info := ReturnInfo{
		Node:         n,
		InNestedLoop: c.loops[len(c.loops)-1] > 0,
	}

	for _, child := range jstree.NamedChildren(n) {
		info.Value = child

		break
	}

	if parent := n.Parent(); parent != nil {
		info.ParentKind = parent.Type()
	}

	fn := c.funcs[len(c.funcs)-1]
	fn.Returns = append(fn.Returns, info)
}

func (c *collector) handleIdent(n *sitter.Node) {
	name := jstree.Text(n, c.src)

	c.result.Identifiers = append(c.result.Identifiers, Identifier{
		Start: n.StartByte(),
		End:   n.EndByte(),
		Name:  name,
	})

	if name == "arguments" {
		if fn := c.nearestNonArrow(); fn != nil {
			fn.UsesArguments = true
		}
	}
}

// nearestNonArrow returns the innermost enclosing function that binds this
// and arguments, skipping arrow functions.
func (c *collector) nearestNonArrow() *FuncInfo {
	for i := len(c.funcs) - 1; i >= 0; i-- {
		if !c.funcs[i].Arrow {
			return c.funcs[i]
		}
	}

	return nil
}
