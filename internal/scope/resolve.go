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

package scope

import (
	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/jstree"
)

// Resolution holds the scope tree and binding tables for one file. It is
// scoped to a single analysis run and discarded afterwards.
type Resolution struct {
	// Root is the program scope.
	Root *Scope

	// byIdent maps an identifier token's start byte to its binding. Both
	// definition and reference identifiers are indexed.
	byIdent map[uint32]*Binding

	// byNode maps the start byte of a scope-owning node to its scope.
	byNode map[uint32]*Scope
}

// BindingAt returns the binding for the identifier token starting at the
// given byte offset, or nil when the offset is not an indexed identifier.
func (r *Resolution) BindingAt(start uint32) *Binding {
	return r.byIdent[start]
}

// ScopeOf returns the scope owned by the given node, or nil when the node
// does not introduce one.
func (r *Resolution) ScopeOf(n *sitter.Node) *Scope {
	s, ok := r.byNode[n.StartByte()]
	if !ok || s.End != n.EndByte() {
		return nil
	}

	return s
}

// InnermostAt returns the innermost scope whose range contains pos.
func (r *Resolution) InnermostAt(pos uint32) *Scope {
	scope := r.Root

descend:
	for {
		for _, child := range scope.Children {
			if child.Start <= pos && pos < child.End {
				scope = child

				continue descend
			}
		}

		return scope
	}
}

// pendingRef is an identifier reference recorded during the scope walk,
// resolved once all declarations are known.
type pendingRef struct {
	start, end uint32
	name       string
	scope      *Scope
	write      bool
}

type resolver struct {
	src     []byte
	res     *Resolution
	pending []pendingRef

	// defs holds identifier start offsets already consumed as definition
	// sites, so the reference pass does not count them again.
	defs map[uint32]struct{}
}

// Resolve builds the scope tree and binding tables for a parsed file.
func Resolve(root *sitter.Node, src []byte) *Resolution {
	top := &Scope{
		Kind:     Program,
		Start:    root.StartByte(),
		End:      root.EndByte(),
		Bindings: make(map[string]*Binding),
	}

	r := &resolver{
		src: src,
		res: &Resolution{
			Root:    top,
			byIdent: make(map[uint32]*Binding),
			byNode:  map[uint32]*Scope{root.StartByte(): top},
		},
		defs: make(map[uint32]struct{}),
	}

	for _, child := range jstree.NamedChildren(root) {
		r.walk(child, top)
	}

	r.resolvePending()

	return r.res
}

// resolvePending resolves collected references against the finished scope
// tree. Unresolved names become implicit globals at program level.
func (r *resolver) resolvePending() {
	for _, ref := range r.pending {
		b := ref.scope.Lookup(ref.name)
		if b == nil {
			b = &Binding{Name: ref.name, Scope: r.res.Root, Implicit: true}
			r.res.Root.Bindings[ref.name] = b
		}

		b.Refs = append(b.Refs, Reference{Start: ref.start, End: ref.end, Write: ref.write})
		r.res.byIdent[ref.start] = b
	}
}

func (r *resolver) walk(n *sitter.Node, current *Scope) {
	scope := current

	switch kind := n.Type(); {
	case jstree.IsFunctionScope(kind):
		scope = r.enterFunction(n, current)

	case kind == jstree.KindStatementBlock,
		kind == jstree.KindForStatement,
		kind == jstree.KindForInStatement:
		scope = r.newScope(n, current, Block)

		if kind == jstree.KindForInStatement {
			r.declareForIn(n, scope)
		}

	case kind == jstree.KindCatchClause:
		scope = r.newScope(n, current, Catch)
		if param := n.ChildByFieldName("parameter"); param != nil {
			r.declarePattern(param, scope)
		}

	case kind == jstree.KindLexicalDeclaration:
		r.declareDeclarators(n, current)

	case kind == jstree.KindVariableDeclaration:
		r.declareDeclarators(n, current.FunctionScope())

	case kind == jstree.KindClassDeclaration:
		if name := n.ChildByFieldName("name"); name != nil {
			r.define(name, current)
		}

	case kind == jstree.KindIdentifier, kind == jstree.KindShorthandProperty:
		r.reference(n, current)

		return // Leaf

	case kind == jstree.KindPropertyIdentifier,
		kind == jstree.KindStatementIdentifier,
		kind == jstree.KindComment:
		return // Not a variable reference
	}

	for _, child := range jstree.NamedChildren(n) {
		r.walk(child, scope)
	}
}

// newScope creates and indexes a scope owned by n.
func (r *resolver) newScope(n *sitter.Node, parent *Scope, kind Kind) *Scope {
	s := parent.newChild(kind, n.StartByte(), n.EndByte())
	r.res.byNode[n.StartByte()] = s

	return s
}

// enterFunction creates the function scope and declares its name and
// parameters in the appropriate scopes.
func (r *resolver) enterFunction(n *sitter.Node, current *Scope) *Scope {
	kind := n.Type()

	// Function declarations bind their name in the enclosing scope.
	if kind == jstree.KindFunctionDeclaration || kind == jstree.KindGeneratorDeclaration {
		if name := n.ChildByFieldName("name"); name != nil {
			r.define(name, current)
		}
	}

	s := r.newScope(n, current, Function)
	s.Arrow = kind == jstree.KindArrowFunction

	// Named function expressions bind their own name inside themselves.
	if kind == jstree.KindFunctionExpression || kind == jstree.KindFunction || kind == jstree.KindGeneratorFunction {
		if name := n.ChildByFieldName("name"); name != nil {
			r.define(name, s)
		}
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, param := range jstree.NamedChildren(params) {
			r.declarePattern(param, s)
		}
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		// Arrow function with a single bare parameter
		r.declarePattern(param, s)
	}

	return s
}

// declareForIn declares the loop binding of a for-in/for-of statement when
// the statement declares one (for (const x of ...)). A plain lvalue on the
// left is handled by the reference pass instead.
func (r *resolver) declareForIn(n *sitter.Node, loopScope *Scope) {
	left := n.ChildByFieldName("left")
	if left == nil {
		return
	}

	declKind := n.ChildByFieldName("kind")
	if declKind == nil {
		return
	}

	target := loopScope
	if jstree.Text(declKind, r.src) == "var" {
		target = loopScope.FunctionScope()
	}

	r.declarePattern(left, target)
}

// declareDeclarators declares the names of every declarator in a
// var/let/const declaration into target.
func (r *resolver) declareDeclarators(n *sitter.Node, target *Scope) {
	for _, child := range jstree.NamedChildren(n) {
		if child.Type() != jstree.KindVariableDeclarator {
			continue
		}

		if name := child.ChildByFieldName("name"); name != nil {
			r.declarePattern(name, target)
		}
	}
}

// declarePattern declares every identifier bound by a (possibly nested)
// binding pattern. Default-value expressions stay reference positions.
func (r *resolver) declarePattern(pattern *sitter.Node, target *Scope) {
	switch pattern.Type() {
	case jstree.KindIdentifier, jstree.KindShorthandPropertyPattern:
		r.define(pattern, target)

	case jstree.KindRestPattern:
		for _, child := range jstree.NamedChildren(pattern) {
			r.declarePattern(child, target)
		}

	case jstree.KindAssignmentPattern:
		if left := pattern.ChildByFieldName("left"); left != nil {
			r.declarePattern(left, target)
		}

	case jstree.KindPairPattern:
		if value := pattern.ChildByFieldName("value"); value != nil {
			r.declarePattern(value, target)
		}

	case jstree.KindObjectPattern, jstree.KindArrayPattern:
		for _, child := range jstree.NamedChildren(pattern) {
			r.declarePattern(child, target)
		}
	}
}

// define records an identifier node as a definition site in target.
func (r *resolver) define(id *sitter.Node, target *Scope) {
	if target == nil {
		return
	}

	start, end := id.StartByte(), id.EndByte()

	b := target.declare(jstree.Text(id, r.src), Site{Start: start, End: end})
	r.res.byIdent[start] = b
	r.defs[start] = struct{}{}
}

// reference records an identifier use for the later resolution pass.
func (r *resolver) reference(id *sitter.Node, current *Scope) {
	start := id.StartByte()
	if _, ok := r.defs[start]; ok {
		return // Already consumed as a definition site
	}

	r.pending = append(r.pending, pendingRef{
		start: start,
		end:   id.EndByte(),
		name:  jstree.Text(id, r.src),
		scope: current,
		write: isWriteTarget(id),
	})
}

// isWriteTarget reports whether the identifier is mutated: the target of an
// assignment (possibly through a destructuring pattern) or of an
// increment/decrement.
func isWriteTarget(id *sitter.Node) bool {
	node := id

	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Type() {
		case jstree.KindAssignmentExpression, jstree.KindAugmentedAssignment:
			left := parent.ChildByFieldName("left")

			return left != nil && id.StartByte() >= left.StartByte() && id.EndByte() <= left.EndByte()

		case jstree.KindUpdateExpression:
			return true

		case jstree.KindArrayPattern, jstree.KindObjectPattern, jstree.KindPairPattern,
			jstree.KindRestPattern, jstree.KindAssignmentPattern, jstree.KindParenthesized:
			node = parent // Keep climbing through pattern shells

		default:
			return false
		}
	}

	return false
}
