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

// Package scope resolves JavaScript lexical bindings over a tree-sitter
// tree: which identifiers resolve to which binding, and from which scope.
//
// The resolver models the binding rules the rewrite safety analysis needs:
// var hoisting to the enclosing function, let/const block scoping,
// parameters, catch clauses and named function expressions. Names that
// never resolve bind to an implicit global at program level.
package scope

// Kind classifies a lexical scope.
type Kind uint8

const (
	// Program is the top-level scope of a file.
	Program Kind = iota

	// Function covers function declarations, function expressions, arrow
	// functions, generators and methods.
	Function

	// Block covers statement blocks and loop heads.
	Block

	// Catch is the scope introduced by a catch clause parameter.
	Catch
)

// Scope is one lexical scope, identified by the byte range of the syntax
// node that owns it.
type Scope struct {
	Kind Kind

	// Start and End are the byte range of the owning node.
	Start, End uint32

	// Arrow is set for function scopes of arrow functions, which do not
	// bind this or arguments.
	Arrow bool

	Parent   *Scope
	Children []*Scope

	// Bindings maps names declared directly in this scope.
	Bindings map[string]*Binding
}

// Site is the byte range of one definition site.
type Site struct {
	Start, End uint32
}

// Reference is one resolved use of a binding.
type Reference struct {
	Start, End uint32

	// Write is set when the reference is an assignment or
	// increment/decrement target.
	Write bool
}

// Binding is a resolved variable: its defining scope plus all definition
// and reference sites.
type Binding struct {
	Name  string
	Scope *Scope
	Defs  []Site
	Refs  []Reference

	// Implicit marks names that never resolved to a declaration and were
	// bound at program level as globals.
	Implicit bool
}

// Reassigned reports whether any reference mutates the binding.
func (b *Binding) Reassigned() bool {
	for _, ref := range b.Refs {
		if ref.Write {
			return true
		}
	}

	return false
}

// Lookup resolves a name by walking the scope chain outwards.
func (s *Scope) Lookup(name string) *Binding {
	for scope := s; scope != nil; scope = scope.Parent {
		if b, ok := scope.Bindings[name]; ok {
			return b
		}
	}

	return nil
}

// FunctionScope returns the nearest enclosing function or program scope.
// This is where var declarations hoist to.
func (s *Scope) FunctionScope() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Kind == Function || scope.Kind == Program {
			return scope
		}
	}

	return nil
}

// Contains reports whether other is s itself or a descendant of s.
func (s *Scope) Contains(other *Scope) bool {
	for scope := other; scope != nil; scope = scope.Parent {
		if scope == s {
			return true
		}
	}

	return false
}

// declare adds a definition site for name to this scope, creating the
// binding on first sight.
func (s *Scope) declare(name string, site Site) *Binding {
	b, ok := s.Bindings[name]
	if !ok {
		b = &Binding{Name: name, Scope: s}
		s.Bindings[name] = b
	}

	b.Defs = append(b.Defs, site)

	return b
}

// newChild creates a child scope covering the given byte range.
func (s *Scope) newChild(kind Kind, start, end uint32) *Scope {
	child := &Scope{
		Kind:     kind,
		Start:    start,
		End:      end,
		Parent:   s,
		Bindings: make(map[string]*Binding),
	}
	s.Children = append(s.Children, child)

	return child
}
