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

// Package analyze classifies candidate call sites: it decides whether a
// behavior-preserving rewrite exists and collects everything the rewrite
// generators need. Every precondition failure degrades to a diagnostic
// without a patch, never to an error.
package analyze

import (
	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/jstree"
	"forof/internal/match"
	"forof/internal/scope"
	"forof/internal/usage"
)

// Verdict is the classification result for one candidate call site.
type Verdict struct {
	// Fixable is false when only a diagnostic should be emitted.
	Fixable bool

	// Reason names the first violated precondition, for logging.
	Reason string

	// Stmt is the enclosing expression statement, the range the composed
	// patch widens to.
	Stmt *sitter.Node

	// Callback is the sole argument with redundant parentheses removed;
	// Body is its block or expression body.
	Callback *sitter.Node
	Body     *sitter.Node

	// Params holds the one or two plain parameter identifiers in callback
	// order (element, then index).
	Params []*sitter.Node

	// Returns are the validated return statements inside the callback.
	Returns []usage.ReturnInfo

	// Reassigned is set when any parameter binding is mutated inside the
	// callback, forcing a mutable loop binding.
	Reassigned bool
}

func unfixable(reason string) Verdict {
	return Verdict{Reason: reason}
}

// Classify determines whether a safe rewrite exists for the call site.
func Classify(site match.CallSite, res *scope.Resolution, data usage.Result, src []byte) Verdict {
	if site.GroupedCallee {
		return unfixable("callee is parenthesized")
	}

	if site.OptionalCall {
		return unfixable("optional invocation of forEach itself")
	}

	// a?.b.forEach(cb) skips only when a is nullish but throws when a.b
	// is; a guard on the whole receiver cannot tell the two apart. With
	// recv?.forEach the receiver's own nullishness is the skip condition,
	// so that form stays fixable with a guard.
	if site.OptionalReceiver && !site.OptionalMember {
		return unfixable("null-safe access inside the receiver chain")
	}

	stmt := site.Call.Parent()
	if stmt == nil || stmt.Type() != jstree.KindExpressionStatement {
		// Includes redundant grouping around the whole call: the call is
		// then not the entire contents of a statement.
		return unfixable("call is not a whole statement")
	}

	if len(site.Args) != 1 {
		return unfixable("not exactly one argument")
	}

	callback := site.Args[0]
	for callback.Type() == jstree.KindParenthesized {
		inner := jstree.NamedChildren(callback)
		if len(inner) != 1 {
			return unfixable("malformed callback grouping")
		}

		callback = inner[0]
	}

	if !jstree.IsFunctionValue(callback.Type()) {
		return unfixable("argument is not a function value")
	}

	if callback.Type() == jstree.KindGeneratorFunction ||
		jstree.HasAnonChild(callback, jstree.TokenAsync) ||
		jstree.HasAnonChild(callback, jstree.TokenStar) {
		return unfixable("async or generator callback")
	}

	params, ok := callbackParams(callback)
	if !ok {
		return unfixable("parameters are not one or two plain identifiers")
	}

	info := data.FuncAt(callback)
	if info == nil {
		return unfixable("missing traversal metadata for callback")
	}

	if !info.Arrow && (info.UsesThis || info.UsesArguments) {
		return unfixable("callback depends on its own this or arguments")
	}

	if named := callback.ChildByFieldName("name"); named != nil {
		if b := res.BindingAt(named.StartByte()); b != nil && len(b.Refs) > 0 {
			return unfixable("callback references itself")
		}
	}

	for _, ret := range info.Returns {
		if ret.InNestedLoop {
			// A continue inside that loop would continue the wrong
			// construct. Conservative: any nested loop blocks the fix.
			return unfixable("return nested inside a loop construct")
		}
	}

	cbScope := res.ScopeOf(callback)
	if cbScope == nil {
		return unfixable("missing scope for callback")
	}

	if captures(params, site.Receiver, cbScope, res, data, src) {
		return unfixable("parameter name captured by iterated expression")
	}

	verdict := Verdict{
		Fixable:  true,
		Stmt:     stmt,
		Callback: callback,
		Body:     callback.ChildByFieldName("body"),
		Params:   params,
		Returns:  info.Returns,
	}

	if verdict.Body == nil {
		return unfixable("callback has no body")
	}

	for _, param := range params {
		if b := res.BindingAt(param.StartByte()); b != nil && b.Reassigned() {
			verdict.Reassigned = true

			break
		}
	}

	return verdict
}

// callbackParams extracts the callback's formal parameters when they are
// exactly one or two plain identifiers (no rest, default or destructuring
// patterns).
func callbackParams(callback *sitter.Node) ([]*sitter.Node, bool) {
	var params []*sitter.Node

	if list := callback.ChildByFieldName("parameters"); list != nil {
		params = jstree.NamedChildren(list)
	} else if bare := callback.ChildByFieldName("parameter"); bare != nil {
		params = []*sitter.Node{bare}
	}

	if len(params) < 1 || len(params) > 2 {
		return nil, false
	}

	for _, param := range params {
		if param.Type() != jstree.KindIdentifier {
			return nil, false
		}
	}

	return params, true
}

// captures runs the two-pass shadowing check: first gather every
// identifier that shares a parameter name and lies textually inside the
// iterated-source expression, then confirm each one resolves into the
// callback's own scope tree. Any reference reaching a binding outside the
// callback would be captured by the synthesized loop binding.
func captures(params []*sitter.Node, receiver *sitter.Node, cbScope *scope.Scope,
	res *scope.Resolution, data usage.Result, src []byte,
) bool {
	start, end := receiver.StartByte(), receiver.EndByte()

	for _, param := range params {
		name := jstree.Text(param, src)

		for _, id := range data.Identifiers {
			if id.Name != name || id.Start < start || id.End > end {
				continue
			}

			b := res.BindingAt(id.Start)
			if b == nil || !cbScope.Contains(b.Scope) {
				return true
			}
		}
	}

	return false
}
