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

// Package match finds candidate forEach call sites. It only recognizes the
// syntactic shape; fixability is classified later by the analyzer.
package match

import (
	sitter "github.com/smacker/go-tree-sitter"

	"forof/internal/jstree"
)

// MethodName is the iteration method this rule targets.
const MethodName = "forEach"

// CallSite is a candidate invocation of the target iteration method,
// prior to safety classification.
type CallSite struct {
	// Call is the call_expression node.
	Call *sitter.Node

	// Member is the callee member expression; Receiver and Property are
	// its object and property children.
	Member   *sitter.Node
	Receiver *sitter.Node
	Property *sitter.Node

	// Args are the named argument nodes of the call.
	Args []*sitter.Node

	// OptionalMember marks receiver?.forEach(...), OptionalCall marks
	// receiver.forEach?.(...). OptionalReceiver marks a null-safe access
	// deeper on the receiver spine, as in a?.b.forEach(...), which also
	// short-circuits the invocation but guards a different prefix of the
	// chain.
	OptionalMember   bool
	OptionalCall     bool
	OptionalReceiver bool

	// GroupedCallee marks a callee wrapped in redundant parentheses,
	// (receiver.forEach)(...), which is reported but never rewritten.
	GroupedCallee bool
}

// Match inspects a call_expression node and returns the candidate call
// site when its callee is a (possibly null-safe) forEach member access on
// a non-allowlisted receiver.
func Match(call *sitter.Node, src []byte) (CallSite, bool) {
	if call.Type() != jstree.KindCallExpression {
		return CallSite{}, false
	}

	callee := call.ChildByFieldName("function")
	if callee == nil {
		return CallSite{}, false
	}

	grouped := false
	for callee.Type() == jstree.KindParenthesized {
		grouped = true

		inner := firstNamedChild(callee)
		if inner == nil {
			return CallSite{}, false
		}

		callee = inner
	}

	if callee.Type() != jstree.KindMemberExpression {
		return CallSite{}, false
	}

	property := callee.ChildByFieldName("property")
	receiver := callee.ChildByFieldName("object")

	if property == nil || receiver == nil {
		return CallSite{}, false
	}

	if property.Type() != jstree.KindPropertyIdentifier || jstree.Text(property, src) != MethodName {
		return CallSite{}, false
	}

	if Allowlisted(receiver, src) {
		return CallSite{}, false
	}

	site := CallSite{
		Call:             call,
		Member:           callee,
		Receiver:         receiver,
		Property:         property,
		OptionalMember:   jstree.HasAnonChild(callee, jstree.TokenOptionalChain),
		OptionalCall:     jstree.HasAnonChild(call, jstree.TokenOptionalChain),
		OptionalReceiver: optionalSpine(receiver),
		GroupedCallee:    grouped,
	}

	if args := call.ChildByFieldName("arguments"); args != nil {
		site.Args = jstree.NamedChildren(args)
	}

	return site, true
}

// optionalSpine reports whether any member, subscript or call access on
// the receiver's own access spine is null-safe. A ?. on that spine
// short-circuits every later access in the chain, including the forEach
// invocation; a ?. elsewhere in the receiver (a subscript index, a call
// argument) or behind parentheses does not.
func optionalSpine(receiver *sitter.Node) bool {
	for n := receiver; ; {
		if jstree.HasAnonChild(n, jstree.TokenOptionalChain) {
			return true
		}

		var next *sitter.Node
		switch n.Type() {
		case jstree.KindMemberExpression, jstree.KindSubscriptExpression:
			next = n.ChildByFieldName("object")
		case jstree.KindCallExpression:
			next = n.ChildByFieldName("function")
		}

		if next == nil {
			return false
		}

		n = next
	}
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for _, child := range jstree.NamedChildren(n) {
		return child
	}

	return nil
}
