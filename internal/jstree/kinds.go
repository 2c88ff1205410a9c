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

// Node kinds of the tree-sitter JavaScript grammar this linter dispatches
// on. The rule works with an explicit, finite set of kinds; anything else
// is traversed without special handling.
const (
	KindProgram             = "program"
	KindExpressionStatement = "expression_statement"
	KindParenthesized       = "parenthesized_expression"

	KindCallExpression      = "call_expression"
	KindMemberExpression    = "member_expression"
	KindSubscriptExpression = "subscript_expression"
	KindArguments           = "arguments"

	KindIdentifier          = "identifier"
	KindPropertyIdentifier  = "property_identifier"
	KindShorthandProperty   = "shorthand_property_identifier"
	KindStatementIdentifier = "statement_identifier"
	KindThis                = "this"

	KindArrowFunction        = "arrow_function"
	KindFunctionExpression   = "function_expression"
	KindFunction             = "function" // older grammar name for function expressions
	KindFunctionDeclaration  = "function_declaration"
	KindGeneratorFunction    = "generator_function"
	KindGeneratorDeclaration = "generator_function_declaration"
	KindMethodDefinition     = "method_definition"

	KindFormalParameters         = "formal_parameters"
	KindRestPattern              = "rest_pattern"
	KindAssignmentPattern        = "assignment_pattern"
	KindObjectPattern            = "object_pattern"
	KindArrayPattern             = "array_pattern"
	KindShorthandPropertyPattern = "shorthand_property_identifier_pattern"
	KindPairPattern              = "pair_pattern"

	KindStatementBlock   = "statement_block"
	KindReturnStatement  = "return_statement"
	KindIfStatement      = "if_statement"
	KindElseClause       = "else_clause"
	KindForStatement     = "for_statement"
	KindForInStatement   = "for_in_statement" // covers both for-in and for-of
	KindWhileStatement   = "while_statement"
	KindDoStatement      = "do_statement"
	KindCatchClause      = "catch_clause"
	KindLabeledStatement = "labeled_statement"

	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclaration = "variable_declaration"
	KindVariableDeclarator  = "variable_declarator"
	KindClassDeclaration    = "class_declaration"

	KindAssignmentExpression = "assignment_expression"
	KindAugmentedAssignment  = "augmented_assignment_expression"
	KindUpdateExpression     = "update_expression"
	KindSequenceExpression   = "sequence_expression"
	KindObject               = "object"
	KindClass                = "class"

	KindComment = "comment"
)

// Anonymous tokens the matcher and analyzer probe for.
const (
	TokenOptionalChain = "?."
	TokenAsync         = "async"
	TokenStar          = "*"
)

// IsFunctionValue reports whether kind is a function usable as a callback
// argument (an expression yielding a function value).
func IsFunctionValue(kind string) bool {
	switch kind {
	case KindArrowFunction, KindFunctionExpression, KindFunction, KindGeneratorFunction:
		return true
	default:
		return false
	}
}

// IsFunctionScope reports whether kind introduces a function-level scope.
func IsFunctionScope(kind string) bool {
	switch kind {
	case KindArrowFunction, KindFunctionExpression, KindFunction, KindGeneratorFunction,
		KindFunctionDeclaration, KindGeneratorDeclaration, KindMethodDefinition:
		return true
	default:
		return false
	}
}

// IsLoop reports whether kind is a loop construct that defines its own
// continuation semantics. A return statement nested inside one of these can
// never be rewritten into a continue.
func IsLoop(kind string) bool {
	switch kind {
	case KindForStatement, KindForInStatement, KindWhileStatement, KindDoStatement:
		return true
	default:
		return false
	}
}
