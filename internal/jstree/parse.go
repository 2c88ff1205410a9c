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

// Package jstree wraps the tree-sitter JavaScript grammar behind the small
// surface the linter needs: parsing, node-kind dispatch, source slicing and
// token-level navigation for precise edit placement.
package jstree

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// MaxFileSize is the largest source file accepted for analysis.
const MaxFileSize = 10 * 1024 * 1024 // 10MB

// ErrFileTooLarge is returned for files larger than [MaxFileSize].
var ErrFileTooLarge = errors.New("file too large")

// ErrInvalidContent is returned when the source is not valid UTF-8.
var ErrInvalidContent = errors.New("source is not valid UTF-8")

// Parse parses JavaScript source into a tree-sitter tree.
//
// The caller owns the returned tree and must call Close on it. Each call
// creates its own parser instance, so Parse is safe for concurrent use.
func Parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	if len(src) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if !utf8.Valid(src) {
		return nil, ErrInvalidContent
	}

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}

	return tree, nil
}
