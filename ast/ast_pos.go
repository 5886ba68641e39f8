// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package ast defines the parser-contract types consumed by the semantic
// analyzer: source positions, the declaration tree, name expressions and
// literal values. Nothing in this package lexes or parses source text --
// that remains the job of an external front end (see the Parser Contract
// types compiler.ParseResult and compiler.Parser in
// schemac.dev/schemac/compiler).
package ast

import "fmt"

// Pos is a (file, line, column) source location, 1-indexed.
type Pos struct {
	File   string
	Line   uint32
	Column uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is implemented by every AST node that can be the subject of a
// diagnostic.
type Node interface {
	Pos() Pos
}
