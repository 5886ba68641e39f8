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

package ast

// TypeExpr is `Name` or `Name(Params...)`: a possibly-generic type
// reference. The built-in generics List, Inline and InlineList are
// recognized by the compiler once Name has been resolved -- this package
// only records the syntax.
type TypeExpr struct {
	ExprPos Pos
	Name    Name
	Params  []*TypeExprParam
}

func (t *TypeExpr) Pos() Pos { return t.ExprPos }

// TypeExprParam is one comma-separated parameter of a TypeExpr: either a
// nested type expression (for List(T), Inline(T), InlineList(T, n)'s
// first parameter) or an integer literal (InlineList's size parameter).
type TypeExprParam struct {
	ParamPos Pos
	Type     *TypeExpr // nil if Int is set
	Int      *IntLit
}

func (p *TypeExprParam) Pos() Pos { return p.ParamPos }
