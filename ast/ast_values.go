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

import "math/big"

// Value is implemented by every literal AST node the value compiler may
// be asked to coerce against an expected type.
type Value interface {
	Node
	isValue()
}

// VoidValue is the literal written for a Void-typed field (usually an
// empty pair of parens, or simply omitted).
type VoidValue struct {
	ValuePos Pos
}

func (v *VoidValue) Pos() Pos { return v.ValuePos }
func (*VoidValue) isValue()   {}

// IdentValue is a bare identifier used as a value: `true`/`false` for
// Bool, `inf`/`nan` for floats, or an enumerant name for an Enum.
type IdentValue struct {
	ValuePos Pos
	Name     string
}

func (v *IdentValue) Pos() Pos { return v.ValuePos }
func (*IdentValue) isValue()   {}

// IntLit is an integer literal. Magnitude holds the absolute value so
// that the full range of all supported integer widths, including
// math.MinInt64 and math.MaxUint64, can be represented exactly.
type IntLit struct {
	ValuePos Pos
	Negative bool
	Magnitude *big.Int
}

func (v *IntLit) Pos() Pos { return v.ValuePos }
func (*IntLit) isValue()   {}

// SignedValue returns the literal as a signed big.Int.
func (v *IntLit) SignedValue() *big.Int {
	n := new(big.Int).Set(v.Magnitude)
	if v.Negative {
		n.Neg(n)
	}
	return n
}

// FloatLit is a literal written with a decimal point or exponent.
type FloatLit struct {
	ValuePos Pos
	Value    float64
}

func (v *FloatLit) Pos() Pos { return v.ValuePos }
func (*FloatLit) isValue()   {}

// TextLit is a quoted string literal, accepted for Text, Asciz/Data-style
// byte values, and as an annotation's `id` payload.
type TextLit struct {
	ValuePos Pos
	Value    string
}

func (v *TextLit) Pos() Pos { return v.ValuePos }
func (*TextLit) isValue()   {}

// RecordValue is a parenthesized list of field assignments, used for
// struct and inline-struct literals: `(a = 1, b = 2)`.
type RecordValue struct {
	ValuePos Pos
	Fields   []*RecordField
}

func (v *RecordValue) Pos() Pos { return v.ValuePos }
func (*RecordValue) isValue()   {}

// RecordField is one `name = value` pair inside a RecordValue.
type RecordField struct {
	FieldPos Pos
	Name     *Ident
	Value    Value
}

func (f *RecordField) Pos() Pos { return f.FieldPos }

// UnionFieldValue selects one variant of a union inside a struct literal:
// the RecordField whose Value is a UnionFieldValue is understood to be
// assigning the union itself, not a plain field.
type UnionFieldValue struct {
	ValuePos Pos
	Member   *Ident
	Inner    Value
}

func (v *UnionFieldValue) Pos() Pos { return v.ValuePos }
func (*UnionFieldValue) isValue()   {}

// ListValue is a bracketed list literal, used for List(T) and
// InlineList(T, n) values.
type ListValue struct {
	ValuePos Pos
	Elements []Value
}

func (v *ListValue) Pos() Pos { return v.ValuePos }
func (*ListValue) isValue()   {}
