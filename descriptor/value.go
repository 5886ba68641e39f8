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

package descriptor

import "math/big"

// ValueKind enumerates the compiled form every literal coerces to
// (spec.md S4.3).
type ValueKind uint8

const (
	ValueVoid ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueText
	ValueData
	ValueEnum
	ValueStruct
	ValueList
)

// Value is the typed, compiled form of an ast.Value.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   *big.Int
	Float float64
	Text  string
	Data  []byte
	Enum  *Enumerant

	// ValueStruct: Fields holds compiled values keyed by plain field
	// name; UnionFields holds, for each union that received an
	// assignment, the chosen member's name and compiled value.
	Fields      map[string]Value
	UnionFields map[string]UnionValue

	List []Value
}

// UnionValue is the variant selected for one union inside a struct
// literal.
type UnionValue struct {
	Member string
	Value  Value
}
