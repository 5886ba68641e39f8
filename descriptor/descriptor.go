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

// Package descriptor holds the resolved, type-checked output of the
// compiler: the descriptor tree (spec.md S3.3) and the layout descriptors
// used to place struct fields in the wire format's data and pointer
// sections (spec.md S3.4).
//
// A descriptor is built once, during compilation of its declaration, and
// never mutated afterward. The "self-referential" parent/member-map
// construction described in spec.md S9 is implemented here with two-phase
// construction: NewFileShell/NewStructShell/NewEnumShell/NewInterfaceShell
// return a mutable shell that children can hold a stable pointer to while
// they compile; Freeze populates the member map once and the shell is
// treated as immutable by every later reader.
package descriptor

import (
	"schemac.dev/schemac/ast"
)

// Kind identifies which descriptor variant a Descriptor value holds.
type Kind uint8

const (
	KindFile Kind = iota
	KindUsing
	KindConstant
	KindEnum
	KindEnumerant
	KindStruct
	KindUnion
	KindField
	KindInterface
	KindMethod
	KindParam
	KindAnnotation
	KindBuiltinType
	KindBuiltinList
	KindBuiltinInline
	KindBuiltinInlineList
	KindBuiltinID
)

// Descriptor is implemented by every node of the compiled tree, including
// the built-in pseudo-descriptors bound in the root scope.
type Descriptor interface {
	DescKind() Kind
	DescName() string
	DescID() (string, bool)
	DescParent() Descriptor
	DescPos() ast.Pos

	// DescMembers returns the direct-member scope of this descriptor, or
	// nil if it has none (fields, params, enumerants, constants, and the
	// built-ins are leaves).
	DescMembers() map[string]Descriptor
}

// AnnotationMap maps an annotation descriptor's own id to the compiled
// value it was applied with (spec.md S4.4).
type AnnotationMap map[string]Value

// base is embedded by every non-built-in descriptor.
type base struct {
	kind   Kind
	name   string
	id     string
	hasID  bool
	parent Descriptor
	pos    ast.Pos
	annots AnnotationMap
}

func (b *base) DescKind() Kind   { return b.kind }
func (b *base) DescName() string { return b.name }
func (b *base) DescPos() ast.Pos { return b.pos }

func (b *base) DescID() (string, bool) {
	return b.id, b.hasID
}

func (b *base) DescParent() Descriptor { return b.parent }

// Annotations returns the compiled annotation map attached to this
// descriptor (spec.md S4.4); it is nil for leaf descriptors that cannot
// carry annotations of their own beyond what Annotations already holds.
func (b *base) Annotations() AnnotationMap { return b.annots }
