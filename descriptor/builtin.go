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

// Builtin is a pseudo-descriptor bound in every file's implicit root
// scope: a primitive type, one of the generic type constructors List,
// Inline and InlineList, or the reserved `id` annotation name
// (spec.md S4.1, S6.4).
type Builtin struct {
	base
	Primitive TypeKind // meaningful only when DescKind() == KindBuiltinType
}

func (b *Builtin) DescMembers() map[string]Descriptor { return nil }

func newBuiltin(kind Kind, name string) *Builtin {
	return &Builtin{base: base{kind: kind, name: name}}
}

// NewBuiltinType returns the pseudo-descriptor for a primitive type name
// such as "Bool" or "Int32".
func NewBuiltinType(name string, t TypeKind) *Builtin {
	b := newBuiltin(KindBuiltinType, name)
	b.Primitive = t
	return b
}

func NewBuiltinList() *Builtin       { return newBuiltin(KindBuiltinList, "List") }
func NewBuiltinInline() *Builtin     { return newBuiltin(KindBuiltinInline, "Inline") }
func NewBuiltinInlineList() *Builtin { return newBuiltin(KindBuiltinInlineList, "InlineList") }
func NewBuiltinID() *Builtin         { return newBuiltin(KindBuiltinID, "id") }

// Builtins returns the fixed table of names reserved in every file's
// implicit root scope.
func Builtins() map[string]Descriptor {
	return map[string]Descriptor{
		"Void":    NewBuiltinType("Void", TypeVoid),
		"Bool":    NewBuiltinType("Bool", TypeBool),
		"Int8":    NewBuiltinType("Int8", TypeInt8),
		"Int16":   NewBuiltinType("Int16", TypeInt16),
		"Int32":   NewBuiltinType("Int32", TypeInt32),
		"Int64":   NewBuiltinType("Int64", TypeInt64),
		"UInt8":   NewBuiltinType("UInt8", TypeUInt8),
		"UInt16":  NewBuiltinType("UInt16", TypeUInt16),
		"UInt32":  NewBuiltinType("UInt32", TypeUInt32),
		"UInt64":  NewBuiltinType("UInt64", TypeUInt64),
		"Float32": NewBuiltinType("Float32", TypeFloat32),
		"Float64": NewBuiltinType("Float64", TypeFloat64),
		"Text":    NewBuiltinType("Text", TypeText),
		"Data":    NewBuiltinType("Data", TypeData),

		"List":       NewBuiltinList(),
		"Inline":     NewBuiltinInline(),
		"InlineList": NewBuiltinInlineList(),
		"id":         NewBuiltinID(),
	}
}
