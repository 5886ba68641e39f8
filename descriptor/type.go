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

// TypeKind enumerates every type a type expression can compile to
// (spec.md S4.2).
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUInt8
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeFloat32
	TypeFloat64
	TypeText
	TypeData
	TypeEnum
	TypeStruct
	TypeInterface
	TypeList
	TypeInlineStruct
	TypeInlineList
)

// Type is the compiled form of an ast.TypeExpr.
type Type struct {
	Kind TypeKind

	Enum      *Enum      // TypeEnum
	Struct    *Struct    // TypeStruct, TypeInlineStruct
	Interface *Interface // TypeInterface

	Elem     *Type  // TypeList, TypeInlineList
	ListSize uint64 // TypeInlineList

	// InlineDataSize and InlinePointerCount cache the section sizes the
	// layout packer needs for TypeInlineStruct and TypeInlineList: for
	// TypeInlineStruct they equal Struct.Layout's own sizes; for
	// TypeInlineList they are the per-element sizes multiplied by
	// ListSize, computed once by the type expression compiler (spec.md
	// S4.2) rather than re-derived on every use.
	InlineDataSize     DataSectionSize
	InlinePointerCount uint32
}

// IsReference reports whether values of this type are stored in the
// pointer section rather than inline in the data section (spec.md S4.6's
// "references" case: text, data, lists, non-inline structs, interfaces).
func (t Type) IsReference() bool {
	switch t.Kind {
	case TypeText, TypeData, TypeList, TypeStruct, TypeInterface:
		return true
	default:
		return false
	}
}

// IsInlineComposite reports whether values of this type are packed
// directly into the enclosing struct's own sections.
func (t Type) IsInlineComposite() bool {
	return t.Kind == TypeInlineStruct || t.Kind == TypeInlineList
}

// DataSize returns the primitive DataSize of this type, or ok=false if
// the type is not a fixed-width primitive (void, reference and inline
// composite types are handled separately by the layout packer).
func (t Type) DataSize() (DataSize, bool) {
	switch t.Kind {
	case TypeBool:
		return Size1, true
	case TypeInt8, TypeUInt8:
		return Size8, true
	case TypeInt16, TypeUInt16:
		return Size16, true
	case TypeInt32, TypeUInt32, TypeFloat32:
		return Size32, true
	case TypeInt64, TypeUInt64, TypeFloat64:
		return Size64, true
	case TypeEnum:
		return Size16, true
	default:
		return 0, false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case TypeVoid:
		return "Void"
	case TypeBool:
		return "Bool"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeUInt8:
		return "UInt8"
	case TypeUInt16:
		return "UInt16"
	case TypeUInt32:
		return "UInt32"
	case TypeUInt64:
		return "UInt64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeText:
		return "Text"
	case TypeData:
		return "Data"
	case TypeEnum:
		return t.Enum.DescName()
	case TypeStruct:
		return t.Struct.DescName()
	case TypeInterface:
		return t.Interface.DescName()
	case TypeList:
		return "List(" + t.Elem.String() + ")"
	case TypeInlineStruct:
		return "Inline(" + t.Struct.DescName() + ")"
	case TypeInlineList:
		return "InlineList(" + t.Elem.String() + ", ...)"
	default:
		return "?"
	}
}
