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

package compiler

import (
	"fmt"

	"fortio.org/safecast"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// compileType compiles a TypeExpr to its descriptor.Type (spec.md S4.2).
// scope and builtins are passed through to lookup for resolving expr.Name.
func compileType(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, expr *ast.TypeExpr) diagnostic.Outcome[descriptor.Type] {
	return diagnostic.AndThen(lookup(scope, builtins, expr.Name), func(d descriptor.Descriptor) diagnostic.Outcome[descriptor.Type] {
		switch d.DescKind() {
		case descriptor.KindBuiltinList:
			return compileListType(scope, builtins, expr)
		case descriptor.KindBuiltinInline:
			return compileInlineType(scope, builtins, expr)
		case descriptor.KindBuiltinInlineList:
			return compileInlineListType(scope, builtins, expr)
		default:
			if len(expr.Params) != 0 {
				return diagnostic.Failed[descriptor.Type](errTypeTakesNoParams(expr.Pos(), d.DescName()))
			}
			return descriptorToType(expr.Pos(), d)
		}
	})
}

// descriptorToType converts a resolved, non-generic descriptor into its
// plain type form: builtins, enums, structs and interfaces pass through;
// anything else (fields, constants, the bare `id` builtin, ...) is not a
// type.
func descriptorToType(pos ast.Pos, d descriptor.Descriptor) diagnostic.Outcome[descriptor.Type] {
	switch d.DescKind() {
	case descriptor.KindBuiltinType:
		return diagnostic.Ok(descriptor.Type{Kind: d.(*descriptor.Builtin).Primitive})
	case descriptor.KindEnum:
		return diagnostic.Ok(descriptor.Type{Kind: descriptor.TypeEnum, Enum: d.(*descriptor.Enum)})
	case descriptor.KindStruct:
		return diagnostic.Ok(descriptor.Type{Kind: descriptor.TypeStruct, Struct: d.(*descriptor.Struct)})
	case descriptor.KindInterface:
		return diagnostic.Ok(descriptor.Type{Kind: descriptor.TypeInterface, Interface: d.(*descriptor.Interface)})
	default:
		return diagnostic.Failed[descriptor.Type](errNotAType(pos, d.DescName()))
	}
}

func compileListType(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, expr *ast.TypeExpr) diagnostic.Outcome[descriptor.Type] {
	if len(expr.Params) != 1 || expr.Params[0].Type == nil {
		return diagnostic.Failed[descriptor.Type](errGenericArity(expr.Pos(), "List", 1))
	}
	return diagnostic.AndThen(compileType(scope, builtins, expr.Params[0].Type), func(elem descriptor.Type) diagnostic.Outcome[descriptor.Type] {
		if elem.Kind == descriptor.TypeInlineStruct {
			return diagnostic.Failed[descriptor.Type](errListOfInlineStruct(expr.Pos()))
		}
		return diagnostic.Ok(descriptor.Type{Kind: descriptor.TypeList, Elem: &elem})
	})
}

func compileInlineType(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, expr *ast.TypeExpr) diagnostic.Outcome[descriptor.Type] {
	if len(expr.Params) != 1 || expr.Params[0].Type == nil {
		return diagnostic.Failed[descriptor.Type](errGenericArity(expr.Pos(), "Inline", 1))
	}
	return diagnostic.AndThen(compileType(scope, builtins, expr.Params[0].Type), func(elem descriptor.Type) diagnostic.Outcome[descriptor.Type] {
		if elem.Kind != descriptor.TypeStruct {
			return diagnostic.Failed[descriptor.Type](errInlineRequiresStruct(expr.Pos()))
		}
		if elem.Struct.Fixed == nil {
			return diagnostic.Failed[descriptor.Type](errInlineRequiresFixedWidth(expr.Pos(), elem.Struct.DescName()))
		}
		return diagnostic.Ok(descriptor.Type{
			Kind:               descriptor.TypeInlineStruct,
			Struct:             elem.Struct,
			InlineDataSize:     elem.Struct.Layout.DataSize,
			InlinePointerCount: elem.Struct.Layout.PointerCount,
		})
	})
}

func compileInlineListType(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, expr *ast.TypeExpr) diagnostic.Outcome[descriptor.Type] {
	if len(expr.Params) != 2 || expr.Params[0].Type == nil || expr.Params[1].Int == nil {
		return diagnostic.Failed[descriptor.Type](errGenericArity(expr.Pos(), "InlineList", 2))
	}
	return diagnostic.AndThen(compileType(scope, builtins, expr.Params[0].Type), func(elem descriptor.Type) diagnostic.Outcome[descriptor.Type] {
		if elem.IsInlineComposite() {
			return diagnostic.Failed[descriptor.Type](errInlineListElementNotInlineable(expr.Pos()))
		}
		if elem.Kind == descriptor.TypeStruct && elem.Struct.Fixed == nil {
			return diagnostic.Failed[descriptor.Type](errInlineRequiresFixedWidth(expr.Pos(), elem.Struct.DescName()))
		}

		sizeLit := expr.Params[1].Int
		if sizeLit.Negative {
			return diagnostic.Failed[descriptor.Type](errNegativeListSize(sizeLit.Pos()))
		}
		if !sizeLit.Magnitude.IsUint64() {
			return diagnostic.Failed[descriptor.Type](errListSizeTooLarge(sizeLit.Pos()))
		}
		size := sizeLit.Magnitude.Uint64()

		t := descriptor.Type{Kind: descriptor.TypeInlineList, Elem: &elem, ListSize: size}
		if elemDataSize, ok := elem.DataSize(); ok {
			t.InlineDataSize = descriptor.Words((elemDataSize.Bits()*size + 63) / 64)
		} else if elem.Kind == descriptor.TypeStruct {
			t.InlineDataSize = scaleDataSectionSize(elem.Struct.Layout.DataSize, size)
			t.InlinePointerCount = mustU32(uint64(elem.Struct.Layout.PointerCount) * size)
		} else if elem.IsReference() {
			t.InlinePointerCount = mustU32(size)
		}
		return diagnostic.Ok(t)
	})
}

// scaleDataSectionSize returns the DataSectionSize of n consecutive
// copies of elemSize packed end-to-end, as used by InlineList(Struct, n)
// where the struct's own fixed-width data section is not necessarily a
// whole number of words.
func scaleDataSectionSize(elemSize descriptor.DataSectionSize, n uint64) descriptor.DataSectionSize {
	return descriptor.Words((elemSize.Bits()*n + 63) / 64)
}

func mustU32(n uint64) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("compiler: value overflow: %w", err))
	}
	return v
}
