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

package descriptor_test

import (
	"testing"

	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/internal/testutil"
)

func TestTypeIsReference(t *testing.T) {
	reference := []descriptor.TypeKind{
		descriptor.TypeText, descriptor.TypeData, descriptor.TypeList,
		descriptor.TypeStruct, descriptor.TypeInterface,
	}
	for _, k := range reference {
		testutil.ExpectTrue(t, descriptor.Type{Kind: k}.IsReference())
	}

	value := []descriptor.TypeKind{
		descriptor.TypeBool, descriptor.TypeInt32, descriptor.TypeInlineStruct, descriptor.TypeInlineList,
	}
	for _, k := range value {
		testutil.ExpectFalse(t, descriptor.Type{Kind: k}.IsReference())
	}
}

func TestTypeIsInlineComposite(t *testing.T) {
	testutil.ExpectTrue(t, descriptor.Type{Kind: descriptor.TypeInlineStruct}.IsInlineComposite())
	testutil.ExpectTrue(t, descriptor.Type{Kind: descriptor.TypeInlineList}.IsInlineComposite())
	testutil.ExpectFalse(t, descriptor.Type{Kind: descriptor.TypeStruct}.IsInlineComposite())
}

func TestTypeDataSize(t *testing.T) {
	cases := []struct {
		kind descriptor.TypeKind
		want descriptor.DataSize
	}{
		{descriptor.TypeBool, descriptor.Size1},
		{descriptor.TypeInt8, descriptor.Size8},
		{descriptor.TypeUInt16, descriptor.Size16},
		{descriptor.TypeFloat32, descriptor.Size32},
		{descriptor.TypeFloat64, descriptor.Size64},
		{descriptor.TypeEnum, descriptor.Size16},
	}
	for _, c := range cases {
		got, ok := descriptor.Type{Kind: c.kind}.DataSize()
		testutil.ExpectTrue(t, ok)
		testutil.ExpectEq(t, c.want, got)
	}

	_, ok := descriptor.Type{Kind: descriptor.TypeStruct}.DataSize()
	testutil.ExpectFalse(t, ok)
}

func TestTypeStringPrimitives(t *testing.T) {
	testutil.ExpectEq(t, "Int32", descriptor.Type{Kind: descriptor.TypeInt32}.String())
	testutil.ExpectEq(t, "Text", descriptor.Type{Kind: descriptor.TypeText}.String())
}

func TestTypeStringListAndInlineComposites(t *testing.T) {
	elem := descriptor.Type{Kind: descriptor.TypeInt32}
	list := descriptor.Type{Kind: descriptor.TypeList, Elem: &elem}
	testutil.ExpectEq(t, "List(Int32)", list.String())

	s := descriptor.NewStructShell(pos(1), "S", nil, nil)
	inline := descriptor.Type{Kind: descriptor.TypeInlineStruct, Struct: s}
	testutil.ExpectEq(t, "Inline(S)", inline.String())
}
