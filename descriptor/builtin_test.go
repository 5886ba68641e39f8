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

func TestBuiltinsCoversEveryPrimitiveAndGeneric(t *testing.T) {
	b := descriptor.Builtins()

	want := []string{
		"Void", "Bool", "Int8", "Int16", "Int32", "Int64",
		"UInt8", "UInt16", "UInt32", "UInt64", "Float32", "Float64",
		"Text", "Data", "List", "Inline", "InlineList", "id",
	}
	for _, name := range want {
		if _, ok := b[name]; !ok {
			t.Errorf("Builtins() missing %q", name)
		}
	}
	testutil.ExpectEq(t, len(want), len(b))
}

func TestBuiltinTypeCarriesItsPrimitiveKind(t *testing.T) {
	b := descriptor.Builtins()["Int32"].(*descriptor.Builtin)
	testutil.ExpectEq(t, descriptor.KindBuiltinType, b.DescKind())
	testutil.ExpectEq(t, descriptor.TypeInt32, b.Primitive)
}

func TestBuiltinGenericsHaveNoMembersOfTheirOwn(t *testing.T) {
	list := descriptor.Builtins()["List"]
	testutil.ExpectEq(t, descriptor.KindBuiltinList, list.DescKind())
	testutil.ExpectTrue(t, list.DescMembers() == nil)
}

func TestBuiltinIDName(t *testing.T) {
	id := descriptor.Builtins()["id"]
	testutil.ExpectEq(t, descriptor.KindBuiltinID, id.DescKind())
	testutil.ExpectEq(t, "id", id.DescName())
}
