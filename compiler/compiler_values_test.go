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
	"math/big"
	"testing"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/internal/testutil"
)

func intLit(n int64) *ast.IntLit {
	neg := n < 0
	if neg {
		n = -n
	}
	return &ast.IntLit{Negative: neg, Magnitude: big.NewInt(n)}
}

func TestCompileValueBool(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeBool}, &ast.IdentValue{Name: "true"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectTrue(t, got.Bool)
}

func TestCompileValueIntInRange(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeInt8}, intLit(127))
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, int64(127), got.Int.Int64())
}

func TestCompileValueIntOutOfRange(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeInt8}, intLit(128))
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileValueUIntRejectsNegative(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeUInt8}, intLit(-1))
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileValueFloatFromInt(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeFloat64}, intLit(5))
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, float64(5), got.Float)
}

func TestCompileValueFloatInf(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeFloat32}, &ast.IdentValue{Name: "inf"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectTrue(t, got.Float > 0)
}

func TestCompileValueText(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeText}, &ast.TextLit{Value: "hi"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, "hi", got.Text)
}

func TestCompileValueVoidRejectsNonVoidLiteral(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeVoid}, &ast.TextLit{Value: "x"})
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileValueEnum(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	red := descriptor.NewEnumerant(testPos(), "Red", enum, "", false, nil, 0)
	enum.Members["Red"] = red
	enum.Freeze("", false, nil, []*descriptor.Enumerant{red})

	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeEnum, Enum: enum}, &ast.IdentValue{Name: "Red"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(red), descriptor.Descriptor(got.Enum))
}

func TestCompileValueEnumUnknownMember(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeEnum, Enum: enum}, &ast.IdentValue{Name: "Nope"})
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileValueListOfInt(t *testing.T) {
	elem := descriptor.Type{Kind: descriptor.TypeInt32}
	lv := &ast.ListValue{Elements: []ast.Value{intLit(1), intLit(2), intLit(3)}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeList, Elem: &elem}, lv)
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, 3, len(got.List))
}

func TestCompileValueInlineListWrongLength(t *testing.T) {
	elem := descriptor.Type{Kind: descriptor.TypeInt32}
	lv := &ast.ListValue{Elements: []ast.Value{intLit(1)}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeInlineList, Elem: &elem, ListSize: 2}, lv)
	testutil.ExpectOutcomeErrors(t, out)
}

func buildPointStruct() *descriptor.Struct {
	s := descriptor.NewStructShell(testPos(), "Point", nil, nil)
	fx := descriptor.NewField(testPos(), "X", s, "", false, nil, 0, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, nil)
	fy := descriptor.NewField(testPos(), "Y", s, "", false, nil, 1, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, nil)
	s.Members["X"] = fx
	s.Members["Y"] = fy
	s.Freeze("", false, nil, []*descriptor.Field{fx, fy}, nil, descriptor.StructLayout{})
	return s
}

func TestCompileValueStructLiteral(t *testing.T) {
	s := buildPointStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "X"}, Value: intLit(1)},
		{Name: &ast.Ident{Value: "Y"}, Value: intLit(2)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, int64(1), got.Fields["X"].Int.Int64())
	testutil.ExpectEq(t, int64(2), got.Fields["Y"].Int.Int64())
}

func TestCompileValueStructLiteralNoSuchField(t *testing.T) {
	s := buildPointStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "Z"}, Value: intLit(1)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileValueStructLiteralDuplicateField(t *testing.T) {
	s := buildPointStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "X"}, Value: intLit(1)},
		{Name: &ast.Ident{Value: "X"}, Value: intLit(2)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	testutil.ExpectOutcomeErrors(t, out)
}

func buildShapeUnionStruct() *descriptor.Struct {
	s := descriptor.NewStructShell(testPos(), "Shape", nil, nil)
	u := descriptor.NewUnionShell(testPos(), "shape", s, 0)
	circle := descriptor.NewField(testPos(), "circle", u, "", false, nil, 1, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, u)
	square := descriptor.NewField(testPos(), "square", u, "", false, nil, 2, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, u)
	u.Fields["circle"] = circle
	u.Fields["square"] = square
	u.Freeze("", false, nil, []*descriptor.Field{circle, square}, nil, descriptor.FieldOffset{})
	s.Members["shape"] = u
	s.Freeze("", false, nil, nil, []*descriptor.Union{u}, descriptor.StructLayout{})
	return s
}

func TestCompileValueStructLiteralUnionVariant(t *testing.T) {
	s := buildShapeUnionStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "shape"}, Value: &ast.UnionFieldValue{Member: &ast.Ident{Value: "circle"}, Inner: intLit(5)}},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	got := testutil.ExpectOutcomeOK(t, out)
	uv := got.UnionFields["shape"]
	testutil.ExpectEq(t, "circle", uv.Member)
	testutil.ExpectEq(t, int64(5), uv.Value.Int.Int64())
}

func TestCompileValueStructLiteralUnionRequiresUnionFieldValue(t *testing.T) {
	s := buildShapeUnionStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "shape"}, Value: intLit(5)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	testutil.ExpectOutcomeErrors(t, out)
}

func buildUnionMemberAddressableStruct() *descriptor.Struct {
	s := descriptor.NewStructShell(testPos(), "S", nil, nil)
	u := descriptor.NewUnionShell(testPos(), "u", s, 0)
	a := descriptor.NewField(testPos(), "a", u, "", false, nil, 1, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, u)
	b := descriptor.NewField(testPos(), "b", u, "", false, nil, 2, descriptor.Type{Kind: descriptor.TypeInt32}, descriptor.Value{}, false, u)
	u.Fields["a"] = a
	u.Fields["b"] = b
	u.Freeze("", false, nil, []*descriptor.Field{a, b}, nil, descriptor.FieldOffset{})
	// A union member is directly addressable on the struct, not just
	// through the union (spec.md S4.3 rule 1).
	s.Members["a"] = a
	s.Members["b"] = b
	s.Members["u"] = u
	s.Freeze("", false, nil, nil, []*descriptor.Union{u}, descriptor.StructLayout{})
	return s
}

func TestCompileValueStructLiteralUnionMembersAddressableByOwnName(t *testing.T) {
	s := buildUnionMemberAddressableStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "a"}, Value: intLit(1)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, int64(1), got.Fields["a"].Int.Int64())
}

// TestCompileValueStructLiteralMultipleUnionFieldsAssigned covers spec.md
// S8.3 Scenario 5: a literal assigning two distinct fields of the same
// union, each addressed by its own name, is a single diagnostic naming
// the union and both offending field names.
func TestCompileValueStructLiteralMultipleUnionFieldsAssigned(t *testing.T) {
	s := buildUnionMemberAddressableStruct()
	rv := &ast.RecordValue{Fields: []*ast.RecordField{
		{Name: &ast.Ident{Value: "a"}, Value: intLit(1)},
		{Name: &ast.Ident{Value: "b"}, Value: intLit(2)},
	}}
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeStruct, Struct: s}, rv)
	errs := testutil.ExpectOutcomeErrors(t, out)

	var found bool
	for _, e := range errs {
		if e.Message == `assigns multiple fields belonging to the same union "u": a, b` {
			found = true
		}
	}
	testutil.ExpectTrue(t, found)
}

func TestCompileValueInterfaceAlwaysErrors(t *testing.T) {
	out := compileValue(testPos(), descriptor.Type{Kind: descriptor.TypeInterface}, &ast.VoidValue{})
	testutil.ExpectOutcomeErrors(t, out)
}
