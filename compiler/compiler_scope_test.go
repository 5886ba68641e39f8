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
	"testing"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/internal/testutil"
)

func testPos() ast.Pos { return ast.Pos{File: "test.schema", Line: 1, Column: 1} }

func newTestFile(members map[string]descriptor.Descriptor, imports map[string]*descriptor.File) *descriptor.File {
	f := descriptor.NewFileShell(testPos(), "test.schema")
	for k, v := range members {
		f.Members[k] = v
	}
	f.Freeze("", false, nil, imports, nil)
	return f
}

func TestLookupRelativeNameInFile(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": enum}, nil)

	out := lookup(file, descriptor.Builtins(), &ast.RelativeName{Ident: "Color"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(enum), got)
}

func TestLookupRelativeNameFallsBackToBuiltin(t *testing.T) {
	file := newTestFile(nil, nil)
	out := lookup(file, descriptor.Builtins(), &ast.RelativeName{Ident: "Int32"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.KindBuiltinType, got.DescKind())
}

func TestLookupRelativeNameUndefined(t *testing.T) {
	file := newTestFile(nil, nil)
	out := lookup(file, descriptor.Builtins(), &ast.RelativeName{NamePos: testPos(), Ident: "Nope"})
	testutil.ExpectOutcomeErrors(t, out)
}

func TestLookupRelativeNameWalksOutToFileScope(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": enum}, nil)

	inner := descriptor.NewStructShell(testPos(), "Widget", file, nil)
	inner.Freeze("", false, nil, nil, nil, descriptor.StructLayout{})

	out := lookup(inner, descriptor.Builtins(), &ast.RelativeName{Ident: "Color"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(enum), got)
}

func TestLookupRelativeNamePrefersLocalMemberOverOuterScope(t *testing.T) {
	outerEnum := descriptor.NewEnumShell(testPos(), "Color", nil)
	outerEnum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": outerEnum}, nil)

	inner := descriptor.NewStructShell(testPos(), "Widget", file, nil)
	innerField := descriptor.NewField(testPos(), "Color", inner, "", false, nil, 0, descriptor.Type{Kind: descriptor.TypeBool}, descriptor.Value{}, false, nil)
	inner.Members["Color"] = innerField
	inner.Freeze("", false, nil, []*descriptor.Field{innerField}, nil, descriptor.StructLayout{})

	out := lookup(inner, descriptor.Builtins(), &ast.RelativeName{Ident: "Color"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(innerField), got)
}

func TestLookupImportName(t *testing.T) {
	imported := newTestFile(nil, nil)
	file := newTestFile(nil, map[string]*descriptor.File{"other": imported})

	out := lookup(file, descriptor.Builtins(), &ast.ImportName{Ident: "other"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(imported), got)
}

func TestLookupImportNameUndefined(t *testing.T) {
	file := newTestFile(nil, nil)
	out := lookup(file, descriptor.Builtins(), &ast.ImportName{NamePos: testPos(), Ident: "missing"})
	testutil.ExpectOutcomeErrors(t, out)
}

func TestLookupMemberNameFollowsUsingAlias(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": enum}, nil)

	iface := descriptor.NewInterfaceShell(testPos(), "Shapes", file)
	alias := descriptor.NewUsing(testPos(), "Hue", iface, "", false, nil, enum)
	iface.Members["Hue"] = alias
	iface.Freeze("", false, nil, nil)
	file.Members["Shapes"] = iface

	name := &ast.MemberName{Parent: &ast.RelativeName{Ident: "Shapes"}, Leaf: "Hue"}
	out := lookup(file, descriptor.Builtins(), name)
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(enum), got)
}

func TestLookupMemberNameNoSuchMember(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": enum}, nil)

	name := &ast.MemberName{Parent: &ast.RelativeName{Ident: "Color"}, Leaf: "Nope", LeafPos: testPos()}
	out := lookup(file, descriptor.Builtins(), name)
	testutil.ExpectOutcomeErrors(t, out)
}

func TestLookupMemberNameParentNotAScope(t *testing.T) {
	field := descriptor.NewField(testPos(), "X", nil, "", false, nil, 0, descriptor.Type{Kind: descriptor.TypeBool}, descriptor.Value{}, false, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"X": field}, nil)

	name := &ast.MemberName{Parent: &ast.RelativeName{Ident: "X"}, Leaf: "Y", LeafPos: testPos()}
	out := lookup(file, descriptor.Builtins(), name)
	testutil.ExpectOutcomeErrors(t, out)
}

func TestCompileStructDeclRejectsMisplacedDeclaration(t *testing.T) {
	// ast.StructDecl.Body is typed []ast.Decl, the same general interface
	// used at file scope, so a declaration kind that doesn't belong
	// inside a struct must be rejected explicitly rather than silently
	// dropped (spec.md S4.7 scope-check rule).
	d := &ast.StructDecl{
		DeclPos: testPos(),
		Name:    &ast.Ident{Value: "S"},
		Body: []ast.Decl{
			&ast.EnumDecl{DeclPos: testPos(), Name: &ast.Ident{Value: "Bad"}},
		},
	}

	out := compileStructDecl(nil, descriptor.Builtins(), nil, newOptions(nil), d)
	testutil.ExpectOutcomeErrors(t, out)
}

func TestLookupAbsoluteNameOnlySearchesFileScope(t *testing.T) {
	enum := descriptor.NewEnumShell(testPos(), "Color", nil)
	enum.Freeze("", false, nil, nil)
	file := newTestFile(map[string]descriptor.Descriptor{"Color": enum}, nil)

	out := lookup(file, descriptor.Builtins(), &ast.AbsoluteName{Ident: "Color"})
	got := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, descriptor.Descriptor(enum), got)
}
