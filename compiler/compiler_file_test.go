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
	"schemac.dev/schemac/diagnostic"
	"schemac.dev/schemac/internal/testutil"
)

func structDecl(name string) *ast.StructDecl {
	return &ast.StructDecl{
		DeclPos: testPos(),
		Name:    &ast.Ident{IdentPos: testPos(), Value: name},
	}
}

func noImports(filename, text string) ParseResult {
	return ParseResult{Decls: []ast.Decl{structDecl("Widget")}}
}

func TestParseAndCompileFileNoImportsOK(t *testing.T) {
	out := ParseAndCompileFile("widget.schema", "", noImports, nil)
	file := testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, "widget.schema", file.DescName())

	_, ok := file.Members["Widget"]
	testutil.ExpectTrue(t, ok)
}

func TestParseAndCompileFileDetectsDuplicateTopLevelNames(t *testing.T) {
	parse := func(filename, text string) ParseResult {
		return ParseResult{Decls: []ast.Decl{structDecl("Widget"), structDecl("Widget")}}
	}
	out := ParseAndCompileFile("dup.schema", "", parse, nil)
	testutil.ExpectOutcomeErrors(t, out)
}

func TestParseAndCompileFileRequestsEachDistinctImportOnce(t *testing.T) {
	calls := map[string]int{}
	importCB := func(name string) ImportResult {
		calls[name]++
		f := descriptor.NewFileShell(testPos(), name)
		f.Freeze("", false, nil, nil, nil)
		return ImportResult{File: f}
	}
	parse := func(filename, text string) ParseResult {
		return ParseResult{Imports: []string{"a.schema", "a.schema", "b.schema"}}
	}
	out := ParseAndCompileFile("main.schema", "", parse, importCB)
	testutil.ExpectOutcomeOK(t, out)
	testutil.ExpectEq(t, 1, calls["a.schema"])
	testutil.ExpectEq(t, 1, calls["b.schema"])
}

func TestParseAndCompileFileSubstitutesEmptyFileOnImportFailure(t *testing.T) {
	importCB := func(name string) ImportResult {
		return ImportResult{Err: "file not found"}
	}
	parse := func(filename, text string) ParseResult {
		return ParseResult{Imports: []string{"missing.schema"}}
	}
	out := ParseAndCompileFile("main.schema", "", parse, importCB)
	diags := testutil.ExpectOutcomeErrors(t, out)
	testutil.ExpectMatch(t, "missing.schema", diags[0].Message)
}

func TestParseAndCompileFilePropagatesParseErrors(t *testing.T) {
	parse := func(filename, text string) ParseResult {
		return ParseResult{ParseErrors: []diagnostic.Diagnostic{diagnostic.New(testPos(), "unexpected token")}}
	}
	out := ParseAndCompileFile("bad.schema", "", parse, nil)
	testutil.ExpectOutcomeErrors(t, out)
}
