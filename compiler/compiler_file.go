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
	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// ParseResult is what an external parser front end hands to the file
// driver (spec.md S4.8, S6.1): the flat declaration list, file-level
// annotations, the distinct import names the source text declared, and
// any parse errors. The core never lexes or parses; producing this
// value is entirely the parser's responsibility.
type ParseResult struct {
	Imports     []string
	Decls       []ast.Decl
	FileAnnots  []*ast.AnnotationApplication
	ParseErrors []diagnostic.Diagnostic
}

// Parser turns schema source text into a ParseResult.
type Parser func(filename, text string) ParseResult

// ImportResult is one import callback invocation's outcome (spec.md
// S6.2): either a resolved file descriptor, or an error string.
type ImportResult struct {
	File *descriptor.File
	Err  string
}

// ImportCallback resolves one import name to a compiled file. The core
// requests each distinct name exactly once per file compilation and
// imposes no ordering beyond "before final compilation of the file"
// (spec.md S5); an implementation may resolve names sequentially,
// concurrently, or from a cache.
type ImportCallback func(name string) ImportResult

// ParseAndCompileFile implements the file driver (spec.md S4.8): parse,
// resolve every distinct import name through importCB, then compile
// every top-level declaration against the resulting import table. The
// result is Active whenever any portion of the file compiled, so the
// caller can always inspect both the descriptor and its diagnostics
// (spec.md S7).
func ParseAndCompileFile(filename, text string, parse Parser, importCB ImportCallback, options ...Option) diagnostic.Outcome[*descriptor.File] {
	opts := newOptions(options)
	result := parse(filename, text)

	var diags []diagnostic.Diagnostic
	diags = append(diags, result.ParseErrors...)

	imports := make(map[string]*descriptor.File, len(result.Imports))
	requested := make(map[string]bool, len(result.Imports))
	for _, name := range result.Imports {
		if requested[name] {
			continue
		}
		requested[name] = true

		ir := importCB(name)
		if ir.Err != "" {
			diags = append(diags, diagnostic.New(ast.Pos{File: filename}, "importing "+name+": "+ir.Err))
			imports[name] = emptyImportedFile(name)
			continue
		}
		imports[name] = ir.File
	}

	file := descriptor.NewFileShell(ast.Pos{File: filename}, filename)
	file.Imports = imports
	builtins := descriptor.Builtins()

	var named []NamedItem
	type compiled struct {
		name string
		pos  ast.Pos
		desc descriptor.Descriptor
	}
	var compiledDecls []compiled

	for _, decl := range result.Decls {
		out := compileDecl(file, builtins, file, opts, decl)
		diags = append(diags, out.Errors()...)
		d, ok := out.Value()
		if !ok {
			continue
		}
		named = append(named, NamedItem{Name: d.DescName(), Pos: d.DescPos()})
		compiledDecls = append(compiledDecls, compiled{name: d.DescName(), pos: d.DescPos(), desc: d})
	}
	diags = append(diags, checkDuplicateNames(named)...)

	for _, c := range compiledDecls {
		if _, exists := file.Members[c.name]; !exists {
			file.Members[c.name] = c.desc
		}
	}

	id, hasID, annots, adiags := compileAnnotations(file, builtins, ast.TargetFile, result.FileAnnots)
	diags = append(diags, adiags...)

	runtimeImports := collectRuntimeImports(file, file.Members)
	file.Freeze(id, hasID, annots, imports, runtimeImports)

	return diagnostic.Active(file, diags)
}

// emptyImportedFile substitutes a frozen, member-less file descriptor
// for an import name the callback could not resolve, so that names
// qualified through it fail with an ordinary undefined-member
// diagnostic rather than a nil dereference (spec.md S4.8 step 2).
func emptyImportedFile(name string) *descriptor.File {
	f := descriptor.NewFileShell(ast.Pos{File: name}, name)
	f.Freeze("", false, nil, map[string]*descriptor.File{}, map[*descriptor.File]struct{}{})
	return f
}

// collectRuntimeImports computes the transitive closure of imported
// files referenced by non-built-in types appearing anywhere in members
// (spec.md S4.8 step 4): struct field/union-member types, interface
// method parameter and return types, constant and annotation payload
// types, and using-alias targets.
func collectRuntimeImports(self *descriptor.File, members map[string]descriptor.Descriptor) map[*descriptor.File]struct{} {
	result := make(map[*descriptor.File]struct{})
	for _, m := range members {
		collectRuntimeImportsFromMember(self, m, result)
	}
	return result
}

func collectRuntimeImportsFromMember(self *descriptor.File, d descriptor.Descriptor, result map[*descriptor.File]struct{}) {
	switch m := d.(type) {
	case *descriptor.Constant:
		addReferencedFile(self, m.Type, result)
	case *descriptor.Struct:
		for _, f := range m.DirectFields {
			addReferencedFile(self, f.Type, result)
		}
		for _, u := range m.Unions {
			for _, f := range u.FieldOrder {
				addReferencedFile(self, f.Type, result)
			}
		}
	case *descriptor.Interface:
		for _, method := range m.Methods {
			if method.HasReturnType {
				addReferencedFile(self, method.ReturnType, result)
			}
			for _, p := range method.ParamOrder {
				addReferencedFile(self, p.Type, result)
			}
		}
	case *descriptor.Annotation:
		addReferencedFile(self, m.Type, result)
	case *descriptor.Using:
		if owner := ownerFile(m.Target); owner != nil && owner != self {
			mergeFile(owner, result)
		}
	}
}

// addReferencedFile walks t down through List/InlineList element types
// to the base type it carries, and records the file owning that type's
// Enum/Struct/Interface descriptor, if any and if it isn't self.
func addReferencedFile(self *descriptor.File, t descriptor.Type, result map[*descriptor.File]struct{}) {
	for t.Kind == descriptor.TypeList || t.Kind == descriptor.TypeInlineList {
		t = *t.Elem
	}

	var owner *descriptor.File
	switch t.Kind {
	case descriptor.TypeEnum:
		owner = ownerFile(t.Enum)
	case descriptor.TypeStruct, descriptor.TypeInlineStruct:
		owner = ownerFile(t.Struct)
	case descriptor.TypeInterface:
		owner = ownerFile(t.Interface)
	}
	if owner != nil && owner != self {
		mergeFile(owner, result)
	}
}

// ownerFile walks a descriptor's parent chain up to its enclosing File.
func ownerFile(d descriptor.Descriptor) *descriptor.File {
	for d != nil {
		if f, ok := d.(*descriptor.File); ok {
			return f
		}
		d = d.DescParent()
	}
	return nil
}

// mergeFile adds owner and owner's own transitive runtime imports into
// result, so the closure covers imports of imports.
func mergeFile(owner *descriptor.File, result map[*descriptor.File]struct{}) {
	if _, already := result[owner]; already {
		return
	}
	result[owner] = struct{}{}
	for f := range owner.RuntimeImports {
		mergeFile(f, result)
	}
}
