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
	"sort"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
	"schemac.dev/schemac/layout"
)

// compileUsingDecl resolves `using Name = Target;` into an alias
// descriptor (spec.md S4.7). Using declarations have no TargetKind of
// their own in spec.md S4.4's target enumeration, so they may carry at
// most an id annotation; any other application is rejected directly
// rather than through the general target-checked compileAnnotations.
func compileUsingDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, d *ast.UsingDecl) diagnostic.Outcome[*descriptor.Using] {
	return diagnostic.AndThen(lookup(scope, builtins, d.Target), func(target descriptor.Descriptor) diagnostic.Outcome[*descriptor.Using] {
		id, hasID, diags := compileUsingAnnotations(scope, builtins, d.Annots)
		return diagnostic.Active(descriptor.NewUsing(d.Pos(), d.Name.Value, parent, id, hasID, nil, target), diags)
	})
}

func compileUsingAnnotations(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, apps []*ast.AnnotationApplication) (id string, hasID bool, diags []diagnostic.Diagnostic) {
	for _, app := range apps {
		out := lookup(scope, builtins, app.Name)
		diags = append(diags, out.Errors()...)
		d, ok := out.Value()
		if !ok {
			continue
		}
		if d.DescKind() != descriptor.KindBuiltinID {
			diags = append(diags, diagnostic.New(app.Pos(), "using declarations may only carry an id annotation"))
			continue
		}
		valOut := compileAnnotationValue(app.Pos(), descriptor.Type{Kind: descriptor.TypeText}, app.Value)
		diags = append(diags, valOut.Errors()...)
		v, ok := valOut.Value()
		if !ok {
			continue
		}
		if hasID {
			diags = append(diags, errDuplicateID(app.Pos()))
			continue
		}
		hasID, id = true, v.Text
	}
	return id, hasID, diags
}

// compileConstantDecl compiles `Name: Type = value;` (spec.md S4.7).
func compileConstantDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, d *ast.ConstantDecl) diagnostic.Outcome[*descriptor.Constant] {
	return diagnostic.AndThen(compileType(scope, builtins, d.Type), func(t descriptor.Type) diagnostic.Outcome[*descriptor.Constant] {
		return diagnostic.AndThen(compileValue(d.Value.Pos(), t, d.Value), func(v descriptor.Value) diagnostic.Outcome[*descriptor.Constant] {
			id, hasID, annots, diags := compileAnnotations(scope, builtins, ast.TargetConstant, d.Annots)
			c := descriptor.NewConstant(d.Pos(), d.Name.Value, parent, id, hasID, annots, t, v)
			return diagnostic.Active(c, diags)
		})
	})
}

// compileEnumDecl compiles an enum and its enumerants (spec.md S4.7).
func compileEnumDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, opts *Options, d *ast.EnumDecl) diagnostic.Outcome[*descriptor.Enum] {
	enum := descriptor.NewEnumShell(d.Pos(), d.Name.Value, parent)

	var diags []diagnostic.Diagnostic
	var enumerants []*descriptor.Enumerant
	var numbered []NumberedItem
	var named []NamedItem

	for _, ed := range d.Enumerants {
		id, hasID, annots, adiags := compileAnnotations(enum, builtins, ast.TargetEnumerant, ed.Annots)
		diags = append(diags, adiags...)

		enumerant := descriptor.NewEnumerant(ed.Pos(), ed.Name.Value, enum, id, hasID, annots, ed.Number)
		enum.Members[ed.Name.Value] = enumerant
		enumerants = append(enumerants, enumerant)
		numbered = append(numbered, NumberedItem{Number: ed.Number, Pos: ed.Pos()})
		named = append(named, NamedItem{Name: ed.Name.Value, Pos: ed.Pos()})
	}

	diags = append(diags, checkSequentialNumbering("enumerant", numbered)...)
	diags = append(diags, checkOrdinalBound(opts.maxOrdinal, "enumerant", numbered)...)
	diags = append(diags, checkDuplicateNames(named)...)

	id, hasID, annots, adiags := compileAnnotations(scope, builtins, ast.TargetEnum, d.Annots)
	diags = append(diags, adiags...)
	enum.Freeze(id, hasID, annots, enumerants)

	return diagnostic.Active(enum, diags)
}

// pendingField is a FieldDecl compiled as far as possible before the
// struct's layout is known: its type, optional default and annotations,
// but not yet its wire offset (spec.md S4.6 must run first).
type pendingField struct {
	decl   *ast.FieldDecl
	typ    descriptor.Type
	hasTyp bool
	def    descriptor.Value
	hasDef bool
	id     string
	hasID  bool
	annots descriptor.AnnotationMap
}

func compilePendingField(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, fd *ast.FieldDecl) (pendingField, []diagnostic.Diagnostic) {
	var diags []diagnostic.Diagnostic
	pf := pendingField{decl: fd}

	typeOut := compileType(scope, builtins, fd.Type)
	diags = append(diags, typeOut.Errors()...)
	t, ok := typeOut.Value()
	pf.typ, pf.hasTyp = t, ok

	if ok && fd.Default != nil {
		if t.Kind == descriptor.TypeInlineStruct {
			diags = append(diags, diagnostic.New(fd.Default.Pos(), "inline struct fields cannot have default values"))
		} else {
			defOut := compileValue(fd.Default.Pos(), t, fd.Default)
			diags = append(diags, defOut.Errors()...)
			if v, ok := defOut.Value(); ok {
				pf.def, pf.hasDef = v, true
			}
		}
	}

	id, hasID, annots, adiags := compileAnnotations(scope, builtins, ast.TargetField, fd.Annots)
	diags = append(diags, adiags...)
	pf.id, pf.hasID, pf.annots = id, hasID, annots

	return pf, diags
}

// compileStructDecl compiles a struct's fields and unions, packs its
// wire layout, and enforces the numbering and uniqueness rules that
// span the struct's whole field-number namespace (spec.md S4.5-S4.7).
func compileStructDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, opts *Options, d *ast.StructDecl) diagnostic.Outcome[*descriptor.Struct] {
	fixedDesc := convertFixedSpec(d.Fixed)
	s := descriptor.NewStructShell(d.Pos(), d.Name.Value, parent, fixedDesc)

	var diags []diagnostic.Diagnostic
	var numbered []NumberedItem
	var named []NamedItem

	var directPending []pendingField
	type pendingUnion struct {
		decl    *ast.UnionDecl
		members []pendingField
	}
	var unionPending []pendingUnion

	for _, decl := range d.Body {
		switch item := decl.(type) {
		case *ast.FieldDecl:
			pf, pdiags := compilePendingField(s, builtins, item)
			diags = append(diags, pdiags...)
			directPending = append(directPending, pf)
			numbered = append(numbered, NumberedItem{Number: item.Number, Pos: item.Pos()})
			named = append(named, NamedItem{Name: item.Name.Value, Pos: item.Pos()})

		case *ast.UnionDecl:
			pu := pendingUnion{decl: item}
			for _, mfd := range item.Body {
				pf, pdiags := compilePendingField(s, builtins, mfd)
				diags = append(diags, pdiags...)
				pu.members = append(pu.members, pf)
			}
			unionPending = append(unionPending, pu)
			numbered = append(numbered, NumberedItem{Number: item.Number, Pos: item.Pos()})
			named = append(named, NamedItem{Name: item.Name.Value, Pos: item.Pos()})

			var memberNumbered []NumberedItem
			for _, mfd := range item.Body {
				memberNumbered = append(memberNumbered, NumberedItem{Number: mfd.Number, Pos: mfd.Pos()})
				numbered = append(numbered, NumberedItem{Number: mfd.Number, Pos: mfd.Pos()})
				named = append(named, NamedItem{Name: mfd.Name.Value, Pos: mfd.Pos()})
			}
			diags = append(diags, checkUnionRetrofit(item.Number, memberNumbered)...)

		default:
			diags = append(diags, diagnostic.New(decl.Pos(), "declaration may not appear inside a struct"))
		}
	}

	diags = append(diags, checkSequentialNumbering("field", numbered)...)
	diags = append(diags, checkOrdinalBound(opts.maxOrdinal, "field", numbered)...)
	diags = append(diags, checkDuplicateNames(named)...)

	var fieldInputs []layout.FieldInput
	for _, pf := range directPending {
		if pf.hasTyp {
			fieldInputs = append(fieldInputs, layout.FieldInput{Number: pf.decl.Number, Type: pf.typ})
		}
	}
	var unionInputs []layout.UnionInput
	for _, pu := range unionPending {
		var members []layout.FieldInput
		for _, pf := range pu.members {
			if pf.hasTyp {
				members = append(members, layout.FieldInput{Number: pf.decl.Number, Type: pf.typ})
			}
		}
		unionInputs = append(unionInputs, layout.UnionInput{Number: pu.decl.Number, Members: members})
	}

	layoutOut := layout.PackStruct(fieldInputs, unionInputs, d.Fixed)
	diags = append(diags, layoutOut.Errors()...)
	structLayout, layoutOK := layoutOut.Value()
	if !layoutOK {
		structLayout = descriptor.StructLayout{FieldPackingMap: map[uint32]descriptor.FieldOffset{}}
	}

	var directFields []*descriptor.Field
	for _, pf := range directPending {
		field := descriptor.NewField(pf.decl.Pos(), pf.decl.Name.Value, s, pf.id, pf.hasID, pf.annots, pf.decl.Number, pf.typ, pf.def, pf.hasDef, nil)
		field.Offset = structLayout.FieldPackingMap[pf.decl.Number]
		s.Members[pf.decl.Name.Value] = field
		directFields = append(directFields, field)
	}

	var unions []*descriptor.Union
	for _, pu := range unionPending {
		u := descriptor.NewUnionShell(pu.decl.Pos(), pu.decl.Name.Value, s, pu.decl.Number)

		sortedMembers := append([]pendingField(nil), pu.members...)
		sort.Slice(sortedMembers, func(i, j int) bool { return sortedMembers[i].decl.Number < sortedMembers[j].decl.Number })

		var fieldOrder []*descriptor.Field
		discriminants := make(map[uint32]uint16)
		for i, pf := range sortedMembers {
			field := descriptor.NewField(pf.decl.Pos(), pf.decl.Name.Value, u, pf.id, pf.hasID, pf.annots, pf.decl.Number, pf.typ, pf.def, pf.hasDef, u)
			field.Offset = structLayout.FieldPackingMap[pf.decl.Number]
			u.Fields[pf.decl.Name.Value] = field
			// A union member is directly nameable on the owning
			// struct, not just through the union (spec.md S4.3 rule
			// 1; descriptor.Struct.Members' own doc comment already
			// promises "field/union name -> *Field or *Union").
			s.Members[pf.decl.Name.Value] = field
			fieldOrder = append(fieldOrder, field)
			discriminants[pf.decl.Number] = uint16(i)
		}

		tagOffset := structLayout.FieldPackingMap[pu.decl.Number]
		uid, uhasID, uannots, udiags := compileAnnotations(s, builtins, ast.TargetUnion, pu.decl.Annots)
		diags = append(diags, udiags...)
		u.Freeze(uid, uhasID, uannots, fieldOrder, discriminants, tagOffset)

		s.Members[pu.decl.Name.Value] = u
		unions = append(unions, u)
	}

	id, hasID, annots, adiags := compileAnnotations(scope, builtins, ast.TargetStruct, d.Annots)
	diags = append(diags, adiags...)
	s.Freeze(id, hasID, annots, directFields, unions, structLayout)

	return diagnostic.Active(s, diags)
}

func convertFixedSpec(fixed *ast.FixedSpec) *descriptor.FixedSpec {
	if fixed == nil {
		return nil
	}
	return &descriptor.FixedSpec{DataBits: fixed.DataBits, PointerCount: fixed.PointerCount}
}

// compileInterfaceDecl compiles an interface and its methods (spec.md
// S4.7). Method params have no self-referential descriptor of their
// own to feed back into: their parent is set to the enclosing
// interface rather than the not-yet-built Method, since nothing needs
// to resolve names through a Param as a scope.
func compileInterfaceDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, opts *Options, d *ast.InterfaceDecl) diagnostic.Outcome[*descriptor.Interface] {
	iface := descriptor.NewInterfaceShell(d.Pos(), d.Name.Value, parent)

	var diags []diagnostic.Diagnostic
	var methods []*descriptor.Method
	var numbered []NumberedItem
	var named []NamedItem

	for _, md := range d.Methods {
		var paramOrder []*descriptor.Param
		for _, pd := range md.Params {
			typeOut := compileType(iface, builtins, pd.Type)
			diags = append(diags, typeOut.Errors()...)
			t, ok := typeOut.Value()

			var def descriptor.Value
			hasDefault := false
			if ok && pd.Default != nil {
				defOut := compileValue(pd.Default.Pos(), t, pd.Default)
				diags = append(diags, defOut.Errors()...)
				if v, ok2 := defOut.Value(); ok2 {
					def, hasDefault = v, true
				}
			}

			pid, phasID, pannots, pdiags := compileAnnotations(iface, builtins, ast.TargetParam, pd.Annots)
			diags = append(diags, pdiags...)
			paramOrder = append(paramOrder, descriptor.NewParam(pd.Pos(), pd.Name.Value, iface, pid, phasID, pannots, t, def, hasDefault))
		}

		var returnType descriptor.Type
		hasReturnType := false
		if md.ReturnType != nil {
			rtOut := compileType(iface, builtins, md.ReturnType)
			diags = append(diags, rtOut.Errors()...)
			if rt, ok := rtOut.Value(); ok {
				returnType, hasReturnType = rt, true
			}
		}

		mid, mhasID, mannots, mdiags := compileAnnotations(iface, builtins, ast.TargetMethod, md.Annots)
		diags = append(diags, mdiags...)
		method := descriptor.NewMethod(md.Pos(), md.Name.Value, iface, mid, mhasID, mannots, md.Number, paramOrder, returnType, hasReturnType)
		iface.Members[md.Name.Value] = method
		methods = append(methods, method)
		numbered = append(numbered, NumberedItem{Number: md.Number, Pos: md.Pos()})
		named = append(named, NamedItem{Name: md.Name.Value, Pos: md.Pos()})
	}

	diags = append(diags, checkSequentialNumbering("method", numbered)...)
	diags = append(diags, checkOrdinalBound(opts.maxOrdinal, "method", numbered)...)
	diags = append(diags, checkDuplicateNames(named)...)

	id, hasID, annots, adiags := compileAnnotations(scope, builtins, ast.TargetInterface, d.Annots)
	diags = append(diags, adiags...)
	iface.Freeze(id, hasID, annots, methods)

	return diagnostic.Active(iface, diags)
}

// compileAnnotationDecl compiles an `annotation Name: Type(targets...);`
// declaration (spec.md S4.7): its payload type and the set of
// declaration kinds it may be applied to.
func compileAnnotationDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, d *ast.AnnotationDecl) diagnostic.Outcome[*descriptor.Annotation] {
	return diagnostic.AndThen(compileType(scope, builtins, d.Type), func(t descriptor.Type) diagnostic.Outcome[*descriptor.Annotation] {
		targets := make(map[ast.TargetKind]bool, len(d.TargetKinds))
		for _, k := range d.TargetKinds {
			targets[k] = true
		}
		id, hasID, annots, diags := compileAnnotations(scope, builtins, ast.TargetAnnotation, d.Annots)
		a := descriptor.NewAnnotation(d.Pos(), d.Name.Value, parent, id, hasID, annots, t, targets)
		return diagnostic.Active(a, diags)
	})
}

// compileDecl dispatches one top-level or nested declaration to its
// kind-specific compiler and returns the built descriptor, boxed as a
// plain descriptor.Descriptor for insertion into a parent's member map
// (spec.md S4.7).
func compileDecl(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, parent descriptor.Descriptor, opts *Options, decl ast.Decl) diagnostic.Outcome[descriptor.Descriptor] {
	switch d := decl.(type) {
	case *ast.UsingDecl:
		return diagnostic.Map(compileUsingDecl(scope, builtins, parent, d), asDescriptor[*descriptor.Using])
	case *ast.ConstantDecl:
		return diagnostic.Map(compileConstantDecl(scope, builtins, parent, d), asDescriptor[*descriptor.Constant])
	case *ast.EnumDecl:
		return diagnostic.Map(compileEnumDecl(scope, builtins, parent, opts, d), asDescriptor[*descriptor.Enum])
	case *ast.StructDecl:
		return diagnostic.Map(compileStructDecl(scope, builtins, parent, opts, d), asDescriptor[*descriptor.Struct])
	case *ast.InterfaceDecl:
		return diagnostic.Map(compileInterfaceDecl(scope, builtins, parent, opts, d), asDescriptor[*descriptor.Interface])
	case *ast.AnnotationDecl:
		return diagnostic.Map(compileAnnotationDecl(scope, builtins, parent, d), asDescriptor[*descriptor.Annotation])
	default:
		return diagnostic.Failed[descriptor.Descriptor](diagnostic.New(decl.Pos(), "unsupported top-level declaration"))
	}
}

func asDescriptor[T descriptor.Descriptor](v T) descriptor.Descriptor { return v }
