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
	"maps"
	"slices"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// compiledAnnotation is the result of compiling one @Name(value)
// application (spec.md S4.4): either the reserved id annotation's text,
// or a user-declared Annotation descriptor paired with its compiled
// value.
type compiledAnnotation struct {
	isID   bool
	idText string
	annot  *descriptor.Annotation
	value  descriptor.Value
}

// compileAnnotationApplication resolves and compiles one annotation
// application against the kind of declaration it is attached to.
func compileAnnotationApplication(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, target ast.TargetKind, app *ast.AnnotationApplication) diagnostic.Outcome[compiledAnnotation] {
	return diagnostic.AndThen(lookup(scope, builtins, app.Name), func(d descriptor.Descriptor) diagnostic.Outcome[compiledAnnotation] {
		if d.DescKind() == descriptor.KindBuiltinID {
			return diagnostic.Map(compileAnnotationValue(app.Pos(), descriptor.Type{Kind: descriptor.TypeText}, app.Value), func(v descriptor.Value) compiledAnnotation {
				return compiledAnnotation{isID: true, idText: v.Text}
			})
		}

		annot, ok := d.(*descriptor.Annotation)
		if !ok {
			return diagnostic.Failed[compiledAnnotation](errNotAnAnnotation(app.Pos(), d.DescName()))
		}
		if !annot.Targets[target] {
			return diagnostic.Failed[compiledAnnotation](errAnnotationWrongTarget(app.Pos(), annot.DescName(), target.String()))
		}
		return diagnostic.Map(compileAnnotationValue(app.Pos(), annot.Type, app.Value), func(v descriptor.Value) compiledAnnotation {
			return compiledAnnotation{annot: annot, value: v}
		})
	})
}

// compileAnnotationValue is compileValue extended to accept the nil
// ast.Value of a valueless `@Name` application, legal only when the
// expected type is Void.
func compileAnnotationValue(pos ast.Pos, expected descriptor.Type, v ast.Value) diagnostic.Outcome[descriptor.Value] {
	if v == nil {
		if expected.Kind == descriptor.TypeVoid {
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueVoid})
		}
		return diagnostic.Failed[descriptor.Value](diagnostic.New(pos, "this annotation requires a value"))
	}
	return compileValue(pos, expected, v)
}

// compileAnnotations compiles every annotation application on one
// declaration, per spec.md S4.4: the first id annotation wins the
// declaration's id (later ones are duplicate-id errors); the rest are
// keyed by their declaring Annotation's own id into the returned map,
// with annotations whose declaration lacks an id silently omitted from
// the map (their compile errors are still reported).
func compileAnnotations(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, target ast.TargetKind, apps []*ast.AnnotationApplication) (id string, hasID bool, annots descriptor.AnnotationMap, diags []diagnostic.Diagnostic) {
	annots = make(descriptor.AnnotationMap)
	keyOccurrences := make(map[string][]ast.Pos)

	for _, app := range apps {
		out := compileAnnotationApplication(scope, builtins, target, app)
		diags = append(diags, out.Errors()...)
		res, ok := out.Value()
		if !ok {
			continue
		}

		if res.isID {
			if hasID {
				diags = append(diags, errDuplicateID(app.Pos()))
				continue
			}
			hasID, id = true, res.idText
			continue
		}

		key, keyHasID := res.annot.DescID()
		if !keyHasID {
			continue
		}
		keyOccurrences[key] = append(keyOccurrences[key], app.Pos())
		if _, exists := annots[key]; !exists {
			annots[key] = res.value
		}
	}

	for _, key := range slices.Sorted(maps.Keys(keyOccurrences)) {
		occ := keyOccurrences[key]
		for _, pos := range occ[1:] {
			diags = append(diags, errDuplicateAnnotationKey(pos, key))
		}
	}

	return id, hasID, annots, diags
}
