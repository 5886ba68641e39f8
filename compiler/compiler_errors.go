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
	"math/big"
	"strings"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/diagnostic"
)

func errUndefinedName(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("undefined name %q", name))
}

func errNoSuchMember(pos ast.Pos, parent, member string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q has no member %q", parent, member))
}

func errNotAScope(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q is not a namespace", name))
}

func errNotAType(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q is not a type", name))
}

func errTypeTakesNoParams(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q does not take type parameters", name))
}

// errGenericArity reports a generic type name applied to the wrong number
// of type parameters. spec.md S9's open-questions log preserves this
// message's historical wording verbatim rather than "fixing" it: the text
// always reads "exactly one", even for InlineList (arity 2), and want is
// accepted but deliberately left out of the formatted string, mirroring
// the original's extra, silently-ignored interpolation argument.
func errGenericArity(pos ast.Pos, name string, want int) diagnostic.Diagnostic {
	_ = want
	return diagnostic.New(pos, fmt.Sprintf("'%s' requires exactly one type parameter.", name))
}

func errListOfInlineStruct(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "List element may not be an Inline struct")
}

func errInlineRequiresStruct(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "Inline requires a struct type parameter")
}

func errInlineRequiresFixedWidth(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("struct %q must be declared fixed-width to be used inline", name))
}

func errInlineListElementNotInlineable(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "InlineList element may not itself be Inline or InlineList")
}

func errNegativeListSize(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "InlineList size must not be negative")
}

func errListSizeTooLarge(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "InlineList size is too large to represent")
}

func errIntOutOfRange(pos ast.Pos, typeName string, n *big.Int) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("value %s is out of range for %s", n.String(), typeName))
}

func errInlineListWrongLength(pos ast.Pos, want, got uint64) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("InlineList has declared size %d but literal has %d element(s)", want, got))
}

func errDuplicateAssignment(pos ast.Pos, kind string, names []string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("duplicate %s assignment(s): %s", kind, strings.Join(names, ", ")))
}

// errUnionMultipleAssignment reports a struct literal that assigns two or
// more distinct fields belonging to the same union (spec.md S4.3 rule 2,
// S8.3 Scenario 5).
func errUnionMultipleAssignment(pos ast.Pos, union string, fieldNames []string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf(
		"assigns multiple fields belonging to the same union %q: %s", union, strings.Join(fieldNames, ", ")))
}

func errNotAnAnnotation(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q is not an annotation", name))
}

func errAnnotationWrongTarget(pos ast.Pos, name, targetKind string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("annotation %q cannot be applied to a %s", name, targetKind))
}

func errDuplicateID(pos ast.Pos) diagnostic.Diagnostic {
	return diagnostic.New(pos, "duplicate id annotation")
}

func errDuplicateAnnotationKey(pos ast.Pos, key string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("duplicate annotation %q", key))
}

func errDuplicateNumber(pos ast.Pos, kind string, n uint32) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%s number %d is used more than once", kind, n))
}

func errMissingNumber(pos ast.Pos, kind string, n uint32) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%s numbers must be sequential starting at 0; %d is missing", kind, n))
}

func errOrdinalTooLarge(pos ast.Pos, kind string, n, max uint32) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%s number %d exceeds the maximum ordinal %d", kind, n, max))
}

func errDuplicateName(pos ast.Pos, name string) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("%q is declared more than once", name))
}

func errUnionRetrofitViolation(pos ast.Pos, unionNumber uint32) diagnostic.Diagnostic {
	return diagnostic.New(pos, fmt.Sprintf("union number %d may retrofit at most one pre-existing field", unionNumber))
}
