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
	"math"
	"math/big"
	"slices"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// compileValue coerces a literal AST value against expected, per the
// type-driven table in spec.md S4.3. pos is used when v itself carries no
// useful position (it never does in practice, since every ast.Value node
// implements Pos(), but is kept as an explicit parameter to match the
// contract a default-value lookup needs when no literal was written at
// all).
func compileValue(pos ast.Pos, expected descriptor.Type, v ast.Value) diagnostic.Outcome[descriptor.Value] {
	switch expected.Kind {
	case descriptor.TypeVoid:
		if _, ok := v.(*ast.VoidValue); ok {
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueVoid})
		}
		return diagnostic.Failed[descriptor.Value](diagnostic.New(v.Pos(), "void fields cannot have values"))

	case descriptor.TypeBool:
		return compileBoolValue(v)

	case descriptor.TypeInt8, descriptor.TypeInt16, descriptor.TypeInt32, descriptor.TypeInt64,
		descriptor.TypeUInt8, descriptor.TypeUInt16, descriptor.TypeUInt32, descriptor.TypeUInt64:
		return compileIntValue(expected.Kind, v)

	case descriptor.TypeFloat32, descriptor.TypeFloat64:
		return compileFloatValue(v)

	case descriptor.TypeText:
		if lit, ok := v.(*ast.TextLit); ok {
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueText, Text: lit.Value})
		}
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "string", describeAstValue(v)))

	case descriptor.TypeData:
		if lit, ok := v.(*ast.TextLit); ok {
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueData, Data: []byte(lit.Value)})
		}
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "string", describeAstValue(v)))

	case descriptor.TypeEnum:
		return compileEnumValue(expected.Enum, v)

	case descriptor.TypeStruct, descriptor.TypeInlineStruct:
		rv, ok := v.(*ast.RecordValue)
		if !ok {
			return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "parenthesized list of field assignments", describeAstValue(v)))
		}
		return compileStructLiteral(expected.Struct, rv)

	case descriptor.TypeList:
		lv, ok := v.(*ast.ListValue)
		if !ok {
			return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "bracketed list", describeAstValue(v)))
		}
		return compileListElements(*expected.Elem, lv)

	case descriptor.TypeInlineList:
		lv, ok := v.(*ast.ListValue)
		if !ok {
			return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "bracketed list", describeAstValue(v)))
		}
		if uint64(len(lv.Elements)) != expected.ListSize {
			return diagnostic.Failed[descriptor.Value](errInlineListWrongLength(lv.Pos(), expected.ListSize, uint64(len(lv.Elements))))
		}
		return compileListElements(*expected.Elem, lv)

	case descriptor.TypeInterface:
		return diagnostic.Failed[descriptor.Value](diagnostic.New(pos, "interfaces cannot have default values"))

	default:
		return diagnostic.Failed[descriptor.Value](diagnostic.New(pos, "unsupported value type"))
	}
}

func compileBoolValue(v ast.Value) diagnostic.Outcome[descriptor.Value] {
	id, ok := v.(*ast.IdentValue)
	if !ok {
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "boolean", describeAstValue(v)))
	}
	switch id.Name {
	case "true":
		return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueBool, Bool: true})
	case "false":
		return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueBool, Bool: false})
	default:
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "boolean", id.Name))
	}
}

func compileIntValue(kind descriptor.TypeKind, v ast.Value) diagnostic.Outcome[descriptor.Value] {
	lit, ok := v.(*ast.IntLit)
	if !ok {
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "integer", describeAstValue(v)))
	}
	n := lit.SignedValue()
	lo, hi := intRange(kind)
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return diagnostic.Failed[descriptor.Value](errIntOutOfRange(v.Pos(), descriptor.Type{Kind: kind}.String(), n))
	}
	return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueInt, Int: n})
}

// intRange returns the inclusive bounds representable by an integer type
// kind (spec.md S4.3 "must fit in range").
func intRange(kind descriptor.TypeKind) (lo, hi *big.Int) {
	switch kind {
	case descriptor.TypeInt8:
		return big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)
	case descriptor.TypeInt16:
		return big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)
	case descriptor.TypeInt32:
		return big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	case descriptor.TypeInt64:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case descriptor.TypeUInt8:
		return big.NewInt(0), big.NewInt(math.MaxUint8)
	case descriptor.TypeUInt16:
		return big.NewInt(0), big.NewInt(math.MaxUint16)
	case descriptor.TypeUInt32:
		return big.NewInt(0), big.NewInt(math.MaxUint32)
	case descriptor.TypeUInt64:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)
	default:
		panic("compiler: intRange called with a non-integer type kind")
	}
}

func compileFloatValue(v ast.Value) diagnostic.Outcome[descriptor.Value] {
	switch lit := v.(type) {
	case *ast.FloatLit:
		return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueFloat, Float: lit.Value})
	case *ast.IntLit:
		f := new(big.Float).SetInt(lit.SignedValue())
		fv, _ := f.Float64()
		return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueFloat, Float: fv})
	case *ast.IdentValue:
		switch lit.Name {
		case "inf":
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueFloat, Float: math.Inf(1)})
		case "nan":
			return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueFloat, Float: math.NaN()})
		default:
			return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "number", lit.Name))
		}
	default:
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "number", describeAstValue(v)))
	}
}

func compileEnumValue(enum *descriptor.Enum, v ast.Value) diagnostic.Outcome[descriptor.Value] {
	id, ok := v.(*ast.IdentValue)
	if !ok {
		return diagnostic.Failed[descriptor.Value](diagnostic.Expected(v.Pos(), "identifier", describeAstValue(v)))
	}
	member, ok := enum.Members[id.Name]
	if !ok {
		return diagnostic.Failed[descriptor.Value](errNoSuchMember(v.Pos(), enum.DescName(), id.Name))
	}
	enumerant, ok := member.(*descriptor.Enumerant)
	if !ok {
		return diagnostic.Failed[descriptor.Value](errNoSuchMember(v.Pos(), enum.DescName(), id.Name))
	}
	return diagnostic.Ok(descriptor.Value{Kind: descriptor.ValueEnum, Enum: enumerant})
}

func compileListElements(elem descriptor.Type, lv *ast.ListValue) diagnostic.Outcome[descriptor.Value] {
	values := make([]descriptor.Value, 0, len(lv.Elements))
	var errs []diagnostic.Diagnostic
	for _, e := range lv.Elements {
		out := compileValue(e.Pos(), elem, e)
		errs = append(errs, out.Errors()...)
		if val, ok := out.Value(); ok {
			values = append(values, val)
		}
	}
	return diagnostic.Active(descriptor.Value{Kind: descriptor.ValueList, List: values}, errs)
}

// compileStructLiteral implements spec.md S4.3's struct-literal rules:
// each field/union assignment is resolved and compiled independently,
// then duplicate assignments are diagnosed once the whole literal has
// been scanned.
func compileStructLiteral(s *descriptor.Struct, rv *ast.RecordValue) diagnostic.Outcome[descriptor.Value] {
	fields := make(map[string]descriptor.Value)
	unionFields := make(map[string]descriptor.UnionValue)
	fieldCount := make(map[string]int)
	unionCount := make(map[string]int)
	assignedByUnion := make(map[string][]string)
	var errs []diagnostic.Diagnostic

	for _, rf := range rv.Fields {
		name := rf.Name.Value
		member, ok := s.Members[name]
		if !ok {
			errs = append(errs, errNoSuchMember(rf.Pos(), s.DescName(), name))
			continue
		}
		switch m := member.(type) {
		case *descriptor.Field:
			fieldCount[name]++
			if m.Union != nil {
				assignedByUnion[m.Union.DescName()] = append(assignedByUnion[m.Union.DescName()], name)
			}
			out := compileValue(rf.Value.Pos(), m.Type, rf.Value)
			errs = append(errs, out.Errors()...)
			if val, ok := out.Value(); ok {
				fields[name] = val
			}

		case *descriptor.Union:
			unionCount[name]++
			ufv, ok := rf.Value.(*ast.UnionFieldValue)
			if !ok {
				errs = append(errs, diagnostic.Expected(rf.Value.Pos(), "union value", describeAstValue(rf.Value)))
				continue
			}
			variant, ok := m.Fields[ufv.Member.Value]
			if !ok {
				errs = append(errs, errNoSuchMember(ufv.Member.Pos(), name, ufv.Member.Value))
				continue
			}
			out := compileValue(ufv.Inner.Pos(), variant.Type, ufv.Inner)
			errs = append(errs, out.Errors()...)
			if val, ok := out.Value(); ok {
				unionFields[name] = descriptor.UnionValue{Member: ufv.Member.Value, Value: val}
			}

		default:
			errs = append(errs, diagnostic.New(rf.Pos(), name+" is not a field or union"))
		}
	}

	if dups := duplicatedNames(fieldCount); len(dups) > 0 {
		errs = append(errs, errDuplicateAssignment(rv.Pos(), "field", dups))
	}
	if dups := duplicatedNames(unionCount); len(dups) > 0 {
		errs = append(errs, errDuplicateAssignment(rv.Pos(), "union", dups))
	}
	for _, union := range sortedKeys(assignedByUnion) {
		names := slices.Compact(slices.Sorted(slices.Values(assignedByUnion[union])))
		if len(names) > 1 {
			errs = append(errs, errUnionMultipleAssignment(rv.Pos(), union, names))
		}
	}

	return diagnostic.Active(descriptor.Value{Kind: descriptor.ValueStruct, Fields: fields, UnionFields: unionFields}, errs)
}

// sortedKeys returns m's keys in a deterministic order, so diagnostics
// emitted from a map iteration don't vary between runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func duplicatedNames(counts map[string]int) []string {
	var names []string
	for name, n := range counts {
		if n > 1 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// describeAstValue names the syntactic shape of v, for "expected X, got
// Y" diagnostics.
func describeAstValue(v ast.Value) string {
	switch v.(type) {
	case *ast.VoidValue:
		return "nothing"
	case *ast.IdentValue:
		return "identifier"
	case *ast.IntLit:
		return "integer"
	case *ast.FloatLit:
		return "number"
	case *ast.TextLit:
		return "string"
	case *ast.RecordValue:
		return "parenthesized list of field assignments"
	case *ast.UnionFieldValue:
		return "union value"
	case *ast.ListValue:
		return "bracketed list"
	default:
		return "value"
	}
}
