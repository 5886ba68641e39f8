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
	"sort"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/diagnostic"
)

// NumberedItem is one enumerant, field or method number under
// validation (spec.md S4.5).
type NumberedItem struct {
	Number uint32
	Pos    ast.Pos
}

// NamedItem is one sibling declaration's name, under the no-duplicate-
// names check.
type NamedItem struct {
	Name string
	Pos  ast.Pos
}

// checkSequentialNumbering validates that items number 0, 1, 2, ...
// with no gaps or repeats (spec.md S4.5). kind names the item being
// numbered ("enumerant", "field", "method") for diagnostic text.
func checkSequentialNumbering(kind string, items []NumberedItem) []diagnostic.Diagnostic {
	if len(items) == 0 {
		return nil
	}
	sorted := append([]NumberedItem(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var diags []diagnostic.Diagnostic
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Number == sorted[i-1].Number {
			diags = append(diags,
				errDuplicateNumber(sorted[i-1].Pos, kind, sorted[i].Number),
				errDuplicateNumber(sorted[i].Pos, kind, sorted[i].Number))
		}
	}

	expected := uint32(0)
	for i, it := range sorted {
		if i > 0 && it.Number == sorted[i-1].Number {
			continue
		}
		if it.Number != expected {
			diags = append(diags, errMissingNumber(it.Pos, kind, expected))
			break
		}
		expected++
	}
	return diags
}

// checkOrdinalBound rejects any number above maxOrdinal, the largest
// ordinal the target wire encoding can represent (spec.md S4.5).
func checkOrdinalBound(maxOrdinal uint32, kind string, items []NumberedItem) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, it := range items {
		if it.Number > maxOrdinal {
			diags = append(diags, errOrdinalTooLarge(it.Pos, kind, it.Number, maxOrdinal))
		}
	}
	return diags
}

// checkDuplicateNames rejects two sibling declarations sharing a name
// (spec.md S4.5), reporting a diagnostic at every occurrence of a
// repeated name, in name-sorted order.
func checkDuplicateNames(items []NamedItem) []diagnostic.Diagnostic {
	occurrences := make(map[string][]ast.Pos)
	for _, it := range items {
		occurrences[it.Name] = append(occurrences[it.Name], it.Pos)
	}

	var diags []diagnostic.Diagnostic
	for _, name := range slices.Sorted(maps.Keys(occurrences)) {
		occ := occurrences[name]
		if len(occ) < 2 {
			continue
		}
		for _, pos := range occ {
			diags = append(diags, errDuplicateName(pos, name))
		}
	}
	return diags
}

// checkUnionRetrofit enforces that a union declared with number N
// retrofits at most one pre-existing field (number < N), since
// unionizing more than one would break wire compatibility with readers
// that saw those fields as independent (spec.md S4.5).
func checkUnionRetrofit(unionNumber uint32, members []NumberedItem) []diagnostic.Diagnostic {
	sorted := append([]NumberedItem(nil), members...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	var diags []diagnostic.Diagnostic
	seenRetrofit := false
	for _, m := range sorted {
		if m.Number >= unionNumber {
			continue
		}
		if seenRetrofit {
			diags = append(diags, errUnionRetrofitViolation(m.Pos, unionNumber))
		}
		seenRetrofit = true
	}
	return diags
}
