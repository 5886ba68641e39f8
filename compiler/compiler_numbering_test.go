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

	"schemac.dev/schemac/internal/testutil"
)

func TestCheckSequentialNumberingAccepts(t *testing.T) {
	items := []NumberedItem{{Number: 0}, {Number: 1}, {Number: 2}}
	testutil.ExpectEq(t, 0, len(checkSequentialNumbering("field", items)))
}

func TestCheckSequentialNumberingOutOfSourceOrderAccepted(t *testing.T) {
	items := []NumberedItem{{Number: 2}, {Number: 0}, {Number: 1}}
	testutil.ExpectEq(t, 0, len(checkSequentialNumbering("field", items)))
}

func TestCheckSequentialNumberingDetectsRepeat(t *testing.T) {
	items := []NumberedItem{{Number: 0}, {Number: 1}, {Number: 1}}
	diags := checkSequentialNumbering("field", items)
	testutil.ExpectEq(t, 2, len(diags))
}

func TestCheckSequentialNumberingDetectsGap(t *testing.T) {
	items := []NumberedItem{{Number: 0}, {Number: 2}}
	diags := checkSequentialNumbering("field", items)
	testutil.ExpectTrue(t, len(diags) >= 1)
}

func TestCheckOrdinalBoundRejectsTooLarge(t *testing.T) {
	items := []NumberedItem{{Number: 5}}
	diags := checkOrdinalBound(4, "field", items)
	testutil.ExpectEq(t, 1, len(diags))
}

func TestCheckOrdinalBoundAcceptsAtLimit(t *testing.T) {
	items := []NumberedItem{{Number: 4}}
	diags := checkOrdinalBound(4, "field", items)
	testutil.ExpectEq(t, 0, len(diags))
}

func TestCheckDuplicateNamesDetectsRepeat(t *testing.T) {
	items := []NamedItem{{Name: "a"}, {Name: "b"}, {Name: "a"}}
	diags := checkDuplicateNames(items)
	testutil.ExpectEq(t, 2, len(diags))
}

func TestCheckDuplicateNamesAcceptsUnique(t *testing.T) {
	items := []NamedItem{{Name: "a"}, {Name: "b"}}
	diags := checkDuplicateNames(items)
	testutil.ExpectEq(t, 0, len(diags))
}

func TestCheckUnionRetrofitAcceptsSingleOlderField(t *testing.T) {
	members := []NumberedItem{{Number: 1}, {Number: 5}, {Number: 6}}
	diags := checkUnionRetrofit(3, members)
	testutil.ExpectEq(t, 0, len(diags))
}

func TestCheckUnionRetrofitRejectsTwoOlderFields(t *testing.T) {
	members := []NumberedItem{{Number: 0}, {Number: 1}, {Number: 5}}
	diags := checkUnionRetrofit(3, members)
	testutil.ExpectEq(t, 1, len(diags))
}
