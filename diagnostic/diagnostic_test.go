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

package diagnostic_test

import (
	"testing"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/diagnostic"
	"schemac.dev/schemac/internal/testutil"
)

func pos(line uint32) ast.Pos { return ast.Pos{File: "f.schema", Line: line, Column: 1} }

func TestNewIsMessageKind(t *testing.T) {
	d := diagnostic.New(pos(1), "something went wrong")
	testutil.ExpectEq(t, diagnostic.Message, d.Kind)
	testutil.ExpectEq(t, "something went wrong", d.Message)
}

func TestExpectedFormatsWantGot(t *testing.T) {
	d := diagnostic.Expected(pos(2), "integer", "identifier")
	testutil.ExpectEq(t, diagnostic.Expect, d.Kind)
	testutil.ExpectEq(t, "expected integer, got identifier", d.Message)
}

func TestDiagnosticStringIncludesPosition(t *testing.T) {
	d := diagnostic.New(pos(3), "bad")
	testutil.ExpectEq(t, "f.schema:3:1: bad", d.String())
	testutil.ExpectEq(t, d.String(), d.Error())
}
