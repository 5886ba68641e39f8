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

// Package diagnostic holds the compiler's error-accumulation primitives:
// a located Diagnostic, and the Outcome[T] sum type that couples a
// (possibly defective) result with the diagnostics produced while
// building it.
package diagnostic

import (
	"fmt"

	"schemac.dev/schemac/ast"
)

// Kind distinguishes a free-form message from an "expected X, got Y"
// diagnostic, per spec.md S6.3.
type Kind uint8

const (
	Message Kind = iota
	Expect
)

// Diagnostic is one located compiler message.
type Diagnostic struct {
	Pos     ast.Pos
	Kind    Kind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

func (d Diagnostic) Error() string {
	return d.String()
}

// New builds a Message-kind Diagnostic.
func New(pos ast.Pos, message string) Diagnostic {
	return Diagnostic{Pos: pos, Kind: Message, Message: message}
}

// Expected builds an Expect-kind Diagnostic of the form
// "expected <want>, got <got>".
func Expected(pos ast.Pos, want, got string) Diagnostic {
	return Diagnostic{
		Pos:     pos,
		Kind:    Expect,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
	}
}
