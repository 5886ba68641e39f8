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

// Package compiler resolves names, type-checks literal values, validates
// declaration numbering, and drives per-file compilation of a parsed
// schema into the descriptor tree (spec.md S4). The core is
// single-threaded and synchronous: every function here is a pure
// transform from (scope, AST) to (diagnostic.Outcome, accumulated
// diagnostics); there are no suspension points (spec.md S5).
package compiler

// MaxFieldOrdinal is the largest field, enumerant or method number the
// wire encoding can represent: a 16-bit ordinal (spec.md S4.5).
const MaxFieldOrdinal = 65534

// Options configures a compilation run.
type Options struct {
	maxOrdinal uint32
}

// Option adjusts an Options value.
type Option func(*Options)

// WithMaxOrdinal overrides the maximum representable ordinal used by the
// numbering validators (spec.md S4.5). Implementations embedding schemac
// in a binary format with a narrower or wider ordinal space can use this
// to match their own encoding; the default is MaxFieldOrdinal.
func WithMaxOrdinal(max uint32) Option {
	return func(o *Options) { o.maxOrdinal = max }
}

func newOptions(opts []Option) *Options {
	o := &Options{maxOrdinal: MaxFieldOrdinal}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
