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

package diagnostic

// Outcome is either Active (a value, possibly with accumulated errors) or
// Failed (no value, and at least one error). It never holds a value in
// the Failed state -- see Invariant 2 in spec.md S8.1.
type Outcome[T any] struct {
	ok     bool
	value  T
	errors []Diagnostic
}

// Active builds a (possibly defective) successful outcome.
func Active[T any](value T, errors []Diagnostic) Outcome[T] {
	return Outcome[T]{ok: true, value: value, errors: errors}
}

// Ok builds an Active outcome with no errors.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{ok: true, value: value}
}

// Failed builds a failed outcome. errs must not be empty.
func Failed[T any](errs ...Diagnostic) Outcome[T] {
	if len(errs) == 0 {
		panic("diagnostic.Failed called with no errors")
	}
	return Outcome[T]{ok: false, errors: errs}
}

// IsOk reports whether the outcome is Active.
func (o Outcome[T]) IsOk() bool { return o.ok }

// Errors returns the accumulated diagnostics, Active or Failed.
func (o Outcome[T]) Errors() []Diagnostic { return o.errors }

// Value returns the carried value and whether the outcome was Active.
// The zero value of T is returned when Failed.
func (o Outcome[T]) Value() (T, bool) { return o.value, o.ok }

// Must returns the value, panicking if the outcome is Failed. Intended
// for call sites that have already checked IsOk or that construct
// outcomes that cannot fail.
func (o Outcome[T]) Must() T {
	if !o.ok {
		panic("diagnostic: Must called on a Failed outcome")
	}
	return o.value
}

// Map transforms an Active outcome's value, preserving its errors.
// A Failed outcome passes through unchanged.
func Map[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	if !o.ok {
		return Outcome[U]{ok: false, errors: o.errors}
	}
	return Outcome[U]{ok: true, value: f(o.value), errors: o.errors}
}

// AndThen sequences two outcomes: if o is Failed, its errors propagate
// without invoking f. If o is Active, f runs and its errors are appended
// after o's.
func AndThen[T, U any](o Outcome[T], f func(T) Outcome[U]) Outcome[U] {
	if !o.ok {
		return Outcome[U]{ok: false, errors: o.errors}
	}
	next := f(o.value)
	errs := append(append([]Diagnostic{}, o.errors...), next.errors...)
	if !next.ok {
		return Outcome[U]{ok: false, errors: errs}
	}
	return Outcome[U]{ok: true, value: next.value, errors: errs}
}

// Recover converts a Failed outcome into an Active one carrying fallback's
// result, preserving the accumulated errors. fallback is a thunk so that
// an expensive or self-referential default is never constructed when the
// caller only needed to inspect an Active outcome's errors -- this
// laziness is what makes the self-referential parent/member-map
// construction described in spec.md S3.1 and S9 safe.
func Recover[T any](o Outcome[T], fallback func() T) Outcome[T] {
	if o.ok {
		return o
	}
	return Outcome[T]{ok: true, value: fallback(), errors: o.errors}
}

// WithErrors returns a copy of o with extra diagnostics appended.
func (o Outcome[T]) WithErrors(extra []Diagnostic) Outcome[T] {
	if len(extra) == 0 {
		return o
	}
	o.errors = append(append([]Diagnostic{}, o.errors...), extra...)
	return o
}

// DoAll sequences a slice of outcomes, collecting every successful value
// and every diagnostic from every element, Active or Failed. The result
// is always Active: a list of zero successes with many errors is still a
// meaningful partial result, per spec.md S7's "higher combinators...
// preserve errors from all siblings".
func DoAll[T any](outcomes []Outcome[T]) Outcome[[]T] {
	values := make([]T, 0, len(outcomes))
	var errs []Diagnostic
	for _, o := range outcomes {
		errs = append(errs, o.errors...)
		if o.ok {
			values = append(values, o.value)
		}
	}
	return Active(values, errs)
}
