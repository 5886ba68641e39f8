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
	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// lookup resolves a name against scope, walking outward through parent
// scopes and following Using aliases as needed (spec.md S4.1). scope is
// the lexical scope enclosing the name's occurrence: the file itself, or
// a struct/enum/interface descriptor whose members the name may refer
// to.
func lookup(scope descriptor.Descriptor, builtins map[string]descriptor.Descriptor, name ast.Name) diagnostic.Outcome[descriptor.Descriptor] {
	switch n := name.(type) {
	case *ast.MemberName:
		return diagnostic.AndThen(lookup(scope, builtins, n.Parent), func(parent descriptor.Descriptor) diagnostic.Outcome[descriptor.Descriptor] {
			parent = followUsing(parent)
			members := parent.DescMembers()
			if members == nil {
				return diagnostic.Failed[descriptor.Descriptor](errNotAScope(n.Pos(), parent.DescName()))
			}
			member, ok := members[n.Leaf]
			if !ok {
				return diagnostic.Failed[descriptor.Descriptor](errNoSuchMember(n.LeafPos, parent.DescName(), n.Leaf))
			}
			return diagnostic.Ok(followUsing(member))
		})

	case *ast.RelativeName:
		if scope.DescKind() == descriptor.KindFile {
			file := scope.(*descriptor.File)
			if member, ok := file.Members[n.Ident]; ok {
				return diagnostic.Ok(followUsing(member))
			}
			if b, ok := builtins[n.Ident]; ok {
				return diagnostic.Ok(b)
			}
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		if members := scope.DescMembers(); members != nil {
			if member, ok := members[n.Ident]; ok {
				return diagnostic.Ok(followUsing(member))
			}
		}
		parent := scope.DescParent()
		if parent == nil {
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		return lookup(parent, builtins, name)

	case *ast.AbsoluteName:
		if scope.DescKind() == descriptor.KindFile {
			file := scope.(*descriptor.File)
			if member, ok := file.Members[n.Ident]; ok {
				return diagnostic.Ok(followUsing(member))
			}
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		parent := scope.DescParent()
		if parent == nil {
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		return lookup(parent, builtins, name)

	case *ast.ImportName:
		if scope.DescKind() == descriptor.KindFile {
			file := scope.(*descriptor.File)
			if imp, ok := file.Imports[n.Ident]; ok {
				return diagnostic.Ok[descriptor.Descriptor](imp)
			}
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		parent := scope.DescParent()
		if parent == nil {
			return diagnostic.Failed[descriptor.Descriptor](errUndefinedName(n.Pos(), n.Ident))
		}
		return lookup(parent, builtins, name)

	default:
		panic("compiler: unknown ast.Name variant")
	}
}

// followUsing dereferences a chain of Using aliases to their ultimate
// target, so that callers never see a Using descriptor as a lookup
// result (spec.md S4.1).
func followUsing(d descriptor.Descriptor) descriptor.Descriptor {
	for d.DescKind() == descriptor.KindUsing {
		d = d.(*descriptor.Using).Target
	}
	return d
}
