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

package ast

// Name is implemented by every name-expression variant: AbsoluteName,
// RelativeName, ImportName and MemberName.
type Name interface {
	Node
	isName()
}

// AbsoluteName is a root-anchored identifier, resolved starting from the
// enclosing file's scope regardless of where it is written.
type AbsoluteName struct {
	NamePos Pos
	Ident   string
}

func (n *AbsoluteName) Pos() Pos { return n.NamePos }
func (*AbsoluteName) isName()    {}

// RelativeName is an unqualified identifier, resolved by walking the scope
// chain outward from the point of use.
type RelativeName struct {
	NamePos Pos
	Ident   string
}

func (n *RelativeName) Pos() Pos { return n.NamePos }
func (*RelativeName) isName()    {}

// ImportName names an entry in the enclosing file's import table.
type ImportName struct {
	NamePos Pos
	Ident   string
}

func (n *ImportName) Pos() Pos { return n.NamePos }
func (*ImportName) isName()    {}

// MemberName is a dotted-path selection: Parent is resolved first, and
// Leaf is looked up as a direct member of the result.
type MemberName struct {
	NamePos Pos
	Parent  Name
	Leaf    string
	LeafPos Pos
}

func (n *MemberName) Pos() Pos { return n.NamePos }
func (*MemberName) isName()    {}
