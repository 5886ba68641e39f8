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

// File is the root of a parsed schema file: the declarations in source
// order, the distinct imports it names, and any file-level annotations.
type File struct {
	FilePos  Pos
	Imports  []*ImportDecl
	Decls    []Decl
	Annots   []*AnnotationApplication
	ParseErr []error
}

func (f *File) Pos() Pos { return f.FilePos }

// ImportDecl names another file's root, to be resolved through the
// ImportCallback contract.
type ImportDecl struct {
	DeclPos Pos
	Name    string
}

func (d *ImportDecl) Pos() Pos { return d.DeclPos }

// Decl is implemented by every top-level and nested declaration node.
type Decl interface {
	Node
	DeclName() *Ident
	isDecl()
}

// Ident is an identifier occurrence with its own source position, used for
// declaration names so that duplicate-name diagnostics can point at both
// occurrences.
type Ident struct {
	IdentPos Pos
	Value    string
}

func (id *Ident) Pos() Pos { return id.IdentPos }

// UsingDecl aliases an existing name (spec.md S4.7): `using Name = Target;`.
type UsingDecl struct {
	DeclPos Pos
	Name    *Ident
	Target  Name
	Annots  []*AnnotationApplication
}

func (d *UsingDecl) Pos() Pos          { return d.DeclPos }
func (d *UsingDecl) DeclName() *Ident  { return d.Name }
func (*UsingDecl) isDecl()             {}

// ConstantDecl declares a typed, named literal value.
type ConstantDecl struct {
	DeclPos Pos
	Name    *Ident
	Type    *TypeExpr
	Value   Value
	Annots  []*AnnotationApplication
}

func (d *ConstantDecl) Pos() Pos         { return d.DeclPos }
func (d *ConstantDecl) DeclName() *Ident { return d.Name }
func (*ConstantDecl) isDecl()            {}

// EnumDecl declares an enumeration and its enumerants.
type EnumDecl struct {
	DeclPos    Pos
	Name       *Ident
	Enumerants []*EnumerantDecl
	Annots     []*AnnotationApplication
}

func (d *EnumDecl) Pos() Pos         { return d.DeclPos }
func (d *EnumDecl) DeclName() *Ident { return d.Name }
func (*EnumDecl) isDecl()            {}

// EnumerantDecl is one member of an EnumDecl; Number is the ordinal used
// for sequential-numbering validation.
type EnumerantDecl struct {
	DeclPos Pos
	Name    *Ident
	Number  uint32
	Annots  []*AnnotationApplication
}

func (d *EnumerantDecl) Pos() Pos         { return d.DeclPos }
func (d *EnumerantDecl) DeclName() *Ident { return d.Name }
func (*EnumerantDecl) isDecl()            {}

// FixedSpec is the optional "fixed(dataBits, pointers)" clause on a
// StructDecl.
type FixedSpec struct {
	SpecPos      Pos
	DataBits     uint32
	PointerCount uint32
}

// StructDecl declares a struct and its body of fields and unions.
type StructDecl struct {
	DeclPos Pos
	Name    *Ident
	Fixed   *FixedSpec // nil if not declared fixed-width
	Body    []Decl     // *FieldDecl and *UnionDecl
	Annots  []*AnnotationApplication
}

func (d *StructDecl) Pos() Pos         { return d.DeclPos }
func (d *StructDecl) DeclName() *Ident { return d.Name }
func (*StructDecl) isDecl()            {}

// UnionDecl declares a discriminated union nested inside a StructDecl.
type UnionDecl struct {
	DeclPos Pos
	Name    *Ident
	Number  uint32
	Body    []*FieldDecl
	Annots  []*AnnotationApplication
}

func (d *UnionDecl) Pos() Pos         { return d.DeclPos }
func (d *UnionDecl) DeclName() *Ident { return d.Name }
func (*UnionDecl) isDecl()            {}

// FieldDecl declares one field of a StructDecl, or one variant of a
// UnionDecl nested inside a struct.
type FieldDecl struct {
	DeclPos Pos
	Name    *Ident
	Number  uint32
	Type    *TypeExpr
	Default Value // nil if no default literal was written
	Annots  []*AnnotationApplication
}

func (d *FieldDecl) Pos() Pos         { return d.DeclPos }
func (d *FieldDecl) DeclName() *Ident { return d.Name }
func (*FieldDecl) isDecl()            {}

// InterfaceDecl declares an interface and its methods.
type InterfaceDecl struct {
	DeclPos Pos
	Name    *Ident
	Methods []*MethodDecl
	Annots  []*AnnotationApplication
}

func (d *InterfaceDecl) Pos() Pos         { return d.DeclPos }
func (d *InterfaceDecl) DeclName() *Ident { return d.Name }
func (*InterfaceDecl) isDecl()            {}

// MethodDecl declares one RPC method of an InterfaceDecl.
type MethodDecl struct {
	DeclPos    Pos
	Name       *Ident
	Number     uint32
	Params     []*ParamDecl
	ReturnType *TypeExpr // nil for a void return
	Annots     []*AnnotationApplication
}

func (d *MethodDecl) Pos() Pos         { return d.DeclPos }
func (d *MethodDecl) DeclName() *Ident { return d.Name }
func (*MethodDecl) isDecl()            {}

// ParamDecl declares one parameter of a MethodDecl.
type ParamDecl struct {
	DeclPos Pos
	Name    *Ident
	Type    *TypeExpr
	Default Value
	Annots  []*AnnotationApplication
}

func (d *ParamDecl) Pos() Pos         { return d.DeclPos }
func (d *ParamDecl) DeclName() *Ident { return d.Name }
func (*ParamDecl) isDecl()            {}

// AnnotationDecl declares a user-defined annotation and the set of
// declaration kinds it may be applied to.
type AnnotationDecl struct {
	DeclPos     Pos
	Name        *Ident
	Type        *TypeExpr
	TargetKinds []TargetKind
	Annots      []*AnnotationApplication
}

func (d *AnnotationDecl) Pos() Pos         { return d.DeclPos }
func (d *AnnotationDecl) DeclName() *Ident { return d.Name }
func (*AnnotationDecl) isDecl()            {}

// TargetKind names a declaration kind an AnnotationDecl may target.
type TargetKind uint8

const (
	TargetFile TargetKind = iota
	TargetConstant
	TargetEnum
	TargetEnumerant
	TargetStruct
	TargetUnion
	TargetField
	TargetInterface
	TargetMethod
	TargetParam
	TargetAnnotation
)

func (k TargetKind) String() string {
	switch k {
	case TargetFile:
		return "file"
	case TargetConstant:
		return "const"
	case TargetEnum:
		return "enum"
	case TargetEnumerant:
		return "enumerant"
	case TargetStruct:
		return "struct"
	case TargetUnion:
		return "union"
	case TargetField:
		return "field"
	case TargetInterface:
		return "interface"
	case TargetMethod:
		return "method"
	case TargetParam:
		return "param"
	case TargetAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// AnnotationApplication is `@Name(value)` (or `@Name` with no value)
// attached to a declaration or file.
type AnnotationApplication struct {
	ApplyPos Pos
	Name     Name
	Value    Value // nil when the annotation carries no value
}

func (a *AnnotationApplication) Pos() Pos { return a.ApplyPos }
