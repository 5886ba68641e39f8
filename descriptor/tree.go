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

package descriptor

import "schemac.dev/schemac/ast"

// File is the root descriptor of a compiled schema file (spec.md S4.8).
type File struct {
	base
	Members        map[string]Descriptor
	Imports        map[string]*File
	RuntimeImports map[*File]struct{}
	frozen         bool
}

// NewFileShell allocates an unpopulated File, suitable for handing a
// stable parent pointer to children before the member map is known.
func NewFileShell(pos ast.Pos, name string) *File {
	return &File{
		base:    base{kind: KindFile, name: name, pos: pos},
		Members: make(map[string]Descriptor),
	}
}

func (f *File) DescMembers() map[string]Descriptor { return f.Members }

// Freeze finalizes a File shell. It must be called exactly once, after
// every member has been added to f.Members.
func (f *File) Freeze(id string, hasID bool, annots AnnotationMap, imports map[string]*File, runtimeImports map[*File]struct{}) {
	if f.frozen {
		panic("descriptor: File already frozen")
	}
	f.id, f.hasID = id, hasID
	f.annots = annots
	f.Imports = imports
	f.RuntimeImports = runtimeImports
	f.frozen = true
}

// Using is an alias descriptor: lookups of its name transparently follow
// Target (spec.md S4.1).
type Using struct {
	base
	Target Descriptor
}

func (u *Using) DescMembers() map[string]Descriptor { return nil }

func NewUsing(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, target Descriptor) *Using {
	return &Using{
		base:   base{kind: KindUsing, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Target: target,
	}
}

// Constant is a typed, named literal value.
type Constant struct {
	base
	Type  Type
	Value Value
}

func (c *Constant) DescMembers() map[string]Descriptor { return nil }

func NewConstant(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, t Type, v Value) *Constant {
	return &Constant{
		base:  base{kind: KindConstant, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Type:  t,
		Value: v,
	}
}

// Enum is an enumeration and the scope formed by its enumerants.
type Enum struct {
	base
	Members    map[string]Descriptor
	Enumerants []*Enumerant
	frozen     bool
}

func NewEnumShell(pos ast.Pos, name string, parent Descriptor) *Enum {
	return &Enum{
		base:    base{kind: KindEnum, name: name, pos: pos, parent: parent},
		Members: make(map[string]Descriptor),
	}
}

func (e *Enum) DescMembers() map[string]Descriptor { return e.Members }

func (e *Enum) Freeze(id string, hasID bool, annots AnnotationMap, enumerants []*Enumerant) {
	if e.frozen {
		panic("descriptor: Enum already frozen")
	}
	e.id, e.hasID = id, hasID
	e.annots = annots
	e.Enumerants = enumerants
	e.frozen = true
}

// Enumerant is one member of an Enum.
type Enumerant struct {
	base
	Number uint32
}

func (en *Enumerant) DescMembers() map[string]Descriptor { return nil }

func NewEnumerant(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, number uint32) *Enumerant {
	return &Enumerant{
		base:   base{kind: KindEnumerant, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Number: number,
	}
}

// FixedSpec is a struct's declared fixed-width budget (spec.md S4.6).
type FixedSpec struct {
	DataBits     uint32
	PointerCount uint32
}

// Struct is a struct declaration: its fields (direct and unionized) and
// the computed wire layout.
type Struct struct {
	base
	Members      map[string]Descriptor // field/union name -> *Field or *Union
	DirectFields []*Field
	Unions       []*Union
	Fixed        *FixedSpec
	Layout       StructLayout
	frozen       bool
}

func NewStructShell(pos ast.Pos, name string, parent Descriptor, fixed *FixedSpec) *Struct {
	return &Struct{
		base:    base{kind: KindStruct, name: name, pos: pos, parent: parent},
		Members: make(map[string]Descriptor),
		Fixed:   fixed,
	}
}

func (s *Struct) DescMembers() map[string]Descriptor { return s.Members }

func (s *Struct) Freeze(id string, hasID bool, annots AnnotationMap, directFields []*Field, unions []*Union, layout StructLayout) {
	if s.frozen {
		panic("descriptor: Struct already frozen")
	}
	s.id, s.hasID = id, hasID
	s.annots = annots
	s.DirectFields = directFields
	s.Unions = unions
	s.Layout = layout
	s.frozen = true
}

// Union is a discriminated union nested inside a Struct; Fields holds the
// subset of the struct's fields tagged with this union (spec.md S3.3).
type Union struct {
	base
	Number        uint32
	Fields        map[string]*Field
	FieldOrder    []*Field // sorted by declaration number
	Discriminants map[uint32]uint16
	TagOffset     FieldOffset
	frozen        bool
}

func NewUnionShell(pos ast.Pos, name string, parent Descriptor, number uint32) *Union {
	return &Union{
		base:   base{kind: KindUnion, name: name, pos: pos, parent: parent},
		Number: number,
		Fields: make(map[string]*Field),
	}
}

func (u *Union) DescMembers() map[string]Descriptor { return nil }

func (u *Union) Freeze(id string, hasID bool, annots AnnotationMap, fieldOrder []*Field, discriminants map[uint32]uint16, tagOffset FieldOffset) {
	if u.frozen {
		panic("descriptor: Union already frozen")
	}
	u.id, u.hasID = id, hasID
	u.annots = annots
	u.FieldOrder = fieldOrder
	u.Discriminants = discriminants
	u.TagOffset = tagOffset
	u.frozen = true
}

// Field belongs either directly to its struct, or to exactly one union of
// that struct (spec.md S3.3).
type Field struct {
	base
	Number     uint32
	Type       Type
	Default    Value
	HasDefault bool
	Offset     FieldOffset
	Union      *Union // nil if this is a direct field of its struct
}

func (f *Field) DescMembers() map[string]Descriptor { return nil }

func NewField(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, number uint32, t Type, def Value, hasDefault bool, union *Union) *Field {
	return &Field{
		base:       base{kind: KindField, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Number:     number,
		Type:       t,
		Default:    def,
		HasDefault: hasDefault,
		Union:      union,
	}
}

// Interface is an interface declaration and the scope formed by its
// methods.
type Interface struct {
	base
	Members map[string]Descriptor
	Methods []*Method
	frozen  bool
}

func NewInterfaceShell(pos ast.Pos, name string, parent Descriptor) *Interface {
	return &Interface{
		base:    base{kind: KindInterface, name: name, pos: pos, parent: parent},
		Members: make(map[string]Descriptor),
	}
}

func (i *Interface) DescMembers() map[string]Descriptor { return i.Members }

func (i *Interface) Freeze(id string, hasID bool, annots AnnotationMap, methods []*Method) {
	if i.frozen {
		panic("descriptor: Interface already frozen")
	}
	i.id, i.hasID = id, hasID
	i.annots = annots
	i.Methods = methods
	i.frozen = true
}

// Method is one RPC method of an Interface.
type Method struct {
	base
	Number        uint32
	Params        map[string]*Param
	ParamOrder    []*Param
	ReturnType    Type
	HasReturnType bool
}

func (m *Method) DescMembers() map[string]Descriptor { return nil }

func NewMethod(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, number uint32, paramOrder []*Param, returnType Type, hasReturnType bool) *Method {
	params := make(map[string]*Param, len(paramOrder))
	for _, p := range paramOrder {
		params[p.DescName()] = p
	}
	return &Method{
		base:          base{kind: KindMethod, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Number:        number,
		Params:        params,
		ParamOrder:    paramOrder,
		ReturnType:    returnType,
		HasReturnType: hasReturnType,
	}
}

// Param is one parameter of a Method.
type Param struct {
	base
	Type       Type
	Default    Value
	HasDefault bool
}

func (p *Param) DescMembers() map[string]Descriptor { return nil }

func NewParam(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, t Type, def Value, hasDefault bool) *Param {
	return &Param{
		base:       base{kind: KindParam, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Type:       t,
		Default:    def,
		HasDefault: hasDefault,
	}
}

// Annotation is a user-declared annotation and the target kinds it may be
// applied to (spec.md S4.4).
type Annotation struct {
	base
	Type    Type
	Targets map[ast.TargetKind]bool
}

func (a *Annotation) DescMembers() map[string]Descriptor { return nil }

func NewAnnotation(pos ast.Pos, name string, parent Descriptor, id string, hasID bool, annots AnnotationMap, t Type, targets map[ast.TargetKind]bool) *Annotation {
	return &Annotation{
		base:    base{kind: KindAnnotation, name: name, pos: pos, parent: parent, id: id, hasID: hasID, annots: annots},
		Type:    t,
		Targets: targets,
	}
}
