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

import "fmt"

// DataSize is one of the five bit widths a primitive data-section value
// can occupy (spec.md S3.4).
type DataSize uint8

const (
	Size1 DataSize = iota
	Size8
	Size16
	Size32
	Size64
)

// Bits returns the width in bits of a DataSize.
func (s DataSize) Bits() uint64 {
	switch s {
	case Size1:
		return 1
	case Size8:
		return 8
	case Size16:
		return 16
	case Size32:
		return 32
	case Size64:
		return 64
	default:
		panic("invalid DataSize")
	}
}

func (s DataSize) String() string {
	switch s {
	case Size1:
		return "1"
	case Size8:
		return "8"
	case Size16:
		return "16"
	case Size32:
		return "32"
	case Size64:
		return "64"
	default:
		return "?"
	}
}

// NextLarger returns the next wider DataSize, used when splitting a hole
// to pack a smaller field (spec.md S4.6 packData).
func (s DataSize) NextLarger() (DataSize, bool) {
	switch s {
	case Size1:
		return Size8, true
	case Size8:
		return Size16, true
	case Size16:
		return Size32, true
	case Size32:
		return Size64, true
	default:
		return 0, false
	}
}

// DataSectionSizeKind distinguishes a sub-word final data section size
// from a whole-word count.
type DataSectionSizeKind uint8

const (
	Bits1 DataSectionSizeKind = iota
	Bits8
	Bits16
	Bits32
	WordsKind
)

// DataSectionSize is a struct's final data-section size: one of the
// sub-word sizes (only legal when the whole section fits in a single
// word) or a word count (spec.md S3.4).
type DataSectionSize struct {
	Kind  DataSectionSizeKind
	Words uint64 // meaningful only when Kind == WordsKind
}

// Bits returns the total width of the data section.
func (d DataSectionSize) Bits() uint64 {
	switch d.Kind {
	case Bits1:
		return 1
	case Bits8:
		return 8
	case Bits16:
		return 16
	case Bits32:
		return 32
	case WordsKind:
		return d.Words * 64
	default:
		panic("invalid DataSectionSize")
	}
}

func Words(n uint64) DataSectionSize {
	return DataSectionSize{Kind: WordsKind, Words: n}
}

func (d DataSectionSize) String() string {
	switch d.Kind {
	case Bits1:
		return "1 bit"
	case Bits8:
		return "8 bits"
	case Bits16:
		return "16 bits"
	case Bits32:
		return "32 bits"
	case WordsKind:
		return fmt.Sprintf("%d word(s)", d.Words)
	default:
		return "?"
	}
}

// FieldOffsetKind distinguishes the four storage classes a field can
// occupy (spec.md S3.4).
type FieldOffsetKind uint8

const (
	OffsetVoid FieldOffsetKind = iota
	OffsetData
	OffsetPointer
	OffsetInlineComposite
)

// FieldOffset records where a field (or a union's discriminant) was
// placed by the struct layout packer.
type FieldOffset struct {
	Kind FieldOffsetKind

	// OffsetData: Size is the field's width, Index is a Size-sized unit
	// offset from the start of the data section.
	Size  DataSize
	Index uint64

	// OffsetPointer: PointerIndex is a pointer-sized unit offset from the
	// start of the pointer section.
	//
	// OffsetInlineComposite: PointerIndex is the pointer-section offset
	// of the inlined value's own pointer section.
	PointerIndex uint64

	// OffsetInlineComposite only: DataIndex is the offset (within the
	// enclosing struct's data section) of the inlined value's data
	// section, measured in units of InlineData's own size class (whole
	// words for DataSectionSizeKind==WordsKind, otherwise bits/bytes/
	// half-words/words of that sub-word width). InlinePointers is the
	// inlined value's own pointer section size.
	DataIndex      uint64
	InlineData     DataSectionSize
	InlinePointers uint32
}

func VoidOffset() FieldOffset {
	return FieldOffset{Kind: OffsetVoid}
}

func DataOffset(size DataSize, index uint64) FieldOffset {
	return FieldOffset{Kind: OffsetData, Size: size, Index: index}
}

func PointerOffset(index uint64) FieldOffset {
	return FieldOffset{Kind: OffsetPointer, PointerIndex: index}
}

func InlineCompositeOffset(dataIndex, pointerIndex uint64, data DataSectionSize, pointers uint32) FieldOffset {
	return FieldOffset{
		Kind:           OffsetInlineComposite,
		DataIndex:      dataIndex,
		PointerIndex:   pointerIndex,
		InlineData:     data,
		InlinePointers: pointers,
	}
}

// StructLayout is the output of the struct layout packer for one struct
// (spec.md S3.4's StructDesc).
type StructLayout struct {
	DataSize        DataSectionSize
	PointerCount    uint32
	FieldPackingMap map[uint32]FieldOffset // declaration number -> offset
}
