package layout

import "schemac.dev/schemac/descriptor"

// sizeClassKind distinguishes the four storage classes a field's type can
// require (spec.md S4.6).
type sizeClassKind uint8

const (
	sizeVoid sizeClassKind = iota
	sizeData
	sizeReference
	sizeInlineComposite
)

// sizeClass is the packer's view of a field's type: how much room it
// needs and where.
type sizeClass struct {
	kind sizeClassKind

	data descriptor.DataSize // sizeData

	inlineData     descriptor.DataSectionSize // sizeInlineComposite
	inlinePointers uint32                     // sizeInlineComposite
}

// fieldSizeClass classifies a field's compiled type for the packer.
func fieldSizeClass(t descriptor.Type) sizeClass {
	if t.Kind == descriptor.TypeVoid {
		return sizeClass{kind: sizeVoid}
	}
	if t.IsInlineComposite() {
		return sizeClass{
			kind:           sizeInlineComposite,
			inlineData:     t.InlineDataSize,
			inlinePointers: t.InlinePointerCount,
		}
	}
	if t.IsReference() {
		return sizeClass{kind: sizeReference}
	}
	size, ok := t.DataSize()
	if !ok {
		panic("layout: type is neither void, reference, inline composite, nor fixed-width primitive")
	}
	return sizeClass{kind: sizeData, data: size}
}

// subWordSize maps a sub-word DataSectionSize to the equivalent DataSize,
// or ok=false for WordsKind.
func subWordSize(kind descriptor.DataSectionSizeKind) (descriptor.DataSize, bool) {
	switch kind {
	case descriptor.Bits1:
		return descriptor.Size1, true
	case descriptor.Bits8:
		return descriptor.Size8, true
	case descriptor.Bits16:
		return descriptor.Size16, true
	case descriptor.Bits32:
		return descriptor.Size32, true
	default:
		return 0, false
	}
}

// sectionSizeOf returns the DataSectionSize equivalent to a plain
// DataSize, used when recording what a union's data slot now holds.
func sectionSizeOf(size descriptor.DataSize) descriptor.DataSectionSize {
	switch size {
	case descriptor.Size1:
		return descriptor.DataSectionSize{Kind: descriptor.Bits1}
	case descriptor.Size8:
		return descriptor.DataSectionSize{Kind: descriptor.Bits8}
	case descriptor.Size16:
		return descriptor.DataSectionSize{Kind: descriptor.Bits16}
	case descriptor.Size32:
		return descriptor.DataSectionSize{Kind: descriptor.Bits32}
	default:
		return descriptor.Words(1)
	}
}

// packValue places one directly-owned (non-union) field and returns its
// offset (spec.md S4.6 "General value packing").
func packValue(t descriptor.Type, state *PackingState) descriptor.FieldOffset {
	sc := fieldSizeClass(t)
	switch sc.kind {
	case sizeVoid:
		return descriptor.VoidOffset()

	case sizeReference:
		idx := packPointers(state, 1)
		return descriptor.PointerOffset(idx)

	case sizeData:
		idx := packData(sc.data, state)
		return descriptor.DataOffset(sc.data, idx)

	case sizeInlineComposite:
		if sc.inlineData.Kind == descriptor.WordsKind {
			dataIdx := packWords(state, sc.inlineData.Words)
			ptrIdx := packPointers(state, uint64(sc.inlinePointers))
			return descriptor.InlineCompositeOffset(dataIdx, ptrIdx, sc.inlineData, sc.inlinePointers)
		}
		subSize, _ := subWordSize(sc.inlineData.Kind)
		dataIdx := packData(subSize, state)
		ptrIdx := packPointers(state, uint64(sc.inlinePointers))
		return descriptor.InlineCompositeOffset(dataIdx, ptrIdx, sc.inlineData, sc.inlinePointers)

	default:
		panic("layout: unreachable size class")
	}
}
