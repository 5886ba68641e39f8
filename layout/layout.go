// Package layout packs a struct's fields into the data and pointer
// sections of its wire representation (spec.md S4.6). It is the
// algorithmic heart of the compiler: every field size derives from a
// descriptor.Type, and the packer assigns each one a descriptor.FieldOffset
// while reusing sub-word "holes" left behind by earlier, narrower fields
// and sharing storage among a union's variants.
package layout

import "schemac.dev/schemac/descriptor"

// PackingState tracks one struct's data and pointer section growth as
// fields are packed in declaration-number order.
type PackingState struct {
	// holes[size] is the offset, in units of size, of the single
	// remembered free sub-word slot of that width -- the "bubble" left
	// by the most recent split or not yet consumed.
	holes map[descriptor.DataSize]uint64

	dataWords    uint64
	pointerCount uint64
}

// NewPackingState returns an empty packer state for a struct with no
// fields placed yet.
func NewPackingState() *PackingState {
	return &PackingState{holes: make(map[descriptor.DataSize]uint64)}
}

// packData places a single primitive value of the given width, reusing a
// hole if one is available and otherwise splitting a larger slot.
func packData(size descriptor.DataSize, state *PackingState) uint64 {
	if size == descriptor.Size64 {
		offset := state.dataWords
		state.dataWords++
		return offset
	}

	if offset, ok := state.holes[size]; ok {
		delete(state.holes, size)
		if size == descriptor.Size1 && offset%8 != 7 {
			state.holes[descriptor.Size1] = offset + 1
		}
		return offset
	}

	larger, ok := size.NextLarger()
	if !ok {
		panic("layout: DataSize has no larger size to split")
	}
	parentOffset := packData(larger, state)
	ratio := larger.Bits() / size.Bits()
	childOffset := parentOffset * ratio
	state.holes[size] = childOffset + 1
	return childOffset
}

// packWords appends n whole words at the end of the data section,
// bypassing the hole table entirely: whole-word allocations (Size64
// fields, and the word-aligned portion of inline composites) never
// split or get reused by a narrower field.
func packWords(state *PackingState, n uint64) uint64 {
	offset := state.dataWords
	state.dataWords += n
	return offset
}

// packPointers appends n pointers at the end of the pointer section.
func packPointers(state *PackingState, n uint64) uint64 {
	offset := state.pointerCount
	state.pointerCount += n
	return offset
}
