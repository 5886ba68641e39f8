package layout

import "schemac.dev/schemac/descriptor"

// UnionPackingState is the shared packer state for every variant of one
// union: the first variant placed claims a slot, and later variants
// reuse, widen, or -- if neither is possible -- abandon and replace it
// (spec.md S4.6 "Union packing").
type UnionPackingState struct {
	hasData  bool
	dataSize descriptor.DataSectionSize
	dataOff  uint64

	hasPointer bool
	pointerN   uint32
	pointerOff uint64
}

// packUnionizedValue places one union variant, sharing storage with any
// variant already placed for this union.
func packUnionizedValue(t descriptor.Type, us *UnionPackingState, state *PackingState) descriptor.FieldOffset {
	sc := fieldSizeClass(t)
	switch sc.kind {
	case sizeVoid:
		return descriptor.VoidOffset()

	case sizeReference:
		idx := packUnionPointerSlot(us, state, 1)
		return descriptor.PointerOffset(idx)

	case sizeData:
		idx := packUnionDataSlot(us, state, sc.data)
		return descriptor.DataOffset(sc.data, idx)

	case sizeInlineComposite:
		var dataIdx uint64
		if sc.inlineData.Kind == descriptor.WordsKind {
			dataIdx = tryExpandUnionizedDataWords(us, state, sc.inlineData.Words)
		} else {
			subSize, _ := subWordSize(sc.inlineData.Kind)
			dataIdx = packUnionDataSlot(us, state, subSize)
		}
		ptrIdx := packUnionPointerSlot(us, state, sc.inlinePointers)
		return descriptor.InlineCompositeOffset(dataIdx, ptrIdx, sc.inlineData, sc.inlinePointers)

	default:
		panic("layout: unreachable size class")
	}
}

// packUnionDataSlot allocates or reuses a union's sub-word-or-word data
// slot for a plain (non-composite) primitive of the given size.
func packUnionDataSlot(us *UnionPackingState, state *PackingState, desired descriptor.DataSize) uint64 {
	if !us.hasData {
		idx := packData(desired, state)
		us.hasData = true
		us.dataSize = sectionSizeOf(desired)
		us.dataOff = idx
		return idx
	}

	if us.dataSize.Kind == descriptor.WordsKind && us.dataSize.Words >= 1 {
		ratio := uint64(64) / desired.Bits()
		return us.dataOff * ratio
	}

	curSize, _ := subWordSize(us.dataSize.Kind)
	if newOff, ok := tryExpandSubWordDataSlot(curSize, us.dataOff, state, desired); ok {
		if desired.Bits() > curSize.Bits() {
			us.dataSize = sectionSizeOf(desired)
			us.dataOff = newOff
		}
		return newOff
	}

	// Fall through: abandon the old slot and allocate fresh at the end.
	idx := packData(desired, state)
	us.dataSize = sectionSizeOf(desired)
	us.dataOff = idx
	return idx
}

// tryExpandSubWordDataSlot decides whether a union's existing sub-word
// data slot can serve a field that needs desired bits, recursing one
// split level at a time when it cannot (spec.md S4.6).
func tryExpandSubWordDataSlot(slotSize descriptor.DataSize, slotOffset uint64, state *PackingState, desired descriptor.DataSize) (uint64, bool) {
	if slotSize.Bits() >= desired.Bits() {
		ratio := slotSize.Bits() / desired.Bits()
		return slotOffset * ratio, true
	}

	nextSize, ok := slotSize.NextLarger()
	if !ok {
		return 0, false
	}
	ratio := nextSize.Bits() / slotSize.Bits()
	if slotOffset%ratio != 0 {
		return 0, false
	}
	siblingOffset, ok := state.holes[slotSize]
	if !ok || siblingOffset != slotOffset+1 {
		return 0, false
	}
	newOffset, ok := tryExpandSubWordDataSlot(nextSize, slotOffset/ratio, state, desired)
	if !ok {
		return 0, false
	}
	// Only commit the coalesce once the full chain reached desired --
	// an intermediate failure must leave holes[slotSize] in place for
	// whatever packs it next.
	delete(state.holes, slotSize)
	return newOffset, true
}

// tryExpandUnionizedDataWords places a whole-word-or-wider inline
// composite's data section, growing an existing multi-word slot in
// place when it sits at the struct's data-section tail.
func tryExpandUnionizedDataWords(us *UnionPackingState, state *PackingState, requestedWords uint64) uint64 {
	if !us.hasData {
		idx := packWords(state, requestedWords)
		us.hasData = true
		us.dataSize = descriptor.Words(requestedWords)
		us.dataOff = idx
		return idx
	}

	if us.dataSize.Kind == descriptor.WordsKind {
		if us.dataSize.Words >= requestedWords {
			return us.dataOff
		}
		if us.dataOff+us.dataSize.Words == state.dataWords {
			extra := requestedWords - us.dataSize.Words
			state.dataWords += extra
			us.dataSize = descriptor.Words(requestedWords)
			return us.dataOff
		}
	}

	idx := packWords(state, requestedWords)
	us.dataSize = descriptor.Words(requestedWords)
	us.dataOff = idx
	return idx
}

// packUnionPointerSlot allocates or widens a union's shared run of n
// pointers.
func packUnionPointerSlot(us *UnionPackingState, state *PackingState, n uint32) uint64 {
	if !us.hasPointer {
		idx := packPointers(state, uint64(n))
		us.hasPointer = true
		us.pointerN = n
		us.pointerOff = idx
		return idx
	}

	if us.pointerN >= n {
		return us.pointerOff
	}

	if us.pointerOff+uint64(us.pointerN) == state.pointerCount {
		extra := uint64(n - us.pointerN)
		state.pointerCount += extra
		us.pointerN = n
		return us.pointerOff
	}

	idx := packPointers(state, uint64(n))
	us.pointerN = n
	us.pointerOff = idx
	return idx
}
