package layout

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/descriptor"
	"schemac.dev/schemac/diagnostic"
)

// FieldInput is one direct field or union member passed to PackStruct,
// identified only by its declaration number and compiled type -- the
// owning descriptor.Field hasn't been built yet; it is constructed by the
// declaration compiler (spec.md S4.7) from the offset PackStruct returns.
type FieldInput struct {
	Number uint32
	Type   descriptor.Type
}

// UnionInput is one union's declaration number and member fields, in any
// order: PackStruct sorts members by number itself.
type UnionInput struct {
	Number  uint32
	Members []FieldInput
}

// packItem is one top-level entry in struct layout's declaration-number
// ordering: either a direct field or a whole union (tag plus members).
type packItem struct {
	number uint32
	field  *FieldInput
	union  *UnionInput
}

// PackStruct computes the wire layout of one struct's fields and unions,
// in declaration-number order, and enforces any declared fixed-width
// budget (spec.md S4.6).
func PackStruct(fields []FieldInput, unions []UnionInput, fixed *ast.FixedSpec) diagnostic.Outcome[descriptor.StructLayout] {
	items := make([]packItem, 0, len(fields)+len(unions))
	for i := range fields {
		items = append(items, packItem{number: fields[i].Number, field: &fields[i]})
	}
	for i := range unions {
		items = append(items, packItem{number: unions[i].Number, union: &unions[i]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].number < items[j].number })

	state := NewPackingState()
	packingMap := make(map[uint32]descriptor.FieldOffset, len(fields)+len(unions))

	for _, it := range items {
		if it.field != nil {
			packingMap[it.field.Number] = packValue(it.field.Type, state)
			continue
		}

		tagIdx := packData(descriptor.Size16, state)
		packingMap[it.union.Number] = descriptor.DataOffset(descriptor.Size16, tagIdx)

		members := append([]FieldInput(nil), it.union.Members...)
		sort.Slice(members, func(i, j int) bool { return members[i].Number < members[j].Number })

		us := &UnionPackingState{}
		for _, m := range members {
			packingMap[m.Number] = packUnionizedValue(m.Type, us, state)
		}
	}

	natural := finalDataSize(state)

	if fixed == nil {
		return diagnostic.Ok(descriptor.StructLayout{
			DataSize:        natural,
			PointerCount:    mustU32(state.pointerCount),
			FieldPackingMap: packingMap,
		})
	}

	return applyFixedSpec(fixed, natural, state, packingMap)
}

// finalDataSize derives the struct's data section size from the packer's
// final state (spec.md S4.6 "Final data section size").
func finalDataSize(state *PackingState) descriptor.DataSectionSize {
	if state.dataWords != 1 {
		return descriptor.Words(state.dataWords)
	}
	return stripHolesFromFirstWord(state.holes)
}

// stripHolesFromFirstWord shrinks a single-word data section down to the
// narrowest sub-word size that still covers every bit actually used,
// following the chain of holes left at offset 1 of each split level.
func stripHolesFromFirstWord(holes map[descriptor.DataSize]uint64) descriptor.DataSectionSize {
	current := descriptor.Size64
	for _, candidate := range []descriptor.DataSize{descriptor.Size32, descriptor.Size16, descriptor.Size8, descriptor.Size1} {
		off, ok := holes[candidate]
		if !ok || off != 1 {
			break
		}
		current = candidate
	}
	if current == descriptor.Size64 {
		return descriptor.Words(1)
	}
	return sectionSizeOf(current)
}

// validDataBits reports whether a requested fixed-width data section size
// is one of the widths the wire format can express.
func validDataBits(bits uint32) bool {
	switch bits {
	case 0, 1, 8, 16, 32:
		return true
	default:
		return bits%64 == 0
	}
}


// applyFixedSpec checks a struct's declared fixed-width budget against
// its natural layout. A struct that fits is still reported at its
// natural size -- the declared budget only bounds what's allowed, it
// doesn't change what got packed (spec.md S8.3 Scenario 3: a struct
// fixed at 64 bits holding one int32 reports Bits32, not the reserved
// 64). A struct that doesn't fit still compiles with its actual
// (over-budget) layout, recovering from the diagnostic so downstream
// compilation continues (spec.md S4.6, S9).
func applyFixedSpec(fixed *ast.FixedSpec, natural descriptor.DataSectionSize, state *PackingState, packingMap map[uint32]descriptor.FieldOffset) diagnostic.Outcome[descriptor.StructLayout] {
	actual := descriptor.StructLayout{
		DataSize:        natural,
		PointerCount:    mustU32(state.pointerCount),
		FieldPackingMap: packingMap,
	}

	if !validDataBits(fixed.DataBits) {
		return diagnostic.Active(actual, []diagnostic.Diagnostic{
			diagnostic.New(fixed.SpecPos, fmt.Sprintf("fixed data size must be 0, 1, 8, 16, 32, or a multiple of 64 bits, not %d", fixed.DataBits)),
		})
	}

	var errs []diagnostic.Diagnostic
	if natural.Bits() > uint64(fixed.DataBits) {
		errs = append(errs, diagnostic.New(fixed.SpecPos, fmt.Sprintf(
			"struct needs %d data bits but is declared fixed at %d", natural.Bits(), fixed.DataBits)))
	}
	if actual.PointerCount > fixed.PointerCount {
		errs = append(errs, diagnostic.New(fixed.SpecPos, fmt.Sprintf(
			"struct needs %d pointers but is declared fixed at %d", actual.PointerCount, fixed.PointerCount)))
	}
	if len(errs) > 0 {
		return diagnostic.Active(actual, errs)
	}

	return diagnostic.Ok(actual)
}

func mustU32(n uint64) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("layout: pointer count overflow: %w", err))
	}
	return v
}
