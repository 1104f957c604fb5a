package memspy

// DefaultAddressCeiling is the 48-bit user-mode address space limit used by
// [FilterRegions] when no override is configured. x86-64 and aarch64 both
// cap canonical user-mode addresses here; implementers targeting a
// different architecture should pass an explicit ceiling rather than
// relying on this default.
const DefaultAddressCeiling uintptr = 0x7FFF_FFFF_FFFF

// FilterRegions is a pure function selecting the regions of regions
// eligible for scanning or reading under mask, given addressCeiling as the
// architecture's maximum user-mode address (pass 0 to use
// [DefaultAddressCeiling]).
//
// A region survives iff all of:
//  1. its state is [RegionCommitted];
//  2. its base address is below addressCeiling;
//  3. neither [ProtectGuard] nor [ProtectNoAccess] is set;
//  4. its type is private or image, unless mask.Mapped is set, in which
//     case its type must be mapped;
//  5. at least one capability requested by mask is satisfied by the
//     region's protection flags.
//
// Region order is preserved from the input slice. The result aliases no
// storage from regions; it is a fresh slice of copies.
func FilterRegions(regions []Region, mask CapabilityMask, addressCeiling uintptr) []Region {
	if addressCeiling == 0 {
		addressCeiling = DefaultAddressCeiling
	}

	out := make([]Region, 0, len(regions))

	for _, r := range regions {
		if r.State != RegionCommitted {
			continue
		}
		if r.Base >= addressCeiling {
			continue
		}
		if r.Protect.Any(ProtectGuard | ProtectNoAccess) {
			continue
		}

		wantsMapped := mask.Mapped
		if wantsMapped {
			if r.Type != RegionMapped {
				continue
			}
		} else if r.Type != RegionPrivate && r.Type != RegionImage {
			continue
		}

		if !capabilityMatches(r, mask) {
			continue
		}

		out = append(out, r)
	}

	return out
}

// capabilityMatches checks the three protection-based predicates. Mapped is
// not itself a protection predicate here - it only narrows the admissible
// region type in rule 4 above.
func capabilityMatches(r Region, mask CapabilityMask) bool {
	if mask.Readable && r.Protect.Has(ProtectReadOnly) {
		return true
	}
	if mask.Writable && r.Protect.Any(ProtectReadWrite|ProtectWriteCopy|ProtectExecuteReadWrite|ProtectExecuteWriteCopy) {
		return true
	}
	if mask.Executable && r.Protect.Any(ProtectExecute|ProtectExecuteRead|ProtectExecuteReadWrite|ProtectExecuteWriteCopy) {
		return true
	}
	return false
}
