package memspy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func regionFixture(base uintptr, state RegionState, typ RegionType, protect ProtectFlags) Region {
	return Region{Base: base, Size: 0x1000, State: state, Type: typ, Protect: protect}
}

func TestFilterRegionsExcludesNonCommitted(t *testing.T) {
	regions := []Region{
		regionFixture(0x1000, RegionReserved, RegionPrivate, ProtectReadOnly),
		regionFixture(0x2000, RegionCommitted, RegionPrivate, ProtectReadOnly),
	}

	got := FilterRegions(regions, CapabilityMask{Readable: true}, 0)
	want := []Region{regions[1]}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRegionsExcludesAboveAddressCeiling(t *testing.T) {
	regions := []Region{
		regionFixture(0x1000, RegionCommitted, RegionPrivate, ProtectReadOnly),
		regionFixture(0x7FFF_FFFF_FFFF, RegionCommitted, RegionPrivate, ProtectReadOnly),
	}

	got := FilterRegions(regions, CapabilityMask{Readable: true}, 0)
	want := []Region{regions[0]}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRegionsExcludesGuardAndNoAccess(t *testing.T) {
	regions := []Region{
		regionFixture(0x1000, RegionCommitted, RegionPrivate, ProtectReadOnly|ProtectGuard),
		regionFixture(0x2000, RegionCommitted, RegionPrivate, ProtectNoAccess),
		regionFixture(0x3000, RegionCommitted, RegionPrivate, ProtectReadOnly),
	}

	got := FilterRegions(regions, CapabilityMask{Readable: true}, 0)
	want := []Region{regions[2]}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRegionsMappedRequiresMappedType(t *testing.T) {
	regions := []Region{
		regionFixture(0x1000, RegionCommitted, RegionPrivate, ProtectReadOnly),
		regionFixture(0x2000, RegionCommitted, RegionMapped, ProtectReadOnly),
	}

	got := FilterRegions(regions, CapabilityMask{Mapped: true, Readable: true}, 0)
	want := []Region{regions[1]}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterRegions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRegionsCapabilityPredicates(t *testing.T) {
	tests := []struct {
		name    string
		protect ProtectFlags
		mask    CapabilityMask
		want    bool
	}{
		{"readable matches read-only", ProtectReadOnly, CapabilityMask{Readable: true}, true},
		{"readable rejects readwrite", ProtectReadWrite, CapabilityMask{Readable: true}, false},
		{"writable matches readwrite", ProtectReadWrite, CapabilityMask{Writable: true}, true},
		{"writable matches writecopy", ProtectWriteCopy, CapabilityMask{Writable: true}, true},
		{"executable matches execute", ProtectExecute, CapabilityMask{Executable: true}, true},
		{"executable rejects readonly", ProtectReadOnly, CapabilityMask{Executable: true}, false},
		{"no capability requested excludes everything", ProtectReadOnly, CapabilityMask{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			regions := []Region{regionFixture(0x1000, RegionCommitted, RegionPrivate, tc.protect)}
			got := FilterRegions(regions, tc.mask, 0)

			if (len(got) == 1) != tc.want {
				t.Errorf("FilterRegions() got %d matches, want match=%v", len(got), tc.want)
			}
		})
	}
}

func TestFilterRegionsMonotonicity(t *testing.T) {
	regions := []Region{
		regionFixture(0x1000, RegionCommitted, RegionPrivate, ProtectReadOnly),
		regionFixture(0x2000, RegionCommitted, RegionPrivate, ProtectReadWrite),
		regionFixture(0x3000, RegionCommitted, RegionPrivate, ProtectExecute),
	}

	readOnly := FilterRegions(regions, CapabilityMask{Readable: true}, 0)
	readWritable := FilterRegions(regions, CapabilityMask{Readable: true, Writable: true}, 0)

	if len(readWritable) < len(readOnly) {
		t.Errorf("enabling writable shrank the eligible set: %d -> %d", len(readOnly), len(readWritable))
	}
}

func TestFilterRegionsPreservesOrder(t *testing.T) {
	regions := []Region{
		regionFixture(0x3000, RegionCommitted, RegionPrivate, ProtectReadOnly),
		regionFixture(0x1000, RegionCommitted, RegionPrivate, ProtectReadOnly),
		regionFixture(0x2000, RegionCommitted, RegionPrivate, ProtectReadOnly),
	}

	got := FilterRegions(regions, CapabilityMask{Readable: true}, 0)

	if diff := cmp.Diff(regions, got); diff != "" {
		t.Errorf("FilterRegions() did not preserve engine order (-want +got):\n%s", diff)
	}
}
