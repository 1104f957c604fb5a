package memspy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupScanTarget(t *testing.T, pid uint32, base uintptr, data []byte) (*fakeEngine, Target) {
	t.Helper()

	fe := newFakeEngine()
	fe.regions[pid] = []Region{{Base: base, Size: uintptr(len(data)), State: RegionCommitted, Type: RegionPrivate, Protect: ProtectReadOnly}}
	fe.memory[pid] = make([]byte, int(base)+len(data))
	copy(fe.memory[pid][base:], data)

	target, err := fe.Open(context.Background(), pid)
	require.NoError(t, err)

	return fe, target
}

func TestScanWildcardIdentity(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	_, target := setupScanTarget(t, 1, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("?? ?? ??")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)

	want := len(data) - pattern.Len() + 1
	require.Len(t, got, want)
	for i, addr := range got {
		require.Equal(t, uintptr(0x1000+i), addr)
	}
}

func TestScanConcreteExactness(t *testing.T) {
	data := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	_, target := setupScanTarget(t, 2, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("22 ?? 44")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []uintptr{0x1002}, got)
}

func TestScanNoMatch(t *testing.T) {
	data := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	_, target := setupScanTarget(t, 3, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("FF FF")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestScanEveryByteWildcard(t *testing.T) {
	data := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	_, target := setupScanTarget(t, 4, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("??")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Len(t, got, 16)
	require.Equal(t, uintptr(0x1000), got[0])
	require.Equal(t, uintptr(0x100F), got[15])
}

func TestScanOverlapPermitted(t *testing.T) {
	data := []byte("AAAAA")
	_, target := setupScanTarget(t, 5, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("41 41")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []uintptr{0x1000, 0x1001, 0x1002, 0x1003}, got)
}

func TestScanZeroLengthPatternYieldsNoMatches(t *testing.T) {
	data := []byte("hello")
	_, target := setupScanTarget(t, 6, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestScanPatternLongerThanRegionYieldsNoMatches(t *testing.T) {
	data := []byte{0x01, 0x02}
	_, target := setupScanTarget(t, 7, 0x1000, data)

	regions := []Region{{Base: 0x1000, Size: uintptr(len(data))}}
	pattern, err := CompilePattern("01 02 03 04")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

// failingTarget always returns an empty read, simulating an unreadable
// region; the scanner must treat this as zero matches, not an error.
type failingTarget struct{ Target }

func (failingTarget) ReadMemory(context.Context, uintptr, []byte) ([]byte, error) {
	return nil, nil
}

func TestScanRegionReadFailureIsSilentlyEmpty(t *testing.T) {
	regions := []Region{{Base: 0x5000, Size: 0x100}}
	pattern, err := CompilePattern("??")
	require.NoError(t, err)

	got, err := Scan(context.Background(), failingTarget{}, regions, pattern, 2, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestScanPreservesRegionAndOffsetOrder(t *testing.T) {
	fe := newFakeEngine()
	pid := uint32(8)
	data := []byte{0xAA, 0xAA, 0xAA}
	fe.memory[pid] = make([]byte, 0x3000)
	copy(fe.memory[pid][0x1000:], data)
	copy(fe.memory[pid][0x2000:], data)

	target, err := fe.Open(context.Background(), pid)
	require.NoError(t, err)

	regions := []Region{
		{Base: 0x2000, Size: uintptr(len(data))},
		{Base: 0x1000, Size: uintptr(len(data))},
	}
	pattern, err := CompilePattern("AA")
	require.NoError(t, err)

	got, err := Scan(context.Background(), target, regions, pattern, 4, nil)
	require.NoError(t, err)
	require.Equal(t, []uintptr{0x2000, 0x2001, 0x2002, 0x1000, 0x1001, 0x1002}, got)
}
