package ffi

import (
	"testing"

	"github.com/memspy-dev/memspy/pkg/memspy"
	"github.com/stretchr/testify/require"
)

func TestResultOkRoundtrip(t *testing.T) {
	r := OkHandle(memspy.Handle(7))
	h, err := r.IntoHandle()
	require.NoError(t, err)
	require.Equal(t, memspy.Handle(7), h)

	_, err = r.IntoBytes()
	require.Error(t, err)
}

func TestResultErrPropagatesToEveryAccessor(t *testing.T) {
	r := Err(memspy.ErrInvalidTargetHandle)
	require.True(t, r.IsErr())

	_, err := r.IntoHandle()
	require.ErrorIs(t, err, memspy.ErrInvalidTargetHandle)

	_, err = r.IntoRegions()
	require.ErrorIs(t, err, memspy.ErrInvalidTargetHandle)
}

func TestResultBytesRoundtrip(t *testing.T) {
	r := OkBytes([]byte{0xDE, 0xAD})
	data, err := r.IntoBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xDE, 0xAD}, data)
}
