package varint_test

import (
	"testing"

	"github.com/katalvlaran/setcover/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodedSize_BoundaryDeltasRoundTrip checks encoding each of these
// values as a standalone delta round-trips, with the first value using the
// 1-byte fast path and the last using the 9-byte escape (it sits exactly at
// the 2^56 small/large boundary).
func TestEncodedSize_BoundaryDeltasRoundTrip(t *testing.T) {
	deltas := []uint64{0, 1, 127, 128, 16384, (uint64(1) << 56) - 1, uint64(1) << 56}

	assert.Equal(t, 1, varint.EncodedSize(deltas[0]))
	assert.Equal(t, 9, varint.EncodedSize(deltas[len(deltas)-1]))
	assert.Equal(t, 8, varint.EncodedSize(deltas[len(deltas)-2]), "max small delta uses the 8-byte L=7 path")

	// Round-trip each delta independently by encoding it as a one-entry
	// ascending list starting from -1 (i.e. the delta equals the value).
	for _, d := range deltas {
		encoded := varint.EncodeList([]int64{int64(d)})
		decoded := varint.DecodeList(encoded)
		require.Len(t, decoded, 1)
		assert.Equal(t, int64(d), decoded[0])
	}
}

func TestEncodeDecodeList_RoundTrip(t *testing.T) {
	cases := [][]int64{
		{},
		{0},
		{0, 1, 2, 3},
		{0, 127, 128, 16384, 1 << 20},
		{5, 10000, 1 << 30, (1 << 56) - 1},
		{0, 1 << 56, (1 << 57)},
	}
	for _, values := range cases {
		encoded := varint.EncodeList(values)
		decoded := varint.DecodeList(encoded)
		if len(values) == 0 {
			assert.Empty(t, decoded)
		} else {
			assert.Equal(t, values, decoded)
		}
	}
}

func TestEncodeList_PanicsOnNonAscending(t *testing.T) {
	assert.Panics(t, func() {
		varint.EncodeList([]int64{5, 5})
	})
	assert.Panics(t, func() {
		varint.EncodeList([]int64{5, 3})
	})
}

func TestDecodeList_MultipleEntriesWithLargeDelta(t *testing.T) {
	values := []int64{0, 10, 1 << 56, (1 << 56) + 5}
	encoded := varint.EncodeList(values)
	decoded := varint.DecodeList(encoded)
	assert.Equal(t, values, decoded)
}
