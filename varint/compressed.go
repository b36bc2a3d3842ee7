// Package varint implements the delta-varint encoding used to compress a
// strictly-ascending list of indices (a sorted column or row) into a byte
// stream.
/*
CompressedList — Delta-Varint Encoding

Description:
  A sorted, strictly-ascending list of non-negative 64-bit indices is
  encoded as a stream of per-entry deltas (current - previous - 1; the
  first entry uses -1 as "previous", so its delta is the value itself).
  Each delta is itself variable-length
  coded:

    - delta < 2^56: the low bits of the first byte are a unary length
      code — L one-bits followed by a zero-bit — telling the decoder the
      entry occupies L+1 bytes total. The remaining bits of the first
      byte, followed by the full L bytes after it, hold the payload
      (little-endian), giving 7*(L+1) payload bits for an (L+1)-byte
      entry: 7, 14, 21, 28, 35, 42, 49 or 56 bits for L=0..7.
    - delta >= 2^56: a literal 0xFF prefix byte (all bits set — the one
      first-byte value a length code can never produce, since L=7 already
      consumes the whole byte as "7 ones then a zero") followed by the
      raw 8-byte little-endian delta.

  Decoding reads a single unaligned 8-byte little-endian word starting at
  the entry, extracts L via the trailing-ones count of the first byte,
  then right-shifts past the L+1 marker bits and masks to the entry's
  payload width — one read, one shift, one mask, no per-byte loop, for
  every entry except the 9-byte escape.

Use cases:
  - Compact in-memory storage of large sparse columns/rows.
  - On-wire schema export without pulling in a general serialization
    library for a single fixed-width list format.
*/
package varint

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// escapeByte is the literal first-byte value that can never arise from the
// length-coding scheme (it would require L=8, one more than the 8 bits of
// a byte can represent), so it is free to use as the large-value escape.
const escapeByte = 0xFF

// maxSmallDelta is the exclusive upper bound on deltas using the 1..8 byte
// length-coded path; at or above it, the 9-byte escape is used.
const maxSmallDelta = uint64(1) << 56

// EncodeList encodes a strictly-ascending, non-negative list of values.
// It panics (a programming error, not a recoverable condition) if values
// is not strictly ascending or contains a negative entry.
func EncodeList(values []int64) []byte {
	out := make([]byte, 0, len(values)*2)
	var prev int64 = -1
	for _, v := range values {
		if v <= prev {
			panic(fmt.Sprintf("varint: EncodeList requires strictly ascending non-negative values, got %d after %d", v, prev))
		}
		delta := uint64(v - prev - 1)
		out = appendDelta(out, delta)
		prev = v
	}
	return out
}

// DecodeList decodes a byte stream produced by EncodeList back into the
// original strictly-ascending value list.
func DecodeList(buf []byte) []int64 {
	var out []int64
	var prev int64 = -1
	for len(buf) > 0 {
		delta, consumed := decodeOne(buf)
		v := prev + 1 + int64(delta)
		out = append(out, v)
		prev = v
		buf = buf[consumed:]
	}
	return out
}

// EncodedSize returns the number of bytes EncodeList uses for one entry
// with the given delta, without materializing the buffer. Exposed mainly for tests asserting §6.6's size claims.
func EncodedSize(delta uint64) int {
	if delta >= maxSmallDelta {
		return 9
	}
	l := lengthFor(delta)
	return l + 1
}

func appendDelta(out []byte, delta uint64) []byte {
	if delta >= maxSmallDelta {
		out = append(out, escapeByte)
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], delta)
		return append(out, tmp[:]...)
	}
	l := lengthFor(delta)
	payloadBitsInByte0 := uint(7 - l)
	marker := byte((uint64(1) << uint(l)) - 1) // l one-bits in the low bits
	var low byte
	if payloadBitsInByte0 > 0 {
		low = byte(delta&((uint64(1)<<payloadBitsInByte0)-1)) << uint(l+1)
	}
	out = append(out, marker|low)
	remaining := delta >> payloadBitsInByte0
	for i := 0; i < l; i++ {
		out = append(out, byte(remaining))
		remaining >>= 8
	}
	return out
}

// lengthFor returns the minimal L in [0,7] whose 7*(L+1)-bit payload
// capacity can hold delta (already known to be < 2^56).
func lengthFor(delta uint64) int {
	for l := 0; l < 7; l++ {
		if delta < (uint64(1) << uint(7*(l+1))) {
			return l
		}
	}
	return 7
}

// decodeOne decodes the entry at the start of buf, returning its value and
// the number of bytes consumed. buf must contain at least one full entry.
func decodeOne(buf []byte) (delta uint64, consumed int) {
	b0 := buf[0]
	if b0 == escapeByte {
		return binary.LittleEndian.Uint64(buf[1:9]), 9
	}

	l := bits.TrailingZeros8(^b0)
	var raw uint64
	if len(buf) >= 8 {
		raw = binary.LittleEndian.Uint64(buf[:8])
	} else {
		// Tail of the stream: fewer than 8 bytes remain. Zero-pad a
		// local 8-byte window instead of the single unaligned read
		// the common case uses.
		var tmp [8]byte
		copy(tmp[:], buf)
		raw = binary.LittleEndian.Uint64(tmp[:])
	}
	width := uint(7 * (l + 1))
	mask := uint64(1)<<width - 1
	delta = (raw >> uint(l+1)) & mask
	return delta, l + 1
}
