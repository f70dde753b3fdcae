package z80

import "math/bits"

// parityEven reports whether v has an even number of set bits, the
// input to the PV=parity rule for logical/shift/rotate ops (§4.A).
// Ported from the bit-counting idiom in hejops-gone/mask (its
// `_bits "math/bits"` import alias), used here in place of a hand-rolled
// Brian Kernighan loop.
func parityEven(v uint8) bool {
	return bits.OnesCount8(v)%2 == 0
}

// signExtend8 widens an 8-bit signed displacement to int16 arithmetic,
// used by relative jumps and the (IX+d)/(IY+d) effective address.
func signExtend8(d uint8) int16 { return int16(int8(d)) }
