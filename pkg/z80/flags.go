package z80

// Flag bit positions in the F register, per §3: C=0, N=1, PV=2, H=4, Z=6,
// S=7. Bits 3 and 5 are the undocumented "copy" flags; per Non-goal (d)
// this emulator does not guarantee they track the operand's bits 3/5,
// though the precomputed tables below happen to do so for free wherever
// the teacher's tables already did.
const (
	FlagC uint8 = 0x01 // Carry
	FlagN uint8 = 0x02 // Subtract
	FlagP uint8 = 0x04 // Parity/Overflow
	FlagV       = FlagP
	Flag3 uint8 = 0x08 // undocumented
	FlagH uint8 = 0x10 // Half-carry
	Flag5 uint8 = 0x20 // undocumented
	FlagZ uint8 = 0x40 // Zero
	FlagS uint8 = 0x80 // Sign
)

// Precomputed per-byte flag tables, ported from the teacher
// (pkg/cpu/flags.go), itself credited there to remogatto/z80. sz53Table
// and sz53pTable are reused by the CB-page rotate/shift helpers and by
// AND/OR/XOR; parityTable backs the PV=parity rule (§4.A).
var (
	sz53Table  [256]uint8
	sz53pTable [256]uint8
	parityTable [256]uint8

	// halfcarryAddTable / halfcarrySubTable / overflowAddTable /
	// overflowSubTable are indexed by a 3-bit code built from bit 3 (or
	// bit 11, for 16-bit ops) of the two operands and the result — the
	// classic half-carry/overflow lookup trick used throughout the Z80
	// emulation literature (and, in this pack, by the teacher).
	halfcarryAddTable = [8]uint8{0, FlagH, FlagH, FlagH, 0, 0, 0, FlagH}
	halfcarrySubTable = [8]uint8{0, 0, FlagH, 0, FlagH, 0, FlagH, FlagH}
	overflowAddTable  = [8]uint8{0, 0, 0, FlagV, FlagV, 0, 0, 0}
	overflowSubTable  = [8]uint8{0, FlagV, 0, 0, 0, 0, FlagV, 0}
)

func init() {
	for i := 0; i < 256; i++ {
		sz53Table[i] = uint8(i) & (Flag3 | Flag5 | FlagS)

		if parityEven(uint8(i)) {
			parityTable[i] = FlagP
		}
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= FlagZ
	sz53pTable[0] |= FlagZ
}

// bsel is a branchless "a if cond else b" selector for flag assembly.
func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}

// Parity reports the even-parity bit (1 = even number of set bits) for a
// byte, as used by the logical/shift/rotate family's PV flag (§4.A).
func Parity(v uint8) bool { return parityTable[v] != 0 }
