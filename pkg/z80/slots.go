package z80

// The base and CB pages both index an 8-bit operand by a 3-bit register
// field using the standard Z80 octal encoding: B=0, C=1, D=2, E=3, H=4,
// L=5, (HL)=6, A=7 (§4.F). getReg8/setReg8 implement that mapping once so
// the LD r,r' and ALU-r families can be generated by a small decode loop
// instead of 64 hand-written cases each, per the design note in §9.
//
// Slot 6, (HL), is the one case that needs memory access; everything else
// is a direct register read/write.

func (c *CPU) getReg8(slot uint8) uint8 {
	switch slot & 0x07 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.ReadMemory(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(slot uint8, v uint8) {
	switch slot & 0x07 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.WriteMemory(c.HL(), v)
	default:
		c.A = v
	}
}

// isMemSlot reports whether a 3-bit register field selects (HL) (slot 6)
// rather than a plain register, the case every caller bills extra cycles
// for and routes through memory instead of a register.
func isMemSlot(slot uint8) bool { return slot&0x07 == 6 }

// regPair identifies a 16-bit register pair operand for ADD HL,rr /
// ADC HL,rr / SBC HL,rr / 16-bit INC/DEC/PUSH/POP, encoded per the
// standard 2-bit field: BC=0, DE=1, HL=2, SP=3 (AF in place of SP for
// PUSH/POP AF).
type regPair uint8

const (
	pairBC regPair = 0
	pairDE regPair = 1
	pairHL regPair = 2
	pairSP regPair = 3
	pairAF regPair = 3 // only meaningful for PUSH/POP's encoding
)

func (c *CPU) getPair(p regPair) uint16 {
	switch p {
	case pairBC:
		return c.BC()
	case pairDE:
		return c.DE()
	case pairHL:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(p regPair, v uint16) {
	switch p {
	case pairBC:
		c.SetBC(v)
	case pairDE:
		c.SetDE(v)
	case pairHL:
		c.SetHL(v)
	default:
		c.SP = v
	}
}
