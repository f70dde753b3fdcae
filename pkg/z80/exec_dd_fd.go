package z80

// execIndexed handles the 0xDD (IX) and 0xFD (IY) prefixed page (§4.F,
// §9). Rather than generically rerouting every base-page handler through
// an abstract "HL-or-indexed" backend, this page owns a dedicated table
// for the operations the spec actually redirects through IX/IY — 16-bit
// load/arithmetic on the index register itself, and 8-bit access via the
// (IX+d)/(IY+d) displaced address. Any opcode that doesn't reference HL
// falls through to execBase unchanged, billing the extra 4 cycles for
// the prefix byte it consumed (§9's open question on DD/FD timing).
//
// A second DD or FD byte re-dispatches recursively under the new mode —
// last prefix wins, each one billed its own 4 cycles — resolving the
// "DD DD" stacking open question the same way.
func (c *CPU) execIndexed(mode addrMode) int {
	opcode := c.fetch8()

	if opcode == 0xDD {
		return 4 + c.execIndexed(modeIX)
	}
	if opcode == 0xFD {
		return 4 + c.execIndexed(modeIY)
	}
	if opcode == 0xCB {
		return 4 + c.execIndexedCB(mode)
	}

	ix := c.IX
	if mode == modeIY {
		ix = c.IY
	}
	setIx := func(v uint16) {
		if mode == modeIX {
			c.IX = v
		} else {
			c.IY = v
		}
	}

	switch opcode {
	case 0x09, 0x19, 0x29, 0x39:
		pairIdx := (opcode >> 4) & 0x03
		var rr uint16
		switch pairIdx {
		case 0:
			rr = c.BC()
		case 1:
			rr = c.DE()
		case 2:
			rr = ix
		default:
			rr = c.SP
		}
		result, flags := AddHL16Flags(ix, rr, c.F)
		setIx(result)
		c.F = flags
		return 15
	case 0x21:
		setIx(c.fetch16())
		return 14
	case 0x22:
		c.writeWord(c.fetch16(), ix)
		return 20
	case 0x23:
		setIx(ix + 1)
		return 10
	case 0x2A:
		setIx(c.readWord(c.fetch16()))
		return 20
	case 0x2B:
		setIx(ix - 1)
		return 10
	case 0x34:
		addr := c.indexedAddr(ix)
		v, f := IncFlags(c.ReadMemory(addr), c.F)
		c.WriteMemory(addr, v)
		c.F = f
		return 23
	case 0x35:
		addr := c.indexedAddr(ix)
		v, f := DecFlags(c.ReadMemory(addr), c.F)
		c.WriteMemory(addr, v)
		c.F = f
		return 23
	case 0x36:
		addr := c.indexedAddr(ix)
		n := c.fetch8()
		c.WriteMemory(addr, n)
		return 19
	case 0xE1:
		setIx(c.pop16())
		return 14
	case 0xE3:
		lo := c.ReadMemory(c.SP)
		hi := c.ReadMemory(c.SP + 1)
		c.WriteMemory(c.SP, uint8(ix))
		c.WriteMemory(c.SP+1, uint8(ix>>8))
		setIx(uint16(hi)<<8 | uint16(lo))
		return 23
	case 0xE5:
		c.push16(ix)
		return 15
	case 0xE9:
		c.PC = ix
		return 8
	case 0xF9:
		c.SP = ix
		return 10
	}

	if opcode >= 0x40 && opcode <= 0x7F && opcode != 0x76 {
		dst := (opcode >> 3) & 0x07
		src := opcode & 0x07
		if isMemSlot(dst) || isMemSlot(src) {
			addr := c.indexedAddr(ix)
			if isMemSlot(src) {
				c.setReg8(dst, c.ReadMemory(addr))
			} else {
				c.WriteMemory(addr, c.getReg8(src))
			}
			return 19
		}
		return 4 + c.execLdRR(opcode)
	}

	if opcode >= 0x80 && opcode <= 0xBF {
		if isMemSlot(opcode & 0x07) {
			addr := c.indexedAddr(ix)
			v := c.ReadMemory(addr)
			c.applyAluA(opcode, v)
			return 19
		}
		return 4 + c.execAluR(opcode)
	}

	return 4 + c.execBase(opcode)
}

// indexedAddr fetches the displacement byte and forms the (IX+d)/(IY+d)
// effective address.
func (c *CPU) indexedAddr(ix uint16) uint16 {
	d := signExtend8(c.fetch8())
	return uint16(int32(ix) + int32(d))
}

// applyAluA runs the ALU-A operation encoded by an 0x80-0xBF opcode
// against an already-fetched operand, for the (IX+d)/(IY+d) forms where
// the operand doesn't come from getReg8.
func (c *CPU) applyAluA(opcode uint8, v uint8) {
	switch (opcode >> 3) & 0x07 {
	case 0:
		c.A, c.F = AddFlags(c.A, v, 0)
	case 1:
		c.A, c.F = AddFlags(c.A, v, c.F&FlagC)
	case 2:
		c.A, c.F = SubFlags(c.A, v, 0)
	case 3:
		c.A, c.F = SubFlags(c.A, v, c.F&FlagC)
	case 4:
		c.A, c.F = AndFlags(c.A, v)
	case 5:
		c.A, c.F = XorFlags(c.A, v)
	case 6:
		c.A, c.F = OrFlags(c.A, v)
	default:
		c.F = CpFlags(c.A, v)
	}
}
