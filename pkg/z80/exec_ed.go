package z80

// execED handles the sparse 0xED-prefixed page (§4.F): extended 16-bit
// loads, ADC/SBC HL,rr, NEG, RETN/RETI, IM 0/1/2, the I/R transfer
// instructions, RRD/RLD, the block instructions, and IN r,(C)/OUT (C),r
// (including the undocumented slot-6 forms). Opcodes ED doesn't define
// behave as a 2-byte NOP, matching real hardware and §7's "diagnose, then
// behave as a no-op" rule.
func (c *CPU) execED() int {
	opcode := c.fetch8()

	switch opcode {
	case 0x47:
		c.I = c.A
		return 9
	case 0x4F:
		c.R = c.A
		return 9
	case 0x57:
		c.A = c.I
		c.F = c.iOrRFlags(c.I)
		return 9
	case 0x5F:
		c.A = c.R
		c.F = c.iOrRFlags(c.R)
		return 9
	case 0x67:
		c.rrd()
		return 18
	case 0x6F:
		c.rld()
		return 18
	case 0x77, 0x7F:
		return 8

	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C:
		c.A, c.F = NegFlags(c.A)
		return 8

	case 0x45, 0x55, 0x65, 0x75, 0x4D, 0x5D, 0x6D, 0x7D:
		// RETN at 0x45/0x55/.../0x75; RETI (§9: identical effect) at the
		// odd column 0x4D/0x5D/0x6D/0x7D.
		c.PC = c.pop16()
		c.IFF1 = c.IFF2
		return 14

	case 0x46, 0x4E, 0x66, 0x6E:
		c.IM = 0
		return 8
	case 0x56, 0x76:
		c.IM = 1
		return 8
	case 0x5E, 0x7E:
		c.IM = 2
		return 8

	case 0xA0:
		c.ldi()
		return 16
	case 0xA8:
		c.ldd()
		return 16
	case 0xB0:
		c.ldi()
		if c.BC() != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB8:
		c.ldd()
		if c.BC() != 0 {
			c.PC -= 2
			return 21
		}
		return 16

	case 0xA1:
		c.cpi()
		return 16
	case 0xA9:
		c.cpd()
		return 16
	case 0xB1:
		c.cpi()
		if c.BC() != 0 && c.F&FlagZ == 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB9:
		c.cpd()
		if c.BC() != 0 && c.F&FlagZ == 0 {
			c.PC -= 2
			return 21
		}
		return 16

	case 0xA2:
		c.ini()
		return 16
	case 0xAA:
		c.ind()
		return 16
	case 0xB2:
		c.ini()
		if c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xBA:
		c.ind()
		if c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16

	case 0xA3:
		c.outi()
		return 16
	case 0xAB:
		c.outd()
		return 16
	case 0xB3:
		c.outi()
		if c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xBB:
		c.outd()
		if c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	}

	if opcode < 0x40 || opcode > 0x7F {
		c.warnUnknown(pageED, opcode)
		return 8
	}
	pairIdx := (opcode >> 4) & 0x03
	switch opcode & 0x0F {
	case 0x00, 0x08:
		slot := (opcode >> 3) & 0x07
		v := c.ReadPort(c.C)
		if !isMemSlot(slot) {
			c.setReg8(slot, v)
		}
		c.F = (c.F & FlagC) | sz53pTable[v]
		return 12
	case 0x01, 0x09:
		slot := (opcode >> 3) & 0x07
		v := bsel(isMemSlot(slot), 0, c.getReg8(slot))
		c.WritePort(c.C, v)
		return 12
	case 0x02:
		rr := c.getPair(regPair(pairIdx))
		result, flags := SbcHL16Flags(c.HL(), rr, c.F&FlagC)
		c.SetHL(result)
		c.F = flags
		return 15
	case 0x0A:
		rr := c.getPair(regPair(pairIdx))
		result, flags := AdcHL16Flags(c.HL(), rr, c.F&FlagC)
		c.SetHL(result)
		c.F = flags
		return 15
	case 0x03:
		c.writeWord(c.fetch16(), c.getPair(regPair(pairIdx)))
		return 20
	case 0x0B:
		c.setPair(regPair(pairIdx), c.readWord(c.fetch16()))
		return 20
	}

	c.warnUnknown(pageED, opcode)
	return 8
}

// iOrRFlags computes the flags for LD A,I / LD A,R: S and Z from the
// value, H and N cleared, PV = IFF2 (§4.F), C preserved.
func (c *CPU) iOrRFlags(v uint8) uint8 {
	f := sz53Table[v] &^ (FlagH | FlagN)
	if c.IFF2 {
		f |= FlagP
	}
	return f | (c.F & FlagC)
}
