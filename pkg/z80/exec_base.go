package z80

// execBase dispatches a single unprefixed base-page opcode (§4.F "Base
// page"). The two big regular families — LD r,r' (0x40-0x7F) and ALU
// A,r (0x80-0xBF) — are decoded once via the octal register-field rule
// instead of being spelled out as 128 literal cases, per the design note
// in §9. Everything else is dispatched by a direct switch, the same shape
// thegtproject-toyz80's Step() uses for its base-page table.
func (c *CPU) execBase(opcode uint8) int {
	switch {
	case opcode == 0x76:
		c.Halted = true
		return 4
	case opcode >= 0x40 && opcode <= 0x7F:
		return c.execLdRR(opcode)
	case opcode >= 0x80 && opcode <= 0xBF:
		return c.execAluR(opcode)
	}

	switch opcode {
	case 0x00: // NOP
		return 4
	case 0x01: // LD BC,nn
		c.SetBC(c.fetch16())
		return 10
	case 0x02: // LD (BC),A
		c.WriteMemory(c.BC(), c.A)
		return 7
	case 0x03: // INC BC
		c.SetBC(c.BC() + 1)
		return 6
	case 0x04: // INC B
		c.B, c.F = IncFlags(c.B, c.F)
		return 4
	case 0x05: // DEC B
		c.B, c.F = DecFlags(c.B, c.F)
		return 4
	case 0x06: // LD B,n
		c.B = c.fetch8()
		return 7
	case 0x07: // RLCA
		c.A, c.F = RlcaFlags(c.A, c.F)
		return 4
	case 0x08: // EX AF,AF'
		c.ExAFAlt()
		return 4
	case 0x09: // ADD HL,BC
		c.SetHL(c.addHL(c.BC()))
		return 11
	case 0x0A: // LD A,(BC)
		c.A = c.ReadMemory(c.BC())
		return 7
	case 0x0B: // DEC BC
		c.SetBC(c.BC() - 1)
		return 6
	case 0x0C: // INC C
		c.C, c.F = IncFlags(c.C, c.F)
		return 4
	case 0x0D: // DEC C
		c.C, c.F = DecFlags(c.C, c.F)
		return 4
	case 0x0E: // LD C,n
		c.C = c.fetch8()
		return 7
	case 0x0F: // RRCA
		c.A, c.F = RrcaFlags(c.A, c.F)
		return 4

	case 0x10: // DJNZ d
		d := c.fetch8()
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(signExtend8(d)))
			return 13
		}
		return 8
	case 0x11: // LD DE,nn
		c.SetDE(c.fetch16())
		return 10
	case 0x12: // LD (DE),A
		c.WriteMemory(c.DE(), c.A)
		return 7
	case 0x13: // INC DE
		c.SetDE(c.DE() + 1)
		return 6
	case 0x14: // INC D
		c.D, c.F = IncFlags(c.D, c.F)
		return 4
	case 0x15: // DEC D
		c.D, c.F = DecFlags(c.D, c.F)
		return 4
	case 0x16: // LD D,n
		c.D = c.fetch8()
		return 7
	case 0x17: // RLA
		c.A, c.F = RlaFlags(c.A, c.F)
		return 4
	case 0x18: // JR d
		d := c.fetch8()
		c.PC = uint16(int32(c.PC) + int32(signExtend8(d)))
		return 12
	case 0x19: // ADD HL,DE
		c.SetHL(c.addHL(c.DE()))
		return 11
	case 0x1A: // LD A,(DE)
		c.A = c.ReadMemory(c.DE())
		return 7
	case 0x1B: // DEC DE
		c.SetDE(c.DE() - 1)
		return 6
	case 0x1C: // INC E
		c.E, c.F = IncFlags(c.E, c.F)
		return 4
	case 0x1D: // DEC E
		c.E, c.F = DecFlags(c.E, c.F)
		return 4
	case 0x1E: // LD E,n
		c.E = c.fetch8()
		return 7
	case 0x1F: // RRA
		c.A, c.F = RraFlags(c.A, c.F)
		return 4

	case 0x20: // JR NZ,d
		return c.jrCond(c.F&FlagZ == 0)
	case 0x21: // LD HL,nn
		c.SetHL(c.fetch16())
		return 10
	case 0x22: // LD (nn),HL
		c.writeWord(c.fetch16(), c.HL())
		return 16
	case 0x23: // INC HL
		c.SetHL(c.HL() + 1)
		return 6
	case 0x24: // INC H
		c.H, c.F = IncFlags(c.H, c.F)
		return 4
	case 0x25: // DEC H
		c.H, c.F = DecFlags(c.H, c.F)
		return 4
	case 0x26: // LD H,n
		c.H = c.fetch8()
		return 7
	case 0x27: // DAA
		c.A, c.F = DaaFlags(c.A, c.F)
		return 4
	case 0x28: // JR Z,d
		return c.jrCond(c.F&FlagZ != 0)
	case 0x29: // ADD HL,HL
		c.SetHL(c.addHL(c.HL()))
		return 11
	case 0x2A: // LD HL,(nn)
		c.SetHL(c.readWord(c.fetch16()))
		return 16
	case 0x2B: // DEC HL
		c.SetHL(c.HL() - 1)
		return 6
	case 0x2C: // INC L
		c.L, c.F = IncFlags(c.L, c.F)
		return 4
	case 0x2D: // DEC L
		c.L, c.F = DecFlags(c.L, c.F)
		return 4
	case 0x2E: // LD L,n
		c.L = c.fetch8()
		return 7
	case 0x2F: // CPL
		c.A, c.F = CplFlags(c.A, c.F)
		return 4

	case 0x30: // JR NC,d
		return c.jrCond(c.F&FlagC == 0)
	case 0x31: // LD SP,nn
		c.SP = c.fetch16()
		return 10
	case 0x32: // LD (nn),A
		c.WriteMemory(c.fetch16(), c.A)
		return 13
	case 0x33: // INC SP
		c.SP++
		return 6
	case 0x34: // INC (HL)
		v, f := IncFlags(c.ReadMemory(c.HL()), c.F)
		c.WriteMemory(c.HL(), v)
		c.F = f
		return 11
	case 0x35: // DEC (HL)
		v, f := DecFlags(c.ReadMemory(c.HL()), c.F)
		c.WriteMemory(c.HL(), v)
		c.F = f
		return 11
	case 0x36: // LD (HL),n
		c.WriteMemory(c.HL(), c.fetch8())
		return 10
	case 0x37: // SCF
		c.F = ScfFlags(c.A, c.F)
		return 4
	case 0x38: // JR C,d
		return c.jrCond(c.F&FlagC != 0)
	case 0x39: // ADD HL,SP
		c.SetHL(c.addHL(c.SP))
		return 11
	case 0x3A: // LD A,(nn)
		c.A = c.ReadMemory(c.fetch16())
		return 13
	case 0x3B: // DEC SP
		c.SP--
		return 6
	case 0x3C: // INC A
		c.A, c.F = IncFlags(c.A, c.F)
		return 4
	case 0x3D: // DEC A
		c.A, c.F = DecFlags(c.A, c.F)
		return 4
	case 0x3E: // LD A,n
		c.A = c.fetch8()
		return 7
	case 0x3F: // CCF
		c.F = CcfFlags(c.A, c.F)
		return 4

	case 0xC0:
		return c.retCond(c.F&FlagZ == 0)
	case 0xC1:
		c.SetBC(c.pop16())
		return 10
	case 0xC2:
		return c.jpCond(c.F&FlagZ == 0)
	case 0xC3:
		c.PC = c.fetch16()
		return 10
	case 0xC4:
		return c.callCond(c.F&FlagZ == 0)
	case 0xC5:
		c.push16(c.BC())
		return 11
	case 0xC6:
		c.A, c.F = AddFlags(c.A, c.fetch8(), 0)
		return 7
	case 0xC7:
		return c.rst(0x00)
	case 0xC8:
		return c.retCond(c.F&FlagZ != 0)
	case 0xC9:
		c.PC = c.pop16()
		return 10
	case 0xCA:
		return c.jpCond(c.F&FlagZ != 0)
	case 0xCC:
		return c.callCond(c.F&FlagZ != 0)
	case 0xCD:
		return c.call()
	case 0xCE:
		c.A, c.F = AddFlags(c.A, c.fetch8(), c.F&FlagC)
		return 7
	case 0xCF:
		return c.rst(0x08)

	case 0xD0:
		return c.retCond(c.F&FlagC == 0)
	case 0xD1:
		c.SetDE(c.pop16())
		return 10
	case 0xD2:
		return c.jpCond(c.F&FlagC == 0)
	case 0xD3: // OUT (n),A
		c.WritePort(c.fetch8(), c.A)
		return 11
	case 0xD4:
		return c.callCond(c.F&FlagC == 0)
	case 0xD5:
		c.push16(c.DE())
		return 11
	case 0xD6:
		c.A, c.F = SubFlags(c.A, c.fetch8(), 0)
		return 7
	case 0xD7:
		return c.rst(0x10)
	case 0xD8:
		return c.retCond(c.F&FlagC != 0)
	case 0xD9: // EXX
		c.ExxAlt()
		return 4
	case 0xDA:
		return c.jpCond(c.F&FlagC != 0)
	case 0xDB: // IN A,(n)
		c.A = c.ReadPort(c.fetch8())
		return 11
	case 0xDC:
		return c.callCond(c.F&FlagC != 0)
	case 0xDE:
		c.A, c.F = SubFlags(c.A, c.fetch8(), c.F&FlagC)
		return 7
	case 0xDF:
		return c.rst(0x18)

	case 0xE0:
		return c.retCond(c.F&FlagP == 0)
	case 0xE1:
		c.SetHL(c.pop16())
		return 10
	case 0xE2:
		return c.jpCond(c.F&FlagP == 0)
	case 0xE3: // EX (SP),HL
		sp := c.ReadMemory(c.SP)
		sp1 := c.ReadMemory(c.SP + 1)
		old := c.HL()
		c.WriteMemory(c.SP, uint8(old))
		c.WriteMemory(c.SP+1, uint8(old>>8))
		c.SetHL(uint16(sp1)<<8 | uint16(sp))
		return 19
	case 0xE4:
		return c.callCond(c.F&FlagP == 0)
	case 0xE5:
		c.push16(c.HL())
		return 11
	case 0xE6:
		c.A, c.F = AndFlags(c.A, c.fetch8())
		return 7
	case 0xE7:
		return c.rst(0x20)
	case 0xE8:
		return c.retCond(c.F&FlagP != 0)
	case 0xE9: // JP (HL)
		c.PC = c.HL()
		return 4
	case 0xEA:
		return c.jpCond(c.F&FlagP != 0)
	case 0xEB: // EX DE,HL
		c.ExDEHL()
		return 4
	case 0xEC:
		return c.callCond(c.F&FlagP != 0)
	case 0xEE:
		c.A, c.F = XorFlags(c.A, c.fetch8())
		return 7
	case 0xEF:
		return c.rst(0x28)

	case 0xF0:
		return c.retCond(c.F&FlagS == 0)
	case 0xF1:
		c.SetAF(c.pop16())
		return 10
	case 0xF2:
		return c.jpCond(c.F&FlagS == 0)
	case 0xF3: // DI
		c.IFF1, c.IFF2 = false, false
		return 4
	case 0xF4:
		return c.callCond(c.F&FlagS == 0)
	case 0xF5:
		c.push16(c.AF())
		return 11
	case 0xF6:
		c.A, c.F = OrFlags(c.A, c.fetch8())
		return 7
	case 0xF7:
		return c.rst(0x30)
	case 0xF8:
		return c.retCond(c.F&FlagS != 0)
	case 0xF9: // LD SP,HL
		c.SP = c.HL()
		return 6
	case 0xFA:
		return c.jpCond(c.F&FlagS != 0)
	case 0xFB: // EI
		c.IFF1, c.IFF2 = true, true
		return 4
	case 0xFC:
		return c.callCond(c.F&FlagS != 0)
	case 0xFE:
		c.F = CpFlags(c.A, c.fetch8())
		return 7
	case 0xFF:
		return c.rst(0x38)
	}

	c.warnUnknown(pageBase, opcode)
	return 4
}

// execLdRR decodes the 0x40-0x7F "LD r,r'" family by the octal register
// fields (§4.F). (HL) on either side costs 3 extra cycles.
func (c *CPU) execLdRR(opcode uint8) int {
	dst := (opcode >> 3) & 0x07
	src := opcode & 0x07
	v := c.getReg8(src)
	c.setReg8(dst, v)
	if isMemSlot(dst) || isMemSlot(src) {
		return 7
	}
	return 4
}

// execAluR decodes the 0x80-0xBF "ALU A,r" family by the octal fields.
func (c *CPU) execAluR(opcode uint8) int {
	op := (opcode >> 3) & 0x07
	src := opcode & 0x07
	v := c.getReg8(src)
	switch op {
	case 0: // ADD
		c.A, c.F = AddFlags(c.A, v, 0)
	case 1: // ADC
		c.A, c.F = AddFlags(c.A, v, c.F&FlagC)
	case 2: // SUB
		c.A, c.F = SubFlags(c.A, v, 0)
	case 3: // SBC
		c.A, c.F = SubFlags(c.A, v, c.F&FlagC)
	case 4: // AND
		c.A, c.F = AndFlags(c.A, v)
	case 5: // XOR
		c.A, c.F = XorFlags(c.A, v)
	case 6: // OR
		c.A, c.F = OrFlags(c.A, v)
	default: // CP
		c.F = CpFlags(c.A, v)
	}
	if isMemSlot(src) {
		return 7
	}
	return 4
}

func (c *CPU) addHL(rr uint16) uint16 {
	result, flags := AddHL16Flags(c.HL(), rr, c.F)
	c.F = flags
	return result
}

func (c *CPU) jrCond(take bool) int {
	d := c.fetch8()
	if take {
		c.PC = uint16(int32(c.PC) + int32(signExtend8(d)))
		return 12
	}
	return 7
}

func (c *CPU) jpCond(take bool) int {
	addr := c.fetch16()
	if take {
		c.PC = addr
	}
	return 10
}

func (c *CPU) callCond(take bool) int {
	addr := c.fetch16()
	if take {
		c.push16(c.PC)
		c.PC = addr
		return 17
	}
	return 10
}

func (c *CPU) call() int {
	addr := c.fetch16()
	c.push16(c.PC)
	c.PC = addr
	return 17
}

func (c *CPU) retCond(take bool) int {
	if take {
		c.PC = c.pop16()
		return 11
	}
	return 5
}

func (c *CPU) rst(addr uint16) int {
	c.push16(c.PC)
	c.PC = addr
	return 11
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.ReadMemory(addr)
	hi := c.ReadMemory(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.WriteMemory(addr, uint8(v))
	c.WriteMemory(addr+1, uint8(v>>8))
}
