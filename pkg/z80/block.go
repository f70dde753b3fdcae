package z80

// Block instruction primitives backing the ED-page LDI/LDD/LDIR/LDDR,
// CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR, and OUTI/OUTD/OTIR/OTDR opcodes
// (§4.H). Each non-repeating primitive does exactly one element and
// leaves the repeat decision (re-execute if the counter is still
// nonzero) to the caller in exec_ed.go, matching how those opcodes
// differ only in whether PC gets rewound.

func (c *CPU) ldi() {
	v := c.ReadMemory(c.HL())
	c.WriteMemory(c.DE(), v)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)

	n := v + c.A
	c.F = (c.F & (FlagC | FlagZ | FlagS)) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if c.BC() != 0 {
		c.F |= FlagP
	}
}

func (c *CPU) ldd() {
	v := c.ReadMemory(c.HL())
	c.WriteMemory(c.DE(), v)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	c.SetBC(c.BC() - 1)

	n := v + c.A
	c.F = (c.F & (FlagC | FlagZ | FlagS)) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if c.BC() != 0 {
		c.F |= FlagP
	}
}

func (c *CPU) cpi() {
	v := c.ReadMemory(c.HL())
	result := c.A - v
	halfcarry := bsel((c.A&0x0F) < (v&0x0F), FlagH, 0)
	c.SetHL(c.HL() + 1)
	c.SetBC(c.BC() - 1)

	n := result - (halfcarry >> 4)
	c.F = (c.F & FlagC) | FlagN | halfcarry | sz53Table[result]&(FlagS|FlagZ) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if c.BC() != 0 {
		c.F |= FlagP
	}
}

func (c *CPU) cpd() {
	v := c.ReadMemory(c.HL())
	result := c.A - v
	halfcarry := bsel((c.A&0x0F) < (v&0x0F), FlagH, 0)
	c.SetHL(c.HL() - 1)
	c.SetBC(c.BC() - 1)

	n := result - (halfcarry >> 4)
	c.F = (c.F & FlagC) | FlagN | halfcarry | sz53Table[result]&(FlagS|FlagZ) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if c.BC() != 0 {
		c.F |= FlagP
	}
}

func (c *CPU) ini() {
	v := c.ReadPort(c.C)
	c.WriteMemory(c.HL(), v)
	c.SetHL(c.HL() + 1)
	c.B--
	c.F = sz53Table[c.B] | bsel(c.B == 0, FlagZ, 0) | bsel(v&0x80 != 0, FlagN, 0)
}

func (c *CPU) ind() {
	v := c.ReadPort(c.C)
	c.WriteMemory(c.HL(), v)
	c.SetHL(c.HL() - 1)
	c.B--
	c.F = sz53Table[c.B] | bsel(c.B == 0, FlagZ, 0) | bsel(v&0x80 != 0, FlagN, 0)
}

func (c *CPU) outi() {
	c.B--
	v := c.ReadMemory(c.HL())
	c.WritePort(c.C, v)
	c.SetHL(c.HL() + 1)
	c.F = sz53Table[c.B] | bsel(c.B == 0, FlagZ, 0) | bsel(v&0x80 != 0, FlagN, 0)
}

func (c *CPU) outd() {
	c.B--
	v := c.ReadMemory(c.HL())
	c.WritePort(c.C, v)
	c.SetHL(c.HL() - 1)
	c.F = sz53Table[c.B] | bsel(c.B == 0, FlagZ, 0) | bsel(v&0x80 != 0, FlagN, 0)
}

// rrd/rld rotate a BCD digit between A's low nibble and (HL) (§4.F).
func (c *CPU) rrd() {
	mem := c.ReadMemory(c.HL())
	result := (c.A & 0xF0) | (mem & 0x0F)
	newMem := (c.A << 4) | (mem >> 4)
	c.A = result
	c.WriteMemory(c.HL(), newMem)
	c.F = (c.F & FlagC) | sz53pTable[c.A]
}

func (c *CPU) rld() {
	mem := c.ReadMemory(c.HL())
	result := (c.A & 0xF0) | (mem >> 4)
	newMem := (mem << 4) | (c.A & 0x0F)
	c.A = result
	c.WriteMemory(c.HL(), newMem)
	c.F = (c.F & FlagC) | sz53pTable[c.A]
}
