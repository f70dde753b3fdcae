package z80

// execIndexedCB handles the DDCB/FDCB compound page (§4.I): displacement
// byte first, then the CB-style opcode, operating on (IX+d)/(IY+d). The
// rotate/shift and RES/SET forms also copy their result into the plain
// register named by the low 3 bits when that field isn't 6 — the
// well-documented "undocumented" copy-back behavior of this page; BIT
// only ever reads.
func (c *CPU) execIndexedCB(mode addrMode) int {
	ix := c.IX
	if mode == modeIY {
		ix = c.IY
	}
	addr := c.indexedAddr(ix)
	opcode := c.fetch8()

	op := (opcode >> 3) & 0x07
	slot := opcode & 0x07
	group := opcode >> 6

	v := c.ReadMemory(addr)

	switch group {
	case 1: // BIT b,(IX+d)
		c.F = BitFlags(v, op, c.F)
		return 20
	case 2: // RES b,(IX+d)
		result := v &^ (1 << op)
		c.WriteMemory(addr, result)
		if slot != 6 {
			c.setReg8(slot, result)
		}
		return 23
	case 3: // SET b,(IX+d)
		result := v | (1 << op)
		c.WriteMemory(addr, result)
		if slot != 6 {
			c.setReg8(slot, result)
		}
		return 23
	}

	var result uint8
	switch op {
	case 0:
		result, c.F = RlcFlags(v)
	case 1:
		result, c.F = RrcFlags(v)
	case 2:
		result, c.F = RlFlags(v, c.F)
	case 3:
		result, c.F = RrFlags(v, c.F)
	case 4:
		result, c.F = SlaFlags(v)
	case 5:
		result, c.F = SraFlags(v)
	case 6:
		result, c.F = SllFlags(v)
	default:
		result, c.F = SrlFlags(v)
	}
	c.WriteMemory(addr, result)
	if slot != 6 {
		c.setReg8(slot, result)
	}
	return 23
}
