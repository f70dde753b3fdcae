package z80

// execCB handles the 0xCB-prefixed rotate/shift/BIT/RES/SET page (§4.F).
// Every opcode decodes into a 3-bit operation field and a 3-bit register
// field using the same octal rule as the base page's LD/ALU families
// (slots.go); (HL) costs extra cycles and, for BIT, is read-only.
func (c *CPU) execCB() int {
	opcode := c.fetch8()
	op := (opcode >> 3) & 0x07
	slot := opcode & 0x07
	group := opcode >> 6

	switch group {
	case 0: // rotate/shift
		v := c.getReg8(slot)
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
		c.setReg8(slot, result)
		if isMemSlot(slot) {
			return 15
		}
		return 8

	case 1: // BIT b,r
		v := c.getReg8(slot)
		c.F = BitFlags(v, op, c.F)
		if isMemSlot(slot) {
			return 12
		}
		return 8

	case 2: // RES b,r
		v := c.getReg8(slot) &^ (1 << op)
		c.setReg8(slot, v)
		if isMemSlot(slot) {
			return 15
		}
		return 8

	default: // SET b,r
		v := c.getReg8(slot) | (1 << op)
		c.setReg8(slot, v)
		if isMemSlot(slot) {
			return 15
		}
		return 8
	}
}
