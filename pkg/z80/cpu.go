package z80

import "log"

// CPU is a Z80 interpreter. It owns no memory or ports of its own — every
// access to the outside world goes through the four callbacks below, the
// "sole means by which the CPU touches state outside its register file
// and interrupt flags" per §6.
type CPU struct {
	Registers

	IFF1, IFF2 bool
	IM         uint8 // interrupt mode: 0, 1, or 2
	Halted     bool

	Cycles uint64 // total T-states billed since Reset

	ReadMemory  func(addr uint16) uint8
	WriteMemory func(addr uint16, v uint8)
	ReadPort    func(port uint8) uint8
	WritePort   func(port uint8, v uint8)

	// Logger receives the "unknown opcode" diagnostic (§4.G, §7). Defaults
	// to log.Default() if left nil, mirroring the optional-capability
	// shape used by the cassette package's on_load_complete hook.
	Logger *log.Logger

	warned map[page]map[uint8]bool

	// mode/disp are not set or read by the executor: execIndexed takes the
	// index register as an argument and fetches each displacement inline.
	// It owns its own opcode table (exec_dd_fd.go) scoped to the
	// operations §4.F actually redirects through IX/IY, rather than
	// generically rerouting every base-page handler through an indexed
	// context — see DESIGN.md's note on §9's "abstract HL-or-indexed
	// addressing backend" open question.
	mode addrMode
	disp int8
}

type addrMode int

const (
	modeHL addrMode = iota
	modeIX
	modeIY
)

// page identifies which opcode table an "unknown opcode" was seen in, for
// the "at most once per distinct opcode within a page" dedup rule (§7, §8
// invariant 10).
type page int

const (
	pageBase page = iota
	pageCB
	pageED
	pageDDFD
	pageDDFDCB
)

// New constructs a CPU wired to the given callbacks. All four must be
// supplied by the host; there is no sensible default for "touch memory"
// or "touch ports".
func New(readMemory func(uint16) uint8, writeMemory func(uint16, uint8), readPort func(uint8) uint8, writePort func(uint8, uint8)) *CPU {
	c := &CPU{
		ReadMemory:  readMemory,
		WriteMemory: writeMemory,
		ReadPort:    readPort,
		WritePort:   writePort,
	}
	c.Reset()
	return c
}

// Reset restores the post-reset state from §3: PC=0, SP=0xFFFF,
// IFF1=IFF2=false, mode=0, HALT=false. The cycle counter is also zeroed.
// Reset does not touch memory — ownership of memory contents belongs to
// the host, per §6 — which is the one respect in which this differs from
// the "cold reset wipes memory" shape of thegtproject-toyz80's
// Reset(cold bool); see DESIGN.md.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.IFF1, c.IFF2 = false, false
	c.IM = 0
	c.Halted = false
	c.Cycles = 0
	c.warned = map[page]map[uint8]bool{
		pageBase: {}, pageCB: {}, pageED: {}, pageDDFD: {}, pageDDFDCB: {},
	}
}

// Raise transitions Halted->Running, the external "interrupt raise"
// signal described in §4.G's HALT state machine. Interrupt *delivery* (IM
// 2 vectoring, pushing PC, etc.) is out of scope per Non-goal (c); this
// method only clears the HALT latch so the step loop resumes fetching.
func (c *CPU) Raise() {
	c.Halted = false
}

func (c *CPU) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// warnUnknown logs an unknown-opcode diagnostic at most once per distinct
// opcode value within a page (§7, §8 invariant 10).
func (c *CPU) warnUnknown(p page, opcode uint8) {
	if c.warned[p][opcode] {
		return
	}
	c.warned[p][opcode] = true
	c.logger().Printf("z80: unknown opcode 0x%02X in page %d", opcode, p)
}

func (c *CPU) fetch8() uint8 {
	v := c.ReadMemory(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.SP -= 2
	c.WriteMemory(c.SP, uint8(v))
	c.WriteMemory(c.SP+1, uint8(v>>8))
}

func (c *CPU) pop16() uint16 {
	lo := c.ReadMemory(c.SP)
	hi := c.ReadMemory(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

// Push and Pop expose the stack primitives for hosts that need to set up
// or inspect stack state directly (snapshots, tests) without encoding a
// PUSH/POP opcode.
func (c *CPU) Push(v uint16) { c.push16(v) }
func (c *CPU) Pop() uint16   { return c.pop16() }

// Step executes exactly one instruction (or, while halted, bills the
// single HALT "no-op" cycle) and returns the number of T-states consumed,
// per §4.G.
func (c *CPU) Step() int {
	if c.Halted {
		c.Cycles += 4
		return 4
	}

	c.IncR()
	opcode := c.fetch8()

	var cycles int
	switch opcode {
	case 0xCB:
		cycles = c.execCB()
	case 0xED:
		cycles = c.execED()
	case 0xDD:
		cycles = c.execIndexed(modeIX)
	case 0xFD:
		cycles = c.execIndexed(modeIY)
	default:
		cycles = c.execBase(opcode)
	}

	c.Cycles += uint64(cycles)
	return cycles
}
