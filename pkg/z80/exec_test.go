package z80

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// newTestCPU returns a CPU backed by a flat 64 KiB byte array (no ROM
// protection, no ports) — enough to exercise the executor in isolation
// from the memory map package.
func newTestCPU(mem []byte) *CPU {
	if len(mem) < 0x10000 {
		full := make([]byte, 0x10000)
		copy(full, mem)
		mem = full
	}
	ports := make([]byte, 256)
	c := New(
		func(addr uint16) uint8 { return mem[addr] },
		func(addr uint16, v uint8) { mem[addr] = v },
		func(port uint8) uint8 { return ports[port] },
		func(port uint8, v uint8) { ports[port] = v },
	)
	return c
}

// TestArithmeticProgram is S1: LD A,0x55; LD B,0xAA; ADD A,B; HALT.
func TestArithmeticProgram(t *testing.T) {
	c := newTestCPU([]byte{0x3E, 0x55, 0x06, 0xAA, 0x80, 0x76})
	for i := 0; i < 4; i++ {
		c.Step()
	}
	if c.A != 0xFF {
		t.Errorf("A = 0x%02X, want 0xFF", c.A)
	}
	if c.B != 0xAA {
		t.Errorf("B = 0x%02X, want 0xAA", c.B)
	}
	if c.F&FlagS == 0 || c.F&FlagZ != 0 || c.F&FlagH != 0 || c.F&FlagC != 0 {
		t.Errorf("flags = 0x%02X, want S=1,Z=0,H=0,C=0", c.F)
	}
	if !c.Halted {
		t.Error("CPU should be halted")
	}
}

// TestCallRet is S2.
func TestCallRet(t *testing.T) {
	mem := make([]byte, 0x10000)
	copy(mem[0x1000:], []byte{0xCD, 0x00, 0x50})
	copy(mem[0x5000:], []byte{0x3E, 0x42, 0xC9})
	c := newTestCPU(mem)
	c.PC = 0x1000
	c.SP = 0xFFFF

	c.Step()
	if c.PC != 0x5000 || c.SP != 0xFFFD {
		t.Fatalf("after CALL: PC=0x%04X SP=0x%04X, want PC=0x5000 SP=0xFFFD", c.PC, c.SP)
	}
	if mem[0xFFFD] != 0x03 || mem[0xFFFE] != 0x10 {
		t.Fatalf("return address not pushed: mem[0xFFFD..E]=%02X %02X", mem[0xFFFD], mem[0xFFFE])
	}

	c.Step()
	if c.A != 0x42 {
		t.Fatalf("A = 0x%02X, want 0x42", c.A)
	}

	c.Step()
	if c.PC != 0x1003 || c.SP != 0xFFFF {
		t.Fatalf("after RET: PC=0x%04X SP=0x%04X, want PC=0x1003 SP=0xFFFF", c.PC, c.SP)
	}
}

// TestLDIR is S3.
func TestLDIR(t *testing.T) {
	mem := make([]byte, 0x10000)
	mem[0x0000] = 0xED
	mem[0x0001] = 0xB0
	copy(mem[0x4000:], []byte{0x01, 0x02, 0x03})
	c := newTestCPU(mem)
	c.SetHL(0x4000)
	c.SetDE(0x5000)
	c.SetBC(0x0003)

	for i := 0; i < 100 && c.BC() != 0; i++ {
		c.Step()
	}
	if c.BC() != 0 {
		t.Fatal("LDIR did not terminate")
	}
	want := []byte{0x01, 0x02, 0x03}
	for i, w := range want {
		if mem[0x5000+i] != w {
			t.Errorf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x5000+i, mem[0x5000+i], w)
		}
	}
	if c.PC != 0x0002 {
		t.Errorf("PC = 0x%04X, want 0x0002", c.PC)
	}
	if c.F&FlagP != 0 {
		t.Errorf("PV flag set, want clear")
	}
}

// TestIndexedRLC is S4: DD CB 05 06 with IX=0x5000, mem[0x5005]=0x85.
func TestIndexedRLC(t *testing.T) {
	mem := make([]byte, 0x10000)
	copy(mem[0x0000:], []byte{0xDD, 0xCB, 0x05, 0x06})
	mem[0x5005] = 0x85
	c := newTestCPU(mem)
	c.IX = 0x5000

	c.Step()
	if mem[0x5005] != 0x0B {
		t.Errorf("mem[0x5005] = 0x%02X, want 0x0B", mem[0x5005])
	}
	if c.F&FlagC == 0 {
		t.Error("C flag clear, want set")
	}
	if c.PC != 0x0004 {
		t.Errorf("PC = 0x%04X, want 0x0004", c.PC)
	}
}

func TestHaltBillsFourCyclesWithoutAdvancingPC(t *testing.T) {
	c := newTestCPU([]byte{0x76})
	c.Step()
	if !c.Halted {
		t.Fatal("expected halted")
	}
	pc := c.PC
	cycles := c.Step()
	if cycles != 4 {
		t.Errorf("halted step billed %d cycles, want 4", cycles)
	}
	if c.PC != pc {
		t.Errorf("PC advanced while halted: 0x%04X -> 0x%04X", pc, c.PC)
	}
}

func TestRaiseClearsHalt(t *testing.T) {
	c := newTestCPU([]byte{0x76})
	c.Step()
	if !c.Halted {
		t.Fatal("expected halted")
	}
	c.Raise()
	if c.Halted {
		t.Error("Raise() should clear Halted")
	}
}

func TestUnknownOpcodeLoggedOnceAndSafe(t *testing.T) {
	// 0xED 0xFF is not a defined ED-page opcode.
	c := newTestCPU([]byte{0xED, 0xFF, 0xED, 0xFF})
	var logBuf bytes.Buffer
	c.Logger = log.New(&logBuf, "", 0)
	cycles := c.Step()
	if cycles != 8 {
		t.Errorf("unknown ED opcode billed %d cycles, want 8", cycles)
	}
	if c.PC != 2 {
		t.Errorf("PC = %d, want 2 (past prefix+opcode)", c.PC)
	}
	c.Step() // second occurrence must not panic or behave differently
	if c.PC != 4 {
		t.Errorf("PC = %d, want 4", c.PC)
	}
	if n := strings.Count(logBuf.String(), "unknown opcode"); n != 1 {
		t.Errorf("unknown opcode logged %d times, want 1", n)
	}
}

func TestDJNZ(t *testing.T) {
	// DJNZ -2 loops on itself until B reaches 0.
	c := newTestCPU([]byte{0x10, 0xFE})
	c.B = 3
	for i := 0; i < 3; i++ {
		c.Step()
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
	if c.PC != 2 {
		t.Errorf("PC = 0x%04X, want 0x0002 (loop exited)", c.PC)
	}
}

func TestExxAndExAfAreInvolutions(t *testing.T) {
	c := newTestCPU(nil)
	c.SetBC(0x1234)
	c.SetDE(0x5678)
	c.SetHL(0x9ABC)
	c.ExxAlt()
	c.ExxAlt()
	if c.BC() != 0x1234 || c.DE() != 0x5678 || c.HL() != 0x9ABC {
		t.Error("EXX;EXX is not the identity")
	}

	c.A, c.F = 0x11, 0x22
	c.ExAFAlt()
	c.ExAFAlt()
	if c.A != 0x11 || c.F != 0x22 {
		t.Error("EX AF,AF';EX AF,AF' is not the identity")
	}
}

func TestPushPopRoundtrip(t *testing.T) {
	c := newTestCPU(nil)
	c.SP = 0x8000
	c.Push(0xBEEF)
	if got := c.Pop(); got != 0xBEEF {
		t.Errorf("PUSH/POP roundtrip = 0x%04X, want 0xBEEF", got)
	}
	if c.SP != 0x8000 {
		t.Errorf("SP = 0x%04X, want 0x8000", c.SP)
	}
}

func TestLdAIandLdARSetPV(t *testing.T) {
	// ED 47 = LD I,A ; ED 57 = LD A,I ; ED 5F = LD A,R
	c := newTestCPU([]byte{0xED, 0x47, 0xED, 0x57, 0xED, 0x5F})
	c.A = 0x42
	c.IFF2 = true
	c.Step()
	c.Step()
	if c.A != 0x42 {
		t.Errorf("A = 0x%02X, want 0x42", c.A)
	}
	if c.F&FlagP == 0 {
		t.Error("PV flag should mirror IFF2 (true)")
	}

	c.Step()
	if c.A != c.R {
		t.Errorf("LD A,R: A = 0x%02X, want R = 0x%02X", c.A, c.R)
	}
	if c.F&FlagP == 0 {
		t.Error("LD A,R: PV flag should mirror IFF2 (true)")
	}
}
