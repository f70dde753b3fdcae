package selftest

import (
	"fmt"

	"github.com/cschweda/trs80-emulator-sub000/pkg/machine"
	"github.com/cschweda/trs80-emulator-sub000/pkg/z80"
)

// romWith returns a 16 KiB ROM image with data placed at addr, the rest
// zeroed (which executes as NOP). Used to seed fixed-address scenarios
// below without going through the write-protected public Write path.
func romWith(addr uint16, data []byte) []byte {
	img := make([]byte, 16*1024)
	copy(img[addr:], data)
	return img
}

func newMachineWithROM(t []byte) *machine.Machine {
	m := machine.New(nil)
	_ = m.Memory.LoadROM(t)
	return m
}

// Scenarios returns every end-to-end scenario from §8 plus the
// cross-cutting invariants most naturally expressed as a single-shot
// program rather than a table test.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "S1_arithmetic", Run: scenarioS1},
		{Name: "S2_call_ret", Run: scenarioS2},
		{Name: "S3_ldir", Run: scenarioS3},
		{Name: "S4_indexed_rlc", Run: scenarioS4},
		{Name: "S5_cassette_roundtrip", Run: scenarioS5},
		{Name: "S6_keyboard_port", Run: scenarioS6},
		{Name: "invariant_keyboard_fifo_caps_at_256", Run: invariantKeyboardFIFO},
		{Name: "invariant_push_pop_roundtrip", Run: invariantPushPopRoundtrip},
		{Name: "invariant_exx_identity", Run: invariantExxIdentity},
		{Name: "invariant_write_word_read_word", Run: invariantWriteWordReadWord},
		{Name: "invariant_rom_write_ignored", Run: invariantROMWriteIgnored},
	}
}

func scenarioS1() error {
	m := newMachineWithROM(romWith(0x0000, []byte{0x3E, 0x55, 0x06, 0xAA, 0x80, 0x76}))
	for i := 0; i < 4; i++ {
		m.Step()
	}
	switch {
	case m.CPU.A != 0xFF:
		return fmt.Errorf("A = 0x%02X, want 0xFF", m.CPU.A)
	case m.CPU.B != 0xAA:
		return fmt.Errorf("B = 0x%02X, want 0xAA", m.CPU.B)
	case m.CPU.F&z80.FlagS == 0:
		return fmt.Errorf("S flag clear, want set")
	case m.CPU.F&z80.FlagZ != 0:
		return fmt.Errorf("Z flag set, want clear")
	case m.CPU.F&z80.FlagH != 0:
		return fmt.Errorf("H flag set, want clear")
	case m.CPU.F&z80.FlagC != 0:
		return fmt.Errorf("C flag set, want clear")
	case !m.CPU.Halted:
		return fmt.Errorf("CPU not halted")
	}
	return nil
}

func scenarioS2() error {
	img := romWith(0x1000, []byte{0xCD, 0x00, 0x50})
	m := newMachineWithROM(img)
	for i, b := range []byte{0x3E, 0x42, 0xC9} {
		m.Memory.Write(0x5000+uint16(i), b)
	}
	m.CPU.PC = 0x1000
	m.CPU.SP = 0xFFFF

	m.Step() // CALL 0x5000
	if m.CPU.PC != 0x5000 {
		return fmt.Errorf("after CALL: PC = 0x%04X, want 0x5000", m.CPU.PC)
	}
	if m.CPU.SP != 0xFFFD {
		return fmt.Errorf("after CALL: SP = 0x%04X, want 0xFFFD", m.CPU.SP)
	}
	if m.Memory.Read(0xFFFD) != 0x03 || m.Memory.Read(0xFFFE) != 0x10 {
		return fmt.Errorf("after CALL: return address not pushed correctly")
	}

	m.Step() // LD A,0x42
	if m.CPU.A != 0x42 {
		return fmt.Errorf("after LD A,n: A = 0x%02X, want 0x42", m.CPU.A)
	}

	m.Step() // RET
	if m.CPU.PC != 0x1003 {
		return fmt.Errorf("after RET: PC = 0x%04X, want 0x1003", m.CPU.PC)
	}
	if m.CPU.SP != 0xFFFF {
		return fmt.Errorf("after RET: SP = 0x%04X, want 0xFFFF", m.CPU.SP)
	}
	return nil
}

func scenarioS3() error {
	img := romWith(0x0000, []byte{0xED, 0xB0})
	m := newMachineWithROM(img)
	for i, b := range []byte{0x01, 0x02, 0x03} {
		m.Memory.Write(0x4000+uint16(i), b)
	}
	m.CPU.SetHL(0x4000)
	m.CPU.SetDE(0x5000)
	m.CPU.SetBC(0x0003)

	for i := 0; i < 1000 && m.CPU.BC() != 0; i++ {
		m.Step()
	}
	if m.CPU.BC() != 0 {
		return fmt.Errorf("LDIR did not terminate")
	}
	want := []byte{0x01, 0x02, 0x03}
	for i, w := range want {
		if got := m.Memory.Read(0x5000 + uint16(i)); got != w {
			return fmt.Errorf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x5000+i, got, w)
		}
	}
	if m.CPU.PC != 0x0002 {
		return fmt.Errorf("PC = 0x%04X, want 0x0002", m.CPU.PC)
	}
	if m.CPU.F&z80.FlagP != 0 {
		return fmt.Errorf("PV flag set, want clear (BC exhausted)")
	}
	return nil
}

func scenarioS4() error {
	img := romWith(0x0000, []byte{0xDD, 0xCB, 0x05, 0x06})
	m := newMachineWithROM(img)
	m.Memory.Write(0x5005, 0x85)
	m.CPU.IX = 0x5000

	m.Step()
	if got := m.Memory.Read(0x5005); got != 0x0B {
		return fmt.Errorf("mem[0x5005] = 0x%02X, want 0x0B", got)
	}
	if m.CPU.F&z80.FlagC == 0 {
		return fmt.Errorf("C flag clear, want set")
	}
	if m.CPU.PC != 0x0004 {
		return fmt.Errorf("PC = 0x%04X, want 0x0004", m.CPU.PC)
	}
	return nil
}

func scenarioS5() error {
	m := newMachineWithROM(romWith(0, nil))
	if err := m.Cassette.LoadTape([]byte{0x3E, 0x42, 0x76}); err != nil {
		return err
	}
	addr, err := m.Cassette.SimulateCLOAD(m.Memory, 0x4200)
	if err != nil {
		return err
	}
	if addr != 0x4200 {
		return fmt.Errorf("CLOAD returned 0x%04X, want 0x4200", addr)
	}
	want := []byte{0x3E, 0x42, 0x76}
	for i, w := range want {
		if got := m.Memory.Read(0x4200 + uint16(i)); got != w {
			return fmt.Errorf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x4200+i, got, w)
		}
	}
	data := m.Cassette.SimulateCSAVE(m.Memory, 0x4200, 3)
	for i, w := range want {
		if data[i] != w {
			return fmt.Errorf("CSAVE[%d] = 0x%02X, want 0x%02X", i, data[i], w)
		}
	}
	return nil
}

func scenarioS6() error {
	m := newMachineWithROM(romWith(0, nil))
	m.Ports.Keyboard.Push(0x41)
	m.Ports.Keyboard.Push(0x42)
	m.Ports.Keyboard.Push(0x43)
	want := []uint8{0x41, 0x42, 0x43, 0x00}
	for i, w := range want {
		if got := m.Ports.Read(0xFF); got != w {
			return fmt.Errorf("read %d: got 0x%02X, want 0x%02X", i, got, w)
		}
	}
	return nil
}

func invariantKeyboardFIFO() error {
	m := newMachineWithROM(romWith(0, nil))
	for i := 0; i < 300; i++ {
		m.Ports.Keyboard.Push(uint8(i))
	}
	if m.Ports.Keyboard.Len() != 256 {
		return fmt.Errorf("FIFO length = %d, want 256", m.Ports.Keyboard.Len())
	}
	if first := m.Ports.Keyboard.Pop(); first != 0 {
		return fmt.Errorf("first popped byte = %d, want 0 (oldest survives, newest dropped)", first)
	}
	return nil
}

func invariantPushPopRoundtrip() error {
	m := newMachineWithROM(romWith(0, nil))
	m.CPU.SP = 0x8000
	m.CPU.SetHL(0x1234)
	sp := m.CPU.SP
	m.CPU.Push(m.CPU.HL())
	m.CPU.SetHL(0)
	if got := m.CPU.Pop(); got != 0x1234 {
		return fmt.Errorf("PUSH/POP roundtrip gave 0x%04X, want 0x1234", got)
	}
	if m.CPU.SP != sp {
		return fmt.Errorf("SP not restored: got 0x%04X, want 0x%04X", m.CPU.SP, sp)
	}
	return nil
}

func invariantExxIdentity() error {
	m := newMachineWithROM(romWith(0, nil))
	m.CPU.SetBC(0x1111)
	before := m.CPU.BC()
	m.CPU.ExxAlt()
	m.CPU.ExxAlt()
	if m.CPU.BC() != before {
		return fmt.Errorf("EXX;EXX not identity: got 0x%04X, want 0x%04X", m.CPU.BC(), before)
	}
	return nil
}

func invariantWriteWordReadWord() error {
	m := newMachineWithROM(romWith(0, nil))
	m.Memory.WriteWord(0x4500, 0xBEEF)
	if got := m.Memory.ReadWord(0x4500); got != 0xBEEF {
		return fmt.Errorf("read_word after write_word = 0x%04X, want 0xBEEF", got)
	}
	return nil
}

func invariantROMWriteIgnored() error {
	img := romWith(0x0100, []byte{0xAB})
	m := newMachineWithROM(img)
	m.Memory.Write(0x0100, 0xFF)
	if got := m.Memory.Read(0x0100); got != 0xAB {
		return fmt.Errorf("ROM byte at 0x0100 changed to 0x%02X, want unchanged 0xAB", got)
	}
	return nil
}
