package memory

import "testing"

func TestLoadROMSizes(t *testing.T) {
	m := New()
	if err := m.LoadROM(make([]byte, 100)); err == nil {
		t.Error("expected error for invalid ROM size")
	}
	if err := m.LoadROM(make([]byte, romSize16KiB)); err != nil {
		t.Errorf("16 KiB ROM should load: %v", err)
	}
	if !m.Loaded {
		t.Error("Loaded should be true after a successful LoadROM")
	}
}

func TestLoadROM14KiBPadded(t *testing.T) {
	data := make([]byte, romSize14KiB)
	data[romSize14KiB-1] = 0xAB
	m := New()
	if err := m.LoadROM(data); err != nil {
		t.Fatal(err)
	}
	if got := m.Read(romSize14KiB - 1); got != 0xAB {
		t.Errorf("last 14KiB byte = 0x%02X, want 0xAB", got)
	}
	if got := m.Read(romSize16KiB - 1); got != 0 {
		t.Errorf("padded region = 0x%02X, want 0", got)
	}
}

func TestWriteProtection(t *testing.T) {
	data := make([]byte, romSize16KiB)
	data[0x0100] = 0xAB
	m := New()
	m.LoadROM(data)

	m.Write(0x0100, 0xFF)
	if got := m.Read(0x0100); got != 0xAB {
		t.Errorf("write below video window should be a no-op: got 0x%02X", got)
	}

	m.Write(VideoStart, 0x42)
	if got := m.Read(VideoStart); got != 0x42 {
		t.Errorf("video window should be writable: got 0x%02X", got)
	}

	m.Write(0x4000, 0x99)
	if got := m.Read(0x4000); got != 0x99 {
		t.Errorf("RAM should be writable: got 0x%02X", got)
	}
}

func TestLoadProgramOverflow(t *testing.T) {
	m := New()
	_, err := m.LoadProgram(make([]byte, 10), 0xFFFC)
	if err == nil {
		t.Error("expected overflow error")
	}
}

func TestLoadProgramDefaultAddr(t *testing.T) {
	m := New()
	addr, err := m.LoadProgram([]byte{1, 2, 3}, DefaultLoadAddr)
	if err != nil {
		t.Fatal(err)
	}
	if addr != DefaultLoadAddr {
		t.Errorf("addr = 0x%04X, want 0x%04X", addr, DefaultLoadAddr)
	}
	if m.Read(DefaultLoadAddr) != 1 || m.Read(DefaultLoadAddr+2) != 3 {
		t.Error("program bytes not written correctly")
	}
}

func TestClearRAMLeavesROMAndVideoAlone(t *testing.T) {
	data := make([]byte, romSize16KiB)
	data[0x0100] = 0xAB
	m := New()
	m.LoadROM(data)
	m.Write(VideoStart, 0x42)
	m.Write(0x4000, 0x99)

	m.ClearRAM()

	if m.Read(0x0100) != 0xAB {
		t.Error("ClearRAM touched ROM")
	}
	if m.Read(VideoStart) != 0x42 {
		t.Error("ClearRAM touched video window")
	}
	if m.Read(0x4000) != 0 {
		t.Error("ClearRAM did not clear RAM")
	}
}

func TestReadWordWriteWord(t *testing.T) {
	m := New()
	m.WriteWord(0x4500, 0xBEEF)
	if got := m.ReadWord(0x4500); got != 0xBEEF {
		t.Errorf("ReadWord = 0x%04X, want 0xBEEF", got)
	}
}
