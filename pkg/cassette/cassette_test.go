package cassette

import "testing"

type fakeMemory struct {
	bytes [0x10000]byte
}

func (m *fakeMemory) Read(addr uint16) uint8  { return m.bytes[addr] }
func (m *fakeMemory) Write(addr uint16, v uint8) { m.bytes[addr] = v }

func TestLoadTapeRejectsEmpty(t *testing.T) {
	c := New()
	if err := c.LoadTape(nil); err == nil {
		t.Error("expected error loading an empty tape")
	}
	if err := c.LoadTape([]byte{}); err == nil {
		t.Error("expected error loading an empty tape")
	}
}

func TestControlMotorGatesPlayRecord(t *testing.T) {
	c := New()
	c.Control(0x01 | 0x02 | 0x04) // motor on, play, record
	if !c.MotorOn || !c.Playing || !c.Recording {
		t.Fatal("expected motor/playing/recording all true")
	}

	c.Control(0x00) // motor off
	if c.MotorOn || c.Playing || c.Recording {
		t.Error("turning motor off should force playing/recording false")
	}
}

func TestControlPlayRecordRequireMotor(t *testing.T) {
	c := New()
	c.Control(0x02 | 0x04) // play/record bits set but motor bit clear
	if c.Playing || c.Recording {
		t.Error("play/record should not take effect while motor is off")
	}
}

func TestStatusDataAvailable(t *testing.T) {
	c := New()
	if err := c.LoadTape([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if c.Status()&0x08 == 0 {
		t.Error("expected data-available bit set after loading a non-empty tape")
	}
	c.ReadByte()
	c.ReadByte()
	c.ReadByte()
	if c.Status()&0x08 != 0 {
		t.Error("expected data-available bit clear once tape is exhausted")
	}
}

func TestReadByteSequence(t *testing.T) {
	c := New()
	c.LoadTape([]byte{0x10, 0x20, 0x30})
	for _, want := range []uint8{0x10, 0x20, 0x30} {
		if got := c.ReadByte(); got != want {
			t.Errorf("ReadByte = 0x%02X, want 0x%02X", got, want)
		}
	}
	if got := c.ReadByte(); got != 0x00 {
		t.Errorf("ReadByte past end = 0x%02X, want 0x00", got)
	}
}

func TestEjectClearsEverything(t *testing.T) {
	c := New()
	c.LoadTape([]byte{1, 2, 3})
	c.Control(0x07)
	c.Eject()
	if c.MotorOn || c.Playing || c.Recording {
		t.Error("Eject should clear all flags")
	}
	if c.Status()&0x08 != 0 {
		t.Error("Eject should leave no tape available")
	}
}

func TestSimulateCLOADAndCSAVERoundtrip(t *testing.T) {
	c := New()
	mem := &fakeMemory{}
	if err := c.LoadTape([]byte{0x3E, 0x42, 0x76}); err != nil {
		t.Fatal(err)
	}
	var notified bool
	c.OnLoadComplete = func(addr uint16, length int) {
		notified = true
		if addr != 0x4200 || length != 3 {
			t.Errorf("OnLoadComplete(0x%04X, %d), want (0x4200, 3)", addr, length)
		}
	}

	addr, err := c.SimulateCLOAD(mem, 0x4200)
	if err != nil {
		t.Fatal(err)
	}
	if addr != 0x4200 {
		t.Errorf("CLOAD returned 0x%04X, want 0x4200", addr)
	}
	if !notified {
		t.Error("OnLoadComplete was not invoked")
	}
	want := []byte{0x3E, 0x42, 0x76}
	for i, w := range want {
		if mem.bytes[0x4200+i] != w {
			t.Errorf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x4200+i, mem.bytes[0x4200+i], w)
		}
	}

	data := c.SimulateCSAVE(mem, 0x4200, 3)
	for i, w := range want {
		if data[i] != w {
			t.Errorf("CSAVE[%d] = 0x%02X, want 0x%02X", i, data[i], w)
		}
	}
}

func TestSimulateCLOADFailsWithNoTape(t *testing.T) {
	c := New()
	mem := &fakeMemory{}
	if _, err := c.SimulateCLOAD(mem, 0x4200); err == nil {
		t.Error("expected error CLOADing with no tape")
	}
}
