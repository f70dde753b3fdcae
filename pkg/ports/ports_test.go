package ports

import "testing"

func TestKeyboardFIFOOrderAndEmpty(t *testing.T) {
	b := New()
	b.Keyboard.Push(0x41)
	b.Keyboard.Push(0x42)
	b.Keyboard.Push(0x43)
	for _, want := range []uint8{0x41, 0x42, 0x43, 0x00} {
		if got := b.Read(PortFF); got != want {
			t.Errorf("read = 0x%02X, want 0x%02X", got, want)
		}
	}
}

func TestKeyboardFIFODropsWhenFull(t *testing.T) {
	k := &Keyboard{}
	for i := 0; i < 300; i++ {
		k.Push(uint8(i))
	}
	if k.Len() != 256 {
		t.Fatalf("Len() = %d, want 256", k.Len())
	}
	if first := k.Pop(); first != 0 {
		t.Errorf("first byte = %d, want 0 (newest keys dropped, oldest survive)", first)
	}
}

type fakeCassette struct {
	status   uint8
	lastCtrl uint8
}

func (f *fakeCassette) Status() uint8      { return f.status }
func (f *fakeCassette) Control(v uint8)    { f.lastCtrl = v }

func TestCassettePortDispatch(t *testing.T) {
	b := New()
	fc := &fakeCassette{status: 0x0B}
	b.Cassette = fc

	if got := b.Read(PortFE); got != 0x0B {
		t.Errorf("read PortFE = 0x%02X, want 0x0B", got)
	}
	b.Write(PortFE, 0x05)
	if fc.lastCtrl != 0x05 {
		t.Errorf("control byte = 0x%02X, want 0x05", fc.lastCtrl)
	}
}

func TestUnmappedPorts(t *testing.T) {
	b := New()
	if got := b.Read(0x10); got != 0xFF {
		t.Errorf("unmapped read = 0x%02X, want 0xFF", got)
	}
	b.Write(0x10, 0x99) // must not panic

	if got := b.Read(PortEC); got != 0x00 {
		t.Errorf("PortEC read = 0x%02X, want 0x00", got)
	}
	b.Write(PortEC, 0xAB) // no modeled side effects, must not panic
}
