// Package ports implements the Model III's 8-bit port bus (§4.D): a
// dispatch table from port byte to a {read, write} handler pair, wired
// to the keyboard FIFO, the cassette status/control byte, and the
// system-control latch.
package ports

// PortFF is the keyboard FIFO port, PortFE the cassette status/control
// port, PortEC the system-control latch (§6).
const (
	PortFF = 0xFF
	PortFE = 0xFE
	PortEC = 0xEC
)

// Cassette is the subset of the cassette subsystem the port bus needs;
// satisfied by *cassette.Cassette. Kept as an interface here so this
// package doesn't import cassette, matching the spec's framing of the
// cassette as "driven by software through port 0xFE" rather than wired
// in directly (§4.Others).
type Cassette interface {
	Status() uint8
	Control(uint8)
}

// Bus is the port dispatch table. The zero value is usable once Keyboard
// and Cassette are assigned; both may be left nil. With a nil Keyboard,
// port 0xFF reads as an empty FIFO (0x00); with a nil Cassette, port 0xFE
// reads as unmapped (0xFF) and writes to it are ignored.
type Bus struct {
	Keyboard *Keyboard
	Cassette Cassette
}

// New returns a Bus with a fresh Keyboard attached; Cassette is left nil
// until the host wires one in.
func New() *Bus {
	return &Bus{Keyboard: &Keyboard{}}
}

// Read dispatches a port read (§4.D). port is masked to 8 bits by the
// caller's uint8 type; unmapped ports return 0xFF.
func (b *Bus) Read(port uint8) uint8 {
	switch port {
	case PortFF:
		if b.Keyboard == nil {
			return 0x00
		}
		return b.Keyboard.Pop()
	case PortFE:
		if b.Cassette == nil {
			return 0xFF
		}
		return b.Cassette.Status()
	case PortEC:
		return 0x00
	default:
		return 0xFF
	}
}

// Write dispatches a port write (§4.D); unmapped ports are no-ops.
func (b *Bus) Write(port uint8, v uint8) {
	switch port {
	case PortFE:
		if b.Cassette != nil {
			b.Cassette.Control(v)
		}
	case PortFF, PortEC:
		// no effect: keyboard port is read-only, system-control latch
		// has no modeled side effects (§6).
	}
}
