// Package cassette implements the Model III's tape deck (§4.E): the
// motor/play/record state machine, a linear tape buffer with a
// sequential read cursor, the status/control byte codec used over port
// 0xFE, and the host-side CLOAD/CSAVE simulation entry points.
package cassette

import "fmt"

// Memory is the subset of the memory map simulate_cload/simulate_csave
// need. Satisfied by *memory.Memory; kept as an interface so this
// package stays decoupled from memory's concrete type, mirroring the
// "external collaborator" framing in §1/§6.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

const (
	statusMotorOn   = 0x01
	statusPlaying   = 0x02
	statusRecord    = 0x04
	statusDataAvail = 0x08

	controlMotorOn = 0x01
	controlPlaying = 0x02
	controlRecord  = 0x04
)

// Cassette holds the tape deck's full state. The zero value is a valid
// "no tape loaded, motor off" deck.
type Cassette struct {
	MotorOn   bool
	Playing   bool
	Recording bool

	tape     []byte
	position int

	// OnLoadComplete/OnSaveComplete are optional host notification hooks
	// (§3); the core calls them only when installed, per §9's "treat them
	// as a capability the host may or may not provide."
	OnLoadComplete func(address uint16, length int)
	OnSaveComplete func(data []byte)
}

// New returns an empty, unloaded Cassette.
func New() *Cassette {
	return &Cassette{}
}

// LoadTape installs a tape image, resetting the read cursor to 0. Fails
// if data is empty (§4.E).
func (c *Cassette) LoadTape(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("cassette: cannot load an empty tape")
	}
	c.tape = append([]byte(nil), data...)
	c.position = 0
	return nil
}

// Eject removes the tape and clears all deck flags (§4.E).
func (c *Cassette) Eject() {
	c.tape = nil
	c.position = 0
	c.MotorOn, c.Playing, c.Recording = false, false, false
}

// Rewind resets the read cursor to the start of the tape.
func (c *Cassette) Rewind() {
	c.position = 0
}

// Control decodes a byte written to port 0xFE (§4.E, §6): bit 0 is the
// motor, bits 1-2 are play/record and only take effect while the motor
// is on. Turning the motor off forces both flags false regardless of the
// other bits.
func (c *Cassette) Control(v uint8) {
	c.MotorOn = v&controlMotorOn != 0
	if !c.MotorOn {
		c.Playing = false
		c.Recording = false
		return
	}
	c.Playing = v&controlPlaying != 0
	c.Recording = v&controlRecord != 0
}

// Status encodes the byte read from port 0xFE (§4.E, §6).
func (c *Cassette) Status() uint8 {
	var s uint8
	if c.MotorOn {
		s |= statusMotorOn
	}
	if c.Playing {
		s |= statusPlaying
	}
	if c.Recording {
		s |= statusRecord
	}
	if c.tape != nil && c.position < len(c.tape) {
		s |= statusDataAvail
	}
	return s
}

// ReadByte returns the next tape byte and advances the cursor, or 0x00
// if there is no tape or the cursor is at the end (§4.E).
func (c *Cassette) ReadByte() uint8 {
	if c.tape == nil || c.position >= len(c.tape) {
		return 0x00
	}
	b := c.tape[c.position]
	c.position++
	return b
}

// SimulateCLOAD copies the whole tape into memory starting at target,
// invoking OnLoadComplete if installed, and returns target. Fails if no
// tape is loaded (§4.E).
func (c *Cassette) SimulateCLOAD(mem Memory, target uint16) (uint16, error) {
	if c.tape == nil {
		return 0, fmt.Errorf("cassette: no tape loaded")
	}
	for i, b := range c.tape {
		mem.Write(target+uint16(i), b)
	}
	if c.OnLoadComplete != nil {
		c.OnLoadComplete(target, len(c.tape))
	}
	return target, nil
}

// TapeBytes and Position expose the tape image and read cursor for
// snapshotting (pkg/snapshot); TapeBytes returns nil when no tape is
// loaded.
func (c *Cassette) TapeBytes() []byte {
	if c.tape == nil {
		return nil
	}
	out := make([]byte, len(c.tape))
	copy(out, c.tape)
	return out
}

func (c *Cassette) Position() int { return c.position }

// RestoreTape sets the tape image and read cursor directly, for snapshot
// restore; unlike LoadTape it accepts a nil/empty tape and an arbitrary
// position.
func (c *Cassette) RestoreTape(data []byte, position int) {
	if data == nil {
		c.tape = nil
	} else {
		c.tape = append([]byte(nil), data...)
	}
	c.position = position
}

// SimulateCSAVE reads length bytes from mem starting at start, stores
// them as the new tape (resetting the cursor), invokes OnSaveComplete if
// installed, and returns the saved bytes (§4.E).
func (c *Cassette) SimulateCSAVE(mem Memory, start uint16, length int) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = mem.Read(start + uint16(i))
	}
	c.tape = data
	c.position = 0
	if c.OnSaveComplete != nil {
		c.OnSaveComplete(data)
	}
	return data
}
