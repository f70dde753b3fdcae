// Package snapshot saves and restores a whole Machine's state to/from a
// file, the same gob-based checkpoint/resume shape the teacher's
// pkg/result/checkpoint.go uses for search state.
package snapshot

import (
	"encoding/gob"
	"os"

	"github.com/cschweda/trs80-emulator-sub000/pkg/machine"
	"github.com/cschweda/trs80-emulator-sub000/pkg/z80"
)

// Snapshot holds everything needed to resume a Machine: the CPU register
// file and interrupt state, the full memory image (ROM, video window
// included, plus RAM), and the cassette deck's tape and flags.
type Snapshot struct {
	Registers z80.Registers
	IFF1      bool
	IFF2      bool
	IM        uint8
	Halted    bool
	Cycles    uint64

	ROM []byte
	RAM []byte

	Tape         []byte
	TapePosition int
	MotorOn      bool
	Playing      bool
	Recording    bool
}

func init() {
	gob.Register(z80.Registers{})
}

// Capture builds a Snapshot from a live Machine.
func Capture(m *machine.Machine) *Snapshot {
	return &Snapshot{
		Registers: m.CPU.Registers,
		IFF1:      m.CPU.IFF1,
		IFF2:      m.CPU.IFF2,
		IM:        m.CPU.IM,
		Halted:    m.CPU.Halted,
		Cycles:    m.CPU.Cycles,

		ROM: m.Memory.RawROM(),
		RAM: m.Memory.RawRAM(),

		Tape:         m.Cassette.TapeBytes(),
		TapePosition: m.Cassette.Position(),
		MotorOn:      m.Cassette.MotorOn,
		Playing:      m.Cassette.Playing,
		Recording:    m.Cassette.Recording,
	}
}

// Restore applies a Snapshot onto a live Machine, overwriting its
// current register file, memory, and cassette state in place.
func (s *Snapshot) Restore(m *machine.Machine) {
	m.CPU.Registers = s.Registers
	m.CPU.IFF1, m.CPU.IFF2 = s.IFF1, s.IFF2
	m.CPU.IM = s.IM
	m.CPU.Halted = s.Halted
	m.CPU.Cycles = s.Cycles

	m.Memory.RestoreROM(s.ROM)
	m.Memory.RestoreRAM(s.RAM)

	m.Cassette.RestoreTape(s.Tape, s.TapePosition)
	m.Cassette.MotorOn = s.MotorOn
	m.Cassette.Playing = s.Playing
	m.Cassette.Recording = s.Recording
}

// Save writes a Snapshot of m to path.
func Save(path string, m *machine.Machine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(Capture(m))
}

// Load reads a Snapshot from path and applies it to m.
func Load(path string, m *machine.Machine) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return err
	}
	snap.Restore(m)
	return nil
}
