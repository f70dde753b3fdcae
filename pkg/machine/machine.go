// Package machine wires the Z80 core, memory map, port bus, and cassette
// deck into a single runnable Model III instance — the component the
// teacher's cmd/z80opt wired its optimizer pipeline onto, now wired onto
// the emulator instead.
package machine

import (
	"log"

	"github.com/cschweda/trs80-emulator-sub000/pkg/cassette"
	"github.com/cschweda/trs80-emulator-sub000/pkg/memory"
	"github.com/cschweda/trs80-emulator-sub000/pkg/ports"
	"github.com/cschweda/trs80-emulator-sub000/pkg/z80"
)

// Machine owns one of each subsystem and connects the CPU's four
// callbacks to them, per §6's "CPU-to-host interfaces."
type Machine struct {
	CPU      *z80.CPU
	Memory   *memory.Memory
	Ports    *ports.Bus
	Cassette *cassette.Cassette
}

// New constructs a fully wired, freshly reset Machine. logger receives
// the CPU's unknown-opcode diagnostics; a nil logger falls back to
// log.Default() (see pkg/z80.CPU.Logger).
func New(logger *log.Logger) *Machine {
	m := &Machine{
		Memory:   memory.New(),
		Ports:    ports.New(),
		Cassette: cassette.New(),
	}
	m.Ports.Cassette = m.Cassette
	m.CPU = z80.New(m.Memory.Read, m.Memory.Write, m.Ports.Read, m.Ports.Write)
	m.CPU.Logger = logger
	return m
}

// Step executes exactly one instruction and returns the T-states billed.
func (m *Machine) Step() int {
	return m.CPU.Step()
}

// Run steps the machine until it halts or maxSteps instructions have
// executed, whichever comes first, returning the total number of steps
// taken. maxSteps <= 0 means unbounded.
func (m *Machine) Run(maxSteps int) int {
	steps := 0
	for !m.CPU.Halted {
		m.Step()
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			break
		}
	}
	return steps
}

// Reset restores the CPU to its post-reset state (§3). Memory, ports,
// and the cassette deck are untouched — ownership of their contents
// belongs to the host, per §6.
func (m *Machine) Reset() {
	m.CPU.Reset()
}
