package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cschweda/trs80-emulator-sub000/internal/selftest"
	"github.com/cschweda/trs80-emulator-sub000/pkg/machine"
	"github.com/cschweda/trs80-emulator-sub000/pkg/snapshot"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trs80",
		Short: "TRS-80 Model III emulator core — Z80 CPU, memory map, ports, cassette",
	}

	var romPath string
	var programPath string
	var loadAddrStr string
	var maxSteps int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Load a ROM (and optional program) and step the machine until HALT",
		RunE: func(cmd *cobra.Command, args []string) error {
			if romPath == "" {
				return fmt.Errorf("trs80 run: --rom is required")
			}
			loadAddr, err := parseLoadAddr(loadAddrStr)
			if err != nil {
				return err
			}

			m := machine.New(nil)
			rom, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("reading ROM: %w", err)
			}
			if err := m.Memory.LoadROM(rom); err != nil {
				return err
			}

			if programPath != "" {
				prog, err := os.ReadFile(programPath)
				if err != nil {
					return fmt.Errorf("reading program: %w", err)
				}
				if _, err := m.Memory.LoadProgram(prog, loadAddr); err != nil {
					return err
				}
				m.CPU.PC = loadAddr
			}

			steps := m.Run(maxSteps)
			fmt.Printf("ran %d steps, %d T-states, PC=0x%04X, halted=%v\n", steps, m.CPU.Cycles, m.CPU.PC, m.CPU.Halted)
			return nil
		},
	}
	runCmd.Flags().StringVar(&romPath, "rom", "", "path to a 14KiB or 16KiB ROM image")
	runCmd.Flags().StringVar(&programPath, "program", "", "optional program image to load before running")
	runCmd.Flags().StringVar(&loadAddrStr, "load-addr", "0x4200", "address to load --program at and start PC from")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many instructions (0 = unbounded, until HALT)")

	var numWorkers int
	var jsonOut bool
	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the conformance scenarios and invariant checks against the core",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := selftest.NewPool(numWorkers)
			results := pool.RunAll(selftest.Scenarios())
			report := selftest.NewReport(results)

			if jsonOut {
				if err := report.WriteJSON(os.Stdout); err != nil {
					return err
				}
			} else {
				report.WriteText(os.Stdout)
			}
			if !report.Ok() {
				os.Exit(1)
			}
			return nil
		},
	}
	selftestCmd.Flags().IntVar(&numWorkers, "workers", 0, "number of parallel workers (0 = runtime.NumCPU())")
	selftestCmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON instead of text")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save or load a whole-machine snapshot",
	}

	var snapRomPath string
	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Save the state of a fresh, unstepped machine (optionally with a ROM) to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := machine.New(nil)
			if snapRomPath != "" {
				rom, err := os.ReadFile(snapRomPath)
				if err != nil {
					return fmt.Errorf("reading ROM: %w", err)
				}
				if err := m.Memory.LoadROM(rom); err != nil {
					return err
				}
			}
			return snapshot.Save(args[0], m)
		},
	}
	saveCmd.Flags().StringVar(&snapRomPath, "rom", "", "ROM image to load before snapshotting")

	loadCmd := &cobra.Command{
		Use:   "load [path]",
		Short: "Load a snapshot and report the restored machine's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := machine.New(nil)
			if err := snapshot.Load(args[0], m); err != nil {
				return err
			}
			fmt.Printf("restored: PC=0x%04X SP=0x%04X A=0x%02X F=0x%02X cycles=%d halted=%v\n",
				m.CPU.PC, m.CPU.SP, m.CPU.A, m.CPU.F, m.CPU.Cycles, m.CPU.Halted)
			return nil
		},
	}

	snapshotCmd.AddCommand(saveCmd, loadCmd)
	rootCmd.AddCommand(runCmd, selftestCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseLoadAddr accepts decimal or 0x-prefixed hex, mirroring the
// teacher's parseDeadFlags/parseImmediate helpers in cmd/z80opt.
func parseLoadAddr(s string) (uint16, error) {
	var v uint64
	_, err := fmt.Sscanf(s, "0x%x", &v)
	if err != nil {
		_, err = fmt.Sscanf(s, "%d", &v)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if v > 0xFFFF {
		return 0, fmt.Errorf("address 0x%X out of 16-bit range", v)
	}
	return uint16(v), nil
}
