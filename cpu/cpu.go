// Package cpu implements the microengine: the tick loop that steps through
// a firmware.Firmware control store one microinstruction at a time,
// reading and writing the register file through the bus and driving the
// ALU and memory components. The structure mirrors the teacher's Cpu type
// (a run loop over a fixed per-tick duration, folding fetch/decode/execute
// into one step), generalized from a fixed opcode table to a microcoded
// one with its own control store instead of a table of Go closures.
package cpu

import (
	"errors"
	"fmt"
	"time"

	"mic1/alu"
	"mic1/bus"
	"mic1/firmware"
	"mic1/mem"
	"mic1/reg"
)

// Tick is the nominal duration of one microinstruction when Run paces
// itself against real time, in the same spirit as the teacher's Tick
// constant; nothing about correctness depends on it; Execute and Step
// ignore it entirely.
var Tick = time.Microsecond

// ErrIllegalAddress reports a microinstruction whose APORT/BPORT referenced
// a read port outside 0-6. Firmware built by firmware.Build never
// does this; it is a defensive check for hand-built or corrupted control
// stores.
type ErrIllegalAddress struct {
	Port int
}

func (e ErrIllegalAddress) Error() string {
	return fmt.Sprintf("cpu: illegal register port %d", e.Port)
}

// ErrStepLimitExceeded reports that Execute ran its full tick budget
// without the machine halting.
var ErrStepLimitExceeded = errors.New("cpu: step limit exceeded without halt")

const haltSlot = 255

// CPU is one microengine instance: its own register file, memory image and
// bus latches, driven by a shared, read-only Firmware.
type CPU struct {
	Regs *reg.Registers
	Mem  *mem.Memory
	Bus  bus.Bus

	fw firmware.Firmware

	halted bool
}

// New returns a CPU with program loaded at address 0, using fw as its
// control store. fw is built once per process (firmware.Build()) and
// shared across every CPU instance; it carries no mutable state.
func New(fw firmware.Firmware, program []byte) *CPU {
	c := &CPU{
		Regs: reg.New(),
		Mem:  mem.New(),
		fw:   fw,
	}
	c.Mem.Load(program)
	return c
}

// Halted reports whether the microprogram counter has reached the
// firmware's halt slot.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step executes exactly one tick: fetch MIR from the control store at MPC,
// read the A/B ports onto the bus, run the ALU, write the bus result to
// the register file, perform any requested memory operation, and compute
// the next MPC. Register writes are visible to the memory stage within the
// same tick. The memory stage's result (MBR or MDR) is visible to this
// tick's next-address computation (JamVector dispatches on the MBR just
// fetched) and to register reads starting the next tick.
func (c *CPU) Step() error {
	if c.halted {
		return nil
	}

	word := firmware.Decode(c.fw.ControlStore[c.Regs.MPC])
	c.Regs.MIR = word.Encode()

	if !validPort(word.APort) || !validPort(word.BPort) {
		return ErrIllegalAddress{Port: invalidOf(word.APort, word.BPort)}
	}
	c.Bus.A = c.Regs.Read(word.APort)
	c.Bus.B = c.Regs.Read(word.BPort)

	if word.Func != 0 {
		result, err := alu.Operate(word.Func, word.Shift, c.Bus.A, c.Bus.B)
		if err != nil {
			return err
		}
		c.Bus.C = result.Value
		c.Regs.N = result.N
		c.Regs.Z = result.Z
	}

	if word.WMask != 0 {
		c.Regs.Write(word.WMask, c.Bus.C)
	}

	switch word.Mem {
	case firmware.MemFetchByte:
		c.Regs.MBR = uint32(c.Mem.ReadByte(c.Regs.PC))
	case firmware.MemReadWord:
		c.Regs.MDR = c.Mem.ReadWord(c.Regs.MAR)
	case firmware.MemWriteWord:
		c.Mem.WriteWord(c.Regs.MAR, c.Regs.MDR)
	}

	c.Regs.MPC = c.nextMPC(word)
	if c.Regs.MPC == haltSlot {
		c.halted = true
	}
	return nil
}

func validPort(p int) bool {
	return p >= reg.PortMDR && p <= reg.PortK
}

func invalidOf(a, b int) int {
	if !validPort(a) {
		return a
	}
	return b
}

func (c *CPU) nextMPC(word firmware.Word) uint16 {
	switch word.Jam {
	case firmware.JamZ:
		if c.Regs.Z {
			return word.Next + 256
		}
		return word.Next
	case firmware.JamN:
		if c.Regs.N {
			return word.Next + 256
		}
		return word.Next
	case firmware.JamVector:
		return word.Next | uint16(c.Regs.MBR)
	default:
		return word.Next
	}
}

// Execute runs Step until the machine halts or limit ticks have elapsed,
// returning the number of ticks actually run. A limit of 0 means no limit:
// it runs until the machine halts or Step returns an error.
func (c *CPU) Execute(limit int) (int, error) {
	for i := 0; limit == 0 || i < limit; i++ {
		if c.halted {
			return i, nil
		}
		if err := c.Step(); err != nil {
			return i, err
		}
	}
	if c.halted {
		return limit, nil
	}
	return limit, ErrStepLimitExceeded
}

// Run paces Execute against real time, one Tick per microinstruction, for
// callers that want a wall-clock-plausible run (e.g. the debugger) rather
// than running flat-out.
func (c *CPU) Run(limit int) (int, error) {
	n := 0
	for n < limit && !c.halted {
		if err := c.Step(); err != nil {
			return n, err
		}
		n++
		time.Sleep(Tick)
	}
	if !c.halted {
		return n, ErrStepLimitExceeded
	}
	return n, nil
}
