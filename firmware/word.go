// Package firmware builds the control store: the 512-slot read-only memory
// of 36-bit microinstructions that the microengine steps through one tick at
// a time. Build builds it once, at process start, from a fixed table of
// macro-emitting functions; the result is an immutable Firmware value shared
// by every CPU instance. The field layout and macro-construction style below
// follow cpu_base.py's make_instruction/_control, re-expressed as typed Go
// constants and a cursor-based Builder instead of hand-counted slot
// literals.
package firmware

import (
	"mic1/alu"
	"mic1/mask"
	"mic1/reg"
)

// Bit layout of a 36-bit microinstruction word, LSB first. Matches
// cpu.py's _parse_instruction shifts (next>>27, jam>>24, ... aport&0b111).
const (
	aportShift, aportWidth = 0, 3
	bportShift, bportWidth = 3, 3
	memShift, memWidth     = 6, 3
	wmaskShift, wmaskWidth = 9, 7
	funcShift, funcWidth   = 16, 6
	shiftShift, shiftWidth = 22, 2
	jamShift, jamWidth     = 24, 3
	nextShift, nextWidth   = 27, 9
)

// Jam selects how the next microprogram counter is formed.
type Jam byte

const (
	JamNone   Jam = 0b000 // MPC <- NEXT
	JamZ      Jam = 0b001 // MPC <- NEXT | (Z << 8)
	JamN      Jam = 0b010 // MPC <- NEXT | (N << 8)
	JamVector Jam = 0b100 // MPC <- NEXT | MBR (opcode dispatch)
)

// Mem selects the memory operation, if any, driven by this tick.
type Mem byte

const (
	MemNone      Mem = 0b000
	MemFetchByte Mem = 0b001 // MBR <- mem.ReadByte(MAR-equivalent address, here PC)
	MemReadWord  Mem = 0b010 // MDR <- mem.ReadWord(MAR)
	MemWriteWord Mem = 0b100 // mem.WriteWord(MAR, MDR)
)

// Word is one microinstruction, held unpacked for readability while macros
// are being built. Encode packs it into the 36-bit form a CPU actually
// steps through; Decode is its inverse, used by the debugger and by tests
// that assert on a built control store.
type Word struct {
	Next  uint16
	Jam   Jam
	Shift alu.Shift
	Func  alu.Func
	WMask byte
	Mem   Mem
	BPort int
	APort int
}

func (w Word) Encode() uint64 {
	var packed uint64
	packed = mask.Insert(packed, aportShift, aportWidth, uint64(w.APort))
	packed = mask.Insert(packed, bportShift, bportWidth, uint64(w.BPort))
	packed = mask.Insert(packed, memShift, memWidth, uint64(w.Mem))
	packed = mask.Insert(packed, wmaskShift, wmaskWidth, uint64(w.WMask))
	packed = mask.Insert(packed, funcShift, funcWidth, uint64(w.Func))
	packed = mask.Insert(packed, shiftShift, shiftWidth, uint64(w.Shift))
	packed = mask.Insert(packed, jamShift, jamWidth, uint64(w.Jam))
	packed = mask.Insert(packed, nextShift, nextWidth, uint64(w.Next))
	return packed
}

func Decode(packed uint64) Word {
	return Word{
		APort: int(mask.Extract(packed, aportShift, aportWidth)),
		BPort: int(mask.Extract(packed, bportShift, bportWidth)),
		Mem:   Mem(mask.Extract(packed, memShift, memWidth)),
		WMask: byte(mask.Extract(packed, wmaskShift, wmaskWidth)),
		Func:  alu.Func(mask.Extract(packed, funcShift, funcWidth)),
		Shift: alu.Shift(mask.Extract(packed, shiftShift, shiftWidth)),
		Jam:   Jam(mask.Extract(packed, jamShift, jamWidth)),
		Next:  uint16(mask.Extract(packed, nextShift, nextWidth)),
	}
}

// register file port aliases, spelled out so macro bodies below read like
// the register names they move data between rather than raw port numbers.
const (
	portMDR = reg.PortMDR
	portPC  = reg.PortPC
	portMBR = reg.PortMBR
	portX   = reg.PortX
	portY   = reg.PortY
	portH   = reg.PortH
	portK   = reg.PortK
)
