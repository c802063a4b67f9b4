package firmware

import (
	"mic1/alu"
	"mic1/reg"
)

// Firmware is the immutable result of Build: a control store plus the
// calling-convention tables the assembler and the microengine both need
// (which byte dispatches to which macro, how many argument bytes it takes,
// and whether that argument is a raw byte offset or a /4-scaled word
// index).
type Firmware struct {
	ControlStore [512]uint64
	Opcodes      map[string]byte
	Arity        map[string]int
	MoveSet      map[string]bool
}

// Build assembles the full control store in one frozen order. The order
// itself is load-bearing: it determines which opcode byte each macro gets,
// since a macro's control-store entry slot and its opcode are the same
// number (dispatch works by jamming the fetched opcode byte directly into
// MPC). Changing the order reassigns every opcode byte; the assembler's
// opcode table is built from this same pass, so the two can never drift
// apart, but any tool or test that hardcodes a numeric opcode would break.
func Build() Firmware {
	b := newBuilder()

	b.main()

	b.gotoMacro()
	b.jz("jzX", portX)
	b.jz("jzY", portY)
	b.jz("jzK", portK)

	b.addOrSub("addX", portX, true)
	b.addOrSub("addY", portY, true)
	b.addOrSub("subX", portX, false)
	b.addOrSub("subY", portY, false)
	b.subXY()

	b.setWord("setX", portX)
	b.setWord("setY", portY)

	b.movWord("movX", portX)
	b.movWord("movY", portY)

	b.multXY()
	b.divXY()

	b.incDec("add1X", alu.FuncAInc, portX, reg.WriteX)
	b.incDec("add1Y", alu.FuncAInc, portY, reg.WriteY)
	b.incDec("sub1X", alu.FuncBDec, portX, reg.WriteX)
	b.incDec("sub1Y", alu.FuncBDec, portY, reg.WriteY)

	b.setConst("set0X", alu.FuncZero, reg.WriteX)
	b.setConst("set1X", alu.FuncOne, reg.WriteX)
	b.setConst("setNeg1X", alu.FuncNegOne, reg.WriteX)

	b.shift1("mul2X", alu.ShiftLeft1, reg.WriteX)
	b.shift1("div2X", alu.ShiftRight1, reg.WriteX)
	b.div4X()
	b.div16X()

	b.andWord("andX", portX)
	b.andWord("andY", portY)

	b.isGreaterXY()

	b.halt()

	return Firmware{
		ControlStore: b.store,
		Opcodes:      b.opcodes,
		Arity:        b.arity,
		MoveSet:      b.moveSet,
	}
}
