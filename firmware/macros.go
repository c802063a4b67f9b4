package firmware

import (
	"mic1/alu"
	"mic1/reg"
)

// fetchArg consumes the one argument byte following an opcode: PC advances
// past the opcode to point at the argument, and the argument itself lands
// in MBR. Every 1-argument macro starts here; returning to main afterward
// (directly or via further steps) lets main's own PC+1 land it on the
// following opcode, for a total two-byte advance per dispatch.
func fetchArg(next uint16) Word {
	return Word{Func: alu.FuncBInc, BPort: portPC, WMask: reg.WritePC, Mem: MemFetchByte, Next: next}
}

// scaleStep1 and scaleStep2 turn the word-index argument the assembler
// encoded (byte offset / 4, see asm) back into the byte address the memory
// component expects, by doubling twice through the scratch register H. The second
// step can fold in a memory operation against the freshly written address,
// since register writes are visible to the same tick's memory port.
func scaleStep1(next uint16) Word {
	return Word{Func: alu.FuncB, BPort: portMBR, Shift: alu.ShiftLeft1, WMask: reg.WriteH, Next: next}
}

func scaleStep2(next uint16, m Mem) Word {
	return Word{Func: alu.FuncA, APort: portH, Shift: alu.ShiftLeft1, WMask: reg.WriteMAR, Mem: m, Next: next}
}

// gotoMacro implements the move-set unconditional jump: PC <- the byte at
// PC+1, taken directly (no /4 scaling: move-set arguments are raw byte
// offsets). Landing PC one below the target and returning to main lets
// main's own PC+1 put the fetch exactly on the target opcode, the same
// trick the reserved entry byte plays for the very first dispatch.
func (b *Builder) gotoMacro() {
	base := b.newMacro("goto", 1, true)
	b.gotoEntry = base
	b.emit(fetchArg(base + 1))
	b.emit(Word{Func: alu.FuncBDec, BPort: portMBR, WMask: reg.WritePC, Next: 0})
}

func (b *Builder) jz(name string, port int) {
	base := b.newMacro(name, 1, true)
	b.emit(Word{Func: alu.FuncB, BPort: port, Jam: JamZ, Next: base + 1})
	b.emitConditional(
		Word{Func: alu.FuncBInc, BPort: portPC, WMask: reg.WritePC, Next: 0}, // not taken: skip the argument, return to main
		Word{Next: b.gotoEntry},                                             // taken: reuse goto's fetch-and-jump
	)
}

func (b *Builder) addOrSub(name string, port int, isAdd bool) {
	base := b.newMacro(name, 1, false)
	b.emit(fetchArg(base + 1))
	b.emit(scaleStep1(base + 2))
	b.emit(scaleStep2(base+3, MemReadWord))
	fn := alu.FuncBSubA
	a, bp := portMDR, port
	if isAdd {
		fn = alu.FuncSum
		a, bp = port, portMDR
	}
	wmask := byte(reg.WriteX)
	if port == portY {
		wmask = reg.WriteY
	}
	b.emit(Word{Func: fn, APort: a, BPort: bp, WMask: wmask, Next: 0})
}

func (b *Builder) subXY() {
	b.newMacro("subXY", 0, false)
	b.emit(Word{Func: alu.FuncBSubA, APort: portY, BPort: portX, WMask: reg.WriteX, Next: 0})
}

func (b *Builder) setWord(name string, port int) {
	base := b.newMacro(name, 1, false)
	b.emit(fetchArg(base + 1))
	b.emit(scaleStep1(base + 2))
	b.emit(scaleStep2(base+3, MemReadWord))
	wmask := byte(reg.WriteX)
	if port == portY {
		wmask = reg.WriteY
	}
	b.emit(Word{Func: alu.FuncB, BPort: portMDR, WMask: wmask, Next: 0})
}

func (b *Builder) movWord(name string, port int) {
	base := b.newMacro(name, 1, false)
	b.emit(fetchArg(base + 1))
	b.emit(scaleStep1(base + 2))
	b.emit(scaleStep2(base+3, MemNone))
	b.emit(Word{Func: alu.FuncB, BPort: port, WMask: reg.WriteMDR, Mem: MemWriteWord, Next: 0})
}

func (b *Builder) andWord(name string, port int) {
	base := b.newMacro(name, 1, false)
	b.emit(fetchArg(base + 1))
	b.emit(scaleStep1(base + 2))
	b.emit(scaleStep2(base+3, MemReadWord))
	b.emit(Word{Func: alu.FuncAndAB, APort: port, BPort: portMDR, WMask: reg.WriteK, Next: 0})
}

// multXY computes X <- X*Y by repeated addition into a scratch accumulator
// H, decrementing Y to zero, then moving the accumulator into X.
func (b *Builder) multXY() {
	base := b.newMacro("multXY", 0, false)
	b.emit(Word{Func: alu.FuncZero, WMask: reg.WriteH, Next: base + 1})
	b.emit(Word{Func: alu.FuncB, BPort: portY, Jam: JamZ, Next: base + 2})
	b.emitConditional(
		Word{Func: alu.FuncSum, APort: portH, BPort: portX, WMask: reg.WriteH, Next: base + 3},
		Word{Func: alu.FuncB, BPort: portH, WMask: reg.WriteX, Next: 0},
	)
	b.emit(Word{Func: alu.FuncBDec, BPort: portY, WMask: reg.WriteY, Next: base + 1})
}

// divXY computes X <- X div Y and K <- X mod Y by a paired-decrement
// comparison (there is no sign flag to test X<Y directly, only Z/N on a
// single ALU result) driving ordinary repeated subtraction. Y == 0 halts
// rather than erroring: division by zero is a program bug the machine
// stops on, not a host-level fault.
func (b *Builder) divXY() {
	base := b.newMacro("divXY", 0, false)
	b.emit(Word{Func: alu.FuncB, BPort: portY, Jam: JamZ, Next: base + 1})
	b.emitConditional(
		Word{Func: alu.FuncZero, WMask: reg.WriteH, Next: base + 2},
		Word{Next: haltSlot},
	)
	b.emit(Word{Func: alu.FuncZero, WMask: reg.WriteK, Next: base + 3})
	b.emit(Word{Func: alu.FuncBSubA, APort: portK, BPort: portY, Jam: JamZ, Next: base + 4})
	b.emitConditional(
		Word{Func: alu.FuncBSubA, APort: portK, BPort: portX, Jam: JamZ, Next: base + 5},
		Word{Next: base + 6},
	)
	b.emitConditional(
		Word{Func: alu.FuncAInc, APort: portK, WMask: reg.WriteK, Next: base + 3},
		Word{Next: base + 8},
	)
	b.emit(Word{Func: alu.FuncBSubA, APort: portY, BPort: portX, WMask: reg.WriteX, Next: base + 7})
	b.emit(Word{Func: alu.FuncAInc, APort: portH, WMask: reg.WriteH, Next: base + 2})
	b.emit(Word{Func: alu.FuncB, BPort: portX, WMask: reg.WriteK, Next: base + 9})
	b.emit(Word{Func: alu.FuncB, BPort: portH, WMask: reg.WriteX, Next: 0})
}

func (b *Builder) incDec(name string, fn alu.Func, port int, wmask byte) {
	b.newMacro(name, 0, false)
	b.emit(Word{Func: fn, APort: port, BPort: port, WMask: wmask, Next: 0})
}

func (b *Builder) setConst(name string, fn alu.Func, wmask byte) {
	b.newMacro(name, 0, false)
	b.emit(Word{Func: fn, WMask: wmask, Next: 0})
}

func (b *Builder) shift1(name string, s alu.Shift, wmask byte) {
	b.newMacro(name, 0, false)
	b.emit(Word{Func: alu.FuncA, APort: portX, Shift: s, WMask: wmask, Next: 0})
}

func (b *Builder) div4X() {
	base := b.newMacro("div4X", 0, false)
	b.emit(Word{Func: alu.FuncA, APort: portX, Shift: alu.ShiftRight1, WMask: reg.WriteH, Next: base + 1})
	b.emit(Word{Func: alu.FuncA, APort: portH, Shift: alu.ShiftRight1, WMask: reg.WriteX, Next: 0})
}

func (b *Builder) div16X() {
	base := b.newMacro("div16X", 0, false)
	b.emit(Word{Func: alu.FuncA, APort: portX, Shift: alu.ShiftRight1, WMask: reg.WriteH, Next: base + 1})
	b.emit(Word{Func: alu.FuncA, APort: portH, Shift: alu.ShiftRight1, WMask: reg.WriteX, Next: base + 2})
	b.emit(Word{Func: alu.FuncA, APort: portX, Shift: alu.ShiftRight1, WMask: reg.WriteH, Next: base + 3})
	b.emit(Word{Func: alu.FuncA, APort: portH, Shift: alu.ShiftRight1, WMask: reg.WriteX, Next: 0})
}

// isGreaterXY sets X to 1 if X >= Y, 0 otherwise (equal counts as greater,
// per the Design Notes decision), by decrementing both operands in lockstep
// until one hits zero.
func (b *Builder) isGreaterXY() {
	base := b.newMacro("isGreaterXY", 0, false)
	b.emit(Word{Func: alu.FuncB, BPort: portX, Jam: JamZ, Next: base + 1})
	b.emitConditional(
		Word{Func: alu.FuncB, BPort: portY, Jam: JamZ, Next: base + 2},
		Word{Func: alu.FuncB, BPort: portY, Jam: JamZ, Next: base + 4},
	)
	b.emitConditional(
		Word{Func: alu.FuncBDec, BPort: portX, WMask: reg.WriteX, Next: base + 3},
		Word{Func: alu.FuncOne, WMask: reg.WriteX, Next: 0},
	)
	b.emit(Word{Func: alu.FuncBDec, BPort: portY, WMask: reg.WriteY, Next: base})
	b.emitConditional(
		Word{Func: alu.FuncZero, WMask: reg.WriteX, Next: 0},
		Word{Func: alu.FuncOne, WMask: reg.WriteX, Next: 0},
	)
}

func (b *Builder) halt() {
	b.opcodes["halt"] = haltSlot
	b.arity["halt"] = 0
	b.moveSet["halt"] = false
}
