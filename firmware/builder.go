package firmware

import (
	"mic1/alu"
	"mic1/reg"
)

// mainSlot is the fetch/dispatch microinstruction: every macro chain
// returns here, and it is the only slot whose JAM vectors on the opcode
// byte fetched into MBR.
const mainSlot = 0

// haltSlot holds the all-zero word. Landing here with NEXT=0, JAM=0 is
// indistinguishable from "keep re-running slot 0 forever", so cpu.CPU.Step
// recognizes haltSlot itself as the stop condition rather than relying on
// the all-zero encoding.
const haltSlot = 255

// Builder lays out the control store one macro at a time. Slots are handed
// out sequentially starting just past mainSlot; a macro's entry slot is
// also its opcode byte, since JamVector dispatches by ORing the fetched
// opcode directly into MPC. Conditional branches use the upper half of the
// 9-bit MPC space (slot+256) for their taken path, following the same
// convention the control store itself uses for jam bits.
type Builder struct {
	store   [512]uint64
	cursor  uint16
	opcodes map[string]byte
	arity   map[string]int
	moveSet map[string]bool

	gotoEntry uint16 // goto's entry slot, reused by jzX/jzY/jzK's taken branch
}

func newBuilder() *Builder {
	b := &Builder{
		cursor:  1, // slot 0 is main
		opcodes: make(map[string]byte),
		arity:   make(map[string]int),
		moveSet: make(map[string]bool),
	}
	return b
}

// newMacro reserves the next free slot as name's entry point/opcode byte
// and records its calling convention.
func (b *Builder) newMacro(name string, arity int, moveSet bool) uint16 {
	if b.cursor == 0 || b.cursor >= haltSlot {
		panic("firmware: control store exhausted before " + name)
	}
	slot := b.cursor
	b.opcodes[name] = byte(slot)
	b.arity[name] = arity
	b.moveSet[name] = moveSet
	return slot
}

// emit writes w at the current cursor and advances it by one slot,
// returning the slot w was written to.
func (b *Builder) emit(w Word) uint16 {
	slot := b.cursor
	b.store[slot] = w.Encode()
	b.cursor++
	return slot
}

// emitConditional writes notTaken at the current cursor and taken at
// cursor+256, the pair a one-bit JAM (JamZ or JamN) selects between. The
// comparator instruction that jams into this pair is written separately,
// with its own Next set to the slot emitConditional is about to claim.
func (b *Builder) emitConditional(notTaken, taken Word) uint16 {
	slot := b.cursor
	if slot >= haltSlot {
		panic("firmware: conditional fallthrough slot must precede the halt slot")
	}
	b.store[slot] = notTaken.Encode()
	b.store[uint16(slot)+256] = taken.Encode()
	b.cursor++
	return slot
}

// main installs the fetch/dispatch microinstruction at slot 0: PC <- PC+1,
// fetch the opcode byte at the new PC into MBR, and jam the opcode directly
// into MPC, dispatching straight into the matching macro's entry slot.
func (b *Builder) main() {
	b.store[mainSlot] = Word{
		Func:  alu.FuncBInc,
		BPort: portPC,
		WMask: reg.WritePC,
		Mem:   MemFetchByte,
		Jam:   JamVector,
		Next:  0,
	}.Encode()
}
