// Package alu implements the combinational ALU/shifter: a pure function of
// a 6-bit FUNC field, a 2-bit SHIFT field and two 32-bit operands, updating
// the N/Z condition flags as a side effect. The FUNC decode table is
// reproduced from the original ALU's f0/f1/enA/enB/invA/inc control bits
// verbatim (components/alu.py), re-expressed as a Go switch over named
// constants instead of the bit-twiddling reconstruction the original
// performs, since every one of the 16 legal rows is known in advance.
package alu

import "fmt"

// Func identifies one of the sixteen legal ALU operations by its 6-bit
// control-bit pattern (f0 f1 enA enB invA inc, MSB first). FUNC == 0 means
// the ALU is inactive for this tick: C and the flags are left untouched.
type Func byte

// The complete FUNC decode table, named after the result each pattern
// produces.
const (
	FuncZero   Func = 0b010000 // 0
	FuncA      Func = 0b011000 // A
	FuncB      Func = 0b010100 // B
	FuncNotA   Func = 0b011010 // ¬A
	FuncNotB   Func = 0b101100 // ¬B
	FuncSum    Func = 0b111100 // A + B
	FuncSumC   Func = 0b111101 // A + B + 1
	FuncAInc   Func = 0b111001 // A + 1
	FuncBInc   Func = 0b110101 // B + 1
	FuncBSubA  Func = 0b111111 // B - A
	FuncBDec   Func = 0b110110 // B - 1
	FuncNegA   Func = 0b111011 // -A
	FuncAndAB  Func = 0b001100 // A AND B
	FuncOrAB   Func = 0b011100 // A OR B
	FuncOne    Func = 0b110001 // 1
	FuncNegOne Func = 0b110010 // -1
)

// Shift identifies the post-function shift applied to the ALU result.
type Shift byte

const (
	ShiftNone   Shift = 0b00 // passthrough
	ShiftLeft1  Shift = 0b01 // arithmetic left 1 (x2)
	ShiftRight1 Shift = 0b10 // arithmetic right 1 (/2)
	ShiftLeft8  Shift = 0b11 // left 8
)

// ErrInvalidFunc reports a FUNC value outside the documented decode table
// while the ALU is enabled (FUNC != 0). It is fatal: the caller should treat
// it as an illegal microinstruction, per spec.
type ErrInvalidFunc struct {
	Func Func
}

func (e ErrInvalidFunc) Error() string {
	return fmt.Sprintf("alu: invalid function code %#08b", byte(e.Func))
}

// Result is the outcome of one ALU.Operate call: the 32-bit result (after
// shifting) plus the N/Z flags, computed on the pre-shift value.
type Result struct {
	Value uint32
	N     bool
	Z     bool
}

// Operate evaluates fn/shift against a and b and derives N/Z from the
// pre-shift result. FUNC == 0 is handled by the caller: the microengine
// skips calling Operate entirely that tick, since the ALU is inactive and
// C/flags must be left untouched.
func Operate(fn Func, shift Shift, a, b uint32) (Result, error) {
	var pre uint32

	switch fn {
	case FuncA:
		pre = a
	case FuncB:
		pre = b
	case FuncNotA:
		pre = ^a
	case FuncNotB:
		pre = ^b
	case FuncSum:
		pre = a + b
	case FuncSumC:
		pre = a + b + 1
	case FuncAInc:
		pre = a + 1
	case FuncBInc:
		pre = b + 1
	case FuncBSubA:
		pre = b - a
	case FuncBDec:
		pre = b - 1
	case FuncNegA:
		pre = uint32(-int32(a))
	case FuncAndAB:
		pre = a & b
	case FuncOrAB:
		pre = a | b
	case FuncZero:
		pre = 0
	case FuncOne:
		pre = 1
	case FuncNegOne:
		pre = ^uint32(0)
	default:
		return Result{}, ErrInvalidFunc{Func: fn}
	}

	res := Result{
		N: pre != 0,
		Z: pre == 0,
	}

	switch shift {
	case ShiftLeft8:
		res.Value = pre << 8
	case ShiftLeft1:
		res.Value = uint32(int32(pre) << 1)
	case ShiftRight1:
		res.Value = uint32(int32(pre) >> 1)
	default:
		res.Value = pre
	}

	return res, nil
}
