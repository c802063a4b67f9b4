// Package bus implements the three latches that connect the register file
// to the ALU within one tick: A and B are loaded from register read ports,
// the ALU reads A and B and drives C, and the register file is written from
// C. The latches carry no behavior of their own beyond holding a value for
// the duration of a tick, in the same spirit as the teacher's Bus type,
// which is likewise a thin struct connecting otherwise independent
// components.
package bus

// Bus holds the A, B and C latches for a single tick. There is no ordering
// hazard within a tick: A and B are always written before the ALU reads
// them, and C is always written before the register file reads it.
type Bus struct {
	A uint32
	B uint32
	C uint32
}
