// Package mem implements the flat byte-addressed memory that backs the
// microarchitecture: a single growable array of bytes, word-addressed in
// 4-byte little-endian groups. There is no division or mirroring of the
// address space, in the same spirit as the teacher's single-Bus FakeRam
// model, but unlike FakeRam the backing store here grows on demand instead
// of being fixed at 64kB, since macro images are not bounded to that size.
package mem

import "mic1/mask"

// initialSize is large enough to hold any macro image produced by the
// assembler's worked examples without reallocating.
const initialSize = 4096

// Memory is a flat mapping from a 32-bit byte address to an 8-bit value.
type Memory struct {
	bytes []byte
}

// New returns a zeroed Memory of at least initialSize bytes.
func New() *Memory {
	return &Memory{bytes: make([]byte, initialSize)}
}

// ReadByte returns the byte at addr, or 0 if addr falls outside the current
// backing store.
func (m *Memory) ReadByte(addr uint32) byte {
	if int(addr) >= len(m.bytes) {
		return 0
	}
	return m.bytes[addr]
}

// WriteByte stores v&0xFF at addr, growing the backing store if addr is
// beyond its current length. Out-of-range writes are never rejected.
func (m *Memory) WriteByte(addr uint32, v byte) {
	m.grow(addr)
	m.bytes[addr] = v
}

// ReadWord reads the little-endian 32-bit word starting at addr. Word
// access is byte-addressed; no alignment is enforced.
func (m *Memory) ReadWord(addr uint32) uint32 {
	return mask.Word32(
		m.ReadByte(addr),
		m.ReadByte(addr+1),
		m.ReadByte(addr+2),
		m.ReadByte(addr+3),
	)
}

// WriteWord spreads v across 4 successive bytes starting at addr,
// little-endian.
func (m *Memory) WriteWord(addr uint32, v uint32) {
	b0, b1, b2, b3 := mask.SplitWord32(v)
	m.WriteByte(addr, b0)
	m.WriteByte(addr+1, b1)
	m.WriteByte(addr+2, b2)
	m.WriteByte(addr+3, b3)
}

// Load copies image into memory starting at address 0, growing the backing
// store as needed. It is the only bulk-loading primitive this package
// exposes; reading the image from a file path is the out-of-scope driver's
// job.
func (m *Memory) Load(image []byte) {
	if len(image) == 0 {
		return
	}
	m.grow(uint32(len(image) - 1))
	copy(m.bytes, image)
}

func (m *Memory) grow(addr uint32) {
	if int(addr) < len(m.bytes) {
		return
	}
	grown := make([]byte, addr+1)
	copy(grown, m.bytes)
	m.bytes = grown
}
