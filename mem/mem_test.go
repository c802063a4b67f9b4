package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteByte(t *testing.T) {
	m := New()
	m.WriteByte(10, 0xAB)
	assert.Equal(t, byte(0xAB), m.ReadByte(10))
	assert.Equal(t, byte(0), m.ReadByte(11))
}

func TestOutOfRangeReadReturnsZero(t *testing.T) {
	m := New()
	assert.Equal(t, byte(0), m.ReadByte(1_000_000))
}

func TestOutOfRangeWriteGrows(t *testing.T) {
	m := New()
	m.WriteByte(10_000, 0x42)
	assert.Equal(t, byte(0x42), m.ReadByte(10_000))
}

func TestWordRoundTrip(t *testing.T) {
	m := New()
	for _, tt := range []struct {
		addr uint32
		v    uint32
	}{
		{0, 0},
		{4, 0xdeadbeef},
		{100, 1},
		{200, 0xffffffff},
	} {
		m.WriteWord(tt.addr, tt.v)
		assert.Equal(t, tt.v, m.ReadWord(tt.addr), "addr %d", tt.addr)
	}
}

func TestLittleEndianDecomposition(t *testing.T) {
	m := New()
	m.WriteWord(0, 0xdeadbeef)
	assert.Equal(t, byte(0xef), m.ReadByte(0))
	assert.Equal(t, byte(0xbe), m.ReadByte(1))
	assert.Equal(t, byte(0xad), m.ReadByte(2))
	assert.Equal(t, byte(0xde), m.ReadByte(3))
}

func TestByteMaskedTo8Bits(t *testing.T) {
	m := New()
	wide := 0x1FF
	m.WriteByte(0, byte(wide)) // truncated to 8 bits by the byte conversion
	assert.Equal(t, byte(0xFF), m.ReadByte(0))
}

func TestLoad(t *testing.T) {
	m := New()
	m.Load([]byte{1, 2, 3, 4})
	assert.Equal(t, byte(1), m.ReadByte(0))
	assert.Equal(t, byte(4), m.ReadByte(3))
	assert.Equal(t, byte(0), m.ReadByte(4))
}
