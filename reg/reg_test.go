package reg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadPortMapping(t *testing.T) {
	r := New()
	r.MDR, r.PC, r.MBR, r.X, r.Y, r.H, r.K = 1, 2, 3, 4, 5, 6, 7

	for _, tt := range []struct {
		port int
		want uint32
	}{
		{PortMDR, 1},
		{PortPC, 2},
		{PortMBR, 3},
		{PortX, 4},
		{PortY, 5},
		{PortH, 6},
		{PortK, 7},
		{7, 0},
		{-1, 0},
	} {
		assert.Equal(t, tt.want, r.Read(tt.port), "port %d", tt.port)
	}
}

func TestWriteMaskZeroWritesNothing(t *testing.T) {
	r := New()
	r.X = 9
	r.Write(0, 100)
	assert.Equal(t, uint32(9), r.X)
}

func TestWriteMaskPriority(t *testing.T) {
	r := New()
	// every bit set: MAR must win, since it is the highest-priority target
	r.Write(WriteMAR|WriteMDR|WritePC|WriteX|WriteY|WriteH|WriteK, 42)
	assert.Equal(t, uint32(42), r.MAR)
	assert.Equal(t, uint32(0), r.MDR)

	r2 := New()
	r2.Write(WriteY|WriteH|WriteK, 7)
	assert.Equal(t, uint32(7), r2.Y)
	assert.Equal(t, uint32(0), r2.H)
	assert.Equal(t, uint32(0), r2.K)
}

func TestResetStateHasZSet(t *testing.T) {
	r := New()
	assert.True(t, r.Z)
	assert.False(t, r.N)
}
