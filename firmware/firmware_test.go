package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodesAssigned(t *testing.T) {
	fw := Build()

	for _, name := range []string{
		"goto", "jzX", "jzY", "jzK",
		"addX", "addY", "subX", "subY", "subXY",
		"setX", "setY", "movX", "movY",
		"multXY", "divXY",
		"add1X", "add1Y", "sub1X", "sub1Y",
		"set0X", "set1X", "setNeg1X",
		"mul2X", "div2X", "div4X", "div16X",
		"andX", "andY", "isGreaterXY", "halt",
	} {
		_, ok := fw.Opcodes[name]
		assert.True(t, ok, "missing opcode for %s", name)
	}

	assert.Equal(t, byte(255), fw.Opcodes["halt"])
	assert.True(t, fw.MoveSet["goto"])
	assert.True(t, fw.MoveSet["jzX"])
	assert.False(t, fw.MoveSet["addX"])
	assert.Equal(t, 1, fw.Arity["addX"])
	assert.Equal(t, 0, fw.Arity["subXY"])

	// Build's emission order decides every opcode byte; pin them so that a
	// reordered or resized macro shows up here.
	for name, want := range map[string]byte{
		"goto": 1, "jzX": 3, "jzY": 5, "jzK": 7,
		"addX": 9, "addY": 13, "subX": 17, "subY": 21, "subXY": 25,
		"setX": 26, "setY": 30, "movX": 34, "movY": 38,
		"multXY": 42, "divXY": 46,
		"add1X": 56, "add1Y": 57, "sub1X": 58, "sub1Y": 59,
		"set0X": 60, "set1X": 61, "setNeg1X": 62,
		"mul2X": 63, "div2X": 64, "div4X": 65, "div16X": 67,
		"andX": 71, "andY": 75, "isGreaterXY": 79,
	} {
		assert.Equal(t, want, fw.Opcodes[name], "opcode byte for %s", name)
	}
}

func TestOpcodeBytesAreUnique(t *testing.T) {
	fw := Build()
	seen := make(map[byte]string)
	for name, op := range fw.Opcodes {
		if other, dup := seen[op]; dup {
			t.Fatalf("opcode %d assigned to both %s and %s", op, other, name)
		}
		seen[op] = name
	}
}

func TestMainDispatchesOnOpcodeByte(t *testing.T) {
	fw := Build()
	w := Decode(fw.ControlStore[0])
	assert.Equal(t, JamVector, w.Jam)
	assert.Equal(t, uint16(0), w.Next)
	assert.Equal(t, MemFetchByte, w.Mem)
}

func TestJzReusesGotoEntry(t *testing.T) {
	fw := Build()
	jzSlot := fw.Opcodes["jzX"]
	cmp := Decode(fw.ControlStore[jzSlot])
	require.Equal(t, JamZ, cmp.Jam)

	taken := Decode(fw.ControlStore[uint16(cmp.Next)+256])
	assert.Equal(t, uint16(fw.Opcodes["goto"]), taken.Next)
}

// macroReachesMain explores every JAM branch reachable from start (via
// plain next-chaining and via both halves of a Z/N jam) and reports
// whether a terminal NEXT==0/JAM==0 microinstruction is reachable.
// Revisiting a slot is expected: a loop body's back edge is a genuine
// cycle whose exit depends on runtime register state, not a structural
// bug, so the walk simply memoizes rather than failing on a repeat.
func macroReachesMain(t *testing.T, fw Firmware, start uint16, budget int) bool {
	t.Helper()
	visited := map[uint16]bool{}
	reached := false
	var walk func(slot uint16)
	walk = func(slot uint16) {
		if visited[slot] {
			return
		}
		visited[slot] = true
		if len(visited) > budget {
			t.Fatalf("macro at entry %d touches more than %d slots; runaway control graph", start, budget)
		}

		w := Decode(fw.ControlStore[slot])
		if w.Next == 0 && w.Jam == JamNone {
			reached = true
			return
		}
		switch w.Jam {
		case JamNone:
			walk(w.Next)
		case JamZ, JamN:
			walk(w.Next)
			walk(w.Next + 256)
		case JamVector:
			t.Fatalf("unexpected vectored jam inside macro at entry %d (slot %d)", start, slot)
		}
	}
	walk(start)
	return reached
}

func TestMacrosReturnToMain(t *testing.T) {
	fw := Build()
	for name, entry := range fw.Opcodes {
		if name == "halt" {
			continue
		}
		assert.True(t, macroReachesMain(t, fw, uint16(entry), 32), "macro %s never reaches main", name)
	}
}

func TestHaltSlotIsAllZero(t *testing.T) {
	fw := Build()
	assert.Equal(t, uint64(0), fw.ControlStore[255])
}
