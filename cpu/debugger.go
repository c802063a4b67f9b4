package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"mic1/firmware"
)

// model is the bubbletea state for the microcode-level inspector: a CPU
// stepped one tick at a time, with the register file, the decoded current
// microinstruction and a window of the memory image all on screen at once.
type model struct {
	cpu *CPU

	prevMPC uint16
	err     error
}

// Init performs no setup beyond what New already did; the program is
// loaded before Debug starts the program.
func (m model) Init() tea.Cmd {
	return nil
}

// Update advances the microengine by one tick per keypress, so a single
// "j"/space press is exactly one Step, not one macro or one instruction.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevMPC = m.cpu.Regs.MPC
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if m.cpu.Halted() {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) renderMemoryPage(start uint32) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint32(0); i < 16; i++ {
		b := m.cpu.Mem.ReadByte(start + i)
		if start+i == m.cpu.Regs.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) memoryWindow() string {
	header := "addr | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}
	base := (m.cpu.Regs.PC / 16) * 16
	for p := 0; p < 3; p++ {
		lines = append(lines, m.renderMemoryPage(base+uint32(p*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.cpu.Regs
	return fmt.Sprintf(`
MPC: %03d (was %03d)
 PC: %08x   MAR: %08x
MDR: %08x   MBR: %08x
  X: %08x     Y: %08x
  H: %08x     K: %08x
  N: %v  Z: %v
halted: %v
`,
		r.MPC, m.prevMPC,
		r.PC, r.MAR,
		r.MDR, r.MBR,
		r.X, r.Y,
		r.H, r.K,
		r.N, r.Z,
		m.cpu.Halted(),
	)
}

// View renders the window, the register file and the decoded
// microinstruction the CPU is about to execute.
func (m model) View() string {
	next := firmware.Decode(m.cpu.fw.ControlStore[m.cpu.Regs.MPC])
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.memoryWindow(),
			m.status(),
		),
		"",
		spew.Sdump(next),
	)
}

// Debug starts an interactive, tick-at-a-time TUI over an already-built
// CPU. Press space or j to step one microinstruction, q to quit.
func Debug(c *CPU) {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		panic(err)
	}
	if x, ok := m.(model); ok && x.err != nil {
		fmt.Println("Error:", x.err)
	}
}
