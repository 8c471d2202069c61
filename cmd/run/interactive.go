package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/engine"
	"github.com/wippyai/stackvm/errors"
	"github.com/wippyai/stackvm/runtime"
)

// debuggerRunLimit caps "run to halt" when the config sets no step limit.
const debuggerRunLimit = 100000

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	operandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

type debuggerModel struct {
	err      error
	runner   *runtime.Runner
	machine  *engine.Machine
	filename string
	status   string
	prog     bytecode.Program
	input    textinput.Model
	steps    int
	entering bool
}

func newDebuggerModel(filename string, prog bytecode.Program, runner *runtime.Runner) *debuggerModel {
	ti := textinput.New()
	ti.Placeholder = "steps"
	ti.Prompt = "run n: "
	ti.CharLimit = 9
	ti.Width = 12

	return &debuggerModel{
		runner:   runner,
		machine:  runner.NewMachine(prog),
		filename: filename,
		prog:     prog,
		input:    ti,
	}
}

func (m *debuggerModel) Init() tea.Cmd {
	return nil
}

func (m *debuggerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.entering {
		switch key.String() {
		case "enter":
			m.entering = false
			m.input.Blur()
			raw := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				m.status = fmt.Sprintf("not a step count: %q", raw)
				return m, nil
			}
			m.stepN(n)
			return m, nil
		case "esc":
			m.entering = false
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", " ":
		m.stepN(1)
	case "r":
		m.runToEnd()
	case "n":
		if m.canStep() {
			m.entering = true
			return m, m.input.Focus()
		}
	case "x":
		m.reset()
	}
	return m, nil
}

func (m *debuggerModel) canStep() bool {
	return m.err == nil && !m.machine.Halted()
}

func (m *debuggerModel) stepN(n int) {
	if !m.canStep() {
		m.status = "machine stopped, press x to reset"
		return
	}
	for i := 0; i < n && !m.machine.Halted(); i++ {
		if err := m.machine.Step(); err != nil {
			m.err = err
			break
		}
		m.steps++
	}
	m.status = ""
}

func (m *debuggerModel) runToEnd() {
	if !m.canStep() {
		m.status = "machine stopped, press x to reset"
		return
	}
	cfg := m.runner.Config()
	if cfg.StepLimit == 0 {
		cfg.StepLimit = debuggerRunLimit
	}
	res, err := runtime.NewRunner(cfg).RunMachine(context.Background(), m.machine)
	m.steps += res.Steps
	m.status = ""
	if res.Fault.IsFault() {
		m.err = err
	} else if err != nil {
		m.status = err.Error()
	}
}

func (m *debuggerModel) reset() {
	m.machine = m.runner.NewMachine(m.prog)
	m.err = nil
	m.steps = 0
	m.status = "reset"
}

func (m *debuggerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stack VM Debugger"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.programView()),
		" ",
		panelStyle.Render(m.stackView()),
	))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "pc %d • steps %d • ", m.machine.PC(), m.steps)
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s: %v", errors.KindOf(m.err), m.err)))
	case m.machine.Halted():
		b.WriteString(resultStyle.Render("halted"))
	default:
		b.WriteString("running")
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.entering {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter run • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("s/space step • n run n steps • r run • x reset • q quit"))
	}

	return b.String()
}

func (m *debuggerModel) programView() string {
	var b strings.Builder
	b.WriteString("Instructions\n")
	prog := m.machine.Program()
	if len(prog) == 0 {
		b.WriteString("  empty")
	}
	for i, in := range prog {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == m.machine.PC() && !m.machine.Halted() {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %4d  %-10s %d", i, in.Opcode, in.Operand)))
			continue
		}
		b.WriteString("  " + opStyle.Render(fmt.Sprintf("%4d  %-10s", i, in.Opcode)))
		if in.Opcode.HasOperand() {
			b.WriteString(" " + operandStyle.Render(strconv.Itoa(int(in.Operand))))
		}
	}
	return b.String()
}

func (m *debuggerModel) stackView() string {
	var b strings.Builder
	b.WriteString("Stack")
	stack := m.machine.Stack()
	if len(stack) == 0 {
		b.WriteString("\n  empty")
	}
	for i := len(stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "\n%4d: %d", i, stack[i])
	}
	return b.String()
}

func runInteractive(opts options, cfg runtime.Config, logger *zap.Logger) error {
	prog, err := loadProgram(opts, cfg)
	if err != nil {
		return err
	}
	// The TUI owns the terminal; step tracing would corrupt it.
	runner := runtime.NewRunner(cfg, runtime.WithLogger(logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))))

	p := tea.NewProgram(newDebuggerModel(opts.input, prog, runner), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
