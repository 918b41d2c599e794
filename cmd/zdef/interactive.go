package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/zdef/ffi"
)

const maxHistory = 8

type entry struct {
	input  string
	output string
	diags  string
}

type interactiveModel struct {
	err     error
	engine  *ffi.Engine
	render  *renderer
	file    string
	loaded  string
	history []entry
	input   textinput.Model
}

type loadedMsg struct {
	err    error
	output string
}

func newInteractiveModel(engine *ffi.Engine, file string, wit bool) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "[*:0]const u8  or  fn acos(value: f64) f64;"
	ti.Prompt = "zdef> "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		engine: engine,
		render: newRenderer(engine.PointerSize(), true, wit),
		file:   file,
		input:  ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	if m.file == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.loadFile)
}

func (m *interactiveModel) loadFile() tea.Msg {
	src, err := os.ReadFile(m.file)
	if err != nil {
		return loadedMsg{err: err}
	}
	descs, _ := m.engine.ParseUnit(string(src), m.file)
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return loadedMsg{output: fmt.Sprintf("loaded %d declarations: %s", len(descs), strings.Join(names, ", "))}
}

// isDeclaration reports whether text is a full statement rather than a
// bare type expression.
func isDeclaration(text string) bool {
	t := strings.TrimSpace(text)
	for _, kw := range []string{"const ", "var ", "pub ", "fn ", "extern \"", "extern fn"} {
		if strings.HasPrefix(t, kw) {
			return true
		}
	}
	return strings.HasSuffix(t, ";")
}

func (m *interactiveModel) eval(text string) entry {
	mark := len(m.engine.Diagnostics())
	e := entry{input: text}

	if isDeclaration(text) {
		descs, _ := m.engine.ParseUnit(text, "<input>")
		var outs []string
		for _, d := range descs {
			outs = append(outs, m.render.descriptor(d))
		}
		e.output = strings.Join(outs, "\n")
	} else if d, _ := m.engine.ParseTypeExpression(text); d != nil {
		e.output = m.render.descriptor(d)
	}

	if diags := m.engine.Diagnostics(); len(diags) > mark {
		e.diags = m.render.diagnostics(diags[mark:])
	}
	return e
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.history = append(m.history, m.eval(text))
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			m.input.SetValue("")
			return m, nil

		case "ctrl+l":
			m.history = nil
			return m, nil
		}

	case loadedMsg:
		m.err = msg.err
		m.loaded = msg.output
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("zdef"))
	fmt.Fprintf(&b, " pointer size %d\n", m.engine.PointerSize())
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	} else if m.loaded != "" {
		b.WriteString(helpStyle.Render(m.loaded))
		b.WriteByte('\n')
	}
	if syms := m.engine.Symbols().Symbols(); len(syms) > 0 {
		names := make([]string, len(syms))
		for i, s := range syms {
			names[i] = s.Name
		}
		b.WriteString(helpStyle.Render("structs: " + strings.Join(names, ", ")))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for _, e := range m.history {
		b.WriteString(nameStyle.Render("> " + e.input))
		b.WriteByte('\n')
		if e.output != "" {
			b.WriteString(e.output)
		}
		if e.diags != "" {
			b.WriteString(e.diags)
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	s := m.engine.Stats()
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"enter resolve • ctrl+l clear • esc quit    parses %d, cache hits %d, diagnostics %d",
		s.Parses, s.CacheHits, s.Diagnostics)))
	return b.String()
}

func runInteractive(engine *ffi.Engine, file string, wit bool) error {
	p := tea.NewProgram(newInteractiveModel(engine, file, wit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
