package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/schema"
	"github.com/wippyai/axdr/sequence"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	byteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateSpans
)

type inspectModel struct {
	err      error
	schema   *sequence.Schema
	name     string
	payload  []byte
	spans    []sequence.Span
	input    textinput.Model
	selected int
	consumed int
	state    modelState
}

type decodedMsg struct {
	err      error
	payload  []byte
	spans    []sequence.Span
	consumed int
}

func newInspectModel(s *sequence.Schema, name, initial string) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "hex payload, e.g. 00003039ff"
	ti.Prompt = "payload: "
	ti.Width = 64
	ti.SetValue(initial)
	ti.Focus()
	return &inspectModel{
		schema: s,
		name:   name,
		input:  ti,
		state:  stateInput,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	if m.input.Value() != "" {
		return m.decodeInput
	}
	return textinput.Blink
}

func (m *inspectModel) decodeInput() tea.Msg {
	return decodePayload(m.schema, m.input.Value())
}

// decodePayload decodes hex text against s and collects field spans.
func decodePayload(s *sequence.Schema, text string) decodedMsg {
	payload, ok := sequence.CoerceBytes(text)
	if !ok {
		return decodedMsg{err: errors.New("payload is not valid hex")}
	}
	c := codec.AcquireCursor(payload)
	defer c.Release()
	_, spans, err := s.DecodeSpans(c)
	return decodedMsg{
		err:      err,
		payload:  payload,
		spans:    spans,
		consumed: c.Position(),
	}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateSpans {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSpans && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSpans && m.selected < len(m.spans)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			if m.state == stateInput {
				return m, m.decodeInput
			}

		case "esc":
			if m.state == stateSpans {
				m.state = stateInput
				m.input.Focus()
				return m, nil
			}
		}

	case decodedMsg:
		m.err = msg.err
		m.payload = msg.payload
		m.spans = msg.spans
		m.consumed = msg.consumed
		m.selected = 0
		if msg.payload != nil {
			m.state = stateSpans
			m.input.Blur()
		}
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("A-XDR Inspector"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("enter decode • ctrl+c quit"))

	case stateSpans:
		b.WriteString(m.hexView())
		b.WriteString("\n\n")
		for i, sp := range m.spans {
			line := formatSpan(sp)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		} else if rest := len(m.payload) - m.consumed; rest > 0 {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("%d trailing bytes at offset %d", rest, m.consumed)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • esc edit payload • q quit"))
	}

	return b.String()
}

// hexView renders the payload with the selected span highlighted.
func (m *inspectModel) hexView() string {
	start, end := -1, -1
	if m.selected < len(m.spans) {
		start, end = m.spans[m.selected].Start, m.spans[m.selected].End
	}
	var b strings.Builder
	for i, by := range m.payload {
		if i > 0 {
			if i%16 == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		cell := hex.EncodeToString([]byte{by})
		if i >= start && i < end {
			cell = byteStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

func formatSpan(sp sequence.Span) string {
	return fmt.Sprintf("%04d..%04d %s %s = %s",
		sp.Start, sp.End,
		pathStyle.Render(sp.Path),
		kindStyle.Render(sp.Kind.String()),
		schema.FormatValue(sp.Value))
}

func (a *app) inspect(args []string) error {
	var schemaPath, hexInput string
	fs := a.newFlagSet("inspect")
	fs.StringVarP(&schemaPath, "schema", "s", "", "schema document")
	fs.StringVarP(&hexInput, "hex", "x", "", "initial payload as hex")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if !a.isTerminal() {
		return errors.New("inspect needs an interactive terminal; use decode instead")
	}

	s, err := a.loadSchema(schemaPath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newInspectModel(s, s.Name, hexInput), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
