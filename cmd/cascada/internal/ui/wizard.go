// Package ui implements the interactive `cascada init` wizard.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Defaults pre-fills the wizard's fields.
type Defaults struct {
	Manifest string
	Output   string
	Flavor   string
}

// Answers is what the wizard collected.
type Answers struct {
	Manifest string
	Output   string
	Flavor   string
	Intern   bool
	Aborted  bool
}

// step is the wizard's current question.
type step int

const (
	stepManifest step = iota
	stepOutput
	stepFlavor
	stepIntern
	stepDone
)

var flavors = []string{"readable", "compact"}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3b82f6")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b")).
			MarginTop(1)
)

// model is the bubbletea state for the wizard.
type model struct {
	step    step
	input   textinput.Model
	answers Answers

	flavorIdx int
	intern    bool
}

func newModel(d Defaults) model {
	input := textinput.New()
	input.SetValue(d.Manifest)
	input.Focus()
	input.CharLimit = 200

	m := model{input: input}
	m.answers.Manifest = d.Manifest
	m.answers.Output = d.Output
	m.answers.Flavor = d.Flavor
	if d.Flavor == "compact" {
		m.flavorIdx = 1
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.answers.Aborted = true
			return m, tea.Quit

		case "enter":
			return m.advance()

		case "up", "down", "left", "right":
			switch m.step {
			case stepFlavor:
				m.flavorIdx = (m.flavorIdx + 1) % len(flavors)
				return m, nil
			case stepIntern:
				m.intern = !m.intern
				return m, nil
			}

		case "y":
			if m.step == stepIntern {
				m.intern = true
				return m.advance()
			}
		case "n":
			if m.step == stepIntern {
				m.intern = false
				return m.advance()
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// advance records the current answer and moves to the next step.
func (m model) advance() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepManifest:
		if v := strings.TrimSpace(m.input.Value()); v != "" {
			m.answers.Manifest = v
		}
		m.input.SetValue(m.answers.Output)
		m.step = stepOutput
	case stepOutput:
		if v := strings.TrimSpace(m.input.Value()); v != "" {
			m.answers.Output = v
		}
		m.step = stepFlavor
	case stepFlavor:
		m.answers.Flavor = flavors[m.flavorIdx]
		m.step = stepIntern
	case stepIntern:
		m.answers.Intern = m.intern
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cascada init"))
	b.WriteString("\n")

	switch m.step {
	case stepManifest:
		b.WriteString("Manifest path:\n")
		b.WriteString(m.input.View())
		b.WriteString(helpStyle.Render("\nenter to accept • esc to abort"))
	case stepOutput:
		b.WriteString("Output stylesheet path:\n")
		b.WriteString(m.input.View())
		b.WriteString(helpStyle.Render("\nenter to accept • esc to abort"))
	case stepFlavor:
		b.WriteString("Class flavor:\n")
		for i, f := range flavors {
			cursor := "  "
			line := f
			if i == m.flavorIdx {
				cursor = selectedStyle.Render("> ")
				line = selectedStyle.Render(f)
			}
			hint := " (debug-friendly full names)"
			if f == "compact" {
				hint = " (short hashed names)"
			}
			b.WriteString(fmt.Sprintf("%s%s%s\n", cursor, line, mutedStyle.Render(hint)))
		}
		b.WriteString(helpStyle.Render("arrows to choose • enter to accept"))
	case stepIntern:
		choice := "no"
		if m.intern {
			choice = "yes"
		}
		b.WriteString("Intern classes to short surrogates? ")
		b.WriteString(selectedStyle.Render(choice))
		b.WriteString(helpStyle.Render("\ny/n or arrows • enter to accept"))
	case stepDone:
		b.WriteString(mutedStyle.Render("done"))
	}

	b.WriteString("\n")
	return b.String()
}

// RunInitWizard runs the wizard and returns the collected answers.
func RunInitWizard(d Defaults) (Answers, error) {
	p := tea.NewProgram(newModel(d))
	final, err := p.Run()
	if err != nil {
		return Answers{}, fmt.Errorf("wizard failed: %w", err)
	}
	m, ok := final.(model)
	if !ok {
		return Answers{}, fmt.Errorf("wizard returned unexpected model")
	}
	return m.answers, nil
}
