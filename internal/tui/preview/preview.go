// Package preview is an interactive pager over a generated deck: one
// screen per question, with the answer hidden until revealed.
package preview

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/raunakm/stepdeck/internal/qgen"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	stemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC"))
	choiceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC"))
	correctStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	explStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	hintStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94A3B8"))
	positionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
)

// Model pages through a subject's questions.
type Model struct {
	subject   string
	questions []*qgen.Question

	index    int
	revealed bool

	viewport viewport.Model
	width    int
	height   int
}

// New creates a preview model over the given questions.
func New(subject string, questions []*qgen.Question) Model {
	return Model{
		subject:   subject,
		questions: questions,
		viewport:  viewport.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(max(msg.Height-4, 1))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.index > 0 {
				m.index--
				m.revealed = false
				m.refresh()
			}
			return m, nil
		case "right", "l":
			if m.index < len(m.questions)-1 {
				m.index++
				m.revealed = false
				m.refresh()
			}
			return m, nil
		case "enter", " ":
			m.revealed = !m.revealed
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if len(m.questions) == 0 {
		v.SetContent(hintStyle.Render("Deck is empty. Press q to quit."))
		return v
	}

	header := titleStyle.Render(m.subject) + "  " +
		positionStyle.Render(fmt.Sprintf("question %d of %d", m.index+1, len(m.questions)))

	hint := "enter: reveal answer"
	if m.revealed {
		hint = "enter: hide answer"
	}
	footer := hintStyle.Render(fmt.Sprintf("←/→ navigate · %s · q quit", hint))

	v.SetContent(header + "\n\n" + m.viewport.View() + "\n" + footer)
	return v
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderQuestion())
	m.viewport.GotoTop()
}

func (m *Model) renderQuestion() string {
	q := m.questions[m.index]

	var b strings.Builder
	b.WriteString(stemStyle.Render(q.Stem))
	b.WriteString("\n\n")

	for _, c := range q.Choices {
		line := fmt.Sprintf("%s: %s", c.Label, c.Text)
		if m.revealed && c.Label == q.CorrectLabel {
			b.WriteString(correctStyle.Render(line))
		} else {
			b.WriteString(choiceStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.revealed {
		b.WriteString("\n")
		b.WriteString(correctStyle.Render(fmt.Sprintf("%s: %s",
			q.CorrectLabel, strings.ReplaceAll(q.Explanations[q.CorrectLabel], "Correct. ", ""))))
		b.WriteString("\n")
		for _, c := range q.Choices {
			if c.Label == q.CorrectLabel {
				continue
			}
			b.WriteString(explStyle.Render(fmt.Sprintf("%s: %s",
				c.Label, strings.ReplaceAll(q.Explanations[c.Label], "Incorrect. ", ""))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Run starts the preview program and blocks until it exits.
func Run(subject string, questions []*qgen.Question) error {
	p := tea.NewProgram(New(subject, questions))
	_, err := p.Run()
	return err
}
