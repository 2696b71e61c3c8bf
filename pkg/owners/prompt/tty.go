package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D9FF"))
)

// TTYPrompter asks the question with an inline text input.
type TTYPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Ask implements Prompter. Enter submits; ctrl+c and esc return
// ErrCancelled.
func (p *TTYPrompter) Ask(question string) (string, error) {
	prog := tea.NewProgram(newModel(question),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)

	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}

	logger.Debug("read answer", "answer", m.input.Value())
	return m.input.Value(), nil
}

// model is the Bubble Tea model behind TTYPrompter.
type model struct {
	question  string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newModel(question string) model {
	ti := textinput.New()
	ti.Placeholder = ".pdf, .txt"
	ti.Prompt = ""
	ti.PlaceholderStyle = placeholderStyle
	ti.TextStyle = answerStyle
	ti.Focus()

	return model{question: question, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		// Leave the answered question on screen.
		return questionStyle.Render(m.question) + answerStyle.Render(m.input.Value()) + "\n"
	}
	return questionStyle.Render(m.question) + m.input.View()
}
