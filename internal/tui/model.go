// Package tui is the interactive chat interface over the knowledge base.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bizkb/internal/domain"
	"bizkb/internal/history"
)

// AnswerPort is the TUI-facing subset of the retrieval pipeline.
type AnswerPort interface {
	Answer(ctx context.Context, query string, maxContext int) (domain.Answer, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	pipeline   AnswerPort
	log        *history.Log
	maxContext int
	timeout    time.Duration

	input    textinput.Model
	viewport viewport.Model
	answer   domain.Answer
	status   string
	summary  string
	ready    bool
	lastQ    string
}

// New creates a new chat model instance.
func New(pipeline AnswerPort, log *history.Log, maxContext int, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about company policies and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		pipeline:   pipeline,
		log:        log,
		maxContext: maxContext,
		timeout:    60 * time.Second,
		input:      ti,
		viewport:   vp,
		summary:    summary,
		status:     "Ready. Type a question.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around answer and query boxes
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.ask(q)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) ask(q string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	ans, err := m.pipeline.Answer(ctx, q, m.maxContext)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.lastQ = q
	m.answer = ans
	if ans.Grounded() {
		m.status = fmt.Sprintf("Answered from %d source(s), confidence %.3f", len(ans.Sources), ans.Confidence)
	} else {
		m.status = "No relevant documents found."
	}
	if m.log != nil {
		m.log.Record("Knowledge Base Q&A", q, ans.Text)
	}
}

// View renders the chat layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Business Knowledge Assistant")
	summary := summaryStyle.Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.lastQ == "" {
		return "Ask a question to search the knowledge base."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Q: %s\n\n%s\n", m.lastQ, m.answer.Text)
	if m.answer.Grounded() {
		b.WriteString("\nSources:\n")
		for _, id := range m.answer.Sources {
			fmt.Fprintf(&b, "  - %s\n", id)
		}
		fmt.Fprintf(&b, "Confidence: %.3f\n", m.answer.Confidence)
	}
	return b.String()
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
