package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// AskPort is the TUI-facing subset of the chat service.
type AskPort interface {
	Ask(ctx context.Context, documentID, query string, topK int) (domain.Answer, error)
}

// Model is the Bubble Tea model for the chat session over one document.
type Model struct {
	service    AskPort
	documentID string
	filename   string
	topK       int

	input    textinput.Model
	viewport viewport.Model
	answer   domain.Answer
	asked    bool
	summary  string
	status   string
	cursor   int
	ready    bool
}

// New creates a chat model bound to an indexed document.
func New(service AskPort, documentID, filename, summary string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:    service,
		documentID: documentID,
		filename:   filename,
		topK:       topK,
		input:      ti,
		viewport:   vp,
		summary:    summary,
		status:     "Indexed. Ask a question.",
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
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				answer, err := m.service.Ask(context.Background(), m.documentID, q, m.topK)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.answer = domain.Answer{}
					m.asked = false
				} else {
					m.answer = answer
					m.asked = true
					m.cursor = 0
					m.input.SetValue("")
					switch {
					case answer.CompletionErr != nil:
						m.status = "Answer unavailable (" + answer.CompletionErr.Error() + "); showing retrieved passages"
					case len(answer.Matches) == 0:
						m.status = fmt.Sprintf("Nothing relevant found for %q", q)
					default:
						m.status = fmt.Sprintf("Answered from %d passages. Up/down to browse them.", len(answer.Matches))
					}
				}
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "down":
			if len(m.answer.Matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.answer.Matches)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up":
			if len(m.answer.Matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.answer.Matches)) % len(m.answer.Matches)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Chat with " + m.filename)
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if !m.asked {
		return "No questions yet."
	}
	var b strings.Builder
	if m.answer.Text != "" {
		b.WriteString(m.answer.Text)
	} else {
		b.WriteString("(no generated answer)")
	}
	if len(m.answer.Matches) == 0 {
		return b.String()
	}
	match := m.answer.Matches[m.cursor]
	title := fmt.Sprintf("Passage %d/%d  [Page %d]  score=%.3f",
		m.cursor+1, len(m.answer.Matches), match.Page, match.Score)
	b.WriteString("\n\n")
	b.WriteString(passageTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(match.Text)
	return b.String()
}

var (
	answerBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	passageTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
