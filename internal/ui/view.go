package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(9)
)

const summaryDateFormat = "Mon, 2 Jan 2006 15:04:05 -0700"

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.mode {
	case modeInbox, modeConfirmDelete:
		body = m.renderInbox()
	case modeView:
		body = m.renderView()
	case modeCompose:
		body = m.renderCompose()
	}

	return body + "\n" + statusStyle.Render(m.statusLine())
}

func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	switch m.mode {
	case modeView:
		return "esc back · r reply · j/k scroll"
	case modeCompose:
		return "ctrl+s send · tab next field · esc cancel"
	default:
		return "enter view · c compose · d delete · m more · q quit"
	}
}

func (m Model) renderInbox() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Inbox"))
	sb.WriteString("\n\n")

	if len(m.summaries) == 0 {
		if m.busy {
			sb.WriteString(dimStyle.Render("  Loading..."))
		} else {
			sb.WriteString(dimStyle.Render("  No messages."))
		}
		return sb.String()
	}

	visible := m.height - 5
	if visible < 1 {
		visible = len(m.summaries)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.summaries) {
		end = len(m.summaries)
	}

	for i := start; i < end; i++ {
		sum := m.summaries[i]
		line := fmt.Sprintf("%-30s  %s", trim(sum.From, 30), sum.Date.Format(summaryDateFormat))
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderView() string {
	return titleStyle.Render("Message") + "\n" + m.viewport.View()
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	sb.WriteString("From: " + m.detail.From + "\n")
	sb.WriteString("Subject: " + m.detail.Subject + "\n")
	sb.WriteString("Date: " + m.detail.Date + "\n\n")
	sb.WriteString(m.detail.Body)
	return sb.String()
}

func (m Model) renderCompose() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Compose"))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("To:") + m.toInput.View() + "\n")
	sb.WriteString(labelStyle.Render("Subject:") + m.subjectInput.View() + "\n\n")
	sb.WriteString(m.bodyInput.View())
	return sb.String()
}

func trim(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
