// Package ui is the terminal front end: a Bubble Tea program driving the
// mailbox session through the Inbox, View, Compose, and ConfirmDelete
// states.
package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"mailtui/internal/email"
	"mailtui/internal/header"
	"mailtui/internal/imap"
)

// Mailbox is the slice of session behavior the UI drives. The session
// behind it is not safe for concurrent use, so every command wraps its
// call in the model's mutex.
type Mailbox interface {
	FetchInbox(count int) ([]imap.MessageSummary, error)
	ReadMessage(uid uint32) (imap.MessageDetail, error)
	DeleteMessage(uid uint32) error
}

// Sender submits one outbound message.
type Sender func(to, subject, body string) error

type mode int

const (
	modeInbox mode = iota
	modeView
	modeCompose
	modeConfirmDelete
)

type composeField int

const (
	fieldTo composeField = iota
	fieldSubject
	fieldBody
)

type (
	inboxLoadedMsg struct {
		items []imap.MessageSummary
		count int
	}
	detailLoadedMsg struct {
		uid    uint32
		detail imap.MessageDetail
	}
	deletedMsg struct{ uid uint32 }
	sentMsg    struct{}
	errMsg     struct{ err error }
)

// Model is the root Bubble Tea model.
type Model struct {
	mailbox Mailbox
	send    Sender
	mu      *sync.Mutex

	keys KeyMap
	mode mode

	summaries []imap.MessageSummary
	cursor    int
	count     int
	pageSize  int

	viewport  viewport.Model
	detail    imap.MessageDetail
	detailUID uint32

	toInput      textinput.Model
	subjectInput textinput.Model
	bodyInput    textarea.Model
	focus        composeField

	status string
	busy   bool
	width  int
	height int
	ready  bool
}

// New builds the root model. pageSize is how many summaries one "load
// more" step adds.
func New(mailbox Mailbox, send Sender, pageSize int) Model {
	if pageSize <= 0 {
		pageSize = 20
	}

	to := textinput.New()
	to.Placeholder = "to@example.com"
	subject := textinput.New()
	subject.Placeholder = "Subject"
	body := textarea.New()
	body.Placeholder = "Message body"

	return Model{
		mailbox:      mailbox,
		send:         send,
		mu:           &sync.Mutex{},
		keys:         DefaultKeyMap(),
		mode:         modeInbox,
		count:        pageSize,
		pageSize:     pageSize,
		viewport:     viewport.New(80, 24),
		toInput:      to,
		subjectInput: subject,
		bodyInput:    body,
		status:       "Loading inbox...",
		busy:         true,
	}
}

// Run starts the program on the alternate screen.
func Run(mailbox Mailbox, send Sender, pageSize int) error {
	p := tea.NewProgram(New(mailbox, send, pageSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadInbox(m.count)
}

func (m Model) loadInbox(count int) tea.Cmd {
	mailbox, mu := m.mailbox, m.mu
	return func() tea.Msg {
		mu.Lock()
		defer mu.Unlock()
		items, err := mailbox.FetchInbox(count)
		if err != nil {
			return errMsg{err}
		}
		return inboxLoadedMsg{items: items, count: count}
	}
}

func (m Model) loadDetail(uid uint32) tea.Cmd {
	mailbox, mu := m.mailbox, m.mu
	return func() tea.Msg {
		mu.Lock()
		defer mu.Unlock()
		detail, err := mailbox.ReadMessage(uid)
		if err != nil {
			return errMsg{err}
		}
		return detailLoadedMsg{uid: uid, detail: detail}
	}
}

func (m Model) deleteMessage(uid uint32) tea.Cmd {
	mailbox, mu := m.mailbox, m.mu
	return func() tea.Msg {
		mu.Lock()
		defer mu.Unlock()
		if err := mailbox.DeleteMessage(uid); err != nil {
			return errMsg{err}
		}
		return deletedMsg{uid: uid}
	}
}

func (m Model) submit(to, subject, body string) tea.Cmd {
	send := m.send
	return func() tea.Msg {
		if err := send(to, subject, body); err != nil {
			return errMsg{err}
		}
		return sentMsg{}
	}
}

func (m Model) selectedUID() (uint32, bool) {
	if m.cursor < 0 || m.cursor >= len(m.summaries) {
		return 0, false
	}
	return m.summaries[m.cursor].UID, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.toInput.Width = msg.Width - 12
		m.subjectInput.Width = msg.Width - 12
		m.bodyInput.SetWidth(msg.Width - 4)
		m.bodyInput.SetHeight(msg.Height - 10)
		return m, nil

	case inboxLoadedMsg:
		m.summaries = msg.items
		m.count = msg.count
		if m.cursor >= len(m.summaries) {
			m.cursor = len(m.summaries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.busy = false
		m.status = fmt.Sprintf("%d messages", len(m.summaries))
		return m, nil

	case detailLoadedMsg:
		m.detail = msg.detail
		m.detailUID = msg.uid
		m.mode = modeView
		m.busy = false
		m.status = ""
		m.viewport.SetContent(m.renderDetail())
		m.viewport.GotoTop()
		return m, nil

	case deletedMsg:
		m.mode = modeInbox
		m.status = fmt.Sprintf("Deleted message %d", msg.uid)
		return m, m.loadInbox(m.count)

	case sentMsg:
		m.mode = modeInbox
		m.status = "Sent."
		m.busy = false
		return m, nil

	case errMsg:
		m.busy = false
		m.mode = modeInbox
		m.status = "Error: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of mode.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeInbox:
		return m.handleInboxKey(msg)
	case modeView:
		return m.handleViewKey(msg)
	case modeCompose:
		return m.handleComposeKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	}
	return m, nil
}

func (m Model) handleInboxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.summaries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.View):
		if uid, ok := m.selectedUID(); ok {
			m.busy = true
			m.status = "Loading message..."
			return m, m.loadDetail(uid)
		}

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selectedUID(); ok {
			m.mode = modeConfirmDelete
			m.status = "Delete selected message? (y to confirm)"
		}

	case key.Matches(msg, m.keys.Compose):
		m = m.startCompose("", "", "")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.More):
		m.busy = true
		m.status = "Loading more..."
		return m, m.loadInbox(m.count + m.pageSize)
	}

	return m, nil
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.mode = modeInbox
		m.status = fmt.Sprintf("%d messages", len(m.summaries))
		return m, nil

	case key.Matches(msg, m.keys.Reply):
		to := header.BareAddress(m.detail.From)
		subject := email.ReplySubject(m.detail.Subject)
		quoted := email.QuoteBody(m.detail.From, m.detail.Date, m.detail.Body)
		m = m.startCompose(to, subject, quoted)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		if uid, ok := m.selectedUID(); ok {
			m.busy = true
			m.status = "Deleting..."
			return m, m.deleteMessage(uid)
		}
	}
	// Any other key cancels without side effects.
	m.mode = modeInbox
	m.status = fmt.Sprintf("%d messages", len(m.summaries))
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeInbox
		m.status = "Compose canceled."
		return m, nil

	case key.Matches(msg, m.keys.Send):
		to := m.toInput.Value()
		if to == "" {
			m.status = "Recipient is required."
			return m, nil
		}
		m.busy = true
		m.status = "Sending..."
		return m, m.submit(to, m.subjectInput.Value(), m.bodyInput.Value())

	case key.Matches(msg, m.keys.Next):
		m = m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m = m.cycleFocus(-1)
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) startCompose(to, subject, body string) Model {
	m.mode = modeCompose
	m.status = "ctrl+s to send, esc to cancel"
	m.toInput.SetValue(to)
	m.subjectInput.SetValue(subject)
	m.bodyInput.SetValue(body)
	m.focus = fieldTo
	if to != "" && subject != "" {
		m.focus = fieldBody
	}
	return m.applyFocus()
}

func (m Model) cycleFocus(dir int) Model {
	m.focus = composeField((int(m.focus) + dir + 3) % 3)
	return m.applyFocus()
}

func (m Model) applyFocus() Model {
	m.toInput.Blur()
	m.subjectInput.Blur()
	m.bodyInput.Blur()
	switch m.focus {
	case fieldTo:
		m.toInput.Focus()
	case fieldSubject:
		m.subjectInput.Focus()
	case fieldBody:
		m.bodyInput.Focus()
	}
	return m
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode != modeCompose {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTo:
		m.toInput, cmd = m.toInput.Update(msg)
	case fieldSubject:
		m.subjectInput, cmd = m.subjectInput.Update(msg)
	case fieldBody:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	return m, cmd
}
