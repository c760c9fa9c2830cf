package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"mailtui/internal/imap"
)

type fakeMailbox struct {
	summaries  []imap.MessageSummary
	detail     imap.MessageDetail
	deleted    []uint32
	lastCount  int
	fetchCalls int
}

func (f *fakeMailbox) FetchInbox(count int) ([]imap.MessageSummary, error) {
	f.fetchCalls++
	f.lastCount = count
	if count < len(f.summaries) {
		return f.summaries[:count], nil
	}
	return f.summaries, nil
}

func (f *fakeMailbox) ReadMessage(uid uint32) (imap.MessageDetail, error) {
	return f.detail, nil
}

func (f *fakeMailbox) DeleteMessage(uid uint32) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loaded(m Model) Model {
	msg := m.loadInbox(m.count)()
	next, _ := m.Update(msg)
	return next.(Model)
}

func newTestModel(fake *fakeMailbox) Model {
	m := New(fake, func(to, subject, body string) error { return nil }, 2)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func testSummaries() []imap.MessageSummary {
	return []imap.MessageSummary{
		{UID: 11, From: "a@x.com", Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{UID: 12, From: "b@x.com", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestInitLoadsInbox(t *testing.T) {
	fake := &fakeMailbox{summaries: testSummaries()}
	m := newTestModel(fake)

	msg := m.Init()()
	next, _ := m.Update(msg)
	m = next.(Model)

	if fake.fetchCalls != 1 {
		t.Fatalf("expected one fetch, got %d", fake.fetchCalls)
	}
	if len(m.summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(m.summaries))
	}
	if m.mode != modeInbox {
		t.Fatalf("expected inbox mode")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fake := &fakeMailbox{summaries: testSummaries()}
	m := loaded(newTestModel(fake))

	next, _ := m.Update(keyRune('d'))
	m = next.(Model)
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm-delete mode")
	}

	next, cmd := m.Update(keyRune('y'))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected delete command")
	}
	if _, ok := cmd().(deletedMsg); !ok {
		t.Fatalf("expected deletedMsg")
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != 11 {
		t.Fatalf("unexpected deletions: %v", fake.deleted)
	}
}

func TestAnyOtherKeyCancelsDelete(t *testing.T) {
	fake := &fakeMailbox{summaries: testSummaries()}
	m := loaded(newTestModel(fake))

	next, _ := m.Update(keyRune('d'))
	m = next.(Model)
	next, cmd := m.Update(keyRune('x'))
	m = next.(Model)

	if m.mode != modeInbox {
		t.Fatalf("expected cancel back to inbox")
	}
	if cmd != nil {
		t.Fatalf("expected no side effects on cancel")
	}
	if len(fake.deleted) != 0 {
		t.Fatalf("unexpected deletions: %v", fake.deleted)
	}
}

func TestLoadMoreGrowsCount(t *testing.T) {
	fake := &fakeMailbox{summaries: testSummaries()}
	m := loaded(newTestModel(fake))

	_, cmd := m.Update(keyRune('m'))
	if cmd == nil {
		t.Fatalf("expected load command")
	}
	cmd()

	if fake.lastCount != 4 {
		t.Fatalf("expected count to grow to 4, got %d", fake.lastCount)
	}
}

func TestReplyPrefillsCompose(t *testing.T) {
	fake := &fakeMailbox{
		summaries: testSummaries(),
		detail: imap.MessageDetail{
			From:    "Jane Doe <jane@x.com>",
			Subject: "hello",
			Date:    "Mon, 2 Jun 2025 10:00:00 +0000",
			Body:    "original text",
		},
	}
	m := loaded(newTestModel(fake))

	next, cmd := m.Update(keyRune('v'))
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.mode != modeView {
		t.Fatalf("expected view mode")
	}

	next, _ = m.Update(keyRune('r'))
	m = next.(Model)
	if m.mode != modeCompose {
		t.Fatalf("expected compose mode")
	}
	if m.toInput.Value() != "jane@x.com" {
		t.Fatalf("unexpected to: %q", m.toInput.Value())
	}
	if m.subjectInput.Value() != "Re: hello" {
		t.Fatalf("unexpected subject: %q", m.subjectInput.Value())
	}
	if m.bodyInput.Value() == "" {
		t.Fatalf("expected quoted body")
	}
}

func TestTrimKeepsMultibyteSendersValid(t *testing.T) {
	from := "Åsa Öberg <åsa@x.com>" + strings.Repeat("é", 20)

	for max := 1; max <= 30; max++ {
		got := trim(from, max)
		if !utf8.ValidString(got) {
			t.Fatalf("trim(%q, %d) produced invalid UTF-8: %q", from, max, got)
		}
		if utf8.RuneCountInString(got) > max {
			t.Fatalf("trim(%q, %d) too long: %q", from, max, got)
		}
	}

	if got := trim("short", 30); got != "short" {
		t.Fatalf("expected short value unchanged, got %q", got)
	}
}

func TestEscapeDismissesView(t *testing.T) {
	fake := &fakeMailbox{summaries: testSummaries(), detail: imap.MessageDetail{Body: "hi"}}
	m := loaded(newTestModel(fake))

	next, cmd := m.Update(keyRune('v'))
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.mode != modeInbox {
		t.Fatalf("expected return to inbox")
	}
}
