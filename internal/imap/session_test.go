package imap

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
)

type fakeMessage struct {
	uid     uint32
	date    time.Time
	raw     string
	deleted bool
}

// fakeClient is an in-memory stand-in for the go-imap client.
type fakeClient struct {
	messages  []*fakeMessage
	selects   int
	loggedOut bool
}

func (f *fakeClient) Login(username, password string) error { return nil }

func (f *fakeClient) Logout() error {
	f.loggedOut = true
	return nil
}

func (f *fakeClient) Select(name string, readOnly bool) (*imap.MailboxStatus, error) {
	f.selects++
	return &imap.MailboxStatus{Name: name, Messages: uint32(len(f.messages))}, nil
}

func (f *fakeClient) Fetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
	defer close(ch)
	for i, msg := range f.messages {
		seq := uint32(i + 1)
		if !seqset.Contains(seq) {
			continue
		}
		ch <- &imap.Message{SeqNum: seq, Uid: msg.uid, InternalDate: msg.date}
	}
	return nil
}

func (f *fakeClient) UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
	defer close(ch)
	for _, msg := range f.messages {
		if !seqset.Contains(msg.uid) {
			continue
		}
		out := &imap.Message{
			Uid:          msg.uid,
			InternalDate: msg.date,
			Body:         map[*imap.BodySectionName]imap.Literal{},
		}
		for _, item := range items {
			section, err := imap.ParseBodySectionName(item)
			if err != nil {
				continue
			}
			section.Peek = false
			out.Body[section] = bytes.NewBufferString(msg.section(section))
		}
		ch <- out
	}
	return nil
}

func (f *fakeClient) UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error {
	if ch != nil {
		close(ch)
	}
	for _, msg := range f.messages {
		if seqset.Contains(msg.uid) {
			msg.deleted = true
		}
	}
	return nil
}

func (f *fakeClient) Expunge(ch chan uint32) error {
	if ch != nil {
		defer close(ch)
	}
	kept := make([]*fakeMessage, 0, len(f.messages))
	for i, msg := range f.messages {
		if msg.deleted {
			if ch != nil {
				ch <- uint32(i + 1)
			}
			continue
		}
		kept = append(kept, msg)
	}
	f.messages = kept
	return nil
}

func (m *fakeMessage) section(section *imap.BodySectionName) string {
	if section.Specifier == imap.HeaderSpecifier && len(section.Fields) > 0 {
		return headerSubset(m.raw, section.Fields)
	}
	return m.raw
}

func headerSubset(raw string, fields []string) string {
	head, _, _ := strings.Cut(raw, "\r\n\r\n")
	var b strings.Builder
	for _, line := range strings.Split(head, "\r\n") {
		for _, field := range fields {
			prefix := field + ":"
			if len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix) {
				b.WriteString(line)
				b.WriteString("\r\n")
			}
		}
	}
	return b.String()
}

func rawMessage(from, subject, body string) string {
	return "From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Date: Mon, 2 Jun 2025 10:00:00 +0000\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		body
}

func date(day int) time.Time {
	return time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
}

func TestListSummaryKeysEmptyMailbox(t *testing.T) {
	s := NewSession(&fakeClient{}, "INBOX")

	keys, err := s.ListSummaryKeys()
	if err != nil {
		t.Fatalf("list summary keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys, got %d", len(keys))
	}
}

func TestFetchSenderAndDate(t *testing.T) {
	client := &fakeClient{messages: []*fakeMessage{
		{uid: 7, date: date(1), raw: rawMessage("Jane Doe <jane@x.com>", "hello", "hi")},
	}}
	s := NewSession(client, "INBOX")

	sender, dateText, err := s.FetchSenderAndDate(7)
	if err != nil {
		t.Fatalf("fetch sender and date: %v", err)
	}
	if sender != "Jane Doe <jane@x.com>" {
		t.Fatalf("unexpected sender: %q", sender)
	}
	if dateText != "Mon, 2 Jun 2025 10:00:00 +0000" {
		t.Fatalf("unexpected date: %q", dateText)
	}
}

func TestFetchFullHeadersMissingSubject(t *testing.T) {
	raw := "From: jane@x.com\r\nDate: Mon, 2 Jun 2025 10:00:00 +0000\r\n\r\nbody"
	client := &fakeClient{messages: []*fakeMessage{{uid: 3, date: date(1), raw: raw}}}
	s := NewSession(client, "INBOX")

	sender, subject, dateText, err := s.FetchFullHeaders(3)
	if err != nil {
		t.Fatalf("fetch full headers: %v", err)
	}
	if sender != "jane@x.com" {
		t.Fatalf("unexpected sender: %q", sender)
	}
	if subject != "" {
		t.Fatalf("expected empty subject, got %q", subject)
	}
	if dateText == "" {
		t.Fatalf("expected date text")
	}
}

func TestFetchRawBody(t *testing.T) {
	raw := rawMessage("jane@x.com", "hello", "the body")
	client := &fakeClient{messages: []*fakeMessage{{uid: 9, date: date(1), raw: raw}}}
	s := NewSession(client, "INBOX")

	got, err := s.FetchRawBody(9)
	if err != nil {
		t.Fatalf("fetch raw body: %v", err)
	}
	if string(got) != raw {
		t.Fatalf("unexpected raw body: %q", got)
	}
}

func TestFetchUnknownUIDIsFetchError(t *testing.T) {
	s := NewSession(&fakeClient{}, "INBOX")

	_, err := s.FetchRawBody(42)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestMarkDeletedAndPurgeRemovesAllFlagged(t *testing.T) {
	client := &fakeClient{messages: []*fakeMessage{
		{uid: 1, date: date(1), raw: rawMessage("a@x.com", "one", "1")},
		{uid: 2, date: date(2), raw: rawMessage("b@x.com", "two", "2"), deleted: true},
		{uid: 3, date: date(3), raw: rawMessage("c@x.com", "three", "3")},
	}}
	s := NewSession(client, "INBOX")

	if err := s.MarkDeletedAndPurge(1); err != nil {
		t.Fatalf("mark deleted and purge: %v", err)
	}

	// The expunge sweeps every flagged message, including uid 2.
	if len(client.messages) != 1 || client.messages[0].uid != 3 {
		t.Fatalf("unexpected survivors: %+v", client.messages)
	}
}

func TestEveryOperationReselectsMailbox(t *testing.T) {
	client := &fakeClient{messages: []*fakeMessage{
		{uid: 1, date: date(1), raw: rawMessage("a@x.com", "one", "1")},
	}}
	s := NewSession(client, "INBOX")

	if _, err := s.ListSummaryKeys(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, _, err := s.FetchSenderAndDate(1); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := s.MarkDeletedAndPurge(1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if client.selects != 3 {
		t.Fatalf("expected 3 selects, got %d", client.selects)
	}
}

func TestStatusReportsMessageCount(t *testing.T) {
	client := &fakeClient{messages: []*fakeMessage{
		{uid: 1, date: date(1), raw: rawMessage("a@x.com", "one", "1")},
		{uid: 2, date: date(2), raw: rawMessage("b@x.com", "two", "2")},
	}}
	s := NewSession(client, "INBOX")

	name, messages, err := s.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if name != "INBOX" || messages != 2 {
		t.Fatalf("unexpected status: %s %d", name, messages)
	}
}

func TestCloseLogsOut(t *testing.T) {
	client := &fakeClient{}
	s := NewSession(client, "INBOX")

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !client.loggedOut {
		t.Fatalf("expected logout")
	}
}
