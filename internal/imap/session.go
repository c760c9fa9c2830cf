package imap

import (
	"crypto/tls"
	"fmt"
	"io"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/rs/zerolog"

	"mailtui/internal/config"
	"mailtui/internal/header"
)

// Client is the subset of the go-imap client the session drives. Split
// out so tests can stand in a fake server.
type Client interface {
	Login(username, password string) error
	Logout() error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Fetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
	Expunge(ch chan uint32) error
}

var _ Client = (*imapclient.Client)(nil)

// Session owns one authenticated connection and the currently selected
// mailbox. Every operation is a blocking round trip that reselects the
// mailbox first; selection is idempotent. A Session is not safe for
// concurrent use: callers must serialize whole operations.
type Session struct {
	client   Client
	mailbox  string
	messages uint32 // message count reported by the last select
	log      zerolog.Logger
}

// Connect dials the IMAP server, authenticates, and returns a live
// session scoped to the configured mailbox.
func Connect(cfg config.Config, log zerolog.Logger) (*Session, error) {
	addr := fmt.Sprintf("%s:%d", cfg.IMAP.Host, cfg.IMAP.Port)

	var c *imapclient.Client
	var err error
	if cfg.IMAP.TLS {
		tlsConfig := &tls.Config{
			ServerName:         cfg.IMAP.Host,
			InsecureSkipVerify: cfg.IMAP.InsecureSkipVerify,
		}
		c, err = imapclient.DialTLS(addr, tlsConfig)
	} else {
		c, err = imapclient.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrTransport, addr, err)
	}

	if err := c.Login(cfg.Auth.Username, cfg.Auth.Password); err != nil {
		_ = c.Logout()
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	log.Debug().Str("host", cfg.IMAP.Host).Str("user", cfg.Auth.Username).Msg("imap session established")

	return &Session{client: c, mailbox: cfg.Defaults.Mailbox, log: log}, nil
}

// NewSession wraps an already-connected client. Used by tests.
func NewSession(client Client, mailbox string) *Session {
	return &Session{client: client, mailbox: mailbox, log: zerolog.Nop()}
}

// Close logs out and drops the connection.
func (s *Session) Close() error {
	return s.client.Logout()
}

func (s *Session) selectMailbox() error {
	status, err := s.client.Select(s.mailbox, false)
	if err != nil {
		return fmt.Errorf("%w: select %s: %v", ErrFetch, s.mailbox, err)
	}
	s.messages = status.Messages
	return nil
}

// Status reselects the mailbox and reports its name and message count.
func (s *Session) Status() (string, uint32, error) {
	if err := s.selectMailbox(); err != nil {
		return "", 0, err
	}
	return s.mailbox, s.messages, nil
}

// ListSummaryKeys returns the (UID, internal date) pair of every message
// currently in the mailbox, in server order. Callers sort.
func (s *Session) ListSummaryKeys() ([]SummaryKey, error) {
	if err := s.selectMailbox(); err != nil {
		return nil, err
	}
	if s.messages == 0 {
		return []SummaryKey{}, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, s.messages)

	items := []imap.FetchItem{imap.FetchUid, imap.FetchInternalDate}
	ch := make(chan *imap.Message, 64)
	done := make(chan error, 1)
	go func() {
		done <- s.client.Fetch(seqset, items, ch)
	}()

	keys := make([]SummaryKey, 0, s.messages)
	for msg := range ch {
		if msg == nil || msg.Uid == 0 || msg.InternalDate.IsZero() {
			continue
		}
		keys = append(keys, SummaryKey{UID: msg.Uid, Date: msg.InternalDate})
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: list summary keys: %v", ErrFetch, err)
	}

	s.log.Debug().Int("messages", len(keys)).Msg("listed summary keys")
	return keys, nil
}

// FetchSenderAndDate pulls only the From and Date header fields of one
// message. Values are raw; missing fields come back empty.
func (s *Session) FetchSenderAndDate(uid uint32) (sender, date string, err error) {
	raw, err := s.fetchHeaderFields(uid, []string{"From", "Date"})
	if err != nil {
		return "", "", err
	}
	return header.Lookup(raw, "From"), header.Lookup(raw, "Date"), nil
}

// FetchFullHeaders pulls the From, Subject, and Date header fields of one
// message.
func (s *Session) FetchFullHeaders(uid uint32) (sender, subject, date string, err error) {
	raw, err := s.fetchHeaderFields(uid, []string{"From", "Subject", "Date"})
	if err != nil {
		return "", "", "", err
	}
	return header.Lookup(raw, "From"), header.Lookup(raw, "Subject"), header.Lookup(raw, "Date"), nil
}

func (s *Session) fetchHeaderFields(uid uint32, fields []string) ([]byte, error) {
	if err := s.selectMailbox(); err != nil {
		return nil, err
	}

	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{
			Specifier: imap.HeaderSpecifier,
			Fields:    fields,
		},
		Peek: true,
	}

	msg, err := s.fetchOne(uid, []imap.FetchItem{imap.FetchUid, section.FetchItem()})
	if err != nil {
		return nil, err
	}

	body := msg.GetBody(section)
	if body == nil {
		// Server omitted the section; treat as an empty header block.
		return nil, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read header fields: %v", ErrFetch, err)
	}
	return raw, nil
}

// FetchRawBody pulls the complete message, headers plus body.
func (s *Session) FetchRawBody(uid uint32) ([]byte, error) {
	if err := s.selectMailbox(); err != nil {
		return nil, err
	}

	section := &imap.BodySectionName{}
	msg, err := s.fetchOne(uid, []imap.FetchItem{imap.FetchUid, section.FetchItem()})
	if err != nil {
		return nil, err
	}

	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("%w: message %d body not available", ErrFetch, uid)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read message %d: %v", ErrFetch, uid, err)
	}

	s.log.Debug().Uint32("uid", uid).Int("bytes", len(raw)).Msg("fetched raw body")
	return raw, nil
}

func (s *Session) fetchOne(uid uint32, items []imap.FetchItem) (*imap.Message, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	ch := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.client.UidFetch(seqset, items, ch)
	}()

	var msg *imap.Message
	for m := range ch {
		if msg == nil {
			msg = m
		}
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: fetch %d: %v", ErrFetch, uid, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: message %d not found", ErrFetch, uid)
	}
	return msg, nil
}

// MarkDeletedAndPurge flags one message deleted and then expunges the
// mailbox. Expunge removes every message currently flagged deleted, not
// only this one, and there is no undo.
func (s *Session) MarkDeletedAndPurge(uid uint32) error {
	if err := s.selectMailbox(); err != nil {
		return err
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := s.client.UidStore(seqset, item, []interface{}{imap.DeletedFlag}, nil); err != nil {
		return fmt.Errorf("%w: flag %d deleted: %v", ErrFetch, uid, err)
	}

	expunged := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- s.client.Expunge(expunged)
	}()
	removed := 0
	for range expunged {
		removed++
	}
	if err := <-done; err != nil {
		return fmt.Errorf("%w: expunge: %v", ErrFetch, err)
	}

	s.log.Debug().Uint32("uid", uid).Int("removed", removed).Msg("purged deleted messages")
	return nil
}
