package imap

import (
	"sort"

	"mailtui/internal/content"
	"mailtui/internal/header"
)

// FetchInbox produces the ranked inbox view: every message currently in
// the mailbox sorted newest first, truncated to count, with the bare
// sender address pulled per retained message. Re-running with a larger
// count is the only pagination; each call re-fetches the full key list.
func (s *Session) FetchInbox(count int) ([]MessageSummary, error) {
	keys, err := s.ListSummaryKeys()
	if err != nil {
		return nil, err
	}

	// Stable sort keeps server enumeration order as the tie-break so
	// repeated syncs of an unchanged mailbox are identical.
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Date.After(keys[j].Date)
	})

	if count < 0 {
		count = 0
	}
	if len(keys) > count {
		keys = keys[:count]
	}

	summaries := make([]MessageSummary, 0, len(keys))
	for _, key := range keys {
		sender, _, err := s.FetchSenderAndDate(key.UID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, MessageSummary{
			UID:  key.UID,
			From: header.BareAddress(sender),
			Date: key.Date,
		})
	}
	return summaries, nil
}

// ReadMessage assembles the displayable form of one message: full
// headers plus the resolved body text. Body resolution never fails; a
// message that cannot be dissected renders as its raw bytes.
func (s *Session) ReadMessage(uid uint32) (MessageDetail, error) {
	sender, subject, date, err := s.FetchFullHeaders(uid)
	if err != nil {
		return MessageDetail{}, err
	}

	raw, err := s.FetchRawBody(uid)
	if err != nil {
		return MessageDetail{}, err
	}

	return MessageDetail{
		From:    sender,
		Subject: subject,
		Date:    date,
		Body:    content.Resolve(raw),
	}, nil
}

// DeleteMessage permanently removes one message (and anything else
// already flagged deleted) from the mailbox.
func (s *Session) DeleteMessage(uid uint32) error {
	return s.MarkDeletedAndPurge(uid)
}
