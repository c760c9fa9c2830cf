package imap

import (
	"errors"
	"time"
)

// Error classes surfaced by session operations. Parse-level problems are
// never in this list; they degrade to raw or empty values instead.
var (
	// ErrAuth means the server rejected the credentials. Fatal to session
	// construction; never retried.
	ErrAuth = errors.New("authentication failed")

	// ErrTransport covers network and TLS failures. Retrying is the
	// caller's choice.
	ErrTransport = errors.New("transport failure")

	// ErrFetch means a request round-tripped but the server reported
	// failure or returned no matching data.
	ErrFetch = errors.New("fetch failed")
)

// SummaryKey pairs a message UID with its server receive time.
type SummaryKey struct {
	UID  uint32
	Date time.Time
}

// MessageSummary is one row of the ranked inbox view.
type MessageSummary struct {
	UID  uint32
	From string
	Date time.Time
}

// MessageDetail is the displayable form of one message. Built fresh per
// view request; never cached.
type MessageDetail struct {
	From    string
	Subject string
	Date    string
	Body    string
}
