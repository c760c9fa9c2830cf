package email

import (
	"bytes"
	"fmt"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

type ComposeInput struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
}

// BuildMessage renders a plain-text RFC822 message with a
// quoted-printable body.
func BuildMessage(in ComposeInput) ([]byte, error) {
	if in.From == "" {
		return nil, fmt.Errorf("from address is required")
	}

	var buf bytes.Buffer

	writeHeader(&buf, "From", in.From)
	if len(in.To) > 0 {
		writeHeader(&buf, "To", strings.Join(in.To, ", "))
	}
	if len(in.Cc) > 0 {
		writeHeader(&buf, "Cc", strings.Join(in.Cc, ", "))
	}
	if in.Subject != "" {
		writeHeader(&buf, "Subject", in.Subject)
	}
	writeHeader(&buf, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", "text/plain; charset=\"utf-8\"")
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(in.Body)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExtractRecipients collects every To and Cc address from a built
// message.
func ExtractRecipients(raw []byte) ([]string, error) {
	reader, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	header := reader.Header
	recipients := []string{}

	// AddressList returns an empty list for an absent field.
	addFromHeader := func(field string) error {
		list, err := header.AddressList(field)
		if err != nil {
			return err
		}
		for _, addr := range list {
			recipients = append(recipients, addr.Address)
		}
		return nil
	}

	if err := addFromHeader("To"); err != nil {
		return nil, err
	}
	if err := addFromHeader("Cc"); err != nil {
		return nil, err
	}

	return recipients, nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
