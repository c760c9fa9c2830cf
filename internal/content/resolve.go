// Package content picks one renderable text string out of a raw message.
package content

import (
	"bytes"
	"strings"

	"github.com/jaytaylor/html2text"
	enmime "github.com/jhillyerd/enmime/v2"
	"github.com/muesli/reflow/wordwrap"

	"mailtui/internal/header"
)

// renderWidth is the column limit for HTML-derived text.
const renderWidth = 80

// Resolve walks the message's MIME part tree and returns the best text
// representation. Any text/plain part beats any text/html part, whatever
// their relative depths; an unparseable message or one with no text part
// degrades to the raw bytes decoded lossily. Resolve never fails.
func Resolve(raw []byte) string {
	root, err := enmime.ReadParts(bytes.NewReader(raw))
	if err != nil || root == nil {
		return header.Lossy(raw)
	}

	if part := findPart(root, "text/plain"); part != nil {
		return string(part.Content)
	}
	if part := findPart(root, "text/html"); part != nil {
		if text, err := renderHTML(part.Content); err == nil {
			return text
		}
	}
	return header.Lossy(raw)
}

// findPart returns the first part in pre-order whose content type matches.
func findPart(p *enmime.Part, ctype string) *enmime.Part {
	if strings.EqualFold(p.ContentType, ctype) {
		return p
	}
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if found := findPart(c, ctype); found != nil {
			return found
		}
	}
	return nil
}

func renderHTML(src []byte) (string, error) {
	text, err := html2text.FromString(string(src), html2text.Options{OmitLinks: true})
	if err != nil {
		return "", err
	}
	return wordwrap.String(text, renderWidth), nil
}
