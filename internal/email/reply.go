package email

import (
	"fmt"
	"strings"
)

// ReplySubject prefixes "Re: " unless the subject already carries one.
func ReplySubject(original string) string {
	trimmed := strings.TrimSpace(original)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "re:") {
		return trimmed
	}
	return "Re: " + trimmed
}

// QuoteBody prefixes the original message with an attribution line and
// "> " quoting, ready to edit above.
func QuoteBody(from, date, body string) string {
	if body == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n")

	switch {
	case date != "" && from != "":
		sb.WriteString(fmt.Sprintf("On %s, %s wrote:\n", date, from))
	case from != "":
		sb.WriteString(fmt.Sprintf("%s wrote:\n", from))
	default:
		sb.WriteString("Original message:\n")
	}

	for _, line := range strings.Split(body, "\n") {
		sb.WriteString("> ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
