// Package header extracts named fields from raw message header blocks.
// It is deliberately forgiving: servers hand back whatever bytes they
// have, and a missing or mangled field must never abort a view action.
package header

import "strings"

// Lookup returns the value of the last header line whose name matches,
// case-insensitively. Lines are split on CRLF and matched as-is; folded
// continuation lines are not joined, so a field is only recognized when
// its own line starts with "name:". Absent fields yield "".
func Lookup(raw []byte, name string) string {
	prefix := strings.ToLower(name) + ":"
	text := Lossy(raw)

	value := ""
	for _, line := range strings.Split(text, "\r\n") {
		if len(line) < len(prefix) {
			continue
		}
		if strings.ToLower(line[:len(prefix)]) == prefix {
			value = strings.TrimSpace(line[len(prefix):])
		}
	}
	return value
}

// BareAddress strips a display name from a From value, keeping only the
// address between angle brackets. "Jane <jane@x.com>" yields
// "jane@x.com"; an unterminated bracket yields everything after '<';
// a value with no brackets is returned trimmed.
func BareAddress(value string) string {
	v := strings.TrimSpace(value)
	start := strings.IndexByte(v, '<')
	if start < 0 {
		return v
	}
	rest := v[start+1:]
	if end := strings.IndexByte(rest, '>'); end >= 0 {
		return rest[:end]
	}
	return rest
}

// Lossy decodes bytes as UTF-8, substituting invalid sequences.
func Lossy(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}
