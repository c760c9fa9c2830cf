package header

import "testing"

func TestLookupFindsField(t *testing.T) {
	raw := []byte("From: Jane Doe <jane@x.com>\r\nDate: Mon, 2 Jun 2025 10:00:00 +0000\r\n")

	if got := Lookup(raw, "From"); got != "Jane Doe <jane@x.com>" {
		t.Fatalf("unexpected From: %q", got)
	}
	if got := Lookup(raw, "date"); got != "Mon, 2 Jun 2025 10:00:00 +0000" {
		t.Fatalf("unexpected Date: %q", got)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	raw := []byte("SUBJECT: hello\r\n")

	if got := Lookup(raw, "Subject"); got != "hello" {
		t.Fatalf("unexpected Subject: %q", got)
	}
}

func TestLookupAbsentFieldYieldsEmpty(t *testing.T) {
	raw := []byte("From: jane@x.com\r\n")

	if got := Lookup(raw, "Subject"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := Lookup(nil, "From"); got != "" {
		t.Fatalf("expected empty string on nil input, got %q", got)
	}
}

func TestLookupLastValueWins(t *testing.T) {
	raw := []byte("From: first@x.com\r\nFrom: second@x.com\r\n")

	if got := Lookup(raw, "From"); got != "second@x.com" {
		t.Fatalf("expected last value, got %q", got)
	}
}

func TestLookupIgnoresFoldedContinuation(t *testing.T) {
	raw := []byte("Subject: part one\r\n part two\r\nFrom: jane@x.com\r\n")

	if got := Lookup(raw, "Subject"); got != "part one" {
		t.Fatalf("expected unfolded value only, got %q", got)
	}
}

func TestLookupInvalidUTF8(t *testing.T) {
	raw := []byte("From: j\xffane@x.com\r\n")

	if got := Lookup(raw, "From"); got != "j�ane@x.com" {
		t.Fatalf("expected lossy substitution, got %q", got)
	}
}

func TestBareAddress(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Jane Doe <jane@x.com>", "jane@x.com"},
		{"jane@x.com", "jane@x.com"},
		{"Jane <jane@x.com", "jane@x.com"},
		{"  jane@x.com  ", "jane@x.com"},
		{"<jane@x.com>", "jane@x.com"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := BareAddress(tc.in); got != tc.want {
			t.Fatalf("BareAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
