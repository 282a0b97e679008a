package jira

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestADFDocumentShape(t *testing.T) {
	t.Parallel()

	doc := adfDocument("hello world")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if got := adfText(data); got != "hello world" {
		t.Fatalf("round trip = %q, want %q", got, "hello world")
	}
}

func TestADFTextPlainString(t *testing.T) {
	t.Parallel()

	if got := adfText(json.RawMessage(`"plain description"`)); got != "plain description" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestADFTextEmpty(t *testing.T) {
	t.Parallel()

	if got := adfText(nil); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if got := adfText(json.RawMessage("null")); got != "" {
		t.Fatalf("expected empty text for null, got %q", got)
	}
}

func TestADFTextMultipleParagraphs(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"type": "doc",
		"version": 1,
		"content": [
			{"type": "paragraph", "content": [
				{"type": "text", "text": "first "},
				{"type": "text", "text": "line"}
			]},
			{"type": "paragraph", "content": [{"type": "text", "text": "second line"}]}
		]
	}`)

	if got := adfText(raw); got != "first line\nsecond line" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 200); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}

	long := strings.Repeat("x", 250)
	got := truncate(long, 200)
	if len([]rune(got)) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation %q", got)
	}

	// rune-safe: no broken multi-byte sequences
	unicode := strings.Repeat("é", 250)
	got = truncate(unicode, 200)
	if !strings.HasSuffix(got, "é...") {
		t.Fatalf("expected clean rune boundary, got suffix %q", got[len(got)-8:])
	}
}
