package jira

import (
	"encoding/json"
	"strings"
)

// adfDocument wraps plain text in a minimal Atlassian Document Format body,
// the shape Jira Cloud expects for descriptions, comments and worklog notes.
func adfDocument(text string) map[string]any {
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []any{
			map[string]any{
				"type": "paragraph",
				"content": []any{
					map[string]any{"type": "text", "text": text},
				},
			},
		},
	}
}

// adfText flattens a description field to plain text. The field is either a
// bare string (API v2 style) or an ADF document whose text nodes are
// collected paragraph by paragraph.
func adfText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var doc adfNode
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}

	var paragraphs []string
	for _, block := range doc.Content {
		if text := block.text(); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n")
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

func (n adfNode) text() string {
	if n.Text != "" {
		return n.Text
	}
	var parts []string
	for _, child := range n.Content {
		if text := child.text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "")
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
