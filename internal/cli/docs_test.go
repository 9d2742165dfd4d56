package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aidanlsb/daterange/internal/ui"
)

func TestDocsListsBundledTopics(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "docs", "--json")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	resp := decodeEnvelope(t, out)
	var got struct {
		Topics []docsTopicView `json:"topics"`
	}
	decodeData(t, resp, &got)
	if len(got.Topics) != 3 {
		t.Fatalf("expected 3 topics, got %+v", got.Topics)
	}
	ids := make([]string, 0, len(got.Topics))
	for _, topic := range got.Topics {
		ids = append(ids, topic.ID)
		if len(topic.Sections) == 0 {
			t.Fatalf("expected headings for %s", topic.ID)
		}
	}
	if strings.Join(ids, ",") != "date-formats,ranges,week-start" {
		t.Fatalf("unexpected topic order %v", ids)
	}
}

func TestDocsTopicByTitle(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "docs", "Week Start Day", "--json")
	if err != nil {
		t.Fatalf("docs topic: %v", err)
	}
	var got struct {
		Topic   string `json:"topic"`
		Content string `json:"content"`
	}
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Topic != "week-start" || !strings.HasPrefix(got.Content, "# Week Start Day") {
		t.Fatalf("unexpected topic %q content %.40q", got.Topic, got.Content)
	}
}

func TestDocsTopicNotFound(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "docs", "timezones", "--json")
	resp := expectErrorCode(t, out, err, ErrTopicNotFound)
	if resp.Error.Details == nil {
		t.Fatalf("expected available topics in details, got %s", out)
	}
}

func TestDocsRendersMarkdownOnTerminal(t *testing.T) {
	env := newTestEnv(t)
	prevTTY := docsStdoutIsTerminal
	prevDisplay := docsDisplayContext
	prevRender := docsMarkdownRender
	t.Cleanup(func() {
		docsStdoutIsTerminal = prevTTY
		docsDisplayContext = prevDisplay
		docsMarkdownRender = prevRender
	})

	docsStdoutIsTerminal = func() bool { return true }
	docsDisplayContext = func() *ui.DisplayContext { return ui.NewDisplayContextWithWidth(80) }
	docsMarkdownRender = func(content string, width int) (string, error) {
		return fmt.Sprintf("rendered width=%d", width), nil
	}

	out, err := env.run(t, "docs", "ranges")
	if err != nil {
		t.Fatalf("docs ranges: %v", err)
	}
	if out != "rendered width=76\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDocsPlainWhenPiped(t *testing.T) {
	env := newTestEnv(t)
	prevTTY := docsStdoutIsTerminal
	t.Cleanup(func() { docsStdoutIsTerminal = prevTTY })
	docsStdoutIsTerminal = func() bool { return false }

	out, err := env.run(t, "docs", "ranges")
	if err != nil {
		t.Fatalf("docs ranges: %v", err)
	}
	if !strings.HasPrefix(out, "# Named Ranges") {
		t.Fatalf("expected raw markdown, got %.40q", out)
	}
}

func TestDocsSearch(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "docs", "search", "sunday", "--json")
	if err != nil {
		t.Fatalf("docs search: %v", err)
	}
	resp := decodeEnvelope(t, out)
	if resp.Meta == nil || resp.Meta.Count == 0 {
		t.Fatalf("expected matches for sunday, got %s", out)
	}

	out, err = env.run(t, "docs", "search", "sunday", "--limit", "0", "--json")
	expectErrorCode(t, out, err, ErrInvalidInput)
}
