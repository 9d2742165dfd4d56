// Package guide indexes the Markdown guide bundled with the binary.
package guide

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/daterange/internal/slugs"
)

// Heading represents a parsed heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
	Line  int    `json:"line"` // 1-indexed
}

// Topic is one guide page.
type Topic struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Headings []Heading `json:"headings,omitempty"`
}

// Match is a search hit inside a topic.
type Match struct {
	Topic   string `json:"topic"`
	Section string `json:"section,omitempty"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

// Load lists the *.md files directly under dir, sorted by ID. A topic's title
// is its first level-1 heading, falling back to the ID.
func Load(fsys fs.FS, dir string) ([]Topic, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read guide: %w", err)
	}

	var topics []Topic
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		p := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read guide topic %s: %w", p, err)
		}

		id := strings.TrimSuffix(entry.Name(), ".md")
		topic := Topic{ID: id, Title: id, Path: p, Headings: ExtractHeadings(content)}
		for _, h := range topic.Headings {
			if h.Level == 1 {
				topic.Title = h.Text
				break
			}
		}
		topics = append(topics, topic)
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

// Find looks a topic up by ID or by its title ("Week Start Day").
func Find(topics []Topic, name string) (Topic, bool) {
	key := slugs.HeadingSlug(name)
	for _, t := range topics {
		if t.ID == key || slugs.HeadingSlug(t.Title) == key {
			return t, true
		}
	}
	return Topic{}, false
}

// Read returns a topic's Markdown source.
func Read(fsys fs.FS, t Topic) (string, error) {
	content, err := fs.ReadFile(fsys, t.Path)
	if err != nil {
		return "", fmt.Errorf("read guide topic %s: %w", t.ID, err)
	}
	return string(content), nil
}

// Search finds lines containing query (case-insensitive) across topics.
// limit <= 0 means no limit.
func Search(fsys fs.FS, topics []Topic, query string, limit int) ([]Match, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	var matches []Match
	for _, t := range topics {
		content, err := Read(fsys, t)
		if err != nil {
			return nil, err
		}
		for i, line := range strings.Split(content, "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			matches = append(matches, Match{
				Topic:   t.ID,
				Section: sectionAt(t.Headings, i+1),
				Line:    i + 1,
				Snippet: strings.TrimSpace(line),
			})
			if limit > 0 && len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func sectionAt(headings []Heading, line int) string {
	section := ""
	for _, h := range headings {
		if h.Line > line {
			break
		}
		section = h.Text
	}
	return section
}

// ExtractHeadings extracts headings from markdown content using goldmark.
func ExtractHeadings(content []byte) []Heading {
	var headings []Heading

	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				textBuilder.Write(c.Segment.Value(content))
			case *ast.CodeSpan:
				for gc := c.FirstChild(); gc != nil; gc = gc.NextSibling() {
					if t, ok := gc.(*ast.Text); ok {
						textBuilder.Write(t.Segment.Value(content))
					}
				}
			}
		}

		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			line += bytes.Count(content[:heading.Lines().At(0).Start], []byte("\n"))
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			Slug:  slugs.HeadingSlug(headingText),
			Line:  line,
		})
		return ast.WalkContinue, nil
	})

	return headings
}
