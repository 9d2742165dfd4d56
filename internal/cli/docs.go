package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/aidanlsb/daterange/docs"
	"github.com/aidanlsb/daterange/internal/guide"
	"github.com/aidanlsb/daterange/internal/ui"
)

const docsGuideDir = "guide"

var (
	docsSearchLimit int

	docsStdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopicView struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Path     string          `json:"path"`
	Sections []guide.Heading `json:"sections,omitempty"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guide",
	Long: `Read the long-form guide bundled into the drange binary.

Topics can be named by ID (week-start) or title ("Week Start Day").
For command-level usage, use 'drange help <command>'.

Examples:
  drange docs
  drange docs ranges
  drange docs "Week Start Day"
  drange docs search sunday`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := guide.Load(builtindocs.FS, docsGuideDir)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild drange so the bundled guide is available")
		}

		if len(args) == 0 {
			return outputDocsTopics(topics)
		}

		topic, ok := guide.Find(topics, args[0])
		if !ok {
			ids := make([]string, 0, len(topics))
			for _, t := range topics {
				ids = append(ids, t.ID)
			}
			return handleErrorWithDetails(ErrTopicNotFound,
				fmt.Sprintf("docs topic '%s' not found", args[0]),
				"Run 'drange docs' to list topics",
				map[string]interface{}{"available": ids})
		}

		return outputDocsTopicContent(topic)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled guide",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: drange docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		topics, err := guide.Load(builtindocs.FS, docsGuideDir)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		matches, err := guide.Search(builtindocs.FS, topics, query, docsSearchLimit)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"count":   len(matches),
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No docs matched %q.\n", query)
			return nil
		}

		fmt.Printf("Matches for %q (%d):\n", query, len(matches))
		for _, m := range matches {
			location := m.Topic
			if m.Section != "" {
				location += " > " + m.Section
			}
			fmt.Printf("- %s:%d %s\n", location, m.Line, m.Snippet)
		}
		return nil
	},
}

func outputDocsTopics(topics []guide.Topic) error {
	if isJSONOutput() {
		items := make([]docsTopicView, 0, len(topics))
		for _, t := range topics {
			items = append(items, docsTopicView{ID: t.ID, Title: t.Title, Path: t.Path, Sections: t.Headings})
		}
		outputSuccess(map[string]interface{}{
			"topics":       items,
			"command_docs": "drange help <command>",
		}, &Meta{Count: len(items)})
		return nil
	}

	fmt.Println("Guide topics:")
	for _, t := range topics {
		fmt.Printf("  %-32s %s\n", fmt.Sprintf("drange docs %s", t.ID), t.Title)
	}
	fmt.Println()
	fmt.Println("  drange docs search <query>       Search the guide")
	fmt.Println("  drange help <command>            Command docs")
	return nil
}

func outputDocsTopicContent(topic guide.Topic) error {
	content, err := guide.Read(builtindocs.FS, topic)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": content,
		}, nil)
		return nil
	}

	rendered := content
	if docsStdoutIsTerminal() {
		display := docsDisplayContext()
		if out, renderErr := docsMarkdownRender(content, display.MarkdownWidth()); renderErr == nil {
			rendered = out
		}
	}

	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return nil
}

func init() {
	docsSearchCmd.Flags().IntVar(&docsSearchLimit, "limit", 20, "Maximum matches to return")
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
