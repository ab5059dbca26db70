// Package markdown renders todo descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output, indented by indent
// spaces within width columns. Blank input renders as nil. When glamour
// fails the text is word-wrapped instead.
func Render(width, indentBy int, input []byte) []byte {
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	indentBy = max(indentBy, 0)
	renderWidth := max(width-indentBy, 1)

	rendered, ok := safeRender(markdownRenderer(renderWidth), value)
	if !ok {
		rendered = Wrap(value, renderWidth)
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indentBy == 0 {
		return []byte(rendered)
	}
	return []byte(indent.String(rendered, uint(indentBy)))
}

// Wrap word-wraps each paragraph of value to width, collapsing whitespace
// inside paragraphs. Paragraphs are separated by a blank line.
func Wrap(value string, width int) string {
	width = max(width, 1)
	var wrapped []string
	for _, paragraph := range splitParagraphs(internalstrings.NormalizeNewlines(value)) {
		normalized := internalstrings.NormalizeWhitespace(paragraph)
		if normalized == "" {
			continue
		}
		wrapped = append(wrapped, wordwrap.String(normalized, width))
	}
	return strings.Join(wrapped, "\n\n")
}

func splitParagraphs(value string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func safeRender(r renderer, value string) (rendered string, ok bool) {
	if r == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			rendered, ok = "", false
		}
	}()
	out, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return out, true
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
