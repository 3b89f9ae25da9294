package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/nhle/taskmaster/internal/theme"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

// RenderMarkdown formats markdown for the terminal, wrapped to width and
// styled for the active theme. It returns the input unchanged when the
// renderer fails.
func RenderMarkdown(width int, input string) string {
	input = strings.TrimSpace(strings.ReplaceAll(input, "\r\n", "\n"))
	if input == "" {
		return ""
	}

	r := markdownRenderer(rendererKey{width: max(width, 1), dark: theme.IsDark()})
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.Trim(out, "\n")
}

func markdownRenderer(k rendererKey) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[k]; ok {
		return cached
	}

	style := styles.LightStyleConfig
	if k.dark {
		style = styles.DarkStyleConfig
	}
	// The surrounding panel already pads its content.
	var zero uint
	style.Document.Margin = &zero

	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(k.width),
	)
	if err != nil {
		return nil
	}
	renderers[k] = created
	return created
}
