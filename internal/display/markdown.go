package display

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	renderer     *glamour.TermRenderer
	rendererOnce sync.Once
	rendererErr  error
)

// InitRenderer builds the shared markdown renderer. Safe to call repeatedly.
func InitRenderer() error {
	rendererOnce.Do(func() {
		renderer, rendererErr = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
	})
	return rendererErr
}

// RenderMarkdown renders content as terminal markdown. When the renderer is
// unavailable the content is returned unchanged.
func RenderMarkdown(content string) string {
	if err := InitRenderer(); err != nil || renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// MarkdownList formats items as a markdown bullet list under a heading
func MarkdownList(heading string, items []string) string {
	var sb strings.Builder
	if heading != "" {
		sb.WriteString("## ")
		sb.WriteString(heading)
		sb.WriteString("\n\n")
	}
	for _, item := range items {
		sb.WriteString("- `")
		sb.WriteString(item)
		sb.WriteString("`\n")
	}
	return sb.String()
}
