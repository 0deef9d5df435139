package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/xcode96/SOC/internal/content"
)

// Unified returns a unified diff from before to after, or "" when they are equal
func Unified(beforeName, afterName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(beforeName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(beforeName, afterName, before, edits))
}

// Normalization diffs a markup file against its normalized form, the text that
// Serialize(Parse(markup)) produces
func Normalization(name, markup string) string {
	normalized := content.Serialize(content.Parse(markup))
	if normalized != "" {
		normalized += "\n"
	}
	return Unified(name, name+" (normalized)", markup, normalized)
}

// Render wraps a unified diff in a diff fence and renders it for the terminal.
// Rendering failures fall back to the plain fenced diff.
func Render(unified string, wordWrap int) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}
