// Package preview renders content blocks for the terminal. Dialect-only constructs are
// mapped onto plain GitHub-flavored markdown first, which glamour then styles.
package preview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/xcode96/SOC/internal/content"
)

var alertLabels = map[content.AlertType]string{
	content.AlertNote:      "ℹ Note",
	content.AlertTip:       "💡 Tip",
	content.AlertImportant: "❗ Important",
	content.AlertWarning:   "⚠ Warning",
	content.AlertCaution:   "⛔ Caution",
}

// Markdown maps blocks onto GitHub-flavored markdown
func Markdown(blocks content.Blocks) string {
	var out []string
	for _, b := range blocks {
		if s := block(b); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

// GuideMarkdown lays out a whole guide, one section per topic
func GuideMarkdown(g *content.Guide) string {
	var out []string
	if g.Title != "" {
		out = append(out, "# "+g.Title)
	}
	for _, t := range g.Topics {
		section := "## " + t.Title
		if body := Markdown(t.Content); body != "" {
			section += "\n\n" + body
		}
		out = append(out, section)
	}
	return strings.Join(out, "\n\n---\n\n")
}

func block(b content.Block) string {
	switch v := b.(type) {
	case content.Heading:
		return strings.Repeat("#", v.Level) + " " + v.Text
	case content.Paragraph:
		return inline(v.Parts)
	case content.List:
		var lines []string
		items(&lines, v.Items, v.Ordered, 0)
		return strings.Join(lines, "\n")
	case content.Highlight:
		return quote("**" + strings.ToUpper(string(v.Color)) + "**\n\n" + v.Text)
	case content.Table:
		return table(v)
	case content.Image:
		return "![" + v.Alt + "](" + v.Src + ")"
	case content.CodeBlock:
		return "```" + v.Language + "\n" + v.Text + "\n```"
	case content.Blockquote:
		if label, ok := alertLabels[v.Alert]; ok {
			return quote("**" + label + "**\n\n" + v.Text)
		}
		return quote(v.Text)
	case content.HorizontalRule:
		return "---"
	case content.Details:
		summary := "▸ **" + v.Summary + "**"
		if len(v.Children) == 0 {
			return summary
		}
		return summary + "\n\n" + Markdown(v.Children)
	case content.HTMLBlock:
		return "```html\n" + v.HTML + "\n```"
	}
	return ""
}

func quote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+line, " ")
	}
	return strings.Join(lines, "\n")
}

func inline(parts []content.Part) string {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case content.Text:
			b.WriteString(v.Text)
		case content.Colored:
			b.WriteString("**" + v.Text + "**")
		case content.Strike:
			b.WriteString("~~" + v.Text + "~~")
		case content.Link:
			if v.Text == v.Href {
				b.WriteString("<" + v.Href + ">")
			} else {
				b.WriteString("[" + v.Text + "](" + v.Href + ")")
			}
		case content.InlineCode:
			b.WriteString("`" + v.Text + "`")
		case content.Mark:
			b.WriteString("***" + v.Text + "***")
		case content.Bold:
			b.WriteString("**" + v.Text + "**")
		case content.Italic:
			b.WriteString("*" + v.Text + "*")
		}
	}
	return b.String()
}

func items(lines *[]string, list []content.ListItem, ordered bool, depth int) {
	indent := strings.Repeat("   ", depth)
	for n, item := range list {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(n+1) + "."
		}
		var text string
		switch v := item.(type) {
		case content.PlainItem:
			text = v.Text
		case content.PartedItem:
			text = inline(v.Parts)
		case content.TaskItem:
			box := "☐"
			if v.Checked {
				box = "☑"
			}
			text = box + " " + v.Text
		}
		*lines = append(*lines, indent+marker+" "+text)
		items(lines, item.Children(), ordered, depth+1)
	}
}

func table(t content.Table) string {
	width := len(t.Headers)
	if width == 0 && len(t.Rows) > 0 {
		width = len(t.Rows[0])
	}
	row := func(cells []string) string {
		return "| " + strings.Join(cells, " | ") + " |"
	}

	headers := make([]string, width)
	copy(headers, t.Headers)
	lines := []string{row(headers)}

	markers := make([]string, width)
	for k := range markers {
		markers[k] = "---"
		if k < len(t.Align) {
			switch t.Align[k] {
			case content.AlignCenter:
				markers[k] = ":---:"
			case content.AlignRight:
				markers[k] = "---:"
			}
		}
	}
	lines = append(lines, row(markers))

	for _, r := range t.Rows {
		cells := make([]string, len(r))
		for k, c := range r {
			cells[k] = strings.ReplaceAll(c.Text, "|", `\|`)
			if c.Color != "" && c.Text != "" {
				cells[k] = "**" + cells[k] + "**"
			}
		}
		lines = append(lines, row(cells))
	}
	return strings.Join(lines, "\n")
}

// Render styles markdown for the terminal, falling back to the markdown itself
func Render(markdown string, wordWrap int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
