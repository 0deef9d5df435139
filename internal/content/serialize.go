package content

import (
	"strconv"
	"strings"
)

const listIndent = 2

// Serialize writes blocks back to markup. Parsing the result yields the same blocks
// that produced it, although the text may differ from what was originally parsed.
func Serialize(blocks Blocks) string {
	var out []string
	for _, b := range blocks {
		if s := serializeBlock(b); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

func serializeBlock(b Block) string {
	switch v := b.(type) {
	case Heading:
		return strings.Repeat("#", v.Level) + " " + v.Text
	case Paragraph:
		return SerializeInline(v.Parts)
	case List:
		var lines []string
		writeItems(&lines, v.Items, v.Ordered, 0)
		return strings.Join(lines, "\n")
	case Highlight:
		return blockFence(v)
	case Table:
		return serializeTable(v)
	case Image:
		return "![" + v.Alt + "](" + v.Src + ")"
	case CodeBlock:
		return serializeCode(v)
	case Blockquote:
		return serializeQuote(v)
	case HorizontalRule:
		return "---"
	case Details:
		return serializeDetails(v)
	case HTMLBlock:
		return v.HTML
	}
	return ""
}

func writeItems(lines *[]string, items []ListItem, ordered bool, depth int) {
	indent := strings.Repeat(" ", depth*listIndent)
	for n, item := range items {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(n+1) + "."
		}
		*lines = append(*lines, indent+marker+" "+itemContent(item))
		writeItems(lines, item.Children(), ordered, depth+1)
	}
}

func itemContent(item ListItem) string {
	switch v := item.(type) {
	case PlainItem:
		return v.Text
	case PartedItem:
		return SerializeInline(v.Parts)
	case TaskItem:
		box := "[ ]"
		if v.Checked {
			box = "[x]"
		}
		if v.Text == "" {
			return box
		}
		return box + " " + v.Text
	}
	return ""
}

func serializeCode(c CodeBlock) string {
	if c.Text == "" {
		return fenceMarker + c.Language + "\n" + fenceMarker
	}
	return fenceMarker + c.Language + "\n" + c.Text + "\n" + fenceMarker
}

func serializeQuote(q Blockquote) string {
	var lines []string
	if q.Alert != "" {
		lines = append(lines, "> [!"+strings.ToUpper(string(q.Alert))+"]")
	}
	for _, line := range strings.Split(q.Text, "\n") {
		if line == "" {
			lines = append(lines, ">")
		} else {
			lines = append(lines, "> "+line)
		}
	}
	if q.Alert != "" && q.Text == "" {
		lines = lines[:1]
	}
	return strings.Join(lines, "\n")
}

func serializeTable(t Table) string {
	headers := t.Headers
	width := len(headers)
	if width == 0 && len(t.Rows) > 0 {
		width = len(t.Rows[0])
		headers = make([]string, width)
	}

	lines := []string{tableRow(headers)}

	markers := make([]string, width)
	for k := range markers {
		align := AlignLeft
		if k < len(t.Align) {
			align = t.Align[k]
		}
		switch align {
		case AlignCenter:
			markers[k] = ":---:"
		case AlignRight:
			markers[k] = "---:"
		default:
			markers[k] = "---"
		}
	}
	lines = append(lines, "|"+strings.Join(markers, "|")+"|")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for k, c := range row {
			if c.Color != "" {
				cells[k] = "{" + c.Text + "}[" + string(c.Color) + "]"
			} else {
				cells[k] = c.Text
			}
		}
		lines = append(lines, tableRow(cells))
	}
	return strings.Join(lines, "\n")
}

func tableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for k, c := range cells {
		escaped[k] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

// serializeDetails prefers the `* **Summary:**` shorthand for a single code sample
func serializeDetails(d Details) string {
	if code, ok := shorthandCode(d); ok {
		return "* **" + d.Summary + ":**\n" + serializeCode(code)
	}

	head := "<details>\n<summary>" + d.Summary + "</summary>"
	if len(d.Children) == 0 {
		return head + "\n</details>"
	}
	return head + "\n\n" + Serialize(d.Children) + "\n\n</details>"
}

func shorthandCode(d Details) (CodeBlock, bool) {
	if len(d.Children) != 1 || d.Summary == "" || strings.ContainsAny(d.Summary, "\n") {
		return CodeBlock{}, false
	}
	code, ok := d.Children[0].(CodeBlock)
	return code, ok
}
