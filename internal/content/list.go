package content

import (
	"regexp"
	"strings"
)

var (
	listMarkerPattern = regexp.MustCompile(`^([ \t]*)([-*+]|\d+\.)[ \t]+(.*)$`)
	taskPattern       = regexp.MustCompile(`^\[([ xX])\](?:[ \t]+(.*))?$`)
)

type listMarker struct {
	indent  int
	ordered bool
	text    string
}

func matchMarker(line string) (listMarker, bool) {
	m := listMarkerPattern.FindStringSubmatch(line)
	if m == nil {
		return listMarker{}, false
	}
	return listMarker{
		indent:  indentWidth(m[1]),
		ordered: m[2] != "-" && m[2] != "*" && m[2] != "+",
		text:    strings.TrimSpace(m[3]),
	}, true
}

// indentWidth counts leading whitespace columns, a tab counting as one indentation step
func indentWidth(s string) int {
	width := 0
	for _, r := range s {
		switch r {
		case ' ':
			width++
		case '\t':
			width += listIndent
		default:
			return width
		}
	}
	return width
}

// listRunEnd returns the end (exclusive) of the list run starting at marker line i.
// The run continues over marker lines and over lines indented deeper than the first
// marker; it stops at a blank line or at a details shorthand.
func listRunEnd(lines []string, i int) int {
	base := indentWidth(lines[i])
	j := i + 1
	for j < len(lines) {
		line := lines[j]
		if isBlank(line) {
			break
		}
		if _, ok := matchMarker(line); ok {
			if _, details := matchDetailsShorthand(lines, j); details {
				break
			}
			j++
			continue
		}
		if indentWidth(line) > base {
			j++
			continue
		}
		break
	}
	return j
}

// parseList builds a List from a run of lines whose first line is a marker line.
// Ordered-ness is taken from that first marker.
func parseList(lines []string) List {
	first, _ := matchMarker(lines[0])
	return List{Ordered: first.ordered, Items: parseItems(lines)}
}

// parseItems partitions lines into item groups. lines[0] must be a marker line; its
// indentation is the base. Any later marker at or left of the base opens a sibling.
func parseItems(lines []string) []ListItem {
	if len(lines) == 0 {
		return nil
	}
	base := indentWidth(lines[0])

	var items []ListItem
	start := 0
	for j := 1; j <= len(lines); j++ {
		if j < len(lines) {
			m, ok := matchMarker(lines[j])
			if !ok || m.indent > base {
				continue
			}
		}
		items = append(items, parseItem(lines[start:j]))
		start = j
	}
	return items
}

// parseItem turns one group into an item. Non-marker lines directly after the marker
// line continue its text; everything from the first nested marker on becomes SubItems.
func parseItem(group []string) ListItem {
	m, _ := matchMarker(group[0])
	text := m.text

	k := 1
	for k < len(group) {
		if _, ok := matchMarker(group[k]); ok {
			break
		}
		text = joinWords(text, strings.TrimSpace(group[k]))
		k++
	}

	// group[k:] is strictly shorter than group, so the recursion terminates
	return newListItem(text, parseItems(group[k:]))
}

func joinWords(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func newListItem(text string, sub []ListItem) ListItem {
	if m := taskPattern.FindStringSubmatch(text); m != nil {
		return TaskItem{Text: m[2], Checked: m[1] != " ", SubItems: sub}
	}

	parts := ParseInline(text)
	if len(parts) == 0 {
		return PlainItem{SubItems: sub}
	}
	if t, ok := parts[0].(Text); ok && len(parts) == 1 {
		return PlainItem{Text: t.Text, SubItems: sub}
	}
	return PartedItem{Parts: parts, SubItems: sub}
}

// ItemText returns the visible text of an item without its sub items
func ItemText(item ListItem) string {
	switch v := item.(type) {
	case PlainItem:
		return v.Text
	case PartedItem:
		return PlainText(v.Parts)
	case TaskItem:
		return v.Text
	}
	return ""
}
