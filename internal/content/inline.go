package content

import (
	"regexp"
	"strings"
)

// One alternation so that the leftmost token wins, ties going to the earlier alternative.
// Capture groups: 1,2 colored; 3 strike; 4,5 link; 6 bold; 7 italic; 8 code; 9 mark.
var inlinePattern = regexp.MustCompile(
	`\{([^{}\n]+)\}\[(green|fuchsia|yellow|red|purple|blue|cyan|indigo)\]` +
		`|~~([^~\n]+)~~` +
		`|\[([^\[\]\n]+)\]\(([^)\s]+)\)` +
		`|\*\*([^*\s](?:[^*\n]*[^*\s])?)\*\*` +
		`|\*([^*\s](?:[^*\n]*[^*\s])?)\*` +
		"|`([^`\\n]+)`" +
		`|==([^=\n]+)==`)

var bareURLPattern = regexp.MustCompile(`https?://[^\s()\[\]{}<>]+`)

const urlTrailingPunct = ".,;:!?'\""

// A bare URL directly after one of these stays literal
const literalURLPrefixes = "!(["

// ParseInline splits a text span into inline parts. Unrecognized markup stays literal.
func ParseInline(s string) []Part {
	var parts []Part
	rest := s
	for rest != "" {
		loc := inlinePattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			parts = appendText(parts, rest)
			break
		}
		parts = appendText(parts, rest[:loc[0]])
		parts = append(parts, inlineToken(rest, loc))
		rest = rest[loc[1]:]
	}
	return promoteURLs(parts)
}

func inlineToken(s string, loc []int) Part {
	group := func(n int) (string, bool) {
		if loc[2*n] < 0 {
			return "", false
		}
		return s[loc[2*n]:loc[2*n+1]], true
	}

	if text, ok := group(1); ok {
		color, _ := group(2)
		return Colored{Text: text, Color: Color(color)}
	}
	if text, ok := group(3); ok {
		return Strike{Text: text}
	}
	if text, ok := group(4); ok {
		href, _ := group(5)
		return Link{Text: text, Href: href}
	}
	if text, ok := group(6); ok {
		return Bold{Text: text}
	}
	if text, ok := group(7); ok {
		return Italic{Text: text}
	}
	if text, ok := group(8); ok {
		return InlineCode{Text: text}
	}
	text, _ := group(9)
	return Mark{Text: text}
}

// appendText adds a literal run, merging it into a preceding literal run
func appendText(parts []Part, s string) []Part {
	if s == "" {
		return parts
	}
	if n := len(parts); n > 0 {
		if prev, ok := parts[n-1].(Text); ok {
			parts[n-1] = Text{Text: prev.Text + s}
			return parts
		}
	}
	return append(parts, Text{Text: s})
}

// promoteURLs turns bare http(s) URLs inside literal runs into links
func promoteURLs(parts []Part) []Part {
	var out []Part
	for _, p := range parts {
		t, ok := p.(Text)
		if !ok {
			out = append(out, p)
			continue
		}

		rest := t.Text
		for rest != "" {
			loc := bareURLPattern.FindStringIndex(rest)
			if loc == nil {
				out = appendText(out, rest)
				break
			}
			url := strings.TrimRight(rest[loc[0]:loc[1]], urlTrailingPunct)
			end := loc[0] + len(url)
			// after "!" a link would serialize as image syntax; after "(" or "[" its
			// brackets would pair with an unclosed link around it
			if strings.HasSuffix(url, "://") || (loc[0] > 0 && strings.IndexByte(literalURLPrefixes, rest[loc[0]-1]) >= 0) {
				out = appendText(out, rest[:loc[1]])
				rest = rest[loc[1]:]
				continue
			}
			out = appendText(out, rest[:loc[0]])
			out = append(out, Link{Text: url, Href: url})
			rest = rest[end:]
		}
	}
	return out
}

// SerializeInline writes parts back using the token each part was parsed from
func SerializeInline(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case Text:
			b.WriteString(v.Text)
		case Colored:
			b.WriteString("{" + v.Text + "}[" + string(v.Color) + "]")
		case Strike:
			b.WriteString("~~" + v.Text + "~~")
		case Link:
			b.WriteString("[" + v.Text + "](" + v.Href + ")")
		case Bold:
			b.WriteString("**" + v.Text + "**")
		case Italic:
			b.WriteString("*" + v.Text + "*")
		case InlineCode:
			b.WriteString("`" + v.Text + "`")
		case Mark:
			b.WriteString("==" + v.Text + "==")
		}
	}
	return b.String()
}

// PlainText flattens parts to their visible text
func PlainText(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case Text:
			b.WriteString(v.Text)
		case Colored:
			b.WriteString(v.Text)
		case Strike:
			b.WriteString(v.Text)
		case Link:
			b.WriteString(v.Text)
		case Bold:
			b.WriteString(v.Text)
		case Italic:
			b.WriteString(v.Text)
		case InlineCode:
			b.WriteString(v.Text)
		case Mark:
			b.WriteString(v.Text)
		}
	}
	return b.String()
}
