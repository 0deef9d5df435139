package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlOpenPattern = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9]*)(?:[\s/>]|$)`)

// Block-level tags that open an HTML block. Anything else at line start is paragraph text.
var htmlBlockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Audio: true,
	atom.Blockquote: true, atom.Center: true, atom.Details: true, atom.Dialog: true,
	atom.Div: true, atom.Dl: true, atom.Fieldset: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true,
	atom.Iframe: true, atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Picture: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Ul: true, atom.Video: true,
}

// Void tags never close, so their block is the opening line alone
var htmlVoidTags = map[atom.Atom]bool{
	atom.Hr: true,
}

var detailsPattern = regexp.MustCompile(`(?s)^\s*<details[^>]*>\s*<summary[^>]*>(.*?)</summary>(.*)</details>\s*$`)

// htmlBlockTag returns the block tag a line opens, if any
func htmlBlockTag(line string) (atom.Atom, bool) {
	m := htmlOpenPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	a := atom.Lookup([]byte(strings.ToLower(m[1])))
	if !htmlBlockTags[a] {
		return 0, false
	}
	return a, true
}

// tagBalance returns opened minus closed occurrences of tag on one line
func tagBalance(line string, tag atom.Atom) int {
	z := html.NewTokenizer(strings.NewReader(line))
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return depth
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != tag {
				continue
			}
			if tt == html.StartTagToken {
				depth++
			} else {
				depth--
			}
		}
	}
}

// hasTag reports whether s opens or closes tag anywhere
func hasTag(s string, tag atom.Atom) bool {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == tag {
				return true
			}
		}
	}
}

// nestsCleanly reports whether a details body closes every details it opens without
// ever closing the wrapper around it, counted line by line as htmlBlockEnd counts
func nestsCleanly(body string) bool {
	depth := 0
	for _, line := range strings.Split(body, "\n") {
		depth += tagBalance(line, atom.Details)
		if depth < 0 {
			return false
		}
	}
	return depth == 0
}

// htmlBlockEnd finds the line after the one that closes the tag opened on line i.
// An unbalanced block runs to the end of input, minus trailing blank lines.
func htmlBlockEnd(lines []string, i int, tag atom.Atom) int {
	if htmlVoidTags[tag] {
		return i + 1
	}

	depth := 0
	for j := i; j < len(lines); j++ {
		depth += tagBalance(lines[j], tag)
		if depth <= 0 {
			return j + 1
		}
	}

	end := len(lines)
	for end > i+1 && isBlank(lines[end-1]) {
		end--
	}
	return end
}

// consumeHTML keeps the block verbatim, except that a well-formed <details> wrapper
// becomes a Details block whose body is parsed as blocks
func consumeHTML(lines []string, i int, m lineMatch) (Block, int) {
	end := htmlBlockEnd(lines, i, m.tag)
	raw := strings.Join(lines[i:end], "\n")

	if m.tag == atom.Details {
		if dm := detailsPattern.FindStringSubmatch(raw); dm != nil && !hasTag(dm[1], atom.Details) && nestsCleanly(dm[2]) {
			return Details{
				Summary:  strings.TrimSpace(dm[1]),
				Children: Parse(dm[2]),
			}, end
		}
	}
	return HTMLBlock{HTML: raw}, end
}
