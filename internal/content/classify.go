package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"
)

// blockClass is the block type the classifier assigns to the next unconsumed line
type blockClass int

const (
	classHTML blockClass = iota
	classDetails
	classList
	classTable
	classFence
	classHeading
	classRule
	classImage
	classQuote
	classParagraph
)

var classNames = [...]string{
	classHTML:      "html",
	classDetails:   "details",
	classList:      "list",
	classTable:     "table",
	classFence:     "fence",
	classHeading:   "heading",
	classRule:      "rule",
	classImage:     "image",
	classQuote:     "blockquote",
	classParagraph: "paragraph",
}

func (c blockClass) String() string {
	return classNames[c]
}

// lineMatch describes what a classifier recognized at a line
type lineMatch struct {
	class blockClass

	tag   atom.Atom // classHTML
	title string    // classDetails
	fence int       // classDetails: index of the fence line

	level int    // classHeading
	text  string // classHeading
	src   string // classImage
	alt   string // classImage
}

type classifier struct {
	class blockClass
	match func(lines []string, i int) (lineMatch, bool)
}

// Order matters: a later rule may assume every earlier one already failed.
var classifiers = []classifier{
	{classHTML, matchHTMLBlock},
	{classDetails, matchDetailsShorthand},
	{classList, matchListItem},
	{classTable, matchTable},
	{classFence, matchFence},
	{classHeading, matchHeading},
	{classRule, matchRule},
	{classImage, matchImage},
	{classQuote, matchQuote},
}

// classify returns the first classifier match at line i, defaulting to a paragraph
func classify(lines []string, i int) lineMatch {
	for _, c := range classifiers {
		if m, ok := c.match(lines, i); ok {
			m.class = c.class
			return m
		}
	}
	return lineMatch{class: classParagraph}
}

var (
	detailsShorthandPattern = regexp.MustCompile(`^[ \t]*[-*+][ \t]+\*\*(.+):\*\*[ \t]*$`)
	tableRowPattern         = regexp.MustCompile(`^\|.*\|$`)
	tableAlignPattern       = regexp.MustCompile(`^\|(?:[ \t]*:?-+:?[ \t]*\|)+$`)
	headingPattern          = regexp.MustCompile(`^(#{1,6})(?:[ \t]+(.*))?$`)
	imagePattern            = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)
)

const fenceMarker = "```"

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fenceMarker)
}

func matchHTMLBlock(lines []string, i int) (lineMatch, bool) {
	tag, ok := htmlBlockTag(lines[i])
	return lineMatch{tag: tag}, ok
}

// matchDetailsShorthand recognizes `* **Title:**` followed, after blank lines, by a fence
func matchDetailsShorthand(lines []string, i int) (lineMatch, bool) {
	m := detailsShorthandPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return lineMatch{}, false
	}
	k := i + 1
	for k < len(lines) && isBlank(lines[k]) {
		k++
	}
	if k == len(lines) || !isFence(lines[k]) {
		return lineMatch{}, false
	}
	return lineMatch{title: m[1], fence: k}, true
}

func matchListItem(lines []string, i int) (lineMatch, bool) {
	_, ok := matchMarker(lines[i])
	return lineMatch{}, ok
}

func matchTable(lines []string, i int) (lineMatch, bool) {
	if i+1 >= len(lines) {
		return lineMatch{}, false
	}
	header := strings.TrimSpace(lines[i])
	ok := tableRowPattern.MatchString(header) &&
		tableAlignPattern.MatchString(strings.TrimSpace(lines[i+1])) &&
		len(splitTableRow(header)) > 0
	return lineMatch{}, ok
}

func matchFence(lines []string, i int) (lineMatch, bool) {
	return lineMatch{}, isFence(lines[i])
}

func matchHeading(lines []string, i int) (lineMatch, bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return lineMatch{}, false
	}
	return lineMatch{level: len(m[1]), text: strings.TrimSpace(m[2])}, true
}

func matchRule(lines []string, i int) (lineMatch, bool) {
	return lineMatch{}, strings.TrimSpace(lines[i]) == "---"
}

func matchImage(lines []string, i int) (lineMatch, bool) {
	m := imagePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return lineMatch{}, false
	}
	return lineMatch{alt: m[1], src: m[2]}, true
}

func matchQuote(lines []string, i int) (lineMatch, bool) {
	return lineMatch{}, strings.HasPrefix(strings.TrimSpace(lines[i]), ">")
}
