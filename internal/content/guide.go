package content

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoTopics is returned by ParseGuide when a document has no `## ` topic headings
var ErrNoTopics = errors.New("could not parse any topics")

var (
	topicIDPattern = regexp.MustCompile(`^(.*?)[ \t]*\{#([a-z0-9][a-z0-9_-]*)\}$`)
	slugStrip      = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	guideTitlePrefix = "# "
	topicPrefix      = "## "
	topicSeparator   = "---"
)

// Slug derives a topic id from a title: lowercase alphanumerics joined by single dashes
func Slug(title string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

type topicSpan struct {
	title, id  string
	start, end int // body lines
}

// ParseGuide splits a guide document into topics. The optional first `# Title` line names
// the guide. The first `## ` line opens the first topic; later ones open a new topic only
// when the previous non-blank line is a `---` separator, so `## ` headings may still appear
// inside a topic. Text before the first topic is ignored.
func ParseGuide(doc string) (*Guide, error) {
	lines := splitLines(doc)
	guide := &Guide{}

	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	if i < len(lines) && strings.HasPrefix(lines[i], guideTitlePrefix) {
		guide.Title = strings.TrimSpace(lines[i][len(guideTitlePrefix):])
		i++
	}

	spans := splitTopics(lines, i)
	if len(spans) == 0 {
		return nil, ErrNoTopics
	}

	seen := make(map[string]bool)
	for n, s := range spans {
		id := s.id
		if id == "" {
			id = Slug(s.title)
		}
		if id == "" {
			id = "topic-" + strconv.Itoa(n+1)
		}
		id = uniqueID(id, seen)
		seen[id] = true

		guide.Topics = append(guide.Topics, Topic{
			ID:      id,
			Title:   s.title,
			Content: Parse(strings.Join(lines[s.start:s.end], "\n")),
		})
	}
	return guide, nil
}

func splitTopics(lines []string, i int) []topicSpan {
	var spans []topicSpan
	inFence := false
	prev := -1 // last non-blank line outside a fence

	for ; i < len(lines); i++ {
		line := lines[i]
		if isFence(line) {
			inFence = !inFence
		}
		if inFence || isBlank(line) || isFence(line) {
			if !isBlank(line) {
				prev = -1
			}
			continue
		}

		if strings.HasPrefix(line, topicPrefix) {
			if len(spans) == 0 {
				spans = append(spans, newTopicSpan(line, i))
				prev = -1
				continue
			}
			if prev >= 0 && strings.TrimSpace(lines[prev]) == topicSeparator {
				spans[len(spans)-1].end = prev
				spans = append(spans, newTopicSpan(line, i))
				prev = -1
				continue
			}
		}
		prev = i
	}

	if len(spans) > 0 && spans[len(spans)-1].end == 0 {
		spans[len(spans)-1].end = len(lines)
	}
	return spans
}

func newTopicSpan(line string, i int) topicSpan {
	title := strings.TrimSpace(line[len(topicPrefix):])
	var id string
	if m := topicIDPattern.FindStringSubmatch(title); m != nil {
		title, id = m[1], m[2]
	}
	return topicSpan{title: title, id: id, start: i + 1}
}

func uniqueID(id string, seen map[string]bool) string {
	if !seen[id] {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if !seen[candidate] {
			return candidate
		}
	}
}

// SerializeGuide writes a guide in the form ParseGuide reads
func SerializeGuide(g *Guide) string {
	var b strings.Builder
	if g.Title != "" {
		b.WriteString(guideTitlePrefix + g.Title + "\n\n")
	}

	for n, t := range g.Topics {
		if n > 0 {
			b.WriteString("\n\n" + topicSeparator + "\n\n")
		}
		b.WriteString(topicPrefix + t.Title)
		if t.ID != "" && t.ID != Slug(t.Title) {
			b.WriteString(" {#" + t.ID + "}")
		}
		if body := Serialize(t.Content); body != "" {
			b.WriteString("\n\n" + body)
		}
	}
	b.WriteString("\n")
	return b.String()
}
