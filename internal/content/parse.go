package content

import (
	"fmt"
	"regexp"
	"strings"
)

// consumeFunc turns the run starting at line i into a block and returns the index of
// the first line it did not consume. A nil block consumes lines without output.
type consumeFunc func(lines []string, i int, m lineMatch) (Block, int)

// Filled in init: consumeHTML recurses into Parse, which reads this table.
var consumers map[blockClass]consumeFunc

func init() {
	consumers = map[blockClass]consumeFunc{
		classHTML:      consumeHTML,
		classDetails:   consumeDetailsShorthand,
		classList:      consumeList,
		classTable:     consumeTable,
		classFence:     consumeFence,
		classHeading:   consumeHeading,
		classRule:      consumeRule,
		classImage:     consumeImage,
		classQuote:     consumeQuote,
		classParagraph: consumeParagraph,
	}
}

// Parse converts markup into blocks. It never fails: input it cannot make sense of
// degrades to paragraphs.
func Parse(markup string) Blocks {
	lines := splitLines(markup)

	var blocks Blocks
	i := 0
	for i < len(lines) {
		if isBlank(lines[i]) {
			i++
			continue
		}

		m := classify(lines, i)
		block, next := consumers[m.class](lines, i, m)
		if next <= i {
			panic(fmt.Sprintf("content: %s consumer made no progress at line %d", m.class, i+1))
		}
		if block != nil {
			blocks = append(blocks, block)
		}
		i = next
	}
	return blocks
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func consumeHeading(lines []string, i int, m lineMatch) (Block, int) {
	return Heading{Level: m.level, Text: m.text}, i + 1
}

func consumeRule(lines []string, i int, m lineMatch) (Block, int) {
	return HorizontalRule{}, i + 1
}

func consumeImage(lines []string, i int, m lineMatch) (Block, int) {
	return Image{Src: m.src, Alt: m.alt}, i + 1
}

func consumeList(lines []string, i int, m lineMatch) (Block, int) {
	end := listRunEnd(lines, i)
	return parseList(lines[i:end]), end
}

// fencedCode reads the fence opened on line i. Without a closing fence the rest of
// the input is code.
func fencedCode(lines []string, i int) (CodeBlock, int) {
	lang := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), fenceMarker))

	j := i + 1
	for j < len(lines) && strings.TrimSpace(lines[j]) != fenceMarker {
		j++
	}
	code := CodeBlock{Language: lang, Text: strings.Join(lines[i+1:j], "\n")}
	if j < len(lines) {
		j++
	}
	return code, j
}

// consumeFence also splices in a block written as JSON inside a `block` fence
func consumeFence(lines []string, i int, m lineMatch) (Block, int) {
	code, next := fencedCode(lines, i)
	if code.Language == blockFenceLanguage {
		if b, ok := decodeBlockJSON(code.Text); ok {
			return b, next
		}
	}
	return code, next
}

func consumeDetailsShorthand(lines []string, i int, m lineMatch) (Block, int) {
	code, next := fencedCode(lines, m.fence)
	return Details{Summary: m.title, Children: Blocks{code}}, next
}

var alertPattern = regexp.MustCompile(`(?i)^\[!(note|tip|important|warning|caution)\][ \t]*(.*)$`)

func consumeQuote(lines []string, i int, m lineMatch) (Block, int) {
	var text []string
	var alert AlertType

	j := i
	for j < len(lines) {
		line := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(line, ">") {
			break
		}
		line = strings.TrimPrefix(line[1:], " ")

		if j == i {
			if am := alertPattern.FindStringSubmatch(line); am != nil {
				alert = AlertType(strings.ToLower(am[1]))
				line = am[2]
				if line == "" {
					j++
					continue
				}
			}
		}
		text = append(text, line)
		j++
	}
	return Blockquote{Text: strings.Join(text, "\n"), Alert: alert}, j
}

func consumeTable(lines []string, i int, m lineMatch) (Block, int) {
	headers := splitTableRow(strings.TrimSpace(lines[i]))
	width := len(headers)

	var align []Align
	for _, marker := range splitTableRow(strings.TrimSpace(lines[i+1])) {
		align = append(align, parseAlign(marker))
	}
	align = fitAlign(align, width)

	var rows [][]Cell
	j := i + 2
	for j < len(lines) && tableRowPattern.MatchString(strings.TrimSpace(lines[j])) {
		var row []Cell
		for _, text := range splitTableRow(strings.TrimSpace(lines[j])) {
			row = append(row, parseCell(text))
		}
		rows = append(rows, fitRow(row, width))
		j++
	}
	return Table{Headers: headers, Align: align, Rows: rows}, j
}

// splitTableRow splits `| a | b |` on unescaped pipes, dropping the outer edges
func splitTableRow(row string) []string {
	var cells []string
	var cell strings.Builder
	for k := 0; k < len(row); k++ {
		switch {
		case row[k] == '\\' && k+1 < len(row) && row[k+1] == '|':
			cell.WriteByte('|')
			k++
		case row[k] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(row[k])
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	if len(cells) < 2 {
		return nil
	}
	return cells[1 : len(cells)-1]
}

func parseAlign(marker string) Align {
	left := strings.HasPrefix(marker, ":")
	right := strings.HasSuffix(marker, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	default:
		return AlignLeft
	}
}

var coloredCellPattern = regexp.MustCompile(`^\{([^{}]*)\}\[([a-z]+)\]$`)

func parseCell(text string) Cell {
	if m := coloredCellPattern.FindStringSubmatch(text); m != nil && Color(m[2]).Valid() {
		return Cell{Text: m[1], Color: Color(m[2])}
	}
	return Cell{Text: text}
}

// Rows and alignments are fitted to the header width: short ones padded, long ones cut.

func fitAlign(align []Align, width int) []Align {
	for len(align) < width {
		align = append(align, AlignLeft)
	}
	return align[:width]
}

func fitRow(row []Cell, width int) []Cell {
	for len(row) < width {
		row = append(row, Cell{})
	}
	return row[:width]
}

func consumeParagraph(lines []string, i int, m lineMatch) (Block, int) {
	text := []string{strings.TrimSpace(lines[i])}

	j := i + 1
	for j < len(lines) && !isBlank(lines[j]) && classify(lines, j).class == classParagraph {
		text = append(text, strings.TrimSpace(lines[j]))
		j++
	}
	return Paragraph{Parts: ParseInline(strings.Join(text, "\n"))}, j
}
