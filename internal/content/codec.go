package content

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Blocks travel as "type"-tagged objects, the shape the guide store persists.

type wirePart struct {
	Type  string `json:"type" yaml:"type"`
	Text  string `json:"text" yaml:"text"`
	Color Color  `json:"color,omitempty" yaml:"color,omitempty"`
	Href  string `json:"href,omitempty" yaml:"href,omitempty"`
}

type wireItem struct {
	Type     string     `json:"type" yaml:"type"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Parts    []wirePart `json:"parts,omitempty" yaml:"parts,omitempty"`
	Checked  bool       `json:"checked,omitempty" yaml:"checked,omitempty"`
	SubItems []wireItem `json:"subItems,omitempty" yaml:"subItems,omitempty"`
}

type wireCell struct {
	Text  string `json:"text" yaml:"text"`
	Color Color  `json:"color,omitempty" yaml:"color,omitempty"`
}

type wireBlock struct {
	Type      Kind         `json:"type" yaml:"type"`
	Level     int          `json:"level,omitempty" yaml:"level,omitempty"`
	Text      string       `json:"text,omitempty" yaml:"text,omitempty"`
	Parts     []wirePart   `json:"parts,omitempty" yaml:"parts,omitempty"`
	Ordered   bool         `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items     []wireItem   `json:"items,omitempty" yaml:"items,omitempty"`
	Color     Color        `json:"color,omitempty" yaml:"color,omitempty"`
	Headers   []string     `json:"headers,omitempty" yaml:"headers,omitempty"`
	Align     []Align      `json:"align,omitempty" yaml:"align,omitempty"`
	Rows      [][]wireCell `json:"rows,omitempty" yaml:"rows,omitempty"`
	Src       string       `json:"src,omitempty" yaml:"src,omitempty"`
	Alt       string       `json:"alt,omitempty" yaml:"alt,omitempty"`
	Language  string       `json:"language,omitempty" yaml:"language,omitempty"`
	AlertType AlertType    `json:"alertType,omitempty" yaml:"alertType,omitempty"`
	Summary   string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Children  []wireBlock  `json:"children,omitempty" yaml:"children,omitempty"`
	HTML      string       `json:"html,omitempty" yaml:"html,omitempty"`
}

// MarshalJSON encodes blocks as an array of tagged objects, never null
func (b Blocks) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWireBlocks(b))
}

// UnmarshalJSON decodes tagged objects; unknown types are an error
func (b *Blocks) UnmarshalJSON(data []byte) error {
	var wire []wireBlock
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	blocks, err := fromWireBlocks(wire)
	if err != nil {
		return err
	}
	*b = blocks
	return nil
}

// MarshalYAML encodes blocks with the same shape as JSON
func (b Blocks) MarshalYAML() (interface{}, error) {
	return toWireBlocks(b), nil
}

// UnmarshalYAML decodes the shape written by MarshalYAML
func (b *Blocks) UnmarshalYAML(node *yaml.Node) error {
	var wire []wireBlock
	if err := node.Decode(&wire); err != nil {
		return err
	}
	blocks, err := fromWireBlocks(wire)
	if err != nil {
		return err
	}
	*b = blocks
	return nil
}

func toWireBlocks(blocks Blocks) []wireBlock {
	wire := make([]wireBlock, 0, len(blocks))
	for _, b := range blocks {
		wire = append(wire, toWireBlock(b))
	}
	return wire
}

func toWireBlock(b Block) wireBlock {
	w := wireBlock{Type: b.Kind()}
	switch v := b.(type) {
	case Heading:
		w.Level, w.Text = v.Level, v.Text
	case Paragraph:
		w.Parts = toWireParts(v.Parts)
	case List:
		w.Ordered, w.Items = v.Ordered, toWireItems(v.Items)
	case Highlight:
		w.Color, w.Text = v.Color, v.Text
	case Table:
		w.Headers, w.Align = v.Headers, v.Align
		for _, row := range v.Rows {
			cells := make([]wireCell, len(row))
			for k, c := range row {
				cells[k] = wireCell(c)
			}
			w.Rows = append(w.Rows, cells)
		}
	case Image:
		w.Src, w.Alt = v.Src, v.Alt
	case CodeBlock:
		w.Language, w.Text = v.Language, v.Text
	case Blockquote:
		w.Text, w.AlertType = v.Text, v.Alert
	case Details:
		w.Summary = v.Summary
		if len(v.Children) > 0 {
			w.Children = toWireBlocks(v.Children)
		}
	case HTMLBlock:
		w.HTML = v.HTML
	}
	return w
}

func toWireParts(parts []Part) []wirePart {
	var wire []wirePart
	for _, p := range parts {
		switch v := p.(type) {
		case Text:
			wire = append(wire, wirePart{Type: "text", Text: v.Text})
		case Colored:
			wire = append(wire, wirePart{Type: "colored", Text: v.Text, Color: v.Color})
		case Strike:
			wire = append(wire, wirePart{Type: "strike", Text: v.Text})
		case Link:
			wire = append(wire, wirePart{Type: "link", Text: v.Text, Href: v.Href})
		case InlineCode:
			wire = append(wire, wirePart{Type: "code", Text: v.Text})
		case Mark:
			wire = append(wire, wirePart{Type: "mark", Text: v.Text})
		case Bold:
			wire = append(wire, wirePart{Type: "bold", Text: v.Text})
		case Italic:
			wire = append(wire, wirePart{Type: "italic", Text: v.Text})
		}
	}
	return wire
}

func toWireItems(items []ListItem) []wireItem {
	var wire []wireItem
	for _, item := range items {
		w := wireItem{SubItems: toWireItems(item.Children())}
		switch v := item.(type) {
		case PlainItem:
			w.Type, w.Text = "plain", v.Text
		case PartedItem:
			w.Type, w.Parts = "parted", toWireParts(v.Parts)
		case TaskItem:
			w.Type, w.Text, w.Checked = "task", v.Text, v.Checked
		}
		wire = append(wire, w)
	}
	return wire
}

func fromWireBlocks(wire []wireBlock) (Blocks, error) {
	var blocks Blocks
	for n, w := range wire {
		b, err := fromWireBlock(w)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", n, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func fromWireBlock(w wireBlock) (Block, error) {
	switch w.Type {
	case KindHeading:
		return Heading{Level: w.Level, Text: w.Text}, nil
	case KindParagraph:
		parts, err := fromWireParts(w.Parts)
		if err != nil {
			return nil, err
		}
		return Paragraph{Parts: parts}, nil
	case KindList:
		items, err := fromWireItems(w.Items)
		if err != nil {
			return nil, err
		}
		return List{Ordered: w.Ordered, Items: items}, nil
	case KindHighlight:
		return Highlight{Color: w.Color, Text: w.Text}, nil
	case KindTable:
		t := Table{Headers: nonEmpty(w.Headers), Align: nonEmpty(w.Align)}
		for _, row := range w.Rows {
			cells := make([]Cell, len(row))
			for k, c := range row {
				cells[k] = Cell(c)
			}
			t.Rows = append(t.Rows, cells)
		}
		return t, nil
	case KindImage:
		return Image{Src: w.Src, Alt: w.Alt}, nil
	case KindCode:
		return CodeBlock{Language: w.Language, Text: w.Text}, nil
	case KindBlockquote:
		return Blockquote{Text: w.Text, Alert: w.AlertType}, nil
	case KindHorizontalRule:
		return HorizontalRule{}, nil
	case KindDetails:
		children, err := fromWireBlocks(w.Children)
		if err != nil {
			return nil, err
		}
		return Details{Summary: w.Summary, Children: children}, nil
	case KindHTML:
		return HTMLBlock{HTML: w.HTML}, nil
	}
	return nil, fmt.Errorf("unknown block type %q", w.Type)
}

func fromWireParts(wire []wirePart) ([]Part, error) {
	var parts []Part
	for _, w := range wire {
		switch w.Type {
		case "text":
			parts = append(parts, Text{Text: w.Text})
		case "colored":
			parts = append(parts, Colored{Text: w.Text, Color: w.Color})
		case "strike":
			parts = append(parts, Strike{Text: w.Text})
		case "link":
			parts = append(parts, Link{Text: w.Text, Href: w.Href})
		case "code":
			parts = append(parts, InlineCode{Text: w.Text})
		case "mark":
			parts = append(parts, Mark{Text: w.Text})
		case "bold":
			parts = append(parts, Bold{Text: w.Text})
		case "italic":
			parts = append(parts, Italic{Text: w.Text})
		default:
			return nil, fmt.Errorf("unknown part type %q", w.Type)
		}
	}
	return parts, nil
}

func fromWireItems(wire []wireItem) ([]ListItem, error) {
	var items []ListItem
	for _, w := range wire {
		sub, err := fromWireItems(w.SubItems)
		if err != nil {
			return nil, err
		}
		switch w.Type {
		case "plain":
			items = append(items, PlainItem{Text: w.Text, SubItems: sub})
		case "parted":
			parts, err := fromWireParts(w.Parts)
			if err != nil {
				return nil, err
			}
			items = append(items, PartedItem{Parts: parts, SubItems: sub})
		case "task":
			items = append(items, TaskItem{Text: w.Text, Checked: w.Checked, SubItems: sub})
		default:
			return nil, fmt.Errorf("unknown list item type %q", w.Type)
		}
	}
	return items, nil
}

func nonEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}

// blockFenceLanguage marks a fence whose body is one block in JSON form
const blockFenceLanguage = "block"

func blockFence(b Block) string {
	data, err := json.Marshal(toWireBlock(b))
	if err != nil {
		return ""
	}
	return fenceMarker + blockFenceLanguage + "\n" + string(data) + "\n" + fenceMarker
}

// decodeBlockJSON accepts only a single valid block object
func decodeBlockJSON(text string) (Block, bool) {
	var w wireBlock
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &w); err != nil || w.Type == "" {
		return nil, false
	}
	b, err := fromWireBlock(w)
	if err != nil {
		return nil, false
	}
	if err := Validate(b); err != nil {
		return nil, false
	}
	if !reparsesAs(b) {
		return nil, false
	}
	return b, true
}

// reparsesAs reports whether the markup written for b parses back to b, both alone and
// with a paragraph after it. Highlight is written as a block fence itself.
func reparsesAs(b Block) bool {
	if _, ok := b.(Highlight); ok {
		return true
	}
	markup := serializeBlock(b)
	if !reflect.DeepEqual(Parse(markup), Blocks{b}) {
		return false
	}
	trailer := Paragraph{Parts: []Part{Text{Text: "end"}}}
	return reflect.DeepEqual(Parse(markup+"\n\nend"), Blocks{b, trailer})
}
