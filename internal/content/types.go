package content

// Color names the palette shared by colored inline text, highlight blocks and table cells
type Color string

const (
	Green   Color = "green"
	Fuchsia Color = "fuchsia"
	Yellow  Color = "yellow"
	Red     Color = "red"
	Purple  Color = "purple"
	Blue    Color = "blue"
	Cyan    Color = "cyan"
	Indigo  Color = "indigo"
)

var colors = map[Color]bool{
	Green: true, Fuchsia: true, Yellow: true, Red: true,
	Purple: true, Blue: true, Cyan: true, Indigo: true,
}

// Valid reports whether c is one of the palette colors
func (c Color) Valid() bool {
	return colors[c]
}

// Part is one inline formatting unit inside a paragraph or list item
type Part interface {
	isPart()
}

// Text is a literal run
type Text struct{ Text string }

// Colored is a `{text}[color]` span
type Colored struct {
	Text  string
	Color Color
}

// Strike is a `~~text~~` span
type Strike struct{ Text string }

// Link is a `[text](href)` span or a promoted bare URL
type Link struct {
	Text string
	Href string
}

// InlineCode is a backtick span
type InlineCode struct{ Text string }

// Mark is a `==text==` highlight span
type Mark struct{ Text string }

// Bold is a `**text**` span
type Bold struct{ Text string }

// Italic is a `*text*` span
type Italic struct{ Text string }

func (Text) isPart()       {}
func (Colored) isPart()    {}
func (Strike) isPart()     {}
func (Link) isPart()       {}
func (InlineCode) isPart() {}
func (Mark) isPart()       {}
func (Bold) isPart()       {}
func (Italic) isPart()     {}

// ListItem is one entry of a List. Every variant may own nested items.
type ListItem interface {
	Children() []ListItem
	isListItem()
}

// PlainItem is an item whose content has no inline formatting
type PlainItem struct {
	Text     string
	SubItems []ListItem
}

// PartedItem is an item with inline formatting
type PartedItem struct {
	Parts    []Part
	SubItems []ListItem
}

// TaskItem is a `[ ]` / `[x]` checkbox item. Text is kept verbatim.
type TaskItem struct {
	Text     string
	Checked  bool
	SubItems []ListItem
}

func (i PlainItem) Children() []ListItem  { return i.SubItems }
func (i PartedItem) Children() []ListItem { return i.SubItems }
func (i TaskItem) Children() []ListItem   { return i.SubItems }

func (PlainItem) isListItem()  {}
func (PartedItem) isListItem() {}
func (TaskItem) isListItem()   {}

// Kind identifies a block variant. The string value is also the JSON "type" tag.
type Kind string

const (
	KindHeading        Kind = "heading"
	KindParagraph      Kind = "paragraph"
	KindList           Kind = "list"
	KindHighlight      Kind = "highlight"
	KindTable          Kind = "table"
	KindImage          Kind = "image"
	KindCode           Kind = "code"
	KindBlockquote     Kind = "blockquote"
	KindHorizontalRule Kind = "hr"
	KindDetails        Kind = "details"
	KindHTML           Kind = "html"
)

// Block is one structural unit of a topic
type Block interface {
	Kind() Kind
}

// Blocks is an ordered block sequence, the unit that parse produces and serialize consumes
type Blocks []Block

// Heading is a `#`..`######` line
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of text lines
type Paragraph struct {
	Parts []Part
}

// List is a bulleted or numbered list
type List struct {
	Ordered bool
	Items   []ListItem
}

// Highlight is a colored callout box
type Highlight struct {
	Color Color
	Text  string
}

// Align is a table column alignment
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Cell is one table cell; Color is empty for plain cells
type Cell struct {
	Text  string
	Color Color
}

// Table is a pipe table. All rows have len(Headers) cells when Headers is set.
type Table struct {
	Headers []string
	Align   []Align
	Rows    [][]Cell
}

// Image is a standalone `![alt](src)` line
type Image struct {
	Src string
	Alt string
}

// CodeBlock is a fenced code block
type CodeBlock struct {
	Language string
	Text     string
}

// AlertType tags a blockquote as a styled callout
type AlertType string

const (
	AlertNote      AlertType = "note"
	AlertTip       AlertType = "tip"
	AlertImportant AlertType = "important"
	AlertWarning   AlertType = "warning"
	AlertCaution   AlertType = "caution"
)

var alertTypes = map[AlertType]bool{
	AlertNote: true, AlertTip: true, AlertImportant: true, AlertWarning: true, AlertCaution: true,
}

// Valid reports whether a is a known alert type
func (a AlertType) Valid() bool {
	return alertTypes[a]
}

// Blockquote is a run of `>` lines; Alert is empty for plain quotes
type Blockquote struct {
	Text  string
	Alert AlertType
}

// HorizontalRule is a `---` line
type HorizontalRule struct{}

// Details is a collapsible section
type Details struct {
	Summary  string
	Children Blocks
}

// HTMLBlock is raw block-level HTML, never descended into
type HTMLBlock struct {
	HTML string
}

func (Heading) Kind() Kind        { return KindHeading }
func (Paragraph) Kind() Kind      { return KindParagraph }
func (List) Kind() Kind           { return KindList }
func (Highlight) Kind() Kind      { return KindHighlight }
func (Table) Kind() Kind          { return KindTable }
func (Image) Kind() Kind          { return KindImage }
func (CodeBlock) Kind() Kind      { return KindCode }
func (Blockquote) Kind() Kind     { return KindBlockquote }
func (HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (Details) Kind() Kind        { return KindDetails }
func (HTMLBlock) Kind() Kind      { return KindHTML }

// Topic is one navigable article within a guide
type Topic struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content Blocks `json:"content" yaml:"content"`
}

// Guide is an ordered set of topics under one title
type Guide struct {
	Title  string  `json:"title" yaml:"title"`
	Topics []Topic `json:"topics" yaml:"topics"`
}

// Topic returns the topic with the given id
func (g *Guide) Topic(id string) (*Topic, bool) {
	for i := range g.Topics {
		if g.Topics[i].ID == id {
			return &g.Topics[i], true
		}
	}
	return nil, false
}
