package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name   string
		blocks Blocks
		want   string
	}{
		{
			name:   "empty",
			blocks: nil,
			want:   "",
		},
		{
			name:   "heading and paragraph",
			blocks: Blocks{Heading{Level: 3, Text: "T"}, Paragraph{Parts: []Part{Text{Text: "a "}, Bold{Text: "b"}}}},
			want:   "### T\n\na **b**",
		},
		{
			name: "nested ordered list",
			blocks: Blocks{List{Ordered: true, Items: []ListItem{
				PlainItem{Text: "a", SubItems: []ListItem{PlainItem{Text: "x"}, PlainItem{Text: "y"}}},
				PlainItem{Text: "b"},
			}}},
			want: "1. a\n  1. x\n  2. y\n2. b",
		},
		{
			name: "tasks",
			blocks: Blocks{List{Items: []ListItem{
				TaskItem{Text: "done", Checked: true},
				TaskItem{},
			}}},
			want: "- [x] done\n- [ ]",
		},
		{
			name: "table",
			blocks: Blocks{Table{
				Headers: []string{"a", "b|c"},
				Align:   []Align{AlignCenter, AlignRight},
				Rows:    [][]Cell{{{Text: "1"}, {Text: "ok", Color: Green}}},
			}},
			want: "| a | b\\|c |\n|:---:|---:|\n| 1 | {ok}[green] |",
		},
		{
			name:   "code",
			blocks: Blocks{CodeBlock{Language: "py", Text: "print(1)"}},
			want:   "```py\nprint(1)\n```",
		},
		{
			name:   "alert quote",
			blocks: Blocks{Blockquote{Text: "a\n\nb", Alert: AlertImportant}},
			want:   "> [!IMPORTANT]\n> a\n>\n> b",
		},
		{
			name:   "image and rule",
			blocks: Blocks{Image{Src: "x.png", Alt: "X"}, HorizontalRule{}},
			want:   "![X](x.png)\n\n---",
		},
		{
			name:   "details shorthand",
			blocks: Blocks{Details{Summary: "Run", Children: Blocks{CodeBlock{Language: "sh", Text: "make"}}}},
			want:   "* **Run:**\n```sh\nmake\n```",
		},
		{
			name: "details wrapper",
			blocks: Blocks{Details{Summary: "More", Children: Blocks{
				Paragraph{Parts: []Part{Text{Text: "p"}}},
			}}},
			want: "<details>\n<summary>More</summary>\n\np\n\n</details>",
		},
		{
			name:   "empty details",
			blocks: Blocks{Details{Summary: "Nothing"}},
			want:   "<details>\n<summary>Nothing</summary>\n</details>",
		},
		{
			name:   "highlight",
			blocks: Blocks{Highlight{Color: Cyan, Text: "note"}},
			want:   "```block\n{\"type\":\"highlight\",\"text\":\"note\",\"color\":\"cyan\"}\n```",
		},
		{
			name:   "html",
			blocks: Blocks{HTMLBlock{HTML: "<div>\nx\n</div>"}},
			want:   "<div>\nx\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(tt.blocks)
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeIsInverseOfParse(t *testing.T) {
	tests := []Blocks{
		{Heading{Level: 2, Text: "Intro"}},
		{List{Ordered: true, Items: []ListItem{PlainItem{Text: "a"}, PlainItem{Text: "b"}}}},
		{List{Items: []ListItem{
			PlainItem{Text: "a", SubItems: []ListItem{
				TaskItem{Text: "b", Checked: true, SubItems: []ListItem{
					PartedItem{Parts: []Part{Text{Text: "see "}, Link{Text: "c", Href: "https://c.org"}}},
				}},
			}},
		}}},
		{Table{Headers: []string{"h"}, Align: []Align{AlignRight}, Rows: [][]Cell{{{Text: "v", Color: Purple}}}}},
		{Blockquote{Text: "q"}, Blockquote{Text: "r", Alert: AlertNote}},
		{Details{Summary: "S", Children: Blocks{HorizontalRule{}, CodeBlock{Text: "x"}}}},
		{Highlight{Color: Indigo, Text: "multi\nline"}},
		{CodeBlock{Language: "go"}},
	}

	for _, blocks := range tests {
		assert.Equal(t, blocks, Parse(Serialize(blocks)))
	}
}
