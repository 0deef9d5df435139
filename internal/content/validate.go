package content

import (
	"errors"
	"fmt"
)

// Validate checks a block decoded from outside the parser, typically a stored JSON tree.
// Trees produced by Parse always pass.
func Validate(b Block) error {
	switch v := b.(type) {
	case Heading:
		if v.Level < 1 || v.Level > 6 {
			return fmt.Errorf("heading level %d out of range 1-6", v.Level)
		}
	case Paragraph:
		if v.Parts != nil && len(v.Parts) == 0 {
			return errors.New("paragraph parts must be absent or non-empty")
		}
		return validateParts(v.Parts)
	case List:
		if len(v.Items) == 0 {
			return errors.New("list has no items")
		}
		return validateItems(v.Items)
	case Highlight:
		if !v.Color.Valid() {
			return fmt.Errorf("unknown highlight color %q", v.Color)
		}
	case Table:
		return validateTable(v)
	case Image:
		if v.Src == "" {
			return errors.New("image has no source")
		}
	case Blockquote:
		if v.Alert != "" && !v.Alert.Valid() {
			return fmt.Errorf("unknown alert type %q", v.Alert)
		}
	case Details:
		if v.Children != nil && len(v.Children) == 0 {
			return errors.New("details children must be absent or non-empty")
		}
		for n, child := range v.Children {
			if err := Validate(child); err != nil {
				return fmt.Errorf("details child %d: %w", n, err)
			}
		}
	case CodeBlock, HorizontalRule, HTMLBlock:
	case nil:
		return errors.New("nil block")
	default:
		return fmt.Errorf("unsupported block %T", b)
	}
	return nil
}

// ValidateBlocks validates every block, reporting the first failure by position
func ValidateBlocks(blocks Blocks) error {
	for n, b := range blocks {
		if err := Validate(b); err != nil {
			return fmt.Errorf("block %d (%s): %w", n, kindOf(b), err)
		}
	}
	return nil
}

func kindOf(b Block) Kind {
	if b == nil {
		return ""
	}
	return b.Kind()
}

func validateParts(parts []Part) error {
	for _, p := range parts {
		switch v := p.(type) {
		case Colored:
			if !v.Color.Valid() {
				return fmt.Errorf("unknown text color %q", v.Color)
			}
		case Link:
			if v.Href == "" {
				return errors.New("link has no target")
			}
		case nil:
			return errors.New("nil inline part")
		}
	}
	return nil
}

func validateItems(items []ListItem) error {
	for _, item := range items {
		if item == nil {
			return errors.New("nil list item")
		}
		if sub := item.Children(); sub != nil && len(sub) == 0 {
			return errors.New("sub-items must be absent or non-empty")
		}
		if v, ok := item.(PartedItem); ok {
			if err := validateParts(v.Parts); err != nil {
				return err
			}
		}
		if err := validateItems(item.Children()); err != nil {
			return err
		}
	}
	return nil
}

func validateTable(t Table) error {
	if t.Headers != nil && len(t.Headers) == 0 {
		return errors.New("table headers must be absent or non-empty")
	}
	if t.Rows != nil && len(t.Rows) == 0 {
		return errors.New("table rows must be absent or non-empty")
	}
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return errors.New("table has neither headers nor rows")
	}
	width := len(t.Headers)
	if width == 0 {
		width = len(t.Rows[0])
	}
	if width == 0 {
		return errors.New("table has no columns")
	}
	if len(t.Align) > width {
		return fmt.Errorf("table has %d alignments for %d columns", len(t.Align), width)
	}
	for _, a := range t.Align {
		switch a {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			return fmt.Errorf("unknown alignment %q", a)
		}
	}
	for n, row := range t.Rows {
		if len(row) != width {
			return fmt.Errorf("table row %d has %d cells, want %d", n, len(row), width)
		}
		for _, c := range row {
			if c.Color != "" && !c.Color.Valid() {
				return fmt.Errorf("unknown cell color %q", c.Color)
			}
		}
	}
	return nil
}
