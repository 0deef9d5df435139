package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/xcode96/SOC/internal/config"
	"github.com/xcode96/SOC/internal/content"
	"github.com/xcode96/SOC/internal/diff"
	"github.com/xcode96/SOC/internal/preview"
	"github.com/xcode96/SOC/internal/styles"
	"gopkg.in/yaml.v3"
)

// ErrNotIdempotent is reported by check when a second parse disagrees with the first
var ErrNotIdempotent = errors.New("markup does not survive a serialize and re-parse")

// Parse dumps the block tree of a markup file as JSON, or YAML with --yaml
func Parse(args []string) {
	if err := runParse(args, os.Stdout); err != nil {
		fail(err)
	}
}

func runParse(args []string, out io.Writer) error {
	asYAML, args := hasFlag(args, "--yaml")
	if len(args) < 1 {
		return usageError("parse <file> [--yaml]")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}
	blocks := content.Parse(markup)

	if asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(blocks); err != nil {
			return fmt.Errorf("failed to encode blocks: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blocks); err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}
	return nil
}

// Fmt prints the normalized form of a markup file, or rewrites it in place with -w
func Fmt(args []string) {
	if err := runFmt(args, os.Stdout); err != nil {
		fail(err)
	}
}

func runFmt(args []string, out io.Writer) error {
	write, args := hasFlag(args, "-w")
	if len(args) < 1 {
		return usageError("fmt <file> [-w]")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}

	normalized := content.Serialize(content.Parse(markup))
	if normalized != "" {
		normalized += "\n"
	}
	if !write || args[0] == "-" {
		_, err := io.WriteString(out, normalized)
		return err
	}

	if normalized == markup {
		return nil
	}
	if err := os.WriteFile(args[0], []byte(normalized), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Formatted "+args[0]))
	return nil
}

// Check verifies that a markup file parses to the same tree after one normalization pass
func Check(args []string) {
	if err := runCheck(args, os.Stdout); err != nil {
		fail(err)
	}
}

func runCheck(args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("check <file>")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}

	first := content.Parse(markup)
	if err := content.ValidateBlocks(first); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	once := content.Serialize(first)
	second := content.Parse(once)
	if !reflect.DeepEqual(first, second) {
		fmt.Fprint(out, diff.Unified("first pass", "second pass", once+"\n", content.Serialize(second)+"\n"))
		return fmt.Errorf("%s: %w", args[0], ErrNotIdempotent)
	}

	fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ %s: %d blocks, stable", args[0], len(first))))
	return nil
}

// Preview renders a markup file for the terminal
func Preview(args []string) {
	if err := runPreview(args, os.Stdout, wordWrap()); err != nil {
		fail(err)
	}
}

func runPreview(args []string, out io.Writer, wrap int) error {
	guide, args := hasFlag(args, "--guide")
	if len(args) < 1 {
		return usageError("preview <file> [--guide]")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}

	if guide {
		g, err := content.ParseGuide(markup)
		if err != nil {
			return err
		}
		fmt.Fprint(out, preview.Render(preview.GuideMarkdown(g), wrap))
		return nil
	}

	fmt.Fprint(out, preview.Render(preview.Markdown(content.Parse(markup)), wrap))
	return nil
}

// Diff shows how fmt would change a markup file
func Diff(args []string) {
	if err := runDiff(args, os.Stdout, wordWrap()); err != nil {
		fail(err)
	}
}

func runDiff(args []string, out io.Writer, wrap int) error {
	plain, args := hasFlag(args, "--plain")
	if len(args) < 1 {
		return usageError("diff <file> [--plain]")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}

	unified := diff.Normalization(args[0], markup)
	if unified == "" {
		fmt.Fprintln(out, styles.DimStyle.Render("No changes: "+args[0]+" is already normalized"))
		return nil
	}
	if plain {
		fmt.Fprint(out, unified)
		return nil
	}
	fmt.Fprint(out, diff.Render(unified, wrap))
	return nil
}

// Outline prints one styled line per block, nesting details children
func Outline(args []string) {
	if err := runOutline(args, os.Stdout); err != nil {
		fail(err)
	}
}

func runOutline(args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("outline <file>")
	}
	markup, err := readInput(args[0])
	if err != nil {
		return err
	}
	blocks := content.Parse(markup)
	fmt.Fprintln(out, styles.BoxStyle.Render(fmt.Sprintf("%s · %d blocks", filepath.Base(args[0]), len(blocks))))
	writeOutline(out, blocks, 0)
	return nil
}

func writeOutline(out io.Writer, blocks content.Blocks, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range blocks {
		kind := styles.KindStyle.Render(fmt.Sprintf("%-10s", b.Kind()))
		fmt.Fprintln(out, indent+kind+" "+summarize(b))
		if d, ok := b.(content.Details); ok {
			writeOutline(out, d.Children, depth+1)
		}
	}
}

const summaryWidth = 60

func summarize(b content.Block) string {
	var s string
	switch v := b.(type) {
	case content.Heading:
		s = strings.Repeat("#", v.Level) + " " + v.Text
	case content.Paragraph:
		s = content.PlainText(v.Parts)
	case content.List:
		kind := "bulleted"
		if v.Ordered {
			kind = "numbered"
		}
		s = kind + ", " + strconv.Itoa(countItems(v.Items)) + " items"
		if len(v.Items) > 0 {
			s += ": " + content.ItemText(v.Items[0])
		}
	case content.Highlight:
		return styles.Palette(v.Color).Render(truncate(v.Text))
	case content.Table:
		s = fmt.Sprintf("%d columns, %d rows", len(v.Headers), len(v.Rows))
	case content.Image:
		s = v.Src
	case content.CodeBlock:
		s = fmt.Sprintf("%s, %d lines", orDefault(v.Language, "plain"), strings.Count(v.Text, "\n")+1)
	case content.Blockquote:
		if v.Alert != "" {
			return styles.WarningStyle.Render("["+strings.ToUpper(string(v.Alert))+"]") + " " + styles.DimStyle.Render(truncate(v.Text))
		}
		s = v.Text
	case content.Details:
		return styles.HighlightStyle.Render(v.Summary)
	case content.HTMLBlock:
		s = v.HTML
	}
	return styles.DimStyle.Render(truncate(s))
}

func countItems(items []content.ListItem) int {
	n := len(items)
	for _, item := range items {
		n += countItems(item.Children())
	}
	return n
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > summaryWidth {
		return string(r[:summaryWidth-1]) + "…"
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// wordWrap reads the preview width from config, falling back to the default
func wordWrap() int {
	cfg, err := config.Load()
	if err != nil || cfg.WordWrap == 0 {
		return config.DefaultConfig().WordWrap
	}
	return cfg.WordWrap
}
