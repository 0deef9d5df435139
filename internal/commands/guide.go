package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xcode96/SOC/internal/content"
	"github.com/xcode96/SOC/internal/library"
	"github.com/xcode96/SOC/internal/styles"
	"github.com/xcode96/SOC/internal/tui"
)

// New creates a guide with a welcome topic
func New(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runNew(ctx, e.lib, args, os.Stdout)
	})
}

func runNew(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 2 {
		return usageError("new <guide-id> <title>")
	}
	guide, err := lib.CreateGuide(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ Created guide %s (%q)", args[0], guide.Title)))
	return nil
}

// AddTopic appends a placeholder topic to a guide
func AddTopic(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runAddTopic(ctx, e.lib, args, os.Stdout)
	})
}

func runAddTopic(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 3 {
		return usageError("add-topic <guide-id> <topic-id> <title>")
	}
	topic, err := lib.AddTopic(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ Added topic %s to %s", topic.ID, args[0])))
	return nil
}

// Save parses a markup file into an existing topic
func Save(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runSave(ctx, e.lib, args, os.Stdout)
	})
}

func runSave(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 3 {
		return usageError("save <guide-id> <topic-id> <file>")
	}
	markup, err := readInput(args[2])
	if err != nil {
		return err
	}
	topic, err := lib.SaveTopic(ctx, args[0], args[1], markup)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ Saved %s/%s (%d blocks)", args[0], topic.ID, len(topic.Content))))
	return nil
}

// Edit prints a stored topic as markup, ready to be edited and saved back
func Edit(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runEdit(ctx, e.lib, args, os.Stdout)
	})
}

func runEdit(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 2 {
		return usageError("edit <guide-id> <topic-id>")
	}
	markup, err := lib.TopicMarkup(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, markup+"\n")
	return err
}

// Import replaces a guide with the topics parsed from a guide document
func Import(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runImport(ctx, e.lib, args, os.Stdout)
	})
}

func runImport(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 2 {
		return usageError("import <guide-id> <file>")
	}
	doc, err := readInput(args[1])
	if err != nil {
		return err
	}
	guide, err := lib.Import(ctx, args[0], doc)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d topics into %s", len(guide.Topics), args[0])))
	for _, topic := range guide.Topics {
		fmt.Fprintln(out, styles.DimStyle.Render(fmt.Sprintf("  %-24s %s", topic.ID, topic.Title)))
	}
	return nil
}

// Export writes a guide as a markup document to a file, or to stdout
func Export(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runExport(ctx, e.lib, args, os.Stdout)
	})
}

func runExport(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("export <guide-id> [out.md]")
	}
	doc, err := lib.Export(ctx, args[0])
	if err != nil {
		return err
	}

	if len(args) < 2 || args[1] == "-" {
		_, err := io.WriteString(out, doc)
		return err
	}
	if err := os.WriteFile(args[1], []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Exported "+args[0]+" to "+args[1]))
	return nil
}

// Show lists the topics of a guide
func Show(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		return runShow(ctx, e.lib, args, os.Stdout)
	})
}

func runShow(ctx context.Context, lib *library.Library, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("show <guide-id>")
	}
	guide, err := lib.Guide(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styles.TitleStyle.Render(guide.Title))
	for _, topic := range guide.Topics {
		fmt.Fprintf(out, "  %s %s %s\n",
			styles.HighlightStyle.Render(fmt.Sprintf("%-24s", topic.ID)),
			topic.Title,
			styles.DimStyle.Render(fmt.Sprintf("(%d blocks)", len(topic.Content))))
	}
	return nil
}

// Browse opens an interactive topic browser for a guide
func Browse(args []string) {
	withEnv(func(ctx context.Context, e *env) error {
		if len(args) < 1 {
			return usageError("browse <guide-id>")
		}
		return tui.Browse(func() (*content.Guide, error) {
			return e.lib.Guide(ctx, args[0])
		}, e.cfg.WordWrap)
	})
}
