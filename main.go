package main

import (
	"fmt"
	"os"

	"github.com/xcode96/SOC/internal/commands"
	"github.com/xcode96/SOC/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "parse":
		commands.Parse(args)
	case "fmt":
		commands.Fmt(args)
	case "check":
		commands.Check(args)
	case "preview":
		commands.Preview(args)
	case "diff":
		commands.Diff(args)
	case "outline":
		commands.Outline(args)
	case "new":
		commands.New(args)
	case "add-topic":
		commands.AddTopic(args)
	case "save":
		commands.Save(args)
	case "edit":
		commands.Edit(args)
	case "show":
		commands.Show(args)
	case "browse":
		commands.Browse(args)
	case "import":
		commands.Import(args)
	case "export":
		commands.Export(args)
	case "version", "-v", "--version":
		fmt.Printf("guidemark v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`guidemark - Convert guide markup to content blocks and back

Usage:
  guidemark <command> [options]

Markup commands (a file argument of - reads stdin):
  parse <file> [--yaml]             Dump the block tree as JSON or YAML
  fmt <file> [-w]                   Print the normalized markup, or rewrite the file
  check <file>                      Verify the markup survives a serialize and re-parse
  preview <file> [--guide]          Render a topic, or a whole guide, in the terminal
  diff <file> [--plain]             Show what fmt would change
  outline <file>                    List the blocks of a topic

Guide commands:
  new <guide-id> <title>            Create a guide with a welcome topic
  add-topic <guide-id> <id> <title> Add a placeholder topic
  save <guide-id> <topic-id> <file> Parse a file into a topic
  edit <guide-id> <topic-id>        Print a topic as markup for editing
  show <guide-id>                   List the topics of a guide
  browse <guide-id>                 Browse and preview topics interactively
  import <guide-id> <file>          Replace a guide with a guide document
  export <guide-id> [out.md]        Write a guide document

  version                           Show version information
  help                              Show this help message

Examples:
  guidemark fmt -w topics/triage.md
  guidemark new soc "SOC Analyst"
  guidemark import soc handbook.md
  guidemark export soc handbook.md

Configuration:
  Config file: %s
  Guide store: %s
`, config.ConfigPath(), config.StoreFilePath())
	fmt.Print(usage)
}
