package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wpsteak/Natalie/storyboard"
	"github.com/wpsteak/Natalie/swift"
	"github.com/wpsteak/Natalie/xmlindex"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var colorize bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the parsed document tree or the generated Swift source for a storyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], dumpFormat, colorize)
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "tree", "output format (tree, swift)")
	cmd.Flags().BoolVar(&colorize, "color", false, "colorize tree output")

	return cmd
}

func runDump(path, format string, colorize bool) error {
	switch format {
	case "tree":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		doc, err := xmlindex.Parse(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		printTree(doc.String(), colorize)
		return nil
	case "swift":
		sb, err := storyboard.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		enc := swift.NewSourceEncoder(os.Stdout, swift.Options{
			Segues:           true,
			ReuseIdentifiers: true,
		})
		return enc.Encode([]*storyboard.Storyboard{sb})
	default:
		return fmt.Errorf("unknown format: %s (expected tree or swift)", format)
	}
}

func printTree(tree string, colorize bool) {
	if !colorize {
		fmt.Print(tree)
		return
	}

	openTag := color.New(color.FgCyan)
	closeTag := color.New(color.FgBlue)
	for _, line := range strings.Split(strings.TrimRight(tree, "\n"), "\n") {
		switch trimmed := strings.TrimSpace(line); {
		case strings.HasPrefix(trimmed, "</"):
			closeTag.Println(line)
		case strings.HasPrefix(trimmed, "<"):
			openTag.Println(line)
		default:
			fmt.Println(line)
		}
	}
}
