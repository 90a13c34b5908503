package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/wpsteak/Natalie/config"
	"github.com/wpsteak/Natalie/storyboard"
	"github.com/wpsteak/Natalie/swift"
	"github.com/wpsteak/Natalie/workspace"
)

func newGenerateCmd() *cobra.Command {
	var output string
	var configPath string
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "generate [directory]",
		Short: "Generate Swift storyboard helpers for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runGenerate(dir, output, configPath, showDiff)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (overrides the configured one)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (defaults to "+config.FileName+" in the project directory)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show what would change instead of writing")

	return cmd
}

func runGenerate(dir, output, configPath string, showDiff bool) error {
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDir(dir)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if output != "" {
		cfg.Output = output
	}

	paths, err := workspace.Discover(dir)
	if err != nil {
		return fmt.Errorf("discover storyboards: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no storyboards found in %s", dir)
	}

	var storyboards []*storyboard.Storyboard
	for _, path := range paths {
		sb, err := storyboard.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		storyboards = append(storyboards, sb)
	}

	var buf bytes.Buffer
	enc := swift.NewSourceEncoder(&buf, swift.Options{
		Header:           cfg.Header,
		Imports:          cfg.Imports,
		Segues:           cfg.Segues,
		ReuseIdentifiers: cfg.ReuseIdentifiers,
	})
	if err := enc.Encode(storyboards); err != nil {
		return fmt.Errorf("encode swift source: %w", err)
	}

	outPath := cfg.Output
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}

	existing, _ := os.ReadFile(outPath)
	if bytes.Equal(existing, buf.Bytes()) {
		fmt.Printf("%s is up to date\n", outPath)
		return nil
	}

	if showDiff {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(existing), buf.String(), false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		fmt.Print(dmp.DiffPrettyText(diffs))
		return nil
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d storyboards)\n", outPath, len(storyboards))
	return nil
}
