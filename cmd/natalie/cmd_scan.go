package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wpsteak/Natalie/storyboard"
	"github.com/wpsteak/Natalie/workspace"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [directory]",
		Short: "Scan a directory for storyboards and summarize them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runScan(dir)
		},
	}
}

func runScan(dir string) error {
	paths, err := workspace.Discover(dir)
	if err != nil {
		return fmt.Errorf("discover storyboards: %w", err)
	}

	var failures int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("[ERROR] %s: %v\n", path, err)
			failures++
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".storyboard")
		info, err := storyboard.Peek(name, data)
		if err != nil {
			fmt.Printf("[ERROR] %s: %v\n", path, err)
			failures++
			continue
		}
		fmt.Printf("[OK] %s (%s, %d scenes)\n", path, info.OS, info.SceneCount)
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Storyboards: %d\n", len(paths)-failures)
	fmt.Printf("Errors: %d\n", failures)
	return nil
}
