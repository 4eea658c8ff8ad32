package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/manifest"
)

const noQuillTomlMessage = "no quill.toml found\nrun from a project directory or pass its path, e.g.:\n  quill generate path/to/project"

var (
	generateForce   bool
	generateDryRun  bool
	generateNoCache bool
)

func init() {
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "re-render even when the cache is fresh")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "render without writing the output tree")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "skip the disk cache entirely")
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate Java sources from quill.toml",
	Long:  "Render every class listed in the manifest into the output tree; unchanged classes come from the disk cache.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	startDir := "."
	if len(args) > 0 && args[0] != "" {
		startDir = args[0]
	}
	m, ok, err := manifest.Load(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s", noQuillTomlMessage)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !generateNoCache {
		cache, err = driver.OpenDiskCache("quill")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	results, err := driver.Generate(cmd.Context(), m, driver.Options{
		Jobs:   jobs,
		Force:  generateForce,
		DryRun: generateDryRun,
		Cache:  cache,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintf(out, "%-9s %s (%d bytes)\n", statusLabel(res), displayPath(m.Root, res.Path), res.Bytes)
	}
	fmt.Fprintf(out, "%d file(s)\n", len(results))
	return nil
}

func statusLabel(res driver.Result) string {
	switch {
	case generateDryRun:
		return color.YellowString("planned")
	case res.Cached:
		return color.CyanString("cached")
	default:
		return color.GreenString("generated")
	}
}

// displayPath shortens an output path relative to the project root when
// possible.
func displayPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !filepath.IsAbs(rel) {
		if rel != "" && rel != "." && !isDotDot(rel) {
			return rel
		}
	}
	return path
}

func isDotDot(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(os.PathSeparator)
}
