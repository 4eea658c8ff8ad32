package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/manifest"
)

var cleanCache bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanCache, "cache", false, "also drop the shared disk cache")
}

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the generated output tree",
	Long:  "Remove the manifest's output directory; with --cache, also drop the shared rendering cache.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	outDir := m.OutDir()
	info, err := os.Stat(outDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(out, "output directory not found")
	case err != nil:
		return fmt.Errorf("failed to stat %q: %w", outDir, err)
	case !info.IsDir():
		return fmt.Errorf("%q is not a directory", outDir)
	default:
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("failed to remove %q: %w", outDir, err)
		}
		fmt.Fprintf(out, "removed %s\n", outDir)
	}

	if cleanCache {
		cache, err := driver.OpenDiskCache("quill")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		fmt.Fprintln(out, "dropped disk cache")
	}
	return nil
}
