package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/manifest"
)

var previewPath string

func init() {
	previewCmd.Flags().StringVar(&previewPath, "path", ".", "project directory (or any directory beneath it)")
}

var previewCmd = &cobra.Command{
	Use:   "preview <class>",
	Short: "Render one manifest class to the terminal",
	Long:  "Render a single class from the manifest and print it without touching the output tree or the cache.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("6")).
				Padding(0, 1)
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

func runPreview(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	m, ok, err := manifest.Load(previewPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s", noQuillTomlMessage)
	}

	className := args[0]
	text, err := driver.Preview(m, className)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !isTerminal(os.Stdout) {
		// Pipelines get the raw compilation unit, no framing.
		fmt.Fprint(out, text)
		return nil
	}
	title := previewTitleStyle.Render(className + ".java")
	body := previewFrameStyle.Render(strings.TrimRight(text, "\n"))
	fmt.Fprintf(out, "%s\n%s\n", title, body)
	return nil
}
