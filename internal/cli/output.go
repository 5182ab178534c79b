package cli

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// outputJSON writes v as indented JSON, the machine-readable mode shared
// by every command.
func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// confirm prints a green-check status line.
func confirm(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// copyID puts a resolved entity ID on the system clipboard. Clipboard
// failures (headless sessions, missing xclip) degrade to a warning so the
// command's primary output still succeeds.
func copyID(cmd *cobra.Command, id string) {
	if err := clipboard.WriteAll(id); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not copy to clipboard: %v\n", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Copied "+id+" to clipboard"))
}
