package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/traysheet/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective catalog",
	Long: `Print the modes and models the tray will offer, after the config file,
environment and defaults have been merged.

Examples:
  traysheet catalog
  traysheet catalog --config ./demo.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := cfg.BuildCatalog()
		if err != nil {
			return err
		}
		return printCatalog(cmd.OutOrStdout(), cat)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// printCatalog writes one line per entry with its ID, title and flags.
func printCatalog(w io.Writer, cat *catalog.Catalog) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Modes (default: %s)\n", cat.DefaultMode().Title)
	for _, m := range cat.Modes() {
		var flags []string
		if m.ID == cat.DefaultMode().ID {
			flags = append(flags, "default")
		}
		if m.Pro {
			flags = append(flags, "pro")
		}
		if m.Toggle {
			flags = append(flags, "toggle")
		}
		writeEntry(&b, m.ID, m.Title, flags)
	}

	fmt.Fprintf(&b, "\nModels (default: %s)\n", cat.DefaultModel().Title)
	for _, m := range cat.Models() {
		var flags []string
		if m.ID == cat.DefaultModel().ID {
			flags = append(flags, "default")
		}
		if m.Reasoning {
			flags = append(flags, "reasoning", "hidden")
		}
		title := m.Title
		if short := cat.DisplayName(m.Title); short != m.Title {
			title += " (" + short + ")"
		}
		writeEntry(&b, m.ID, title, flags)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntry(b *strings.Builder, id, title string, flags []string) {
	fmt.Fprintf(b, "  %-38s %s", id, title)
	if len(flags) > 0 {
		fmt.Fprintf(b, " [%s]", strings.Join(flags, ", "))
	}
	b.WriteString("\n")
}
