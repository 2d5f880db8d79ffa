package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handball/internal/registry"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the available field layouts",
	Long:  `Shows the built-in field layouts that --field accepts.`,
	Run:   runFields,
}

func runFields(cmd *cobra.Command, args []string) {
	fields := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, f := range fields {
		if len(f.ID) > maxIDLen {
			maxIDLen = len(f.ID)
		}
	}

	fmt.Println("Available fields:")
	fmt.Println()
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "--", "----", "-----")

	for _, f := range fields {
		size := "?"
		if cfg, err := registry.Create(f.ID); err == nil {
			size = fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height)
		}
		marker := ""
		if f.ID == flagField {
			marker = " *"
		}
		fmt.Printf("  %-*s  %-9s  %s%s\n", maxIDLen, f.ID, size, f.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'handball play --field <id>' to play a layout.")
}
