package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sleigh-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ability variants",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	width := 2
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Println("Variants:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", width, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", width, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", width, g.ID, g.Title)
	}
	fmt.Println()
	fmt.Println("Run 'sleigh play <id>' to play a variant.")
}
