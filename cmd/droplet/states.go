package main

import (
	"fmt"

	"droplet/internal/breath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// statesCmd prints the per-state animation table
var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Show the animation parameters of each state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderStates())
		return nil
	},
}

func renderStates() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("STATE", "LABEL", "SPEED", "JITTER", "SCALE", "COLOR")

	for _, s := range breath.States() {
		c := breath.ConfigFor(s)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("● " + c.Color)
		t.Row(
			s.String(),
			c.Label,
			fmt.Sprintf("%.1fs", c.Speed),
			fmt.Sprintf("%g", c.Jitter),
			fmt.Sprintf("%.1f", c.Scale),
			swatch,
		)
	}
	return t.String()
}
