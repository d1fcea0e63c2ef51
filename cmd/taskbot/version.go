package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/m3rciful/taskbot/core/buildinfo"
)

var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	styleVersion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styleBrand.Render("taskbot"), styleVersion.Render(buildinfo.Version))
			fmt.Fprintf(out, "  %s  %s\n", styleLabel.Render("Commit"), buildinfo.Commit)
			if buildinfo.Date != "" {
				fmt.Fprintf(out, "  %s   %s\n", styleLabel.Render("Built"), buildinfo.Date)
			}
			fmt.Fprintf(out, "  %s      %s\n", styleLabel.Render("Go"), runtime.Version())
		},
	}
}
