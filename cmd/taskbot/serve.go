package main

import (
	"github.com/spf13/cobra"

	"github.com/m3rciful/taskbot/app"
	corecmd "github.com/m3rciful/taskbot/core/cmd"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath: *configPath,
				LoadConfig: app.LoadConfig,
				Bootstrap:  app.Bootstrap,
			})
		},
	}
}
