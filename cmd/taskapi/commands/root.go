// Package commands holds the cobra command tree of the taskapi binary.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it serves the API.
func NewRootCmd() *cobra.Command {
	var confPath string

	serve := NewServeCommand(&confPath)
	rootCmd := &cobra.Command{
		Use:           "taskapi",
		Short:         "Multi-user task management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "c", "", "config file path (default: search ./config.yaml, $HOME/.taskapi, /etc/taskapi)")

	rootCmd.AddCommand(
		serve,
		NewMigrateCommand(&confPath),
		NewVersionCommand(),
	)

	return rootCmd
}
