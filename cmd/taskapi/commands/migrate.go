package commands

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Aliases: []string{"m"},
		Short:   "Create or upgrade the database schema",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *confPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.data.Migrate(ctx); err != nil {
				return err
			}
			rt.logger.Info(ctx, "migration finished", "driver", rt.data.Dialect)
			return nil
		},
	}
}
