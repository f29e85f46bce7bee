package commands

import (
	"github.com/spf13/cobra"

	"todos/internal/app"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "status"},
	Short:   "Show all projects and their todos",
	Long: `Display every project with its todos. Indexes and short ids shown
here can be passed to the project and todo commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, nil, func(ctrl *app.Controller, v *lineView) error {
			return ctrl.Refresh()
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
