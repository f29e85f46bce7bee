package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"todos/internal/app"
	"todos/internal/models"
	"todos/internal/util"
)

var (
	// Skip the delete confirmation
	forceDelete bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  "Create, list and delete projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Long:  "Create an empty project. Prompts for the name when it is not given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, nil, func(ctrl *app.Controller, v *lineView) error {
			// If name wasn't provided as an argument, prompt for it
			if len(args) == 0 {
				return ctrl.BeginCreateProject()
			}
			return ctrl.CreateProject(args[0])
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Long:  "List project names with their todo counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer sess.Close()

		if _, err := sess.store.Bootstrap(); err != nil {
			return err
		}
		projects, err := sess.store.LoadProjects()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects found. Create one with 'todos project create'")
			return nil
		}
		for i, p := range projects {
			printProjectLine(cmd, i, p)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete <project>",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Long: `Delete a project and all of its todos. The project is given by index,
id or unique id prefix. Asks for confirmation unless --yes is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configure := func(v *lineView) { v.assumeYes = forceDelete }
		return withController(cmd, configure, func(ctrl *app.Controller, v *lineView) error {
			return ctrl.DeleteProject(app.ParseRef(args[0]))
		})
	},
}

func printProjectLine(cmd *cobra.Command, i int, p models.Project) {
	out := cmd.OutOrStdout()
	color.New(color.Bold).Fprintf(out, "%d. %s", i, p.Name)
	fmt.Fprintf(out, "  %d todos, %d done", len(p.Todos), p.CountCompleted())
	color.New(color.Faint).Fprintf(out, "  [%s]\n", util.ShortID(p.ID))
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectDeleteCmd.Flags().BoolVarP(&forceDelete, "yes", "y", false, "Delete without asking for confirmation")
}
