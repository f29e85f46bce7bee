package commands

import (
	"github.com/spf13/cobra"

	"todos/internal/app"
	"todos/internal/models"
)

var (
	// Variables to hold todo flag values
	todoTitle       string
	todoDescription string
	todoDue         string
	todoPriority    string
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos inside a project",
	Long: `Add, toggle and delete todos. Projects and todos are referenced by
index, id or unique id prefix as shown by 'todos list'.`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <project>",
	Short: "Add a todo to a project",
	Long: `Add an open todo to a project. Values not given as flags are asked
for interactively. Title and due date are required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configure := func(v *lineView) {
			v.preset = models.TodoInput{
				Title:       todoTitle,
				Description: todoDescription,
				DueDate:     todoDue,
				Priority:    todoPriority,
			}
		}
		return withController(cmd, configure, func(ctrl *app.Controller, v *lineView) error {
			return ctrl.BeginAddTodo(app.ParseRef(args[0]))
		})
	},
}

var todoToggleCmd = &cobra.Command{
	Use:   "toggle <project> <todo>",
	Short: "Mark a todo done or open again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, nil, func(ctrl *app.Controller, v *lineView) error {
			return ctrl.ToggleComplete(app.ParseRef(args[0]), app.ParseRef(args[1]))
		})
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:     "delete <project> <todo>",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, nil, func(ctrl *app.Controller, v *lineView) error {
			return ctrl.DeleteTodo(app.ParseRef(args[0]), app.ParseRef(args[1]))
		})
	},
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoToggleCmd)
	todoCmd.AddCommand(todoDeleteCmd)

	todoAddCmd.Flags().StringVarP(&todoTitle, "title", "t", "", "Todo title")
	todoAddCmd.Flags().StringVarP(&todoDescription, "description", "d", "", "Todo description")
	todoAddCmd.Flags().StringVar(&todoDue, "due", "", "Due date (YYYY-MM-DD)")
	todoAddCmd.Flags().StringVarP(&todoPriority, "priority", "p", "", "Priority (low, medium, high)")
}
