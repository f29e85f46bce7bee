package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the stored projects",
	Long: `Check the stored project list against its JSON schema and report
every problem with its location. Nothing is modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer sess.Close()

		problems, err := sess.store.Check()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(problems) == 0 {
			color.New(color.FgGreen).Fprintf(out, "%s: ok\n", sess.store.Key())
			return nil
		}

		red := color.New(color.FgRed)
		for _, p := range problems {
			red.Fprintf(out, "\t%s\n", p)
		}
		fmt.Fprintf(out, "%d problem(s) in %s\n", len(problems), sess.store.Key())
		return reported(errors.New("stored projects are invalid"))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
