package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration and seed the default project",
	Long: `Write a configuration file with default values if none exists, then
create the stored project list with a "Default Project" on first run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// Check if config file already exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(out, "Configuration file already exists:", configPath)
		} else if os.IsNotExist(err) {
			if err := globalConfig.Save(configPath); err != nil {
				return fmt.Errorf("error creating configuration: %w", err)
			}
			fmt.Fprintln(out, "Configuration file created at:", configPath)
		} else {
			return err
		}

		sess, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer sess.Close()

		seeded, err := sess.store.Bootstrap()
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintf(out, "Initialized %s store in %s\n", globalConfig.Backend, globalConfig.DataDir)
		} else {
			fmt.Fprintln(out, "Store already initialized")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
