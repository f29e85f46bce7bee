package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todos/internal/logging"
	"todos/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Open the full-screen board. Projects are listed on the left and the
selected project's todos on the right. Diagnostics go to the log file
while the board owns the terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd)
	},
}

func runBoard(cmd *cobra.Command) error {
	logFile, err := logging.OpenFile(globalConfig.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	sess, err := openSession(cmd, logFile)
	if err != nil {
		return err
	}
	defer sess.Close()

	view := ui.NewBoardView()
	ctrl := sess.controller(view)
	if err := ctrl.Start(); err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	model := ui.NewModel(ctrl, view, sess.logger)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	sess.logger.Debug("board closed")
	return nil
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
