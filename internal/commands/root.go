package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todos/internal/app"
	"todos/internal/config"
	"todos/internal/kv"
	"todos/internal/logging"
	"todos/internal/storage"
)

var (
	globalConfig *config.Config
	configPath   string

	// Variables to hold global flag values
	flagBackend  string
	flagDataDir  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "todos - A terminal todo manager organized into projects",
	Long: `todos keeps todo items grouped into projects.
Run it without arguments to open the interactive board, or use the
subcommands to manage projects and todos one action at a time.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if globalConfig == nil {
			globalConfig = config.Default(".")
		}
		if cmd.Flags().Changed("backend") {
			globalConfig.Backend = flagBackend
		}
		if cmd.Flags().Changed("data-dir") {
			globalConfig.DataDir = flagDataDir
		}
		if cmd.Flags().Changed("log-level") {
			globalConfig.LogLevel = flagLogLevel
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd)
	},
}

// Execute runs the root command with the loaded configuration
func Execute(cfg *config.Config, cfgPath string) error {
	globalConfig = cfg
	configPath = cfgPath
	return rootCmd.Execute()
}

// reportedError marks an error the user has already been shown
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// session holds everything one command needs to reach the stored projects
type session struct {
	kv     kv.Store
	store  *storage.Store
	logger *log.Logger
}

// openSession opens the configured backend and writes diagnostics to logOut,
// prefixed with the command being run
func openSession(cmd *cobra.Command, logOut io.Writer) (*session, error) {
	logger, err := logging.New(logging.Options{
		Level:  globalConfig.LogLevel,
		Output: logOut,
		Prefix: cmd.CommandPath(),
	})
	if err != nil {
		return nil, err
	}

	store, err := kv.Open(kv.Backend(globalConfig.Backend), globalConfig.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", globalConfig.Backend, err)
	}
	logger.Debug("store opened", "backend", globalConfig.Backend, "dir", globalConfig.DataDir)

	return &session{
		kv:     store,
		store:  storage.New(store, globalConfig.Key, logger),
		logger: logger,
	}, nil
}

// controller creates a controller drawing into view
func (s *session) controller(view app.View) *app.Controller {
	return app.New(s.store, view, s.logger)
}

func (s *session) Close() error {
	return s.kv.Close()
}

// withController runs fn against a started controller using the line view
func withController(cmd *cobra.Command, configure func(v *lineView), fn func(ctrl *app.Controller, v *lineView) error) error {
	sess, err := openSession(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	view := newLineView(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if configure != nil {
		configure(view)
	}
	ctrl := sess.controller(view)

	if _, err := sess.store.Bootstrap(); err != nil {
		return err
	}
	err = fn(ctrl, view)
	if view.alerted {
		// The alert already told the user what went wrong
		if err == nil {
			err = errAlerted
		}
		return reported(err)
	}
	return err
}

var errAlerted = errors.New("action not performed")

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding stored data")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
}
