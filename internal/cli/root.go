package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/config"
	"github.com/tessro/pspr/internal/logging"
	"github.com/tessro/pspr/internal/paths"
)

var (
	// psprDir is the global --pspr-dir flag value.
	psprDir string
	// workspaceDir is the global --workspace flag value.
	workspaceDir string
	// logLevel is the global --log-level flag value.
	logLevel string

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "pspr",
	Short: "PPSSPP launcher",
	Long:  "pspr launches the PSP emulator PPSSPP on the EBOOT.PBP in your workspace and keeps track of it until it exits.",

	// Errors are printed by Execute; usage is only useful for flag errors.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (setupLogging refers to rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Set PSPR_DIR environment variable if --pspr-dir is provided.
		// This allows all path helpers to use the override.
		if psprDir != "" {
			if err := os.Setenv(paths.EnvPsprDir, psprDir); err != nil {
				return err
			}
		}
		return setupLogging()
	}
	rootCmd.PersistentFlags().StringVar(&psprDir, "pspr-dir", "", "base directory for pspr data (overrides ~/.pspr)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace folder (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// setupLogging points slog at the log file. The flag wins over the config.
func setupLogging() error {
	if logLevel != "" {
		if err := config.ValidateLogLevel(logLevel); err != nil {
			return err
		}
	}

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		// A broken config must not prevent fixing it with `pspr config`.
		fmt.Fprintf(rootCmd.ErrOrStderr(), "🎮 Warning: %v\n", err)
		cfg = nil
	}

	level := logLevel
	if level == "" {
		level = cfg.GetLogLevel()
	}

	cleanup, err := logging.Setup(cfg.GetLogPath(), logging.ParseLevel(level))
	if err != nil {
		// Logging is best effort; keep going with the default logger.
		return nil
	}
	logCleanup = cleanup
	slog.Debug("pspr invoked", "args", os.Args[1:], "workspace", workspaceDir)
	return nil
}

// reportedError marks an error that was already shown to the user.
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

// Execute runs the root command and prints unreported errors.
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	}()

	err := rootCmd.Execute()
	if err != nil {
		var re *reportedError
		if !errors.As(err, &re) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "🎮 Error: %v\n", err)
		}
	}
	return err
}

// ExecuteArgs runs the root command with explicit arguments.
func ExecuteArgs(args []string) error {
	rootCmd.SetArgs(args)
	return Execute()
}
