package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/engine"
)

// app carries what the persistent flags resolve to, shared by every command.
type app struct {
	debug    bool
	envFile  string
	settings config.Settings

	// logToFile is false in tests so nothing is written to the user cache dir.
	logToFile bool
	logCloser io.Closer
}

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{logToFile: true})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.CommandName,
		Short: "Software real-time clock with calendar arithmetic",
		Long: `go-softclock keeps time of day and a calendar date from a free-running
microsecond counter, optionally accelerated for debugging, and publishes the
simulated clock as a status line and an iCalendar feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&a.envFile, config.FlagEnvFile, config.DefaultEnvFile, config.FlagDescEnv)

	root.AddCommand(
		newRunCmd(a),
		newCalendarCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with ctx and os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup resolves settings and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	if a.debug {
		settings.Debug = true
	}
	a.settings = settings

	a.logCloser = setupLogging(cmd.ErrOrStderr(), settings.Debug, a.logToFile)
	logStartupInfo(cmd.Name())
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
		a.logCloser = nil
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(command string) {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyKey, command,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCore, engine.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
