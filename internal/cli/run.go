package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/display"
	"github.com/tartampluch/go-softclock/internal/engine"
	"github.com/tartampluch/go-softclock/internal/feed"
	"github.com/tartampluch/go-softclock/internal/runner"
	"github.com/tartampluch/go-softclock/internal/server"
)

// runOptions are the flag values of the run command.
type runOptions struct {
	speed uint8
	port  string
	lang  string
	poll  string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clock and serve its snapshots",
		Long: `Run polls the software clock until interrupted. Every minute the status
line is printed; every simulated second the HTTP endpoint is refreshed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := opts.apply(cmd, a.settings)
			if err != nil {
				return err
			}
			clock := clockwork.NewRealClock()
			return runClock(cmd.Context(), cmd, settings, clock)
		},
	}

	cmd.Flags().Uint8Var(&opts.speed, config.FlagSpeed, config.DefaultSpeed, config.FlagDescSpeed)
	cmd.Flags().StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	cmd.Flags().StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	cmd.Flags().StringVar(&opts.poll, config.FlagPoll, config.DefaultPollInterval.String(), config.FlagDescPoll)
	return cmd
}

// apply overrides settings with the flags explicitly given on the command line.
func (o runOptions) apply(cmd *cobra.Command, s config.Settings) (config.Settings, error) {
	flags := cmd.Flags()
	if flags.Changed(config.FlagSpeed) {
		s.Speed = o.speed
	}
	if flags.Changed(config.FlagPort) {
		s.Port = o.port
	}
	if flags.Changed(config.FlagLang) {
		s.Language = o.lang
	}
	if flags.Changed(config.FlagPoll) {
		d, err := parsePoll(o.poll)
		if err != nil {
			return s, err
		}
		s.PollInterval = d
	}
	return s, nil
}

// runClock wires the engine, the sinks and the optional HTTP server, then
// blocks in the runner until ctx is cancelled.
func runClock(ctx context.Context, cmd *cobra.Command, s config.Settings, clock clockwork.Clock) error {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	formatter, err := display.NewFormatter(s.Language)
	if err != nil {
		return err
	}

	state := engine.Initialize(engine.ClockState{}, s.Speed)
	log.Info(config.MsgSettings,
		config.LogKeySpeed, state.Speed,
		config.LogKeyDivisor, state.OneSecondMicro,
		config.LogKeyInterval, s.PollInterval,
		config.LogKeyLang, formatter.Lang.String(),
		config.LogKeyPort, s.Port,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := runner.New(state, engine.NewHostTicks(clock), clock, s.PollInterval)

	out := cmd.OutOrStdout()
	r.AddSink("console", runner.SinkFunc(func(_ context.Context, st engine.ClockState) error {
		if st.SecondEdge && !st.MinuteEdge {
			return nil
		}
		_, err := fmt.Fprintln(out, formatter.Line(st))
		return err
	}))

	serverErr := make(chan error, config.ChannelBufferSize)
	if s.Port == "" {
		log.Info(config.MsgServerOff)
		close(serverErr)
	} else {
		srv := server.NewStatusServer(s.Port)
		r.AddSink(config.CompServer, runner.SinkFunc(func(_ context.Context, st engine.ClockState) error {
			line := formatter.Line(st)
			ics, err := feed.Render(st, line)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrFeedRender, err)
			}
			srv.Update(server.Snapshot{Calendar: ics, Text: line})
			return nil
		}))

		go func() {
			err := srv.Start(ctx)
			if err != nil {
				log.Error(config.ErrServerStartup, config.LogKeyError, err)
				cancel()
			}
			serverErr <- err
			close(serverErr)
		}()
	}

	r.Run(ctx)
	cancel()

	if err := <-serverErr; err != nil {
		return err
	}
	log.Info(config.MsgAppStop)
	return nil
}
