package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/engine"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	root := newRootCmd(&app{})
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, config.AppName+" version "))
	assert.Contains(t, out, "core "+engine.Version)
}

func TestCalendarCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Century year is leap", []string{"leap", "2100"}, "2100 leap=true\n"},
		{"Common year", []string{"leap", "2025"}, "2025 leap=false\n"},
		{"Ordinal after leap day", []string{"doy", "2024", "3", "1"}, "2024-03-01 ordinal=61\n"},
		{"Invalid month gives sentinel", []string{"doy", "2023", "13", "1"}, "2023-13-01 ordinal=0\n"},
		{"Ordinal to leap day", []string{"date", "2024", "60"}, "2024 ordinal 60 -> 2024-02-29\n"},
		{"Ordinal past year end", []string{"date", "2023", "400"}, "2023 ordinal 400 -> 2023-12-31\n"},
		{"Weekday", []string{"weekday", "2024", "2", "29"}, "2024-02-29 weekday=4 (Thursday)\n"},
		{"Weekday wraps to Saturday", []string{"weekday", "2000", "1", "1"}, "2000-01-01 weekday=6 (Saturday)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"calendar"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCalendarCmd_LanguageFromEnv(t *testing.T) {
	t.Setenv(config.EnvLang, "fr")

	out, err := execute(t, "calendar", "weekday", "2024", "2", "29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29 weekday=4 (jeudi)\n", out)
}

func TestCalendarCmd_BadArguments(t *testing.T) {
	tests := [][]string{
		{"calendar", "leap", "abc"},
		{"calendar", "doy", "2024", "300", "1"},
		{"calendar", "date", "2024", "-1"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrArgValue)
		})
	}

	_, err := execute(t, "calendar", "leap")
	assert.Error(t, err, "Missing argument is rejected by cobra")
}

func TestRunCmd_BadPoll(t *testing.T) {
	_, err := execute(t, "run", "--poll", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFlagValue)

	_, err = execute(t, "run", "--poll", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPollInterval)
}

func TestRunOptions_Apply(t *testing.T) {
	var opts runOptions
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().Uint8Var(&opts.speed, config.FlagSpeed, config.DefaultSpeed, "")
	cmd.Flags().StringVar(&opts.port, config.FlagPort, config.DefaultPort, "")
	cmd.Flags().StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, "")
	cmd.Flags().StringVar(&opts.poll, config.FlagPoll, "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--speed", "10", "--poll", "5ms"}))

	base := config.DefaultSettings()
	base.Language = "fr"
	base.Port = ""

	got, err := opts.apply(cmd, base)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), got.Speed, "Flag wins")
	assert.Equal(t, 5*time.Millisecond, got.PollInterval, "Flag wins")
	assert.Equal(t, "fr", got.Language, "Setting kept when flag absent")
	assert.Equal(t, "", got.Port, "Setting kept when flag absent")
}

// TestRunClock drives the whole pipeline on a fake clock without the HTTP server.
func TestRunClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	settings := config.DefaultSettings()
	settings.Port = ""
	settings.Speed = 100

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- runClock(ctx, cmd, settings, fc)
	}()

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Tuesday, February 28, 2023 23:30:00")
	}, time.Second, time.Millisecond, "Initial status line is printed")

	// One simulated minute at x100 is 600ms of host time.
	require.Eventually(t, func() bool {
		fc.Advance(settings.PollInterval)
		return strings.Contains(out.String(), "23:31:00")
	}, 5*time.Second, time.Microsecond, "Minute edges print the status line")

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runClock did not return after cancellation")
	}
}
