package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the runtime parameters of the clock host.
// Zero values are never used directly: LoadSettings starts from the defaults.
type Settings struct {
	Speed        uint8
	Port         string
	Language     string
	PollInterval time.Duration
	Debug        bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Speed:        DefaultSpeed,
		Port:         DefaultPort,
		Language:     DefaultLanguage,
		PollInterval: DefaultPollInterval,
	}
}

// LoadSettings reads envFile (if any) into the process environment and then
// resolves the SOFTCLOCK_* variables on top of the defaults.
// A missing DefaultEnvFile is not an error; any other missing file is.
// Variables already present in the environment win over the file.
func LoadSettings(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist) {
				slog.Debug(MsgEnvSkipped,
					LogKeyComponent, CompConfig,
					LogKeyFile, envFile)
			} else {
				return Settings{}, fmt.Errorf("%s: %w", ErrEnvFile, err)
			}
		}
	}
	return SettingsFromEnv(os.LookupEnv)
}

// SettingsFromEnv resolves settings through lookup, which has the signature of os.LookupEnv.
func SettingsFromEnv(lookup func(string) (string, bool)) (Settings, error) {
	s := DefaultSettings()

	if v, ok := lookup(EnvSpeed); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Settings{}, fmt.Errorf("%s %s=%q: %w", ErrEnvValue, EnvSpeed, v, err)
		}
		// Unknown multipliers are accepted here; the engine falls back to x1.
		s.Speed = uint8(n)
	}

	if v, ok := lookup(EnvPort); ok {
		s.Port = v
	}

	if v, ok := lookup(EnvLang); ok && v != "" {
		s.Language = v
	}

	if v, ok := lookup(EnvPoll); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s %s=%q: %w", ErrEnvValue, EnvPoll, v, err)
		}
		if d <= 0 {
			return Settings{}, fmt.Errorf("%s %s=%q: %s", ErrEnvValue, EnvPoll, v, ErrPollInterval)
		}
		s.PollInterval = d
	}

	if v, ok := lookup(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s %s=%q: %w", ErrEnvValue, EnvDebug, v, err)
		}
		s.Debug = b
	}

	return s, nil
}
