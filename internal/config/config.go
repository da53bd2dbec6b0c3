package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomfield/reelcode/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envListen     = "REELCODE_LISTEN"
	envSettings   = "REELCODE_SETTINGS"
	envOpenDialog = "REELCODE_OPEN_DIALOG"
	envSaveDialog = "REELCODE_SAVE_DIALOG"
	envWidth      = "REELCODE_WIDTH"
	envHeight     = "REELCODE_HEIGHT"
	envShowFooter = "REELCODE_FOOTER"
	envVerbose    = "REELCODE_VERBOSE"
	envTrace      = "REELCODE_TRACE"
	envLogFile    = "REELCODE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("reelcode", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	listen := fs.String("listen", envOrDefault(env, envListen, "127.0.0.1:0"), "address the surface websocket listens on")
	settings := fs.String("settings", envOrDefault(env, envSettings, ""), "path to the settings file (defaults to the user config dir)")
	openDialog := fs.String("open-dialog", envOrDefault(env, envOpenDialog, ""), "command that prints a file path to open")
	saveDialog := fs.String("save-dialog", envOrDefault(env, envSaveDialog, ""), "command that prints a file path to save to")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if strings.TrimSpace(*listen) == "" {
		return Config{}, fmt.Errorf("listen address must not be empty")
	}

	initialFile := ""
	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return Config{}, fmt.Errorf("expected at most one file argument (got %d)", len(rest))
		}
		initialFile = rest[0]
	}

	cfg := Config{
		App: app.Config{
			Listen:       *listen,
			SettingsPath: *settings,
			OpenDialog:   *openDialog,
			SaveDialog:   *saveDialog,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			InitialFile:  initialFile,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"listen":     *listen,
			"settings":   *settings,
			"openDialog": *openDialog,
			"saveDialog": *saveDialog,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"verbose":    strconv.FormatBool(*verbose),
			"logFile":    *logFile,
			"file":       initialFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Listen) == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}
