package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type envFileOpts struct {
	EnvFile string `long:"env-file" default:".env"`
}

type rawCfg struct {
	// WordPress configuration
	APIURL   string `long:"api-url" env:"WP_API_URL" description:"WordPress REST API base URL (e.g., https://example.com/wp-json)"`
	Username string `long:"username" env:"WP_USERNAME" description:"WordPress user for Basic authentication"`
	Password string `long:"password" env:"WP_PASSWORD" description:"WordPress application password"`

	// Sync configuration
	FeedsFile  string `long:"feeds-file" env:"FEEDS_FILE" description:"YAML feed catalog replacing the built-in one"`
	MaxAgeDays int    `long:"max-age-days" env:"MAX_AGE_DAYS" default:"1" description:"Import episodes published at most this many days ago"`
	LedgerPath string `long:"ledger-path" env:"LEDGER_PATH" description:"SQLite file recording published episodes; skips already published GUIDs (optional)"`
	DryRun     bool   `long:"dry-run" env:"DRY_RUN" description:"Log payloads instead of publishing them"`

	// HTTP configuration
	Timeout   int    `long:"timeout" env:"HTTP_TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`

	// Application metadata
	EnvFile string `long:"env-file" default:".env" description:"dotenv file loaded before reading the environment"`
	Debug   bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogFile string `long:"log-file" env:"LOG_FILE" description:"Also write logs to this file, rotated automatically"`
}

// Load reads configuration from the command line and the environment.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	if err := loadEnvFile(args); err != nil {
		return nil, err
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.MaxAgeDays < 0 {
		return nil, fmt.Errorf("max age days must be non-negative")
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}

	cfg := &Cfg{
		APIURL:     raw.APIURL,
		Username:   raw.Username,
		Password:   raw.Password,
		FeedsFile:  raw.FeedsFile,
		MaxAgeDays: raw.MaxAgeDays,
		LedgerPath: raw.LedgerPath,
		DryRun:     raw.DryRun,
		Timeout:    time.Duration(raw.Timeout) * time.Second,
		UserAgent:  cmp.Or(raw.UserAgent, "podcast-press/"+GetVersion()),
		Debug:      raw.Debug,
		LogFile:    raw.LogFile,
		Version:    GetVersion(),
	}

	return cfg, nil
}

// loadEnvFile populates the environment from the dotenv file named by
// --env-file. Variables already set are left untouched and a missing file is
// not an error.
func loadEnvFile(args []string) error {
	var opts envFileOpts

	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	if opts.EnvFile == "" {
		return nil
	}

	if err := godotenv.Load(opts.EnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
	}

	return nil
}
