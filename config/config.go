// Package config resolves crossrate settings from defaults, a YAML file, the environment and flags,
// in increasing order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/crossrate/internal/storage/journal"
)

// Environment variables read after the optional .env file is loaded.
const (
	EnvLogLevel    = "CROSSRATE_LOG_LEVEL"
	EnvJournalDir  = "CROSSRATE_JOURNAL_DIR"
	EnvJournal     = "CROSSRATE_JOURNAL"
	EnvMetricsFile = "CROSSRATE_METRICS_FILE"
)

// ErrUsage invalid command line or configuration values.
var ErrUsage = errors.New("invalid usage")

// Config effective settings of one run.
type Config struct {
	LogLevel             string
	JournalDir           string
	Journal              bool
	Explain              bool
	Concurrency          int
	ReadRetries          int
	ReadRetryInterval    time.Duration
	RejectDuplicatePairs bool
	MetricsFile          string
	// Limit number of journal entries shown by the history command.
	Limit int
	// Files input files, in the order given.
	Files []string
}

// ConfigTmp raw YAML form of Config.
type ConfigTmp struct {
	LogLevel             string        `yaml:"log_level,omitempty"`
	JournalDir           string        `yaml:"journal_dir,omitempty"`
	Journal              *bool         `yaml:"journal,omitempty"`
	Explain              *bool         `yaml:"explain,omitempty"`
	ConcurrencyStr       string        `yaml:"concurrency,omitempty"`
	ReadRetriesStr       string        `yaml:"read_retries,omitempty"`
	ReadRetryInterval    time.Duration `yaml:"read_retry_interval,omitempty"`
	RejectDuplicatePairs *bool         `yaml:"reject_duplicate_pairs,omitempty"`
	MetricsFile          string        `yaml:"metrics_file,omitempty"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		LogLevel:          "warn",
		JournalDir:        journal.DefaultDir,
		Concurrency:       4,
		ReadRetries:       2,
		ReadRetryInterval: 50 * time.Millisecond,
		Limit:             20,
	}
}

// Command selects which flags are accepted.
type Command int

const (
	// Convert accepts every flag and takes input files as arguments.
	Convert Command = iota
	// History accepts journal flags only and takes no arguments.
	History
)

type flagValues struct {
	configPath  string
	envFile     string
	logLevel    string
	journalDir  string
	journal     bool
	explain     bool
	concurrency int
	retries     int
	interval    time.Duration
	rejectDups  bool
	metricsFile string
	limit       int
}

// Get parses args for cmd and resolves the effective Config.
// usage is printed before the flag defaults on -h.
// Flag parse errors, including flag.ErrHelp, are returned as is.
func Get(name string, cmd Command, args []string, output io.Writer, usage string) (Config, error) {
	def := Default()
	var fv flagValues

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fmt.Fprintln(output, "\nFlags:")
		fs.PrintDefaults()
	}
	fs.StringVar(&fv.configPath, "config", "", "path to yaml config")
	fs.StringVar(&fv.envFile, "env", ".env", "path to .env file, ignored if missing")
	fs.StringVar(&fv.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&fv.journalDir, "journal-dir", def.JournalDir, "conversion journal directory")
	if cmd == Convert {
		fs.BoolVar(&fv.journal, "journal", def.Journal, "record every conversion in the journal")
		fs.BoolVar(&fv.explain, "explain", def.Explain, "print the conversion path instead of the bare amount")
		fs.IntVar(&fv.concurrency, "concurrency", def.Concurrency, "number of files converted in parallel")
		fs.IntVar(&fv.retries, "read-retries", def.ReadRetries, "retries of a failed file read")
		fs.DurationVar(&fv.interval, "read-retry-interval", def.ReadRetryInterval, "delay before the first read retry")
		fs.BoolVar(&fv.rejectDups, "reject-duplicate-pairs", def.RejectDuplicatePairs, "fail on a currency pair quoted twice")
		fs.StringVar(&fv.metricsFile, "metrics-file", def.MetricsFile, "write prometheus metrics to this file on exit")
	}
	if cmd == History {
		fs.IntVar(&fv.limit, "n", def.Limit, "number of latest entries to show")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if fv.configPath != "" {
		if err := applyYaml(&cfg, fv.configPath); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(fv.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrapf(err, "load env file %s", fv.envFile)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "journal-dir":
			cfg.JournalDir = fv.journalDir
		case "journal":
			cfg.Journal = fv.journal
		case "explain":
			cfg.Explain = fv.explain
		case "concurrency":
			cfg.Concurrency = fv.concurrency
		case "read-retries":
			cfg.ReadRetries = fv.retries
		case "read-retry-interval":
			cfg.ReadRetryInterval = fv.interval
		case "reject-duplicate-pairs":
			cfg.RejectDuplicatePairs = fv.rejectDups
		case "metrics-file":
			cfg.MetricsFile = fv.metricsFile
		case "n":
			cfg.Limit = fv.limit
		}
	})

	cfg.Files = fs.Args()
	if cmd == History && len(cfg.Files) > 0 {
		return Config{}, errors.Wrapf(ErrUsage, "unexpected arguments %v", cfg.Files)
	}

	if err := cfg.Validate(cmd); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate(cmd Command) error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrUsage, "unknown log level %q", c.LogLevel)
	}
	if c.Journal && c.JournalDir == "" {
		return errors.Wrap(ErrUsage, "journal directory is empty")
	}

	switch cmd {
	case Convert:
		if len(c.Files) == 0 {
			return errors.Wrap(ErrUsage, "provide at least one input file")
		}
		if c.Concurrency < 1 {
			return errors.Wrapf(ErrUsage, "concurrency %d should be at least 1", c.Concurrency)
		}
		if c.ReadRetries < 0 {
			return errors.Wrapf(ErrUsage, "read retries %d should not be negative", c.ReadRetries)
		}
		if c.ReadRetryInterval < 0 {
			return errors.Wrapf(ErrUsage, "read retry interval %s should not be negative", c.ReadRetryInterval)
		}
	case History:
		if c.Limit < 1 {
			return errors.Wrapf(ErrUsage, "-n %d should be at least 1", c.Limit)
		}
	}

	return nil
}

func applyYaml(cfg *Config, path string) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read yaml config")
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return errors.Wrapf(ErrUsage, "parse yaml config %s: %v", path, err)
	}

	if tmp.LogLevel != "" {
		cfg.LogLevel = tmp.LogLevel
	}
	if tmp.JournalDir != "" {
		cfg.JournalDir = tmp.JournalDir
	}
	if tmp.Journal != nil {
		cfg.Journal = *tmp.Journal
	}
	if tmp.Explain != nil {
		cfg.Explain = *tmp.Explain
	}
	if tmp.ConcurrencyStr != "" {
		n, err := strconv.Atoi(tmp.ConcurrencyStr)
		if err != nil {
			return errors.Wrapf(ErrUsage, "incorrect 'concurrency' param in yaml config (must be an integer): %v", err)
		}
		cfg.Concurrency = n
	}
	if tmp.ReadRetriesStr != "" {
		n, err := strconv.Atoi(tmp.ReadRetriesStr)
		if err != nil {
			return errors.Wrapf(ErrUsage, "incorrect 'read_retries' param in yaml config (must be an integer): %v", err)
		}
		cfg.ReadRetries = n
	}
	if tmp.ReadRetryInterval != 0 {
		cfg.ReadRetryInterval = tmp.ReadRetryInterval
	}
	if tmp.RejectDuplicatePairs != nil {
		cfg.RejectDuplicatePairs = *tmp.RejectDuplicatePairs
	}
	if tmp.MetricsFile != "" {
		cfg.MetricsFile = tmp.MetricsFile
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookupEnv(EnvJournalDir); ok {
		cfg.JournalDir = v
	}
	if v, ok := lookupEnv(EnvMetricsFile); ok {
		cfg.MetricsFile = v
	}
	if v, ok := lookupEnv(EnvJournal); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(ErrUsage, "%s=%q is not a boolean", EnvJournal, v)
		}
		cfg.Journal = b
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Tmp returns the YAML form of c.
func (c Config) Tmp() ConfigTmp {
	journal, explain, rejectDups := c.Journal, c.Explain, c.RejectDuplicatePairs
	return ConfigTmp{
		LogLevel:             c.LogLevel,
		JournalDir:           c.JournalDir,
		Journal:              &journal,
		Explain:              &explain,
		ConcurrencyStr:       strconv.Itoa(c.Concurrency),
		ReadRetriesStr:       strconv.Itoa(c.ReadRetries),
		ReadRetryInterval:    c.ReadRetryInterval,
		RejectDuplicatePairs: &rejectDups,
		MetricsFile:          c.MetricsFile,
	}
}

// String summarizes c for the setup wizard.
func (c Config) String() string {
	return fmt.Sprintf(
		"Log level: %s\nJournal: %t (%s)\nExplain: %t\nConcurrency: %d\nRead retries: %d every %s\nReject duplicate pairs: %t\nMetrics file: %s",
		c.LogLevel, c.Journal, c.JournalDir, c.Explain, c.Concurrency, c.ReadRetries, c.ReadRetryInterval, c.RejectDuplicatePairs, c.MetricsFile,
	)
}
