// Package setup runs the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/crossrate/config"
)

// DefaultFilename file the wizard writes to.
const DefaultFilename = "crossrate.gen.yaml"

// ErrCancelled the user declined to save.
var ErrCancelled = errors.New("setup cancelled by user")

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)
)

// answers raw form values.
type answers struct {
	logLevel    string
	journal     bool
	journalDir  string
	explain     bool
	concurrency string
	retries     string
	interval    string
	rejectDups  bool
	metricsFile string
}

func defaultAnswers() answers {
	def := config.Default()
	return answers{
		logLevel:    def.LogLevel,
		journal:     def.Journal,
		journalDir:  def.JournalDir,
		explain:     def.Explain,
		concurrency: strconv.Itoa(def.Concurrency),
		retries:     strconv.Itoa(def.ReadRetries),
		interval:    def.ReadRetryInterval.String(),
		rejectDups:  def.RejectDuplicatePairs,
		metricsFile: def.MetricsFile,
	}
}

// RunTUI asks for every setting and writes them as YAML to filename.
func RunTUI(filename string) error {
	a := defaultAnswers()
	var confirm bool

	step := func(title string) {
		fmt.Print("\033[H\033[2J")
		fmt.Println(headerStyle.Render("CROSSRATE CONFIG WIZARD"))
		fmt.Println(stepStyle.Render(title))
	}

	step("STEP 1: OUTPUT")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&a.logLevel),
			huh.NewConfirm().
				Title("Explain conversions?").
				Description("Print the path taken and every rate, not only the amount").
				Value(&a.explain),
		),
	).Run()
	if err != nil {
		return err
	}

	step("STEP 2: JOURNAL")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Record conversions in the journal?").
				Value(&a.journal),
			huh.NewInput().
				Title("Journal directory").
				Value(&a.journalDir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("directory cannot be empty")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	step("STEP 3: INPUT")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Files converted in parallel").
				Value(&a.concurrency).
				Validate(validatePositive),
			huh.NewInput().
				Title("Read retries").
				Description("Retries of a failed file read (0 disables)").
				Value(&a.retries).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Read retry interval").
				Description("Duration string (e.g. 50ms, 1s)").
				Value(&a.interval).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewConfirm().
				Title("Reject duplicate currency pairs?").
				Description("EUR;CHF twice, or EUR;CHF with CHF;EUR, fails the file").
				Value(&a.rejectDups),
			huh.NewInput().
				Title("Metrics file").
				Description("Prometheus textfile written on exit, empty to disable").
				Value(&a.metricsFile),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}

	step("FINAL CONFIRMATION")
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(cfg.String()))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return ErrCancelled
	}

	if err := Save(filename, cfg); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\nConfiguration saved to %s", filename)))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render(fmt.Sprintf("Run: crossrate -config %s FILE...", filename)))
	return nil
}

// Save writes cfg to filename in the format read by -config.
func Save(filename string, cfg config.Config) error {
	data, err := yaml.Marshal(cfg.Tmp())
	if err != nil {
		return errors.Wrap(err, "failed to generate yaml")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to save config file")
	}
	return nil
}

func (a answers) config() (config.Config, error) {
	cfg := config.Default()

	if _, err := zapcore.ParseLevel(a.logLevel); err != nil {
		return config.Config{}, errors.Wrapf(err, "log level %q", a.logLevel)
	}
	concurrency, err := strconv.Atoi(a.concurrency)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "concurrency")
	}
	retries, err := strconv.Atoi(a.retries)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "read retries")
	}
	interval, err := time.ParseDuration(a.interval)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "read retry interval")
	}

	cfg.LogLevel = a.logLevel
	cfg.Journal = a.journal
	cfg.JournalDir = a.journalDir
	cfg.Explain = a.explain
	cfg.Concurrency = concurrency
	cfg.ReadRetries = retries
	cfg.ReadRetryInterval = interval
	cfg.RejectDuplicatePairs = a.rejectDups
	cfg.MetricsFile = a.metricsFile

	return cfg, nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validateNonNegative(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
