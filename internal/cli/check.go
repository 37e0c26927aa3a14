package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pickles/internal/config"
	"pickles/internal/features"
	"pickles/internal/report"
	"pickles/internal/results"
)

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type checkOptions struct {
	configPath      string
	format          string
	results         stringList
	language        string
	sutName         string
	sutVersion      string
	caseInsensitive bool
	json            bool
	color           string
	verbose         bool
}

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		var opts checkOptions
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .pickles/config.yml)")
		flags.StringVar(&opts.format, "format", "", "Test result format (see pickles formats)")
		flags.Var(&opts.results, "results", "Test result file; repeat to add fallbacks")
		flags.StringVar(&opts.language, "language", "", "Gherkin language of the feature files")
		flags.StringVar(&opts.sutName, "sut-name", "", "Name of the system under test")
		flags.StringVar(&opts.sutVersion, "sut-version", "", "Version of the system under test")
		flags.BoolVar(&opts.caseInsensitive, "case-insensitive", false, "Match names ignoring case")
		flags.BoolVar(&opts.json, "json", false, "Write the report as JSON")
		flags.StringVar(&opts.color, "color", "auto", "Colorize text output (auto|always|never)")
		flags.BoolVar(&opts.verbose, "verbose", false, "Log debug details to stderr")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		noColor, err := resolveNoColor(opts.color, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		logger := newLogger(stderr, opts.verbose)
		cfg, baseDir, err := checkConfig(opts, flags.Args())
		if err != nil {
			fmt.Fprintf(stderr, "Check failed:\n%v\n", err)
			return ExitError
		}
		logger.Debug("configuration",
			"base_dir", baseDir,
			"language", cfg.Language,
			"features", cfg.Features,
			"format", cfg.Results.Format,
			"results", cfg.Results.Files,
			"case_insensitive", cfg.Results.CaseInsensitive,
		)

		parsed, err := features.Load(baseDir, cfg.Features, cfg.Language)
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}
		logger.Debug("parsed feature files", "count", len(parsed))

		correlator, err := loadCorrelator(cfg, baseDir, logger)
		if correlator == nil {
			fmt.Fprintf(stderr, "Check failed: no test results could be loaded: %v\n", err)
			return ExitError
		}

		built, err := report.Build(context.Background(), correlator, parsed, report.Options{
			Format:  correlator.Format().String(),
			Sources: correlator.Sources(),
			SystemUnderTest: report.SystemUnderTest{
				Name:    cfg.SystemUnderTest.Name,
				Version: cfg.SystemUnderTest.Version,
			},
		})
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}

		if opts.json {
			err = report.RenderJSON(stdout, built)
		} else {
			err = report.RenderText(stdout, built, noColor)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// checkConfig merges the config file, when one exists, with command flags.
// Paths given on the command line are relative to the working directory;
// paths from the config file are relative to the repository root.
func checkConfig(opts checkOptions, featureArgs []string) (config.Config, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("get working directory: %w", err)
	}

	cfg := config.Config{Version: 1}
	baseDir := wd
	path, err := resolveConfigPath(opts.configPath)
	switch {
	case err == nil:
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return config.Config{}, "", fmt.Errorf("read config: %w", readErr)
		}
		if cfg, err = config.Parse(data); err != nil {
			return config.Config{}, "", err
		}
		baseDir = config.RepoRootFromConfigPath(path)
	case strings.TrimSpace(opts.configPath) != "":
		return config.Config{}, "", err
	}

	if opts.format != "" {
		cfg.Results.Format = opts.format
	}
	if opts.language != "" {
		cfg.Language = opts.language
	}
	if opts.sutName != "" {
		cfg.SystemUnderTest.Name = opts.sutName
	}
	if opts.sutVersion != "" {
		cfg.SystemUnderTest.Version = opts.sutVersion
	}
	if opts.caseInsensitive {
		cfg.Results.CaseInsensitive = true
	}
	if len(opts.results) > 0 {
		cfg.Results.Files = absolutePaths(wd, opts.results)
	}
	if len(featureArgs) > 0 {
		cfg.Features = absolutePaths(wd, featureArgs)
	}

	config.Normalize(&cfg)
	if err := config.Validate(&cfg, baseDir); err != nil {
		return config.Config{}, "", err
	}
	return cfg, baseDir, nil
}

func absolutePaths(wd string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		out = append(out, path)
	}
	return out
}

// loadCorrelator loads every configured result file. Unreadable files are
// logged and skipped; the correlator is nil only when none loaded.
func loadCorrelator(cfg config.Config, baseDir string, logger *slog.Logger) (*results.Correlator, error) {
	format, err := results.ParseFormat(cfg.Results.Format)
	if err != nil {
		return nil, err
	}
	opts := []results.Option{
		results.WithLogger(logger),
		results.WithSignatureBuilder(format.SignatureBuilder()),
	}
	if cfg.Results.CaseInsensitive {
		opts = append(opts, results.WithCaseInsensitive())
	}
	correlator, err := results.Load(format, config.ResolvePaths(baseDir, cfg.Results.Files), opts...)
	if err != nil {
		var parseErr *results.ParseError
		if correlator != nil && errors.As(err, &parseErr) {
			logger.Warn("some test results files were skipped", "loaded", len(correlator.Sources()))
		}
	}
	return correlator, err
}
