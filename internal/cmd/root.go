// Package cmd wires the cgrep command line: argument parsing, config
// loading, and the plumbing between the file enumerator, the search
// engine, and the result printer.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/callum/cgrep/internal/config"
	"github.com/callum/cgrep/internal/display"
	"github.com/callum/cgrep/internal/fileutil"
	"github.com/callum/cgrep/internal/logger"
	"github.com/callum/cgrep/internal/search"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for cgrep.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cgrep <query> <path>",
		Short: "Recursively search files for lines matching a query",
		Long: `cgrep recursively scans a directory tree (or a single file) for lines
matching a query, as a plain substring or a regular expression, and
prints every match as path:line_number:line.

The per-file scanning work is spread across a fixed pool of workers,
one contiguous chunk of the file list per worker.

Configuration is loaded from .cgrep.yaml if present; flags override it.

Examples:
  cgrep needle ./src
  cgrep -i needle ./src                 # case-insensitive
  cgrep -e '^func [A-Z]' . --include '**/*.go'
  cgrep todo docs/ --exclude-dir .git --workers 4`,
		Version:      Version,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runSearch,
	}

	cmd.Flags().BoolP("ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolP("regex", "e", false, "Treat the query as a regular expression")
	cmd.Flags().Int("workers", -1, "Worker pool size (0 = one per CPU, -1 = use config)")
	cmd.Flags().StringArray("include", nil, "Only search files matching this glob (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "Skip files matching this glob (repeatable)")
	cmd.Flags().StringArray("exclude-dir", nil, "Skip directories with this name (repeatable)")
	cmd.Flags().Bool("no-color", false, "Disable colorized output")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug-level diagnostics")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultConfigPath+")")

	return cmd
}

// runSearch implements the search: collect files, run the engine, print
// the merged matches. Matches go to the command's stdout; every
// diagnostic goes to its stderr.
func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	root := args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	collected, err := fileutil.CollectFiles(root, fileutil.CollectOptions{
		ExcludeDirs: cfg.ExcludeDirs,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
	})
	if err != nil {
		return err
	}
	for _, walkErr := range collected.Errors {
		log.LogWarn(walkErr.Error())
	}
	log.LogInfo(fmt.Sprintf("%d files found", len(collected.Files)))

	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	useRegex, _ := cmd.Flags().GetBool("regex")

	engine := search.NewEngine(search.Config{
		IgnoreCase: ignoreCase,
		UseRegex:   useRegex,
		Workers:    cfg.Workers,
	}, log)

	matches, err := engine.Search(collected.Files, query)
	if err != nil {
		return err
	}
	log.LogDebug(fmt.Sprintf("%d matches across %d workers", len(matches), engine.Workers()))

	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := display.NewPrinter(cmd.OutOrStdout(), !noColor && !cfg.NoColor, highlightFinder(query, ignoreCase, useRegex))

	return printer.PrintMatches(matches)
}

// loadConfig resolves the config file path, loads it, and applies flag
// overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if workers, _ := cmd.Flags().GetInt("workers"); workers >= 0 {
		cfg.Workers = workers
	}
	if dirs, _ := cmd.Flags().GetStringArray("exclude-dir"); len(dirs) > 0 {
		cfg.ExcludeDirs = append(cfg.ExcludeDirs, dirs...)
	}
	if include, _ := cmd.Flags().GetStringArray("include"); len(include) > 0 {
		cfg.Include = append(cfg.Include, include...)
	}
	if exclude, _ := cmd.Flags().GetStringArray("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}

	return cfg, nil
}

// highlightFinder builds the span finder used for match highlighting.
// The query was already validated by the engine before any printing
// happens, so a compile failure here only disables highlighting.
func highlightFinder(query string, ignoreCase, useRegex bool) search.SpanFinder {
	matcher, err := search.NewMatcher(query, ignoreCase, useRegex)
	if err != nil {
		return nil
	}
	finder, ok := matcher.(search.SpanFinder)
	if !ok {
		return nil
	}
	return finder
}

// Execute runs the root command against os.Args, writing matches to
// stdout and diagnostics to stderr, and returns the process exit code.
func Execute(stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
