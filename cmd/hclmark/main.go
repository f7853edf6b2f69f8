package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/hclmark/internal/config"
	"github.com/jeduden/hclmark/internal/discovery"
	"github.com/jeduden/hclmark/internal/engine"
	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/log"
	"github.com/jeduden/hclmark/internal/output"
	"github.com/jeduden/hclmark/internal/rule"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/hclmark/internal/rules/deprecatedresource"
	_ "github.com/jeduden/hclmark/internal/rules/hardcodedsecret"
	_ "github.com/jeduden/hclmark/internal/rules/missingrequiredtags"
	_ "github.com/jeduden/hclmark/internal/rules/openingress"
	_ "github.com/jeduden/hclmark/internal/rules/publicbucketacl"
	_ "github.com/jeduden/hclmark/internal/rules/unpinnedprovider"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: hclmark <command> [flags] [files...]

Commands:
  check     Annotate Terraform files (default when given file arguments)
  rules     List the built-in rules
  init      Generate a default .hclmark.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'hclmark <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Handle global flags before subcommand dispatch.
	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Dispatch to subcommand.
	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "rules":
		return runRules(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "hclmark: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("hclmark %s\n", version)
}

// runCheck implements the "check" subcommand: annotate files.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		configPath string
		format     string
		noColor    bool
		quiet      bool
		verbose    bool
		timeout    time.Duration
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json, github")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log skipped rules and dropped findings to stderr")
	fs.DurationVar(&timeout, "timeout", 0, "Abort remaining rules after this duration (0 = no limit)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hclmark check [flags] [files...]\n\n"+
			"Annotate Terraform files with best-practice findings.\n\n"+
			"Files can be paths, directories (walked recursively for *.tf), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped, otherwise scans the\n"+
			"working directory using the configured include patterns.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}

	// No file args: read stdin if piped, otherwise discover .tf files
	// under the working directory.
	if len(files) == 0 {
		if isStdinPipe() {
			return checkStdin(ctx, logger, format, noColor, quiet, configPath)
		}
		return checkDiscovered(ctx, logger, configPath, format, noColor, quiet)
	}

	return checkFiles(ctx, logger, files, configPath, format, noColor, quiet)
}

// runRules implements the "rules" subcommand: list built-in rules.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hclmark rules\n\n"+
			"List the built-in rules with their IDs and importance.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "hclmark: rules takes no arguments\n")
		return 2
	}

	for _, r := range rule.All() {
		fmt.Printf("%-6s %-24s importance %d  %s\n", r.ID(), r.Name(), r.Importance(), r.Description())
	}
	return 0
}

// runInit implements the "init" subcommand: generate .hclmark.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hclmark init\n\n"+
			"Generate a default .hclmark.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "hclmark: init takes no arguments\n")
		return 2
	}

	const configFile = ".hclmark.yml"

	// Check if config file already exists.
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "hclmark: %s already exists\n", configFile)
		return 2
	}

	cfg := config.DumpDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "hclmark: created %s\n", configFile)
	return 0
}

// checkFiles annotates the given file paths and returns the appropriate
// exit code.
func checkFiles(ctx context.Context, logger *log.Logger, fileArgs []string, configPath, format string, noColor, quiet bool) int {
	files, err := lint.ResolveFiles(fileArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", err)
		return 2
	}

	if len(files) == 0 {
		return 0
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", err)
		return 2
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Log:    logger,
	}

	result := runner.Run(ctx, files)
	return report(result, format, noColor, quiet)
}

// checkDiscovered walks the working directory for files matching the
// configured include patterns and annotates them.
func checkDiscovered(ctx context.Context, logger *log.Logger, configPath, format string, noColor, quiet bool) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", err)
		return 2
	}

	files, err := discovery.Discover(discovery.Options{Patterns: cfg.IncludeOrDefault()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", err)
		return 2
	}

	if len(files) == 0 {
		return 0
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Log:    logger,
	}

	result := runner.Run(ctx, files)
	return report(result, format, noColor, quiet)
}

// checkStdin reads from stdin, annotates the content, and returns the
// appropriate exit code.
func checkStdin(ctx context.Context, logger *log.Logger, format string, noColor, quiet bool, configPath string) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: reading stdin: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", err)
		return 2
	}

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Log:    logger,
	}

	result := runner.RunSource(ctx, "<stdin>", source)
	return report(result, format, noColor, quiet)
}

// report writes annotations and errors and maps them to an exit code:
// 0 clean, 1 annotations emitted, 2 operational failure.
func report(result *engine.RunResult, format string, noColor, quiet bool) int {
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "hclmark: %v\n", e)
	}

	if len(result.Errors) > 0 && len(result.Annotations) == 0 {
		return 2
	}

	if !quiet && len(result.Annotations) > 0 {
		var formatter output.Formatter
		switch format {
		case "json":
			formatter = &output.JSONFormatter{}
		case "github":
			formatter = &output.GitHubFormatter{}
		default:
			formatter = &output.TextFormatter{Color: !noColor}
		}

		if err := formatter.Format(os.Stderr, result.Annotations); err != nil {
			fmt.Fprintf(os.Stderr, "hclmark: error writing output: %v\n", err)
			return 2
		}
	}

	if len(result.Annotations) > 0 {
		return 1
	}

	return 0
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.Merge(defaults, loaded), nil
	}

	// Try to discover a config file.
	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	if discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	return config.Merge(defaults, loaded), nil
}
