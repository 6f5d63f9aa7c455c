// Package cmd provides the root command and CLI setup for gomutest.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gooze.dev/pkg/gomutest/internal/adapter"
	"gooze.dev/pkg/gomutest/internal/controller"
	"gooze.dev/pkg/gomutest/internal/domain"
	m "gooze.dev/pkg/gomutest/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var coverageReader adapter.CoverProfileReader
var testAdapter adapter.TestRunnerAdapter
var builder *domain.Builder
var orchestrator domain.Orchestrator
var workflow domain.Workflow
var terminalUI *controller.TUI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noColorFlag disables colored verdicts.
var noColorFlag bool

// noProgressFlag replaces the live progress view with one line per trial.
var noProgressFlag bool

// verboseFlag switches logging to debug level.
var verboseFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var coverageFileFlag string
var onlyCoveredFlag bool
var categoriesFlag []string
var parallelFlag int
var reportFormatFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	terminalUI = controller.NewTUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	coverageReader = adapter.NewGoCoverProfileReader()
	testAdapter = adapter.NewLocalTestRunnerAdapter(0)
	builder = domain.NewBuilder(domain.NewCollector(nil), fsAdapter, goFileAdapter)
	orchestrator = domain.NewOrchestrator(builder, testAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		goFileAdapter,
		coverageReader,
		adapter.NewReportStore,
		terminalUI,
		builder,
		orchestrator,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories
  - ./pkg/calc.go  a single file

Test files, testdata, vendor and __gomutest__ directories are skipped.`

const rootLongDescription = `Gomutest is a mutation testing tool for Go. It finds operator sites in your
source files, swaps one operator at a time for an interchangeable one and
runs your tests against each mutant. A mutant your tests do not detect
points at behavior nothing checks.

Mutants never touch your sources: each one is written to a __gomutest__
directory next to the file and wired in with go build -overlay.

` + pathPatternsHelp

const runLongDescription = `Run mutation testing for the given paths (default: ./...).

Every alternative of every selected site is tried in turn with go test.
Exit status 0 means the mutant SURVIVED, 1 that it was DETECTED, 2 an ERROR.

` + pathPatternsHelp

const listLongDescription = `List mutation sites, their category and alternative operators.

When the coverage file exists the covered column shows which sites
previous test runs executed (go test -coverprofile=.coverage ./...).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gomutest",
		Short: "Go mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))

			if terminalUI != nil {
				tty := controller.IsTTY(os.Stdout)
				terminalUI.SetColor(!viper.GetBool(noColorFlagName) && tty)
				terminalUI.SetLive(!viper.GetBool(noProgressFlagName) && tty)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation testing reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noColorFlag, noColorFlagName, viper.GetBool(noColorFlagName), "disable colored output")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noColorFlagName), noColorFlagName)

	cmd.PersistentFlags().BoolVar(&noProgressFlag, noProgressFlagName, viper.GetBool(noProgressFlagName), "print one line per trial instead of the live progress view")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noProgressFlagName), noProgressFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVarP(&coverageFileFlag, coverageFlagName, "c", viper.GetString(coverageFileConfigKey), "coverage profile written by go test -coverprofile")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(coverageFlagName), coverageFileConfigKey)

	cmd.PersistentFlags().BoolVar(&onlyCoveredFlag, onlyCoveredFlagName, viper.GetBool(onlyCoveredConfigKey), "only use sites on lines the coverage profile marks as executed")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(onlyCoveredFlagName), onlyCoveredConfigKey)

	cmd.PersistentFlags().StringSliceVar(&categoriesFlag, categoriesFlagName, viper.GetStringSlice(categoriesConfigKey), "restrict mutations to these categories (e.g. arithmetic,boolean)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(categoriesFlagName), categoriesConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files parsed concurrently")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().StringVar(&reportFormatFlag, reportFormatFlagName, viper.GetString(reportFormatConfigKey), "report storage format: yaml or sqlite")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportFormatFlagName), reportFormatConfigKey)
}

// listArgs collects the site selection shared by list and run.
func listArgs(args []string) domain.ListArgs {
	return domain.ListArgs{
		Paths:        parsePaths(args),
		Exclude:      viper.GetStringSlice(excludeConfigKey),
		CoverageFile: m.Path(viper.GetString(coverageFileConfigKey)),
		OnlyCovered:  viper.GetBool(onlyCoveredConfigKey),
		Categories:   parseCategories(viper.GetStringSlice(categoriesConfigKey)),
		Threads:      viper.GetInt(parallelConfigKey),
	}
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func parseCategories(values []string) []m.Category {
	categories := make([]m.Category, 0, len(values))
	for _, v := range values {
		categories = append(categories, m.Category(v))
	}

	return categories
}
