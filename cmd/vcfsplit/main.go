// Package main provides the vcfsplit command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// UsageError reports wrong invocation arguments. It is fatal before any
// file is processed.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// errFilesFailed is returned after a batch in which at least one file
// reported an error.
var errFilesFailed = errors.New("one or more files could not be processed")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}
	if !errors.Is(err, errFilesFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitError
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "vcfsplit",
		Short: "Split VCF files into header metadata and body records",
		Long: `vcfsplit classifies every line of a VCF file as meta, column header or
body, groups meta lines into INFO/FILTER/FORMAT/other and splits body lines
into the eight fixed VCF columns.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vcfsplit.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "console", "Log format: console, json")
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintf(c.ErrOrStderr(), "Error: %v\n\n", err)
		c.Usage()
		return &UsageError{Message: err.Error()}
	})

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads the config file and environment.
func initConfig(cfgFile string) error {
	viper.SetDefault("workers", 0)
	viper.SetDefault("recursive", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("duckdb.path", "")

	viper.SetEnvPrefix("VCFSPLIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".vcfsplit.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		// The default config file is optional.
	}
	return nil
}

// newLogger builds a stderr logger from log.level and log.format.
func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var cfg zap.Config
	switch viper.GetString("log.format") {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", viper.GetString("log.format"))
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// exactArgs is cobra.ExactArgs returning a *UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: expected %d argument(s), got %d\n\n", n, len(args))
			cmd.Usage()
			return &UsageError{Message: fmt.Sprintf("accepts %d arg(s), received %d", n, len(args))}
		}
		return nil
	}
}
