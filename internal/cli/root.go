// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-algid.
//
// go-algid is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeremyhahn/go-algid/internal/config"
	"github.com/jeremyhahn/go-algid/pkg/logging"
	"github.com/jeremyhahn/go-algid/pkg/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// subcommands holds constructors registered by build-tagged files.
var subcommands []func(*app) *cobra.Command

func registerCommand(fn func(*app) *cobra.Command) {
	subcommands = append(subcommands, fn)
}

// app is the state shared by all commands of one invocation.
type app struct {
	flags    *Config
	v        *viper.Viper
	cfg      *config.Config
	logger   *logging.Logger
	resolver *metrics.InstrumentedResolver
	out      io.Writer
	errOut   io.Writer
}

// NewRootCmd builds the algid command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		flags:  NewConfig(),
		v:      viper.New(),
		out:    out,
		errOut: errOut,
	}

	rootCmd := &cobra.Command{
		Use:   "algid",
		Short: "go-algid CLI - Algorithm identifier resolution tool",
		Long: `go-algid CLI resolves abstract algorithm names into the concrete
identifiers used by PKCS#11 tokens and X.509 structures.

Every algorithm is bound to exactly one identifier space:
  - mechanism: a PKCS#11 mechanism type (CKM_*)
  - oid:       an OID tag naming an ASN.1 object identifier`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.flags.PrintMetrics {
				return nil
			}
			return metrics.WriteText(a.errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.ConfigFile, "config", "",
		"config file (default: built-in table, environment overrides only)")
	pf.StringP("output", "o", "", "output format (text, json, table) (default \"text\")")
	pf.String("log-level", "", "log level (debug, info, warn, error) (default \"info\")")
	pf.String("log-format", "", "log format (text, json) (default \"text\")")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&a.flags.PrintMetrics, "print-metrics", false,
		"write resolver metrics to stderr after the command")

	// Flags win over ALGID_* environment variables
	a.v.SetEnvPrefix("ALGID")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"output", "log-level", "log-format"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newUsageCmd(a))
	rootCmd.AddCommand(newOIDCmd(a))
	rootCmd.AddCommand(newDERCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))
	for _, fn := range subcommands {
		rootCmd.AddCommand(fn(a))
	}

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

// setup loads configuration, applies flag overrides and builds the shared
// logger and resolver.
func (a *app) setup() error {
	cfg, err := a.flags.Load()
	if err != nil {
		return err
	}

	if s := a.v.GetString("output"); s != "" {
		cfg.Output = s
	}
	if s := a.v.GetString("log-level"); s != "" {
		cfg.Logging.Level = s
	}
	if s := a.v.GetString("log-format"); s != "" {
		cfg.Logging.Format = s
	}
	if a.flags.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: logging.Format(strings.ToLower(cfg.Logging.Format)),
		Writer: a.errOut,
	})
	if err != nil {
		return err
	}

	table, err := cfg.Table.Build()
	if err != nil {
		return fmt.Errorf("failed to build algorithm table: %w", err)
	}

	if cfg.Metrics.Enabled || a.flags.PrintMetrics {
		metrics.Enable()
	} else {
		metrics.Disable()
	}
	metrics.SetTable(table)

	a.cfg = cfg
	a.logger = logger
	a.resolver = metrics.NewInstrumentedResolver(algidResolver(table))

	logger.Debug("configuration loaded",
		"config", a.flags.ConfigFile,
		"output", cfg.Output,
		"overrides", len(cfg.Table.Overrides))
	return nil
}

// printer returns a printer for the configured output format
func (a *app) printer() *Printer {
	return NewPrinter(strings.ToLower(a.cfg.Output), a.out)
}
