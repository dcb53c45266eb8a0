// Package cli implements hrctl, a command line client for the HR resources
// served by the console. It reads the same configuration file and talks to
// the same backend the server would.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simp-lee/hrdesk/internal/app"
	"github.com/simp-lee/hrdesk/internal/config"
	"github.com/simp-lee/hrdesk/internal/hr"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type rootOptions struct {
	configPath string
	mock       bool
	output     string
}

// NewRootCmd builds the hrctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hrctl",
		Short:         "Query and manage HR records from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.output = strings.ToLower(strings.TrimSpace(opts.output))
			if opts.output != outputTable && opts.output != outputJSON {
				return withCode(exitUsage, fmt.Errorf("invalid --output %q: must be %q or %q", opts.output, outputTable, outputJSON))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to configuration file")
	cmd.PersistentFlags().BoolVar(&opts.mock, "mock", false, "use seeded in-memory data regardless of the configuration")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")

	cmd.AddCommand(newResourcesCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	return cmd
}

// Execute runs hrctl with os.Args and exits with a code describing the failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(ExitCode(err))
	}
}

// open loads the configuration and builds the resource registry over the
// configured backend. The returned func releases the backend and logger.
func (o *rootOptions) open() (*hr.Registry, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, withCode(exitConfig, err)
	}
	if o.mock {
		cfg.Data.Mock = true
	}
	// Keep informational logs out of command output.
	if cfg.Log.Level == "debug" || cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, nil, withCode(exitConfig, fmt.Errorf("setup logger: %w", err))
	}
	backend, release, err := app.OpenBackend(cfg, log.Logger)
	if err != nil {
		_ = log.Close()
		return nil, nil, withCode(exitConfig, err)
	}
	closeAll := func() {
		release()
		_ = log.Close()
	}

	reg, err := hr.Build(hr.Config{
		Backend: backend,
		Logger:  log.Logger,
		Audit:   cfg.Data.Audit,
	})
	if err != nil {
		closeAll()
		return nil, nil, withCode(exitConfig, err)
	}
	return reg, closeAll, nil
}

func (o *rootOptions) lookup(reg *hr.Registry, name string) (*hr.Resource, error) {
	res, ok := reg.Lookup(name)
	if !ok {
		return nil, withCode(exitUsage, fmt.Errorf("unknown resource %q; run \"hrctl resources\" for the list", name))
	}
	return res, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
