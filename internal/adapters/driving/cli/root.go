// Package cli provides the wcgraph command-line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Options are the resolved persistent flags.
type Options struct {
	ConfigPath string
	DataDir    string
	Verbose    bool
}

// Validator checks the catalog is reachable before a run.
type Validator interface {
	Validate(ctx context.Context) error
}

// Services are the driving ports the commands use.
type Services struct {
	Pipeline  driving.Pipeline
	Nodes     driving.NodeService
	Validator Validator
	Close     func() error

	// PipelineErr explains why Pipeline is nil, e.g. a missing config.
	PipelineErr error
}

// BootstrapFunc builds services once the flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	version   = "dev"
	bootstrap BootstrapFunc
	services  *Services
	opts      Options
)

var rootCmd = &cobra.Command{
	Use:   "wcgraph",
	Short: "Source WooCommerce catalogs into a linked node graph",
	Long: `wcgraph pulls products, categories, tags and other collections from a
WooCommerce REST API, links them to each other, downloads their media and
stores the result as content-digested nodes.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default ~/.wcgraph/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Data directory (default ~/.wcgraph/data)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs ready-made services, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer func() {
		if services != nil && services.Close != nil {
			if err := services.Close(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if cmd.Annotations[skipBootstrap] == "true" || services != nil {
		return nil
	}
	if bootstrap == nil {
		return errors.New("services not configured")
	}

	s, err := bootstrap(opts)
	if err != nil {
		return err
	}
	services = s
	return nil
}
