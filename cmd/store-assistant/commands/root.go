package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/store-assistant/config"
	"github.com/yourusername/store-assistant/internal/app"
	"github.com/yourusername/store-assistant/internal/observability"
)

type rootOptions struct {
	cfgFile  string
	logLevel string
	catalog  string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "store-assistant",
		Short: "Shopper assistant that answers from the product catalog",
		Long: `store-assistant resolves shopper questions against a product catalog.
Keyword matching runs first, then fuzzy name matching, and anything left
unmatched goes to a generative assistant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path (default $CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level")
	cmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "override catalog source")

	cmd.AddCommand(
		newServeCmd(opts),
		newAskCmd(opts),
		newCatalogCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.catalog != "" {
		cfg.Catalog.Source = o.catalog
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

// bootstrap config, logger and the wired application
func (o *rootOptions) bootstrap(ctx context.Context) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, newLogger(cfg), app.Options{})
}
