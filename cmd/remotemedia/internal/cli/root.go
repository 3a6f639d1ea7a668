// Package cli wires the remotemedia command tree.
package cli

import (
	"fmt"
	"strings"

	remotemedia "github.com/goliatone/go-remote-media"
	"github.com/goliatone/go-remote-media/internal/logging/console"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	variations string
	cloudName  string
	baseURL    string
	verbose    bool
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree. Each call carries its own flag
// state so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "remotemedia",
		Short: "Inspect media variations and render delivery URLs",
		Long: `remotemedia loads a variation document, validates it against the
document schema and renders delivery URLs through the in-memory gateway.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := remotemedia.DefaultConfig()
	root.PersistentFlags().StringVarP(&opts.variations, "variations", "f", "variations.yaml", "Path to the variation document (YAML or JSON)")
	root.PersistentFlags().StringVar(&opts.cloudName, "cloud", defaults.Delivery.CloudName, "Cloud name used in delivery URLs")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", defaults.Delivery.BaseURL, "Delivery base URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Write debug logs to stderr")

	root.AddCommand(newVariationsCommand(opts))
	root.AddCommand(newURLCommand(opts))
	return root
}

// config turns the global flags into a module configuration.
func (o *globalOptions) config() remotemedia.Config {
	cfg := remotemedia.DefaultConfig()
	cfg.Variations.Path = strings.TrimSpace(o.variations)
	if cloud := strings.TrimSpace(o.cloudName); cloud != "" {
		cfg.Delivery.CloudName = cloud
	}
	if base := strings.TrimSpace(o.baseURL); base != "" {
		cfg.Delivery.BaseURL = base
	}
	cfg.Cache.Enabled = false
	return cfg
}

func (o *globalOptions) moduleOptions(cmd *cobra.Command) []remotemedia.Option {
	if !o.verbose {
		return nil
	}
	level := console.LevelDebug
	return []remotemedia.Option{
		remotemedia.WithLoggerProvider(console.NewProvider(console.Options{
			Writer:   cmd.ErrOrStderr(),
			MinLevel: &level,
		})),
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
