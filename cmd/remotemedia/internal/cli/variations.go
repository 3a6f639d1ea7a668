package cli

import (
	"errors"
	"fmt"
	"strings"

	remotemedia "github.com/goliatone/go-remote-media"
	"github.com/goliatone/go-remote-media/internal/variations"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVariationsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variations",
		Short: "Validate and inspect the variation document",
	}
	cmd.AddCommand(newVariationsValidateCommand(opts))
	cmd.AddCommand(newVariationsListCommand(opts))
	cmd.AddCommand(newVariationsResolveCommand(opts))
	return cmd
}

func newVariationsValidateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a variation document against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.variations
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := remotemedia.LoadVariations(path)
			if err != nil {
				var docErr *variations.DocumentError
				if errors.As(err, &docErr) && len(docErr.Issues) > 0 {
					for _, issue := range docErr.Issues {
						location := issue.Location
						if location == "" {
							location = "/"
						}
						printf(cmd, "%s: %s\n", location, issue.Message)
					}
					return fmt.Errorf("%s: %d issue(s)", path, len(docErr.Issues))
				}
				return err
			}
			printf(cmd, "%s: ok, %d group(s), default %q\n", path, len(doc.Groups), doc.DefaultGroup)
			return nil
		},
	}
}

func newVariationsListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [group]",
		Short: "List groups, or the variations of one group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := remotemedia.New(opts.config(), opts.moduleOptions(cmd)...)
			if err != nil {
				return err
			}
			defer module.Close()

			resolver := module.Resolver()
			if len(args) == 1 {
				for _, name := range resolver.Names(args[0]) {
					printf(cmd, "%s\n", name)
				}
				return nil
			}
			for _, group := range resolver.Groups() {
				marker := ""
				if group == resolver.DefaultGroup() {
					marker = " (default)"
				}
				printf(cmd, "%s%s: %s\n", group, marker, strings.Join(resolver.Names(group), ", "))
			}
			return nil
		},
	}
}

type resolvedOperation struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params,omitempty"`
}

func newVariationsResolveCommand(opts *globalOptions) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "resolve <variation>",
		Short: "Print the transformation chain of a variation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := remotemedia.New(opts.config(), opts.moduleOptions(cmd)...)
			if err != nil {
				return err
			}
			defer module.Close()

			cfg, ok := module.Resolver().GetVariation(group, args[0])
			if !ok {
				return fmt.Errorf("variation %q not found", args[0])
			}
			ops := make([]resolvedOperation, 0, len(cfg))
			for _, op := range cfg {
				ops = append(ops, resolvedOperation{Name: op.Name, Params: op.Params})
			}
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(ops); err != nil {
				return err
			}
			return encoder.Close()
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Variation group (defaults to the document default group)")
	return cmd
}
