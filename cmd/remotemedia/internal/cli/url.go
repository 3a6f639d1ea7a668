package cli

import (
	"fmt"
	"strconv"
	"strings"

	remotemedia "github.com/goliatone/go-remote-media"
	"github.com/goliatone/go-remote-media/internal/gateway/memory"
	"github.com/spf13/cobra"
)

type urlOptions struct {
	resourceType string
	format       string
	group        string
	variation    string
	crop         string
}

func newURLCommand(opts *globalOptions) *cobra.Command {
	local := &urlOptions{}
	cmd := &cobra.Command{
		Use:   "url <public-id>",
		Short: "Render the delivery URL of a variation",
		Long: `url registers the public id with the in-memory gateway and renders the
requested variation. Without --variation the original secure URL is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runURL(cmd, opts, local, args[0])
		},
	}
	cmd.Flags().StringVarP(&local.resourceType, "type", "t", string(remotemedia.ResourceTypeImage), "Resource type (image, video, raw, document, other)")
	cmd.Flags().StringVar(&local.format, "format", "", "Asset format recorded on the resource")
	cmd.Flags().StringVarP(&local.group, "group", "g", "", "Variation group")
	cmd.Flags().StringVarP(&local.variation, "variation", "n", "", "Variation name")
	cmd.Flags().StringVar(&local.crop, "crop", "", "Stored crop coordinates for the variation as x,y,w,h")
	return cmd
}

func runURL(cmd *cobra.Command, opts *globalOptions, local *urlOptions, publicID string) error {
	resourceType, ok := remotemedia.ParseResourceType(local.resourceType)
	if !ok {
		return fmt.Errorf("unknown resource type %q", local.resourceType)
	}
	coords, err := parseCrop(local.crop)
	if err != nil {
		return err
	}

	cfg := opts.config()
	gateway := memory.New(
		memory.WithBaseURL(cfg.Delivery.BaseURL),
		memory.WithCloudName(cfg.Delivery.CloudName),
	)
	payload := map[string]any{
		"public_id":     publicID,
		"resource_type": string(resourceType),
	}
	if format := strings.TrimSpace(local.format); format != "" {
		payload["format"] = format
	}
	if err := gateway.Seed(payload); err != nil {
		return err
	}

	module, err := remotemedia.New(cfg, append(opts.moduleOptions(cmd), remotemedia.WithGateway(gateway))...)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx := cmd.Context()
	resource, err := module.Provider().GetRemoteResource(ctx, publicID, resourceType)
	if err != nil {
		return err
	}
	if !coords.IsZero() && local.variation != "" {
		resource = resource.WithCoordinates(local.variation, coords)
	}

	variation, err := module.Provider().BuildVariation(ctx, resource, local.group, remotemedia.NamedVariation(local.variation))
	if err != nil {
		return err
	}
	printf(cmd, "%s\n", variation.URL)
	return nil
}

func parseCrop(value string) (remotemedia.Coordinates, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return remotemedia.Coordinates{}, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return remotemedia.Coordinates{}, fmt.Errorf("crop %q: expected x,y,w,h", value)
	}
	numbers := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return remotemedia.Coordinates{}, fmt.Errorf("crop %q: invalid value %q", value, part)
		}
		numbers[i] = n
	}
	if numbers[2] == 0 || numbers[3] == 0 {
		return remotemedia.Coordinates{}, fmt.Errorf("crop %q: width and height must be positive", value)
	}
	return remotemedia.Coordinates{X: numbers[0], Y: numbers[1], Width: numbers[2], Height: numbers[3]}, nil
}
