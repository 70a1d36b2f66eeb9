package cmd

import (
	"context"
	"fmt"

	"github.com/foomo/sitemapserver/pkg/healthz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewHealthcheckCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "healthcheck [url]",
		Short: "Probe a running server, e.g. as container HEALTHCHECK",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := "http://127.0.0.1:8080/sitemap.xml"
			if len(args) == 1 {
				url = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), healthcheckTimeoutFlag(v))
			defer cancel()

			if err := healthz.Probe(ctx, nil, url); err != nil {
				return fmt.Errorf("healthcheck failed: %w", err)
			}
			zap.L().Debug("healthy", zap.String("url", url))
			return nil
		},
	}

	addHealthcheckTimeoutFlag(cmd.Flags(), v)

	return cmd
}
