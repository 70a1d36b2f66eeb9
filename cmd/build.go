package cmd

import (
	"bytes"
	"fmt"
	"time"

	keelhttp "github.com/foomo/keel/net/http"
	"github.com/foomo/sitemapserver/pkg/sitemap"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func NewBuildCommand() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "build <url|dir>",
		Short: "Write sitemap.xml and robots.txt once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			l := zap.L().Named("build")
			checkOrigin(l, originFlag(v))

			source := newSource(v, l, args[0], keelhttp.NewHTTPClient(
				keelhttp.HTTPClientWithTimeout(repositoryTimeoutFlag(v)),
			))
			records, err := source.Records(ctx)
			if err != nil {
				return fmt.Errorf("failed to load records: %w", err)
			}

			builder := sitemap.NewBuilder(l,
				originFlag(v),
				sitemap.StaticProvider(records),
				sitemap.WithRoutes(sitemap.ParseRoutes(routesFlag(v))),
				sitemap.WithClock(time.Now),
			)

			var sitemapBuf, robotsBuf bytes.Buffer
			if err := builder.WriteXML(ctx, &sitemapBuf); err != nil {
				return fmt.Errorf("failed to build sitemap: %w", err)
			}
			if err := builder.WriteRobots(&robotsBuf); err != nil {
				return fmt.Errorf("failed to build robots: %w", err)
			}

			output, err := createOutputStorage(ctx, l, outputFlag(v))
			if err != nil {
				return fmt.Errorf("failed to create output storage: %w", err)
			}
			defer func() {
				err = multierr.Append(err, output.Close())
			}()

			if err := output.Write(ctx, sitemap.Filename, sitemapBuf.Bytes()); err != nil {
				return fmt.Errorf("failed to write %s: %w", sitemap.Filename, err)
			}
			if err := output.Write(ctx, sitemap.RobotsFilename, robotsBuf.Bytes()); err != nil {
				return fmt.Errorf("failed to write %s: %w", sitemap.RobotsFilename, err)
			}

			l.Info("wrote sitemap",
				zap.String("output", outputFlag(v)),
				zap.Int("records", len(records)),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	addOriginFlag(flags, v)
	addRoutesFlag(flags, v)
	addContentPrefixFlag(flags, v)
	addOutputFlag(flags, v)
	addRepositoryTimeoutFlag(flags, v)

	return cmd
}
