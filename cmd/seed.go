package cmd

import (
	"fmt"
	"time"

	"github.com/foomo/sitemapserver/pkg/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <dir>",
		Short: "Write example content files for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := seed.Write(args[0], seed.Fixtures(time.Now()))
			if err != nil {
				return fmt.Errorf("failed to seed %s: %w", args[0], err)
			}
			for _, file := range files {
				zap.L().Info("wrote content file", zap.String("file", file))
			}
			return nil
		},
	}
	return cmd
}
