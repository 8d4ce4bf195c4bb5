package cmd

import (
	"github.com/spf13/cobra"
	"stylist/internal/collector"
	"stylist/internal/config"
)

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Download catalog item images and build the download ledger",
		Long: `Iterates the source catalog CSV, downloads each item's image into the
local image directory, and records one ledger row per attempt.

Failed downloads are recorded as failed rows; the run only aborts when the
source catalog itself cannot be read.`,
		Example: `  # Download every image listed in Data/catalog.csv
  stylist collect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return collector.Run(config.Load())
		},
	}

	return cmd
}
