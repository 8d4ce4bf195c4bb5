package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stylist",
		Short: "Clothing catalog demo with LLM-powered outfit recommendations",
		Long: `Stylist is a hackathon demo that builds a browsable clothing catalog
from a source CSV, captions every item image with a vision-capable LLM,
and serves a recommendation UI over the captioned catalog.

The pipeline runs in three independent stages, connected only through
files on disk:

  collect -> caption -> serve`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newCollectCmd())
	cmd.AddCommand(newCaptionCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
