package cmd

import (
	"github.com/spf13/cobra"
	"stylist/internal/captioner"
	"stylist/internal/config"
)

func newCaptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caption",
		Short: "Caption downloaded item images with a vision-capable LLM",
		Long: `Reads the download ledger, sends every successfully downloaded image to
the configured AI provider for a one-sentence caption, embeds each caption,
and writes the full product id to caption mapping in one pass.

Items the provider fails on are skipped and listed in the run report.`,
		Example: `  # Caption with the default provider (Gemini, needs GEMINI_API_KEY)
  stylist caption

  # Caption with a local Ollama instance
  STYLIST_PROVIDER=ollama stylist caption`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			return captioner.Run(cmd.Context(), cfg, provider)
		},
	}

	return cmd
}
