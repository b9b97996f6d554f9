package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aicollect/sitescraper/internal/analytics"
	"github.com/aicollect/sitescraper/internal/logging"
	"github.com/aicollect/sitescraper/internal/storage"
)

// newStatsCmd creates the 'stats' subcommand, which summarizes a
// previously scraped JSONL corpus.
func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <corpus.jsonl>",
		Short: "Print statistics for a scraped corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(viper.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("corpus file %s: %w", args[0], err)
			}

			store := storage.NewJSONLStore(args[0], false, logger)
			docs, err := store.Load()
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			report := analytics.Build(docs)
			if asJSON {
				payload, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}
			report.WriteText(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output statistics as JSON")
	return cmd
}
