// Package cmd defines and implements the CLI commands for the
// sitescraper executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aicollect/sitescraper/pkg/config"
)

// Process exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitInterrupt = 130
)

// errNoDocuments distinguishes an empty run from other failures; both
// exit nonzero.
var errNoDocuments = errors.New("no documents were scraped")

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitescraper",
		Short:         "Crawl a web site into a cleaned, labeled JSONL corpus.",
		Long: `sitescraper crawls a single site breadth-first from a seed URL,
extracts the main textual content of each page, enriches it with
language, content-type, reading-time, and code-likelihood metadata,
and writes the result as newline-delimited JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(config.InitConfig)

	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// Execute runs the CLI and returns the process exit code: 0 when at
// least one document was produced, 1 on failure or an empty corpus, 130
// on interrupt.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "interrupted")
		return exitInterrupt
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitFailure
}
