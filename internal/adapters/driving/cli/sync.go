package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
)

// progressInterval is how often sync polls the pipeline status.
var progressInterval = 500 * time.Millisecond

var skipValidate bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the catalog and store its nodes",
	Long: `Fetches every configured collection, expands product variations,
downloads media, links products to categories, tags, related and grouped
products, and stores the resulting nodes.

Failed pages and downloads are reported as warnings and skipped.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&skipValidate, "skip-validate", false, "Do not check credentials before syncing")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Pipeline == nil {
		if services != nil && services.PipelineErr != nil {
			return services.PipelineErr
		}
		return errors.New("pipeline not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !skipValidate && services.Validator != nil {
		if err := services.Validator.Validate(ctx); err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}
	}

	cmd.Println("Synchronising catalog...")

	result, err := runWithProgress(ctx, cmd, services.Pipeline)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Print(newPrinter(cmd.OutOrStdout()).summary(result))
	return nil
}

// runWithProgress runs the pipeline while printing stage changes.
func runWithProgress(ctx context.Context, cmd *cobra.Command, p driving.Pipeline) (*driving.RunResult, error) {
	type outcome struct {
		result *driving.RunResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := p.Run(ctx)
		done <- outcome{result, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	last := domain.StageIdle
	for {
		select {
		case o := <-done:
			return o.result, o.err
		case <-ticker.C:
			status := p.Status()
			if status.Running && status.Stage != last {
				cmd.Printf("  %s (%d records)\n", status.Stage, status.Records)
				last = status.Stage
			}
		}
	}
}
