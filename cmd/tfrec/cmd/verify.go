package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/internal/throttle"
)

const (
	statusOK      = "ok"
	statusCorrupt = "corrupt"
	statusFailed  = "error"
)

type verifyResult struct {
	Location string `json:"location"`
	Status   string `json:"status"`
	Records  int64  `json:"records"`
	// Bytes is the length of the valid prefix of the uncompressed stream.
	Bytes int64  `json:"bytes"`
	Error string `json:"error,omitempty"`
}

func newVerifyCommand(g *globalFlags) *cobra.Command {
	var (
		workers   int64
		rateLimit int64
	)

	cmd := &cobra.Command{
		Use:   "verify <location>...",
		Short: "check every record of one or more streams",
		Long: `Read every record of every location and check its checksums and
encoding. Locations are verified in parallel. The command fails if any
location is damaged or unreadable.

Example:
  tfrec verify data/*.tfrecord --workers 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := g.verifyAll(cmd, args, workers, rateLimit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			rows := make([]table.Row, 0, len(results))
			for _, res := range results {
				if res.Status != statusOK {
					failed++
				}
				if g.jsonOutput() {
					if err := writeJSON(out, res); err != nil {
						return err
					}
					continue
				}
				rows = append(rows, table.Row{res.Location, res.Status, res.Records, res.Bytes, res.Error})
			}
			if !g.jsonOutput() {
				renderTable(out, table.Row{"Location", "Status", "Records", "Bytes", "Error"}, rows, 3, 4)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d streams failed verification", failed, len(results))
			}
			_, _ = okColor.Fprintf(out, "%d streams ok\n", len(results))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&workers, "workers", "w", 4, "streams verified in parallel")
	cmd.Flags().Int64Var(&rateLimit, "rate-limit", 0, "read at most this many bytes per second per stream (0 = unlimited)")
	return cmd
}

// verifyAll verifies every location and returns the results in input order.
func (g *globalFlags) verifyAll(cmd *cobra.Command, locs []string, workers, rateLimit int64) ([]verifyResult, error) {
	results := make([]verifyResult, len(locs))
	ctrl := throttle.New(throttle.Config{MaxWorkers: workers})

	eg, ctx := errgroup.WithContext(cmd.Context())
	for i, raw := range locs {
		if err := ctrl.AcquireWorker(ctx); err != nil {
			break
		}
		eg.Go(func() error {
			defer ctrl.ReleaseWorker()
			results[i] = g.verify(ctx, cmd, raw, rateLimit)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, cmd.Context().Err()
}

func (g *globalFlags) verify(ctx context.Context, cmd *cobra.Command, raw string, rateLimit int64) verifyResult {
	res := verifyResult{Location: raw, Status: statusOK}

	r, err := g.openFeatures(ctx, cmd, raw, tfrec.WithRateLimit(rateLimit))
	if err != nil {
		res.Status, res.Error = statusFailed, err.Error()
		return res
	}
	defer r.Close()

	for {
		_, err := r.NextFeatures()
		if err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
			break
		}
		if err != nil {
			res.Status, res.Error = statusFailed, err.Error()
			if tfrec.IsCorruption(err) {
				res.Status = statusCorrupt
			}
			break
		}
	}

	res.Records, res.Bytes = r.Count(), r.Offset()
	return res
}
