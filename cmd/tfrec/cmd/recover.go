package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tfrec"
)

type recoverResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Records     int64  `json:"records"`
	// Offset is where the source stopped being readable.
	Offset int64  `json:"offset"`
	Intact bool   `json:"intact"`
	Error  string `json:"error,omitempty"`
}

func newRecoverCommand(g *globalFlags) *cobra.Command {
	var (
		dstCompression string
		rateLimit      int64
	)

	cmd := &cobra.Command{
		Use:   "recover <src> <dst>",
		Short: "copy the readable prefix of a damaged stream",
		Long: `Copy records from src to dst until the first record that cannot be
read. The destination only becomes visible once it is complete.

Example:
  tfrec recover s3://bucket/broken.tfrecord.gz fixed.tfrecord --dst-compression none`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := g.openFeatures(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			dst, err := parseLocation(args[1])
			if err != nil {
				return err
			}
			store, err := dst.store(ctx)
			if err != nil {
				return err
			}
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			w, err := tfrec.CreateBlob(ctx, store, dst.key, tfrec.PackFeatures,
				tfrec.WithCompressionName(resolveCompression(dstCompression, dst.key)),
				tfrec.WithRateLimit(rateLimit),
				tfrec.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			res := recoverResult{Source: args[0], Destination: args[1], Intact: true}
			for {
				set, err := r.NextFeatures()
				if err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
					break
				}
				if err != nil {
					res.Intact, res.Error = false, err.Error()
					break
				}
				if err := w.WriteFeatures(set); err != nil {
					return errors.Join(err, w.Close())
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			res.Records, res.Offset = w.Count(), r.Offset()

			out := cmd.OutOrStdout()
			if g.jsonOutput() {
				return writeJSON(out, res)
			}
			if res.Intact {
				_, _ = okColor.Fprintf(out, "copied %d records, source intact\n", res.Records)
				return nil
			}
			_, _ = warnColor.Fprintf(out, "kept %d records, dropped everything from offset %d: %s\n",
				res.Records, res.Offset, res.Error)
			return nil
		},
	}

	cmd.Flags().StringVar(&dstCompression, "dst-compression", "auto",
		"destination compression: none, zlib, gzip or auto (by file extension)")
	cmd.Flags().Int64Var(&rateLimit, "rate-limit", 0, "write at most this many bytes per second (0 = unlimited)")
	return cmd
}
