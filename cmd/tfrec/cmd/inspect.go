package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/tfrec/record"
)

type recordInfo struct {
	Index  int64    `json:"index"`
	Offset int64    `json:"offset"`
	Size   int64    `json:"size"`
	Fields []string `json:"fields"`
}

func newInspectCommand(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <location>",
		Short: "list the records of a stream",
		Long: `List index, offset, payload size and fields of every record.

Offsets count bytes of the uncompressed stream.

Example:
  tfrec inspect train.tfrecord.gz --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.openFeatures(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			var (
				infos   []recordInfo
				readErr error
			)
			for limit <= 0 || len(infos) < limit {
				offset := r.Offset()
				set, err := r.NextFeatures()
				if err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
					break
				}
				if err != nil {
					readErr = fmt.Errorf("record %d at offset %d: %w", r.Count(), offset, err)
					break
				}
				infos = append(infos, recordInfo{
					Index:  r.Count() - 1,
					Offset: offset,
					Size:   r.Offset() - offset - record.Overhead,
					Fields: describeFields(set),
				})
			}

			out := cmd.OutOrStdout()
			if g.jsonOutput() {
				for _, info := range infos {
					if err := writeJSON(out, info); err != nil {
						return err
					}
				}
				return readErr
			}

			rows := make([]table.Row, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, table.Row{info.Index, info.Offset, info.Size, strings.Join(info.Fields, " ")})
			}
			renderTable(out, table.Row{"Record", "Offset", "Size", "Fields"}, rows, 1, 2, 3)
			return readErr
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many records (0 = all)")
	return cmd
}
