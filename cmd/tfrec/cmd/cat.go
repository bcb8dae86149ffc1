package cmd

import (
	"fmt"
	"io"
	"math"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/tfrec/feature"
)

func newCatCommand(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "cat <location>",
		Short: "print records as JSON lines",
		Long: `Print one JSON object per record, fields in stored order. Byte strings
are base64 encoded. Non-finite floats are printed as strings.

Example:
  tfrec cat minio://localhost:9000/datasets/eval.tfrecord | head`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.openFeatures(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			out := cmd.OutOrStdout()
			var line []byte
			for n := 0; limit <= 0 || n < limit; n++ {
				set, err := r.NextFeatures()
				if err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
					return nil
				}
				if err != nil {
					return fmt.Errorf("record %d: %w", r.Count(), err)
				}

				if line, err = appendJSONLine(line[:0], set); err != nil {
					return fmt.Errorf("record %d: %w", r.Count()-1, err)
				}
				if _, err := out.Write(line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many records (0 = all)")
	return cmd
}

// appendJSONLine renders s as a JSON object that keeps the field order.
func appendJSONLine(dst []byte, s *feature.Set) ([]byte, error) {
	dst = append(dst, '{')
	first := true
	for name, f := range s.All() {
		if !first {
			dst = append(dst, ',')
		}
		first = false

		key, err := gojson.Marshal(name)
		if err != nil {
			return dst, err
		}
		value, err := gojson.Marshal(jsonValue(f))
		if err != nil {
			return dst, err
		}
		dst = append(dst, key...)
		dst = append(dst, ':')
		dst = append(dst, value...)
	}
	return append(dst, '}', '\n'), nil
}

func jsonValue(f feature.Feature) any {
	switch f.Kind() {
	case feature.KindFloat:
		values, _ := f.Floats()
		out := make([]any, len(values))
		for i, v := range values {
			switch {
			case math.IsNaN(float64(v)):
				out[i] = "NaN"
			case math.IsInf(float64(v), 1):
				out[i] = "+Inf"
			case math.IsInf(float64(v), -1):
				out[i] = "-Inf"
			default:
				out[i] = v
			}
		}
		return out
	case feature.KindBytes:
		values, _ := f.Bytes()
		if values == nil {
			return [][]byte{}
		}
		return values
	default:
		values, _ := f.Int64s()
		if values == nil {
			return []int64{}
		}
		return values
	}
}
