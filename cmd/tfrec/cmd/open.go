package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tfrec"
	"github.com/hupe1980/tfrec/feature"
)

// openFeatures opens raw for reading raw feature sets.
func (g *globalFlags) openFeatures(ctx context.Context, cmd *cobra.Command, raw string, extra ...tfrec.Option) (*tfrec.Reader[*feature.Set], error) {
	loc, err := parseLocation(raw)
	if err != nil {
		return nil, err
	}

	opts, err := g.readerOptions(cmd, loc)
	if err != nil {
		return nil, err
	}

	store, err := loc.store(ctx)
	if err != nil {
		return nil, err
	}

	return tfrec.OpenBlob(ctx, store, loc.key, tfrec.UnpackFeatures, append(opts, extra...)...)
}

// describeFields renders the field names and kinds of s, e.g. "id:int64[1]".
func describeFields(s *feature.Set) []string {
	out := make([]string, 0, s.Len())
	for name, f := range s.All() {
		out = append(out, fmt.Sprintf("%s:%s[%d]", name, f.Kind(), f.Len()))
	}
	return out
}
