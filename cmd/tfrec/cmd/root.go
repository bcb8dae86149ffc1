// Package cmd implements the tfrec command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tfrec"
)

const (
	cliName        = "tfrec"
	cliDescription = "inspect, verify and repair record streams"
)

// globalFlags are the persistent flags shared by every sub-command.
type globalFlags struct {
	compression   string
	logLevel      string
	logFormat     string
	output        string
	maxRecordSize int64
}

// NewRootCommand returns the tfrec command with all sub-commands attached.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `tfrec works on streams of length-prefixed, checksummed records.

Locations are local paths, s3://bucket/key or minio://endpoint/bucket/key.
MinIO credentials are read from MINIO_ACCESS_KEY and MINIO_SECRET_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.compression, "compression", "c", "auto",
		"stream compression: none, zlib, gzip or auto (by file extension)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format: text or json")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "table", "output format: table or json")
	root.PersistentFlags().Int64Var(&g.maxRecordSize, "max-record-size", 0, "reject records above this payload size (0 = no limit)")

	root.AddCommand(
		newInspectCommand(g),
		newVerifyCommand(g),
		newRecoverCommand(g),
		newCatCommand(g),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// logger builds the logger selected by --log-level and --log-format.
func (g *globalFlags) logger(w io.Writer) (*tfrec.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", g.logLevel)
	}

	switch strings.ToLower(g.logFormat) {
	case "text":
		return tfrec.NewTextLoggerTo(w, level), nil
	case "json":
		return tfrec.NewJSONLoggerTo(w, level), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", g.logFormat)
	}
}

// readerOptions returns the options for reading loc.
func (g *globalFlags) readerOptions(cmd *cobra.Command, loc *location) ([]tfrec.Option, error) {
	logger, err := g.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return []tfrec.Option{
		tfrec.WithCompressionName(resolveCompression(g.compression, loc.key)),
		tfrec.WithLogger(logger),
		tfrec.WithMaxRecordSize(g.maxRecordSize),
	}, nil
}

func (g *globalFlags) jsonOutput() bool {
	return strings.EqualFold(g.output, "json")
}

// resolveCompression maps "auto" to the compression implied by the name's
// extension and leaves every other value alone.
func resolveCompression(flag, name string) string {
	if !strings.EqualFold(flag, "auto") {
		return flag
	}
	switch {
	case strings.HasSuffix(name, ".gz"), strings.HasSuffix(name, ".gzip"):
		return "gzip"
	case strings.HasSuffix(name, ".zz"), strings.HasSuffix(name, ".zlib"):
		return "zlib"
	default:
		return "none"
	}
}
