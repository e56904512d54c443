package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zoobzio/record"
	"github.com/zoobzio/record/internal/schemafile"
)

var (
	// Global flags
	schemaFile string
	recordName string
	formatName string
	verbose    bool

	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recordctl",
	Short: "Inspect, convert, and edit typed record files",
	Long: `recordctl works on files holding a list of records whose shape is
declared in a YAML schema file.

Commands:
  recordctl check water.json            # Decode and report problems
  recordctl convert water.json out.yaml # Rewrite in another format
  recordctl add water.json              # Append a record interactively
  recordctl edit water.json 0 glass_count

Set RECORD_QUIET=1 to silence per-field warnings.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(os.Stderr, verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "schema.yaml", "schema file path")
	rootCmd.PersistentFlags().StringVarP(&recordName, "record", "r", "", "record kind (defaults to the schema file's root)")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "", "data format (defaults to the file extension)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadSchema reads the schema file and selects the record kind.
func loadSchema() (*record.Schema, error) {
	f, err := schemafile.Load(schemaFile)
	if err != nil {
		return nil, err
	}
	s, err := f.Record(recordName)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("schema", schemaFile).Str("record", s.Name()).Str("fingerprint", s.Fingerprint()).Msg("schema loaded")
	return s, nil
}

// processorFor returns the processor for a data file, picking the format
// from --format or the file's extension.
func processorFor(s *record.Schema, path string) (*record.Processor, error) {
	name := formatName
	if name == "" {
		name = path
	}
	f, err := formatFor(name)
	if err != nil {
		return nil, err
	}
	return record.Use(s, f)
}
