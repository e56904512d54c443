package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/record"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Rewrite a record file in another format",
	Long: `Load every record from IN and store them to OUT. The output format
is taken from --to or the extension of OUT.

Examples:
  recordctl convert water.json water.yaml
  recordctl convert --to msgpack water.json water.bin`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var convertTo string

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertTo, "to", "", "output format (defaults to the extension of OUT)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	in, err := processorFor(s, args[0])
	if err != nil {
		return err
	}
	target := convertTo
	if target == "" {
		target = args[1]
	}
	f, err := formatFor(target)
	if err != nil {
		return err
	}
	out, err := record.Use(s, f)
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, in, args[0], false)
	if err != nil {
		return err
	}
	return storeRecords(cmd, out, args[1], records)
}

// loadRecords loads a data file. A missing file is an empty sequence when
// allowMissing is set.
func loadRecords(cmd *cobra.Command, p *record.Processor, path string, allowMissing bool) ([]*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && os.IsNotExist(err) {
			logger.Debug().Str("file", path).Msg("file does not exist, starting empty")
			return nil, nil
		}
		return nil, err
	}
	res, err := p.Load(cmd.Context(), data)
	if err != nil {
		return nil, err
	}
	logResult(logger, res)
	logger.Debug().Str("file", path).Int("records", len(res.Records)).Msg("loaded")
	return res.Records, nil
}

func storeRecords(cmd *cobra.Command, p *record.Processor, path string, records []*record.Record) error {
	data, res, err := p.Store(cmd.Context(), records)
	logResult(logger, res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info().Str("file", path).Int("records", len(res.Records)).Msg("stored")
	return nil
}
