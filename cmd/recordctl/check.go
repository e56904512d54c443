package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Decode a record file and report problems",
	Long: `Decode every record in FILE and report field warnings and skipped
records. Exits non-zero when any record could not be decoded.

Examples:
  recordctl check water.json
  recordctl check --schema day.yaml --record Water water.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	p, err := processorFor(s, args[0])
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	res, err := p.Load(cmd.Context(), data)
	if err != nil {
		return err
	}
	logResult(logger, res)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d warnings, %d failures\n",
		args[0], len(res.Records), len(res.Warnings), len(res.Failures))
	if len(res.Failures) > 0 {
		return fmt.Errorf("%d of %d records failed", len(res.Failures), len(res.Records)+len(res.Failures))
	}
	return nil
}
