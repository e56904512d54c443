package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zoobzio/record"
)

var addCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Append a record interactively",
	Long: `Prompt for each field of a new record and append it to FILE, creating
the file when it does not exist.

Examples:
  recordctl add water.json
  recordctl add --now water.json   # fill time fields with the current time`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addNow bool

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolVar(&addNow, "now", false, "fill time fields with the current time instead of prompting")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	p, err := processorFor(s, args[0])
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, p, args[0], true)
	if err != nil {
		return err
	}

	var opts *record.ConstructOptions
	if addNow {
		opts = &record.ConstructOptions{TypeValues: map[record.TypeID]record.ValueFunc{
			record.Temporal().ID(): func() (any, error) { return time.Now().UTC().Truncate(time.Second), nil },
		}}
	}
	rec, err := record.Construct(s, newTerminal(os.Stdin, cmd.OutOrStdout()), nil, opts)
	if err != nil {
		return err
	}
	logger.Debug().Stringer("record", rec).Msg("constructed")

	return storeRecords(cmd, p, args[0], append(records, rec))
}
