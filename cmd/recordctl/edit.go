package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zoobzio/record"
)

var editCmd = &cobra.Command{
	Use:   "edit FILE INDEX FIELD",
	Short: "Re-enter one field of a stored record",
	Long: `Prompt for a new value of FIELD in the record at INDEX (zero-based)
and write FILE back. The current value is offered as the default.

Examples:
  recordctl edit water.json 0 glass_count`,
	Args: cobra.ExactArgs(3),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	p, err := processorFor(s, args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[1], err)
	}

	records, err := loadRecords(cmd, p, args[0], false)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("index %d out of range (file holds %d records)", index, len(records))
	}

	rec, err := record.Edit(records[index], args[2], newTerminal(os.Stdin, cmd.OutOrStdout()), nil)
	if err != nil {
		return err
	}
	records[index] = rec
	return storeRecords(cmd, p, args[0], records)
}
