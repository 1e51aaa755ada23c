package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "row <file> <index>",
		Short: "Print the row at a position",
		Long: `Print the row at a zero-based position in an .mdb file. Rows before it
are skipped without being decoded.

Example:
  minidb row contacts.mdb 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: must be an integer", args[1])
			}

			row, err := a.querier.GetRowByIndex(args[0], index)
			if err != nil {
				return err
			}
			return a.printer.Row(args[0], row)
		},
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <file> <column> <value>",
		Short: "Print the first row whose column matches a value",
		Long: `Print the first row whose column, rendered as text, equals value exactly.
Integers render in decimal and floats with six decimal places, so a Float64
column holding 3.14 matches "3.140000" but not "3.14".

Examples:
  minidb find contacts.mdb email bob@chicago.com
  minidb find sensors.mdb reading 3.140000 --format json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			row, err := a.querier.GetRowByValue(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.printer.Row(args[0], row)
		},
	}
}
