package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func newColumnCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "column <file> <column>",
		Short: "List one column across rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			values, err := a.querier.GetColumn(args[0], args[1], limit)
			if err != nil {
				return err
			}
			return a.printer.Column(args[0], args[1], values)
		},
	}
	c.Flags().IntP("limit", "n", 0, "Stop after this many rows (0 lists all)")
	return c
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Describe the header of an .mdb file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			schema, err := a.querier.DescribeSchema(args[0])
			if err != nil {
				return err
			}

			var size int64
			if info, err := os.Stat(args[0]); err == nil {
				size = info.Size()
			}
			return a.printer.Schema(args[0], size, schema)
		},
	}
}
