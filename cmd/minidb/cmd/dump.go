package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/ssargent/minidb/pkg/store"
)

func newDumpCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a hex view of a file",
		Long: `Print every byte of a file as hex pairs followed by its printable ASCII,
24 bytes per line by default.

Example:
  minidb dump contacts.mdb --width 16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			width, _ := cmd.Flags().GetInt("width")
			n, err := store.DumpFile(args[0], cmd.OutOrStdout(), width)
			if err != nil {
				return err
			}

			a.logger.WithField("file", args[0]).Debugf("dumped %s", humanize.Bytes(uint64(n)))
			return nil
		},
	}
	c.Flags().IntP("width", "w", store.DefaultDumpWidth, "Bytes per line")
	return c
}
