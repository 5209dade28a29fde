package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the archive as xlsx, markdown or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facts, err := a.store.Load()
			if err != nil {
				return err
			}
			if out == "" {
				out = "facts." + format
			}
			if err := export.Write(format, out, facts); err != nil {
				return err
			}
			a.printer.Success("✅ Exported %d facts to %s", len(facts), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", fmt.Sprintf("output format (%s)", strings.Join(export.Formats, ", ")))
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default facts.<format>)")
	return cmd
}
