package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/collector"
)

func newAddCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Store a fact by hand",
		Long: `Store a fact by hand, skipping the fetch. All arguments are joined with
spaces. Duplicates are reported and left out, exactly as in collect.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := collector.New(nil, a.store, collector.Options{
				Printer: a.printer,
				Logger:  a.logger.Named("collector"),
			})
			res := c.AddManual(strings.Join(args, " "), source)
			return res.Err
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "where the fact came from")
	return cmd
}
