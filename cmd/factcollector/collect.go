package main

import (
	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/collector"
)

func newCollectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Fetch one fact and archive it if it is new",
		Long: `Fetch one fact and archive it if it is new.

A failed cycle is reported on the console and in the log but the command
still exits 0; the archive is only written when a new fact arrives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collector()
			if err != nil {
				return err
			}
			res := c.Collect(cmd.Context())
			switch res.Outcome {
			case collector.OutcomeAdded, collector.OutcomeDuplicate:
				a.printer.Plain("")
				a.printer.Banner("--- Your Random Fact ---")
				a.printer.Fact(res.Text)
			}
			return nil
		},
	}
}
