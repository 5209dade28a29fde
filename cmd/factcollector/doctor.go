package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/console"
	"github.com/jeanpaul/factcollector/internal/health"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the endpoint and the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Banner("  Fact Collector Health Check")
			a.printer.Plain("")

			status := health.Check(cmd.Context(), a.client, a.cfg.Fetch.Endpoint, a.cfg.Fetch.Timeout)
			label := console.LabelStyle.Render("endpoint")
			if status.Reachable {
				a.printer.Plain(fmt.Sprintf("  ● %s %s %s %s", label,
					status.Endpoint,
					console.SuccessStyle.Render("✓ OK"),
					console.HelpStyle.Render(status.Latency.Round(time.Millisecond).String())))
			} else {
				a.printer.Plain(fmt.Sprintf("  ● %s %s %s", label,
					status.Endpoint,
					console.ErrorStyle.Render("✗ "+status.Error)))
			}

			label = console.LabelStyle.Render("archive ")
			facts, err := a.store.Load()
			if err != nil {
				a.printer.Plain(fmt.Sprintf("  ● %s %s %s", label, a.store.Path(), console.ErrorStyle.Render("✗ "+err.Error())))
			} else {
				a.printer.Plain(fmt.Sprintf("  ● %s %s %s", label, a.store.Path(),
					console.SuccessStyle.Render(fmt.Sprintf("✓ %d facts", len(facts)))))
			}
			a.printer.Plain("")

			if !status.Reachable {
				return fmt.Errorf("endpoint %s is not reachable", status.Endpoint)
			}
			return err
		},
	}
}
