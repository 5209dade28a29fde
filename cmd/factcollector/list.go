package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/console"
	"github.com/jeanpaul/factcollector/internal/export"
)

func newListCmd(a *app) *cobra.Command {
	var (
		plain bool
		style string
		width int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the archived facts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facts, err := a.store.Load()
			if err != nil {
				return err
			}
			if plain {
				for _, f := range facts {
					fmt.Fprintln(a.stdout, f.Text)
				}
				return nil
			}
			out, err := console.RenderMarkdown(export.Markdown(facts), style, width)
			if err != nil {
				return fmt.Errorf("render archive: %w", err)
			}
			fmt.Fprint(a.stdout, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "one fact per line, no formatting")
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style (auto, dark, light, notty)")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}
