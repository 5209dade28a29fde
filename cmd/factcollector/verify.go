package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factcollector/internal/archive"
	"github.com/jeanpaul/factcollector/internal/schema"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the archive file against its schema and for duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.store.Path()
			data, err := os.ReadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				a.printer.Warn("⚠️  No archive at %s yet.", path)
				return nil
			}
			if err != nil {
				return err
			}

			if err := schema.NewValidator().Validate(schema.Archive, data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			// Parse strictly; the store's corrupt policy must not hide problems here.
			facts, err := archive.NewFile(path, archive.WithCorruptPolicy(archive.PolicyFail)).Load()
			if err != nil {
				return err
			}
			if dups := archive.Duplicates(facts); len(dups) > 0 {
				for _, d := range dups {
					a.printer.Error("❌ duplicate: %q", d)
				}
				return fmt.Errorf("%s: %d duplicate facts", path, len(dups))
			}

			a.printer.Success("✅ %s is valid: %d unique facts.", path, len(facts))
			return nil
		},
	}
}
