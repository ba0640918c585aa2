package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "validate <file>",
		Short:        "Check a document for duplicate field keys",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, reg, err := loadDocument(args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}
			if dups := reg.DuplicateKeys(); len(dups) > 0 {
				for _, key := range dups {
					fmt.Fprintf(cmd.ErrOrStderr(), "duplicate field key: %s\n", key)
				}
				return fmt.Errorf("document has %d duplicate field key(s)", len(dups))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d field(s), keys unique\n", len(reg.Fields()))
			return nil
		},
	}
}
