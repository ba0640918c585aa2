package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinkoo2/DocuForms/internal/form"
	"github.com/jinkoo2/DocuForms/internal/render"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "render <file>",
		Short:        "Render a document to HTML on stdout",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tokens, reg, err := loadDocument(args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}
			html, err := render.Document(tokens, reg, form.NewSession(reg))
			if err != nil {
				return fmt.Errorf("rendering: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), html)
			return nil
		},
	}
}
