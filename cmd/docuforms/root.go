package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jinkoo2/DocuForms/internal/field"
	"github.com/jinkoo2/DocuForms/internal/markup"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docuforms",
		Short:         "docuforms - tools for hybrid form documents",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newRenderCmd())
	return root
}

// loadDocument reads a document file and resolves its fields.
func loadDocument(path string) (markup.Meta, []markup.Token, *field.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return markup.Meta{}, nil, nil, err
	}
	meta, body, err := markup.SplitFrontMatter(string(data))
	if err != nil {
		return markup.Meta{}, nil, nil, err
	}
	tokens := markup.Tokenize(body)
	return meta, tokens, field.Resolve(tokens), nil
}
