package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinkoo2/DocuForms/internal/field"
)

// fieldListing is the JSON output schema for the fields command.
type fieldListing struct {
	Key       string     `json:"key"`
	Component string     `json:"component"`
	Kind      field.Kind `json:"kind"`
	Label     string     `json:"label,omitempty"`
	Required  bool       `json:"required,omitempty"`
	Graded    bool       `json:"graded,omitempty"`
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "fields <file>",
		Short:        "List a document's resolved fields as JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, reg, err := loadDocument(args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}
			listings := make([]fieldListing, 0, len(reg.Fields()))
			for _, f := range reg.Fields() {
				listings = append(listings, fieldListing{
					Key:       f.Key,
					Component: f.Component,
					Kind:      f.Kind,
					Label:     f.Label,
					Required:  f.Required,
					Graded:    f.Graded(),
				})
			}
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(listings); err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}
			return nil
		},
	}
}
