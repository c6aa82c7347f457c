// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes2md/pkg/types"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Notes []types.LedgerRecord `json:"notes" yaml:"notes"`
	Runs  []types.RunSummary   `json:"runs" yaml:"runs"`
}

func (s *Store) export(ctx context.Context, f Filter) (Export, error) {
	notes, err := s.List(ctx, f)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	runs, err := s.Runs(ctx, 0)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	if notes == nil {
		notes = []types.LedgerRecord{}
	}
	if runs == nil {
		runs = []types.RunSummary{}
	}
	return Export{Notes: notes, Runs: runs}, nil
}

// ExportYAML writes the ledger contents matching f as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, f Filter) error {
	doc, err := s.export(ctx, f)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the ledger contents matching f as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, f Filter) error {
	doc, err := s.export(ctx, f)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
