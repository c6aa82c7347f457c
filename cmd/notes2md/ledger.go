// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes2md/internal/ledger"
	"github.com/pdiddy/notes2md/pkg/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the conversion ledger (list, export)",
	Long: `Ledger reads the SQLite database a conversion keeps under
<dest-dir>/.notes2md/ledger.db. Each note id maps to its last outcome:
the file it was written to, or why it was skipped or failed.`,
}

// --- list subcommand ---

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded notes",
	RunE:  runLedgerList,
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	store, filter, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLedgerList(cmd.OutOrStdout(), recs, jsonOutput)
}

func formatLedgerList(w io.Writer, recs []types.LedgerRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No notes recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-24s  %-40s  %s\n", "Status", "Note", "File", "Modified")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range recs {
		file := r.Filename
		if r.Status == types.NoteFailed {
			file = r.Reason
		}
		fmt.Fprintf(w, "%-8s  %-24s  %-40s  %s\n", r.Status, clip(r.NoteID, 24), clip(file, 40), r.Modified)
	}
	fmt.Fprintf(w, "\n%d notes\n", len(recs))
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to YAML or JSON",
	Long: `Export writes every recorded note (or those matching --status and
--source) plus the run history as YAML or JSON, to stdout or --out.`,
	RunE: runLedgerExport,
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, filter, err := openLedger(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = store.ExportYAML(cmd.Context(), w, filter)
	case "json":
		err = store.ExportJSON(cmd.Context(), w, filter)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", outPath)
	}
	return nil
}

// --- shared helpers ---

// ledgerPath resolves --ledger, falling back to the default location under
// --dest-dir.
func ledgerPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("ledger")
	if path != "" {
		return path, nil
	}
	dest, _ := cmd.Flags().GetString("dest-dir")
	if dest == "" {
		return "", fmt.Errorf("ledger location required: set --ledger or --dest-dir")
	}
	return ledger.DefaultPath(dest), nil
}

func openLedger(cmd *cobra.Command) (*ledger.Store, ledger.Filter, error) {
	path, err := ledgerPath(cmd)
	if err != nil {
		return nil, ledger.Filter{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, ledger.Filter{}, fmt.Errorf("ledger %s: %w", path, err)
	}

	status, _ := cmd.Flags().GetString("status")
	src, _ := cmd.Flags().GetString("source")
	filter := ledger.Filter{Status: types.NoteStatus(status), Source: src}
	switch filter.Status {
	case "", types.NoteWritten, types.NoteSkipped, types.NoteFailed:
	default:
		return nil, ledger.Filter{}, fmt.Errorf("unsupported status %q: use written, skipped, or failed", status)
	}

	store, err := ledger.Open(path)
	if err != nil {
		return nil, ledger.Filter{}, err
	}
	return store, filter, nil
}

func init() {
	for _, cmd := range []*cobra.Command{ledgerListCmd, ledgerExportCmd} {
		cmd.Flags().StringP("dest-dir", "d", "", "destination directory holding .notes2md/ledger.db")
		cmd.Flags().String("ledger", "", "ledger database path")
		cmd.Flags().String("status", "", "filter by status: written, skipped, or failed")
		cmd.Flags().String("source", "", "filter by source: simplenote or applenotes")
	}
	ledgerListCmd.Flags().Bool("json", false, "output as JSON")
	ledgerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	ledgerExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	rootCmd.AddCommand(ledgerCmd)
}
