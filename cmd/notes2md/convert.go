// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes2md/internal/ledger"
	"github.com/pdiddy/notes2md/internal/source/applenotes"
	"github.com/pdiddy/notes2md/internal/source/simplenote"
	"github.com/pdiddy/notes2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an export, detecting its format from the source path",
	Long: `Convert reads the export at --source-path and writes one Markdown file
per note into --dest-dir. A file is read as a Simplenote export (notes.json
or the export zip); a directory is read as an Apple Notes export.

Notes whose title cannot form a filename are printed with the reason and
skipped; the command exits non-zero when any note failed.`,
	RunE: runConvert(autoDetect),
}

var simplenoteCmd = &cobra.Command{
	Use:   "simplenote",
	Short: "Convert a Simplenote JSON or zip export",
	Long: `Simplenote converts the activeNotes and trashedNotes of a Simplenote
export. --source-path must be the notes.json file or the export zip.`,
	RunE: runConvert(simplenote.SourceName),
}

var applenotesCmd = &cobra.Command{
	Use:   "applenotes",
	Short: "Convert an Apple Notes export directory",
	Long: `Applenotes converts every .txt and .md file under --source-path. Files
under a "Recently Deleted" folder are marked deleted.`,
	RunE: runConvert(applenotes.SourceName),
}

func runConvert(format string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := conversionConfig(cmd)
		if err != nil {
			return err
		}
		_, err = runConversion(cmd.Context(), cfg, format, cmd.OutOrStdout(), os.Stderr, logs)
		return err
	}
}

// convertFlags maps viper keys to flag names shared by the convert commands.
var convertFlags = map[string]string{
	"source_path":    "source-path",
	"dest_dir":       "dest-dir",
	"filename_style": "filename-style",
	"on_collision":   "on-collision",
	"extended_meta":  "extended-meta",
	"skip_trashed":   "skip-trashed",
	"dry_run":        "dry-run",
	"ledger":         "ledger",
	"no_ledger":      "no-ledger",
}

// conversionConfig binds the command's flags to viper and resolves them,
// with config file and NOTES2MD_* values filling in unset flags.
func conversionConfig(cmd *cobra.Command) (types.ConversionConfig, error) {
	for key, name := range convertFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return types.ConversionConfig{}, err
		}
	}

	style, err := types.ParseFilenameStyle(viper.GetString("filename_style"))
	if err != nil {
		return types.ConversionConfig{}, err
	}
	policy, err := types.ParseCollisionPolicy(viper.GetString("on_collision"))
	if err != nil {
		return types.ConversionConfig{}, err
	}

	cfg := types.ConversionConfig{
		SourcePath:    viper.GetString("source_path"),
		DestDir:       viper.GetString("dest_dir"),
		FilenameStyle: style,
		OnCollision:   policy,
		ExtendedMeta:  viper.GetBool("extended_meta"),
		SkipTrashed:   viper.GetBool("skip_trashed"),
		DryRun:        viper.GetBool("dry_run"),
		LedgerPath:    viper.GetString("ledger"),
	}
	if cfg.SourcePath == "" {
		return types.ConversionConfig{}, fmt.Errorf("source path required: set --source-path or source_path")
	}
	if cfg.DestDir == "" {
		return types.ConversionConfig{}, fmt.Errorf("destination required: set --dest-dir or dest_dir")
	}
	return resolveLedger(cfg, viper.GetBool("no_ledger")), nil
}

// resolveLedger fills in the default ledger location, or clears it when the
// ledger is disabled or nothing will be written.
func resolveLedger(cfg types.ConversionConfig, disabled bool) types.ConversionConfig {
	switch {
	case disabled || cfg.DryRun:
		cfg.LedgerPath = ""
	case cfg.LedgerPath == "":
		cfg.LedgerPath = ledger.DefaultPath(cfg.DestDir)
	}
	return cfg
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source-path", "s", "", "Simplenote JSON/zip file or Apple Notes directory")
	cmd.Flags().StringP("dest-dir", "d", "", "existing writable directory for the Markdown files")
	cmd.Flags().String("filename-style", "title", "file base names: title, or slug (lowercase ASCII; accents are transliterated, other scripts dropped)")
	cmd.Flags().String("on-collision", "suffix", "when a file exists: suffix, overwrite, or skip")
	cmd.Flags().Bool("extended-meta", false, "add deleted, pinned, and tags to the front matter")
	cmd.Flags().Bool("skip-trashed", false, "leave trashed notes out")
	cmd.Flags().Bool("dry-run", false, "print documents instead of writing them")
	cmd.Flags().String("ledger", "", "ledger database path (default: <dest-dir>/.notes2md/ledger.db)")
	cmd.Flags().Bool("no-ledger", false, "do not read or update the ledger")
}

func init() {
	for _, cmd := range []*cobra.Command{convertCmd, simplenoteCmd, applenotesCmd} {
		addConvertFlags(cmd)
		rootCmd.AddCommand(cmd)
	}
}
