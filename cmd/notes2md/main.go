// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notes2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes2md/internal/logging"
	"github.com/pdiddy/notes2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logs is built from the log.* settings before any command runs.
var logs *logging.Provider

// rootCmd is the base command for the notes2md CLI.
var rootCmd = &cobra.Command{
	Use:   "notes2md",
	Short: "Convert Simplenote and Apple Notes exports to Markdown",
	Long: `notes2md converts notes exported from Simplenote (a JSON file or the
export zip) or Apple Notes (a directory of text files) into one Markdown
file per note, with title, created and modified dates in YAML front matter.

The output works with Notable and other Markdown editors. A ledger under
the destination directory remembers what was written so repeated runs only
rewrite notes that changed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		p, err := logging.New(types.LoggingConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logs = p
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notes2md.yaml or ~/.config/notes2md/notes2md.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console, json, or pretty")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notes2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notes2md"))
		}
	}

	viper.SetEnvPrefix("NOTES2MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
