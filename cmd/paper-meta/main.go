// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-meta CLI. It extracts
// bibliographic metadata from a library of PDF papers, ranks papers by
// keyword relevance, and maintains a SQLite catalog of extracted records.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-meta CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-meta",
	Short: "Extract and search bibliographic metadata in PDF papers",
	Long: `paper-meta reads the text layer of scholarly PDFs and recovers the title,
author, publication year, abstract, and keywords with explicit pattern and
position rules. English and Indonesian papers are supported out of the box;
marker vocabularies are configurable.

Extracted records can be ranked against a keyword, indexed into a SQLite
catalog, and exported as YAML, JSON, or an Excel workbook.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		initLogging(cmd)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-meta.yaml or ~/.config/paper-meta/paper-meta.yaml)")
	rootCmd.PersistentFlags().String("library", "", "directory holding the PDF library (default \"papers\")")
	rootCmd.PersistentFlags().String("catalog-path", "", "SQLite catalog file (default \"catalog/records.db\")")
	rootCmd.PersistentFlags().String("backend", "", "text backend: native or container")
	rootCmd.PersistentFlags().Int("workers", 0, "extraction workers (0 = number of CPUs)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	_ = viper.BindPFlag("library.dir", rootCmd.PersistentFlags().Lookup("library"))
	_ = viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog-path"))
	_ = viper.BindPFlag("text.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-meta")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-meta"))
		}
	}

	viper.SetEnvPrefix("PAPER_META")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogging installs a text slog handler on stderr. --verbose lowers the
// level to debug.
func initLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
