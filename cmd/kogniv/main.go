// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kogniv CLI, a personal
// knowledge-base workbench. Workspaces hold categorized cards; cards
// come from hand editing or from document extraction (pdf, docx, txt,
// md). Each surface is a subcommand: workspace, cards, import, export,
// theme, migrate.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kogniv/internal/state"
	"github.com/pdiddy/kogniv/internal/storage"
	"github.com/pdiddy/kogniv/internal/workspace"
	"github.com/pdiddy/kogniv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process logger, configured in initConfig.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger().Level(zerolog.WarnLevel)

// rootCmd is the base command for the kogniv CLI.
var rootCmd = &cobra.Command{
	Use:   "kogniv",
	Short: "Personal knowledge base built from categorized cards",
	Long: `kogniv manages workspaces of knowledge cards. Cards carry a title, a
rich-text body, and a category; they are created by hand or extracted
from documents (pdf, docx, txt, md) by splitting on headings.

Workspaces persist in a local SQLite store. Use export/import to move a
workspace between machines as JSON or YAML, or render it to PDF.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kogniv.yaml or ~/.config/kogniv/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kogniv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kogniv"))
		}
	}

	viper.SetEnvPrefix("KOGNIV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		log = log.Level(zerolog.DebugLevel)
	}
}

// loadConfig materializes the typed config from viper with defaults
// filled in.
func loadConfig() types.Config {
	cfg := types.Config{
		Storage:    types.StorageConfig{Path: viper.GetString("storage.path")},
		Extraction: types.ExtractionConfig{PandocBin: viper.GetString("extraction.pandoc_bin")},
		Render:     types.RenderConfig{PDFBin: viper.GetString("render.pdf_bin")},

		DefaultTheme: viper.GetString("default_theme"),
	}
	if cfg.Storage.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Storage.Path = filepath.Join(home, ".local", "share", "kogniv", "kogniv.db")
	}
	return cfg
}

// openService opens the store and builds a session service. The caller
// owns the adapter and must Close it.
func openService(cfg types.Config) (*workspace.Service, *storage.Adapter, error) {
	store, err := storage.Open(cfg.Storage, log)
	if err != nil {
		return nil, nil, err
	}

	st := state.NewStore(state.NewSnapshot(), log)
	svc := workspace.NewService(store, st, log)
	return svc, store, nil
}

// openWorkspace is openService plus loading the given workspace into
// the session. Most subcommands need exactly this.
func openWorkspace(cfg types.Config, id string) (*workspace.Service, *storage.Adapter, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("workspace id required: pass --workspace")
	}

	svc, store, err := openService(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := svc.Load(id); err != nil {
		store.Close()
		return nil, nil, err
	}
	return svc, store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
