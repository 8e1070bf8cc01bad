// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/pdiddy/kogniv/internal/extract"
	"github.com/pdiddy/kogniv/internal/toolexec"
	"github.com/pdiddy/kogniv/internal/util"
)

var importCmd = &cobra.Command{
	Use:   "import <pattern>...",
	Short: "Extract documents into cards, or merge an exported workspace",
	Long: `Import feeds documents through the extraction pipeline and merges the
resulting cards into a workspace. Patterns support ** globs
(e.g. "notes/**/*.md"). Supported formats: pdf, docx, txt, md.

With --interchange, the arguments are exported workspace documents
(JSON or YAML) instead; their cards and categories are merged in. A
document with a missing or malformed card list is rejected wholesale.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	wsID, _ := cmd.Flags().GetString("workspace")
	interchange, _ := cmd.Flags().GetBool("interchange")

	cfg := loadConfig()
	svc, store, err := openWorkspace(cfg, wsID)
	if err != nil {
		return err
	}
	defer store.Close()

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match")
	}

	if interchange {
		return importInterchange(svc, paths)
	}

	pipeline := extract.NewPipeline(
		extract.NewGoldmarkRenderer(),
		extract.NewPandocConverter(cfg.Extraction.PandocBin, toolexec.OSRunner{}),
		extract.PDFTextExtractor{},
		log,
	)

	results := pipeline.ExtractPaths(paths, os.Stdout)
	merged, err := svc.ImportExtraction(results)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	fmt.Printf("\nImported %d cards from %d file(s)", merged, len(paths)-failed)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return nil
}

// importInterchange merges exported workspace documents. Each file is
// parsed by extension: .json as JSON, anything else as YAML.
func importInterchange(svc interchangeImporter, paths []string) error {
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var n int
		if util.Ext(path) == "json" {
			n, err = svc.ImportJSON(data)
		} else {
			n, err = svc.ImportYAML(data)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total += n
	}
	fmt.Printf("Imported %d cards\n", total)
	return nil
}

type interchangeImporter interface {
	ImportJSON(data []byte) (int, error)
	ImportYAML(data []byte) (int, error)
}

// expandPatterns resolves each argument as a doublestar glob against the
// working directory. Literal paths pass through; matches are
// deduplicated and sorted for a stable extraction order.
func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if matches == nil && !seen[pattern] {
			// Not a glob hit; keep the literal path so a missing file is
			// reported per-file by the pipeline.
			seen[pattern] = true
			paths = append(paths, pattern)
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func init() {
	importCmd.Flags().StringP("workspace", "w", "", "workspace id to merge cards into")
	importCmd.Flags().Bool("interchange", false, "treat arguments as exported workspace documents (JSON/YAML)")

	rootCmd.AddCommand(importCmd)
}
