// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kogniv/internal/render"
	"github.com/pdiddy/kogniv/internal/toolexec"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a workspace to JSON, YAML, or PDF",
	Long: `Export writes the full workspace (name, categories, cards) to a file.
JSON and YAML exports round-trip through import on another machine; PDF
renders the cards as a printable deck via an external HTML-to-PDF
renderer.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	wsID, _ := cmd.Flags().GetString("workspace")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	cfg := loadConfig()
	svc, store, err := openWorkspace(cfg, wsID)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := svc.Export()
	if err != nil {
		return err
	}

	var payload []byte
	switch format {
	case "json", "":
		payload, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		payload = append(payload, '\n')
	case "yaml":
		payload, err = yaml.Marshal(doc)
		if err != nil {
			return err
		}
	case "pdf":
		html, err := render.BuildDeckHTML(doc.WorkspaceName, doc.Cards)
		if err != nil {
			return err
		}
		renderer := render.NewExecRenderer(cfg.Render.PDFBin, toolexec.OSRunner{})
		payload, err = renderer.RenderPDF(html)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or pdf", format)
	}

	if out == "" || out == "-" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	return nil
}

func init() {
	exportCmd.Flags().StringP("workspace", "w", "", "workspace id")
	exportCmd.Flags().String("format", "json", "export format: json, yaml, or pdf")
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
