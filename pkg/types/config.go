// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StorageConfig holds settings for the local store.
type StorageConfig struct {
	// Path is the SQLite database file backing all persisted partitions
	// (e.g. "~/.local/share/kogniv/kogniv.db").
	Path string `json:"path" yaml:"path"`
}

// ExtractionConfig holds settings for the document extraction pipeline.
type ExtractionConfig struct {
	// PandocBin is the external converter binary used for word-processor
	// documents (default "pandoc").
	PandocBin string `json:"pandoc_bin" yaml:"pandoc_bin"`
}

// RenderConfig holds settings for PDF export rendering.
type RenderConfig struct {
	// PDFBin is the external HTML-to-PDF renderer binary
	// (default "weasyprint").
	PDFBin string `json:"pdf_bin" yaml:"pdf_bin"`
}

// Config groups all stage configurations.
type Config struct {
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Render     RenderConfig     `json:"render" yaml:"render"`

	// DefaultTheme is the preset applied to new workspaces.
	DefaultTheme string `json:"default_theme" yaml:"default_theme"`
}
