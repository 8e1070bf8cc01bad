// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across kogniv's stages:
// cards, workspaces, extraction results, and configuration.
package types

import "time"

const (
	// TitleMaxLen is the maximum length of a card title.
	TitleMaxLen = 200

	// HintMaxLen is the maximum length of a card's plain-text preview.
	HintMaxLen = 150
)

// Card is a single titled unit of content within a workspace.
type Card struct {
	// ID is an opaque identifier, unique within its workspace.
	ID string `json:"id" yaml:"id"`

	// Title is the card heading, at most TitleMaxLen characters.
	Title string `json:"title" yaml:"title"`

	// Hint is a plain-text preview derived from Content: the leading
	// HintMaxLen characters with markup tags stripped.
	Hint string `json:"hint" yaml:"hint"`

	// Content is the card body. May carry HTML markup.
	Content string `json:"content" yaml:"content"`

	// Category is the label under which the card is grouped.
	Category string `json:"category" yaml:"category"`

	// Created is the card creation timestamp.
	Created time.Time `json:"created" yaml:"created"`
}

// ExtractionResult holds the cards produced from a single uploaded file.
// It is transient: produced by the extraction pipeline, consumed by the
// import step, never persisted.
type ExtractionResult struct {
	// Cards are the drafts segmented out of the file, in document order.
	Cards []Card `json:"cards" yaml:"cards"`

	// Category is the source filename with its extension stripped.
	Category string `json:"category" yaml:"category"`

	// Error records a per-file failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether extraction of the file failed.
func (r ExtractionResult) Failed() bool {
	return r.Error != ""
}
