// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package util holds small shared helpers: id generation, snippet and
// markup-stripping text utilities, and relative date formatting.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque identifier for cards and workspaces.
func NewID() string {
	return uuid.NewString()
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes all markup tags from s.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Snippet derives a plain-text preview from rich content: the leading n
// characters with markup tags stripped. The slice happens before the strip,
// so the result may be shorter than n but never longer.
func Snippet(content string, n int) string {
	return StripTags(Truncate(content, n))
}

// RelativeTime formats t relative to now for list views: "Just now",
// "5m ago", "3h ago", "2d ago", or the date for anything older than a week.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Ext returns the lowercased filename extension without the dot, or ""
// when the name has none.
func Ext(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// BaseName strips the directory and the final extension from a file name.
// "notes/photosynthesis.docx" becomes "photosynthesis".
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
