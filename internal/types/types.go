// Package types defines every cross‑package data structure used by the aiderpick CLI.
package types

import "strings"

const (
	// PathSeparator separates segments of repository-relative paths.
	PathSeparator = "/"
	// DirectorySuffix marks an entry as a directory.
	DirectorySuffix = "/"
)

// FileTypeChoice describes one option of the file-type menu.
type FileTypeChoice struct {
	// Extension filters the listing when non-empty; empty means all files.
	Extension string
	// Description is the human-readable menu label.
	Description string
}

// FileTypeChoices holds the numbered menu options in display order.
// Menu keys are the one-based positions within this slice.
var FileTypeChoices = []FileTypeChoice{
	{Extension: "py", Description: "Python files"},
	{Extension: "c", Description: "C files"},
	{Extension: "cpp", Description: "C++ files"},
	{Extension: "rs", Description: "Rust files"},
	{Extension: "js", Description: "JavaScript files"},
	{Extension: "ts", Description: "TypeScript files"},
	{Extension: "sh", Description: "Shell scripts"},
	{Extension: "", Description: "All files"},
}

// IsDirectoryEntry reports whether the entry denotes a directory.
func IsDirectoryEntry(entryPath string) bool {
	return strings.HasSuffix(entryPath, DirectorySuffix)
}

// EntryDepth returns the number of path segments in the entry. A trailing
// directory separator does not contribute a segment.
func EntryDepth(entryPath string) int {
	trimmedPath := strings.TrimSuffix(entryPath, DirectorySuffix)
	if trimmedPath == "" {
		return 0
	}
	return strings.Count(trimmedPath, PathSeparator) + 1
}

// FinalSegment returns the last path segment of the entry without any
// trailing directory separator.
func FinalSegment(entryPath string) string {
	trimmedPath := strings.TrimSuffix(entryPath, DirectorySuffix)
	separatorIndex := strings.LastIndex(trimmedPath, PathSeparator)
	if separatorIndex < 0 {
		return trimmedPath
	}
	return trimmedPath[separatorIndex+1:]
}

// ParentPath returns every segment before the final one, each followed by a
// separator, matching the ordering key used by the entry sorter.
func ParentPath(entryPath string) string {
	trimmedPath := strings.TrimSuffix(entryPath, DirectorySuffix)
	separatorIndex := strings.LastIndex(trimmedPath, PathSeparator)
	if separatorIndex < 0 {
		return ""
	}
	return trimmedPath[:separatorIndex+1]
}
