package filter

import (
	"path/filepath"
	"strings"

	"github.com/temirov/aiderpick/internal/types"
)

const (
	hiddenEntryPrefix  = "."
	globMetacharacters = "*?["
)

// Apply returns the entries that survive the skip-list. Directory entries are
// dropped when they start with a configured directory prefix; file entries are
// dropped when their basename is hidden or matches a filename pattern. The
// input slice is left untouched.
func Apply(entries []string, skipList SkipList) []string {
	keptEntries := make([]string, 0, len(entries))
	for _, entryPath := range entries {
		if shouldKeep(entryPath, skipList) {
			keptEntries = append(keptEntries, entryPath)
		}
	}
	return keptEntries
}

// shouldKeep implements the skip-list predicate for a single entry. Directory
// prefixes exclude both the directory entries themselves and every path
// beneath them.
func shouldKeep(entryPath string, skipList SkipList) bool {
	if matchesDirectoryPrefix(entryPath, skipList.DirectoryPrefixes) {
		return false
	}
	if types.IsDirectoryEntry(entryPath) {
		return true
	}

	baseName := types.FinalSegment(entryPath)
	if strings.HasPrefix(baseName, hiddenEntryPrefix) {
		return false
	}
	for _, fileNamePattern := range skipList.FileNamePatterns {
		isMatched, matchError := filepath.Match(fileNamePattern, baseName)
		if matchError == nil && isMatched {
			return false
		}
	}
	return true
}

// matchesDirectoryPrefix reports whether an entry falls under one of the skip
// prefixes. Prefixes match whole leading segments, so "node_modules" excludes
// "node_modules/" and everything beneath it but not "node_modules.txt".
// Prefixes carrying glob metacharacters are evaluated against the first path
// segment with filepath.Match semantics.
func matchesDirectoryPrefix(entryPath string, directoryPrefixes []string) bool {
	firstSegment := entryPath
	if separatorIndex := strings.Index(entryPath, types.PathSeparator); separatorIndex >= 0 {
		firstSegment = entryPath[:separatorIndex]
	}
	for _, directoryPrefix := range directoryPrefixes {
		trimmedPrefix := strings.TrimSuffix(directoryPrefix, types.DirectorySuffix)
		if strings.ContainsAny(trimmedPrefix, globMetacharacters) {
			isMatched, matchError := filepath.Match(trimmedPrefix, firstSegment)
			if matchError == nil && isMatched {
				return true
			}
			continue
		}
		if strings.HasPrefix(entryPath, trimmedPrefix+types.DirectorySuffix) {
			return true
		}
	}
	return false
}
