package filter

import (
	"sort"
	"strings"

	"github.com/temirov/aiderpick/internal/types"
)

// entrySortKey is the composite ordering key for one listing entry. Shallower
// entries precede deeper ones, directories precede files at equal depth, and
// remaining ties resolve by parent path then case-insensitive final segment.
type entrySortKey struct {
	depth        int
	isFile       bool
	parentPath   string
	loweredFinal string
}

func sortKeyForEntry(entryPath string) entrySortKey {
	return entrySortKey{
		depth:        types.EntryDepth(entryPath),
		isFile:       !types.IsDirectoryEntry(entryPath),
		parentPath:   types.ParentPath(entryPath),
		loweredFinal: strings.ToLower(types.FinalSegment(entryPath)),
	}
}

func (key entrySortKey) less(other entrySortKey) bool {
	if key.depth != other.depth {
		return key.depth < other.depth
	}
	if key.isFile != other.isFile {
		return !key.isFile
	}
	if key.parentPath != other.parentPath {
		return key.parentPath < other.parentPath
	}
	return key.loweredFinal < other.loweredFinal
}

// SortEntries returns the entries in the deterministic browsing order. The
// input slice is not modified.
func SortEntries(entries []string) []string {
	sortedEntries := append([]string{}, entries...)
	sortKeysByEntry := make(map[string]entrySortKey, len(sortedEntries))
	for _, entryPath := range sortedEntries {
		if _, exists := sortKeysByEntry[entryPath]; !exists {
			sortKeysByEntry[entryPath] = sortKeyForEntry(entryPath)
		}
	}
	sort.SliceStable(sortedEntries, func(leftIndex, rightIndex int) bool {
		return sortKeysByEntry[sortedEntries[leftIndex]].less(sortKeysByEntry[sortedEntries[rightIndex]])
	})
	return sortedEntries
}
