package selector

import (
	"fmt"
	"strings"

	"github.com/temirov/aiderpick/internal/filter"
)

const (
	directoryExcludeFormat = "-not -path '*/%s'"
	fileExcludeFormat      = "-not -path '*/%s'"
	recursiveGlobPrefix    = "**/"

	// expandReloadTemplate lists the immediate children of the entry under
	// the cursor. The {} placeholders are substituted by the fuzzy finder.
	expandReloadTemplate = `cd {} && find . -maxdepth 1 \( -type d -o -type f \) %s %s -printf '%%y %%p\n' | sed 's|^d \.|0 {}|;s|^f \.|1 {}|' | sort | cut -d' ' -f2-`

	// rootReloadTemplate lists the immediate children of the repository root,
	// falling back to the working directory outside a repository.
	rootReloadTemplate = `root=$(git rev-parse --show-toplevel 2>/dev/null || pwd) && cd "$root" && find . -maxdepth 1 \( -type d -o -type f \) %s %s -printf '%%y %%p\n' | sed "s|^d \.|0 $(basename $(pwd))|;s|^f \.|1 $(basename $(pwd))|" | sort | cut -d' ' -f2-`
)

// buildFindExclusions renders the find(1) exclusion clauses for the skip-list.
// Filename globs are widened to match at any depth.
func buildFindExclusions(skipList filter.SkipList) (string, string) {
	directoryClauses := make([]string, 0, len(skipList.DirectoryPrefixes))
	for _, directoryPrefix := range skipList.DirectoryPrefixes {
		trimmedPrefix := strings.TrimSuffix(directoryPrefix, "/")
		directoryClauses = append(directoryClauses, fmt.Sprintf(directoryExcludeFormat, trimmedPrefix))
	}

	fileClauses := make([]string, 0, len(skipList.FileNamePatterns))
	for _, fileNamePattern := range skipList.FileNamePatterns {
		widenedPattern := strings.ReplaceAll(fileNamePattern, "*", recursiveGlobPrefix)
		fileClauses = append(fileClauses, fmt.Sprintf(fileExcludeFormat, widenedPattern))
	}

	return strings.Join(directoryClauses, " "), strings.Join(fileClauses, " ")
}

// BuildExpandReloadCommand returns the shell command bound to the expand keys.
func BuildExpandReloadCommand(skipList filter.SkipList) string {
	directoryExclusions, fileExclusions := buildFindExclusions(skipList)
	return fmt.Sprintf(expandReloadTemplate, directoryExclusions, fileExclusions)
}

// BuildRootReloadCommand returns the shell command bound to the collapse keys
// when no original input snapshot is available.
func BuildRootReloadCommand(skipList filter.SkipList) string {
	directoryExclusions, fileExclusions := buildFindExclusions(skipList)
	return fmt.Sprintf(rootReloadTemplate, directoryExclusions, fileExclusions)
}
