// Package filter removes noise entries from repository listings and orders
// the survivors so directories lead files at every depth.
package filter

import "github.com/temirov/aiderpick/internal/utils"

// CacheFilePatterns matches build and editor artifacts by basename glob.
var CacheFilePatterns = []string{
	"*.pyc",
	"*.class",
	"*.o",
	"*.obj",
	"*.dll",
	"*.exe",
	"*.so",
	"*.cache",
	"*.swp",
	"*~",
}

// CacheDirectoryNames matches dependency and build output directories.
var CacheDirectoryNames = []string{
	"__pycache__",
	"node_modules",
	"target",
	"build",
	"dist",
	".cache",
	".pytest_cache",
	"*.egg-info",
	"vendor",
	".gradle",
}

// defaultSkipFileNames lists tool artifacts and documentation files that are
// never useful as pair-programming context.
var defaultSkipFileNames = []string{
	"__init__.py",
	".aider.chat.history.md",
	".aider.conf.yml",
	".aider.input.history",
	".aider.tags.cache.v3",
	".codeiumignore",
	"README.md",
	"ARCHITECTURE.md",
}

// defaultSkipDirectoryPrefixes lists directory prefixes excluded from selection.
var defaultSkipDirectoryPrefixes = []string{
	".git/",
	"config/",
	"docs/",
	"input/",
	"output/",
	"markdowns/",
}

// SkipList bundles the two pattern sets applied by Apply.
type SkipList struct {
	// FileNamePatterns are glob patterns evaluated against entry basenames.
	FileNamePatterns []string
	// DirectoryPrefixes exclude any directory entry that starts with one of
	// them. A prefix containing glob metacharacters is matched against the
	// leading path segment instead.
	DirectoryPrefixes []string
}

// DefaultSkipList returns the built-in skip-list combining the static file and
// directory sets with the cache artifact patterns.
func DefaultSkipList() SkipList {
	return SkipList{
		FileNamePatterns:  utils.DeduplicatePatterns(append(append([]string{}, defaultSkipFileNames...), CacheFilePatterns...)),
		DirectoryPrefixes: utils.DeduplicatePatterns(append(append([]string{}, defaultSkipDirectoryPrefixes...), CacheDirectoryNames...)),
	}
}

// Extend returns a copy of the skip-list with the additional patterns merged
// in. Duplicates are removed while preserving order.
func (skipList SkipList) Extend(fileNamePatterns []string, directoryPrefixes []string) SkipList {
	return SkipList{
		FileNamePatterns:  utils.DeduplicatePatterns(append(append([]string{}, skipList.FileNamePatterns...), fileNamePatterns...)),
		DirectoryPrefixes: utils.DeduplicatePatterns(append(append([]string{}, skipList.DirectoryPrefixes...), directoryPrefixes...)),
	}
}
