// Package gitrepo adapts the git command line interface for listing and
// expanding tracked repository files.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/temirov/aiderpick/internal/types"
)

const (
	gitExecutableName       = "git"
	listFilesSubcommand     = "ls-files"
	cachedFlag              = "--cached"
	othersFlag              = "--others"
	excludeStandardFlag     = "--exclude-standard"
	revParseSubcommand      = "rev-parse"
	showTopLevelFlag        = "--show-toplevel"
	extensionPatternFormat  = "*.%s"
	directoryPatternFormat  = "%s*"
	listFilesErrorFormat    = "listing repository files: %w"
	expandErrorFormat       = "expanding directory %s: %w"
	rootErrorFormat         = "resolving repository root: %w"
	commandFailedFormat     = "%s %s: %w: %s"
	emptyCommandNameMessage = "empty command name"
)

// CommandRunner executes an external command and returns its standard output.
// The production implementation shells out; tests substitute fakes.
type CommandRunner interface {
	Run(executionContext context.Context, commandName string, commandArguments ...string) ([]byte, error)
}

// execCommandRunner runs commands through os/exec, folding captured standard
// error into the returned error for diagnostics.
type execCommandRunner struct{}

func (execCommandRunner) Run(executionContext context.Context, commandName string, commandArguments ...string) ([]byte, error) {
	if commandName == "" {
		return nil, fmt.Errorf(emptyCommandNameMessage)
	}
	// #nosec G204
	command := exec.CommandContext(executionContext, commandName, commandArguments...)
	var standardErrorBuffer bytes.Buffer
	command.Stderr = &standardErrorBuffer
	standardOutput, runError := command.Output()
	if runError != nil {
		return nil, fmt.Errorf(commandFailedFormat, commandName, strings.Join(commandArguments, " "), runError, strings.TrimSpace(standardErrorBuffer.String()))
	}
	return standardOutput, nil
}

// Service lists and expands version-controlled files.
type Service struct {
	runner CommandRunner
}

// NewService constructs a Service backed by the real git executable.
func NewService() *Service {
	return &Service{runner: execCommandRunner{}}
}

// NewServiceWithRunner constructs a Service with a custom command runner.
func NewServiceWithRunner(runner CommandRunner) *Service {
	return &Service{runner: runner}
}

// ListEntries returns every file tracked or untracked-but-not-ignored by git,
// optionally narrowed to one extension, plus a synthetic directory entry for
// each top-level directory containing at least one listed file.
func (service *Service) ListEntries(executionContext context.Context, extensionFilter string) ([]string, error) {
	commandArguments := []string{listFilesSubcommand, cachedFlag, othersFlag, excludeStandardFlag}
	if extensionFilter != "" {
		commandArguments = append(commandArguments, fmt.Sprintf(extensionPatternFormat, extensionFilter))
	}

	commandOutput, runError := service.runner.Run(executionContext, gitExecutableName, commandArguments...)
	if runError != nil {
		return nil, fmt.Errorf(listFilesErrorFormat, runError)
	}

	filePaths := splitOutputLines(commandOutput)
	topLevelDirectories := make(map[string]struct{})
	for _, filePath := range filePaths {
		if separatorIndex := strings.Index(filePath, types.PathSeparator); separatorIndex > 0 {
			topLevelDirectories[filePath[:separatorIndex]+types.DirectorySuffix] = struct{}{}
		}
	}

	entries := make([]string, 0, len(filePaths)+len(topLevelDirectories))
	for directoryEntry := range topLevelDirectories {
		entries = append(entries, directoryEntry)
	}
	sort.Strings(entries)
	entries = append(entries, filePaths...)
	return entries, nil
}

// ExpandDirectory resolves a directory entry to the plain files git knows
// underneath it. The returned paths are deduplicated and sorted.
func (service *Service) ExpandDirectory(executionContext context.Context, directoryEntry string) ([]string, error) {
	commandArguments := []string{
		listFilesSubcommand,
		cachedFlag,
		othersFlag,
		excludeStandardFlag,
		fmt.Sprintf(directoryPatternFormat, directoryEntry),
	}
	commandOutput, runError := service.runner.Run(executionContext, gitExecutableName, commandArguments...)
	if runError != nil {
		return nil, fmt.Errorf(expandErrorFormat, directoryEntry, runError)
	}
	expandedFiles := deduplicateSorted(splitOutputLines(commandOutput))
	return expandedFiles, nil
}

// RootDirectory returns the absolute path of the repository work tree root.
func (service *Service) RootDirectory(executionContext context.Context) (string, error) {
	commandOutput, runError := service.runner.Run(executionContext, gitExecutableName, revParseSubcommand, showTopLevelFlag)
	if runError != nil {
		return "", fmt.Errorf(rootErrorFormat, runError)
	}
	return strings.TrimSpace(string(commandOutput)), nil
}

// splitOutputLines converts command output into trimmed non-empty lines.
func splitOutputLines(commandOutput []byte) []string {
	rawLines := strings.Split(string(commandOutput), "\n")
	lines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if trimmedLine != "" {
			lines = append(lines, trimmedLine)
		}
	}
	return lines
}

// deduplicateSorted removes duplicates and returns the paths in sorted order.
func deduplicateSorted(paths []string) []string {
	uniquePaths := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, pathValue := range paths {
		if _, exists := uniquePaths[pathValue]; exists {
			continue
		}
		uniquePaths[pathValue] = struct{}{}
		result = append(result, pathValue)
	}
	sort.Strings(result)
	return result
}
