package selector

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/aiderpick/internal/filter"
)

// argumentValueAfterFlag returns the value following the first occurrence of
// the given flag, failing the test when the flag is absent.
func argumentValueAfterFlag(testingHandle *testing.T, finderArguments []string, flagName string) string {
	testingHandle.Helper()
	for argumentIndex, argumentValue := range finderArguments {
		if argumentValue == flagName && argumentIndex+1 < len(finderArguments) {
			return finderArguments[argumentIndex+1]
		}
	}
	testingHandle.Fatalf("flag %s not found in %v", flagName, finderArguments)
	return ""
}

// TestBuildArgumentsDefaults verifies the finder receives multi-select mode,
// the preview pane, and the documented defaults.
func TestBuildArgumentsDefaults(testingHandle *testing.T) {
	finderArguments := BuildArguments([]string{"a.py"}, Options{SkipList: filter.DefaultSkipList()})

	joinedArguments := strings.Join(finderArguments, " ")
	for _, requiredArgument := range []string{"--multi", "--ansi", "--layout reverse"} {
		if !strings.Contains(joinedArguments, requiredArgument) {
			testingHandle.Fatalf("missing %s in %v", requiredArgument, finderArguments)
		}
	}
	if previewWindow := argumentValueAfterFlag(testingHandle, finderArguments, "--preview-window"); previewWindow != DefaultPreviewWindow {
		testingHandle.Fatalf("unexpected preview window %q", previewWindow)
	}
	if windowHeight := argumentValueAfterFlag(testingHandle, finderArguments, "--height"); windowHeight != DefaultWindowHeight {
		testingHandle.Fatalf("unexpected height %q", windowHeight)
	}
	if headerText := argumentValueAfterFlag(testingHandle, finderArguments, "--header"); headerText != DefaultHeaderText {
		testingHandle.Fatalf("unexpected header %q", headerText)
	}
}

// TestBuildArgumentsEmbedsEntriesInCollapseBinding verifies the collapse keys
// restore the original listing.
func TestBuildArgumentsEmbedsEntriesInCollapseBinding(testingHandle *testing.T) {
	entries := []string{"b/", "a.py"}
	finderArguments := BuildArguments(entries, Options{SkipList: filter.DefaultSkipList()})

	joinedArguments := strings.Join(finderArguments, "\x00")
	expectedBindingFragment := "ctrl-k:reload(echo \"b/\na.py\")"
	if !strings.Contains(joinedArguments, expectedBindingFragment) {
		testingHandle.Fatalf("collapse binding missing original entries: %v", finderArguments)
	}
}

// TestBuildArgumentsHonorsOverrides verifies option overrides replace every
// default value.
func TestBuildArgumentsHonorsOverrides(testingHandle *testing.T) {
	const (
		customPreview = "cat {}"
		customWindow  = "down:40%"
		customHeight  = "50%"
		customHeader  = "pick things"
	)

	options := Options{
		PreviewCommand: customPreview,
		PreviewWindow:  customWindow,
		WindowHeight:   customHeight,
		HeaderText:     customHeader,
		SkipList:       filter.DefaultSkipList(),
	}
	finderArguments := BuildArguments([]string{"a.py"}, options)

	if previewCommand := argumentValueAfterFlag(testingHandle, finderArguments, "--preview"); previewCommand != customPreview {
		testingHandle.Fatalf("unexpected preview %q", previewCommand)
	}
	if previewWindow := argumentValueAfterFlag(testingHandle, finderArguments, "--preview-window"); previewWindow != customWindow {
		testingHandle.Fatalf("unexpected preview window %q", previewWindow)
	}
	if windowHeight := argumentValueAfterFlag(testingHandle, finderArguments, "--height"); windowHeight != customHeight {
		testingHandle.Fatalf("unexpected height %q", windowHeight)
	}
	if headerText := argumentValueAfterFlag(testingHandle, finderArguments, "--header"); headerText != customHeader {
		testingHandle.Fatalf("unexpected header %q", headerText)
	}
}

// TestBuildExpandReloadCommandExcludesSkipDirectories verifies the expand
// binding carries find exclusions for the skip-list.
func TestBuildExpandReloadCommandExcludesSkipDirectories(testingHandle *testing.T) {
	reloadCommand := BuildExpandReloadCommand(filter.DefaultSkipList())

	for _, expectedFragment := range []string{"find . -maxdepth 1", "-not -path '*/node_modules'", "-not -path '*/__pycache__'"} {
		if !strings.Contains(reloadCommand, expectedFragment) {
			testingHandle.Fatalf("reload command missing %q: %s", expectedFragment, reloadCommand)
		}
	}
}

// TestBuildRootReloadCommandFallsBackToWorkingDirectory verifies the root
// reload command tolerates running outside a repository.
func TestBuildRootReloadCommandFallsBackToWorkingDirectory(testingHandle *testing.T) {
	reloadCommand := BuildRootReloadCommand(filter.DefaultSkipList())
	if !strings.Contains(reloadCommand, "git rev-parse --show-toplevel 2>/dev/null || pwd") {
		testingHandle.Fatalf("root reload command missing repository fallback: %s", reloadCommand)
	}
}

// TestBuildArgumentsLargeListingFallsBackToRootReload verifies oversized
// listings swap the embedded snapshot for the root reload command.
func TestBuildArgumentsLargeListingFallsBackToRootReload(testingHandle *testing.T) {
	largeEntries := make([]string, 4000)
	for entryIndex := range largeEntries {
		largeEntries[entryIndex] = fmt.Sprintf("src/package_%04d/file_%04d.go", entryIndex, entryIndex)
	}

	finderArguments := BuildArguments(largeEntries, Options{SkipList: filter.DefaultSkipList()})
	joinedArguments := strings.Join(finderArguments, "\x00")
	if strings.Contains(joinedArguments, "ctrl-k:reload(echo") {
		testingHandle.Fatalf("oversized listing must not be embedded in the collapse binding")
	}
	if !strings.Contains(joinedArguments, "git rev-parse --show-toplevel") {
		testingHandle.Fatalf("expected root reload fallback in %v", finderArguments[:4])
	}
}

// TestParseSelection verifies finder output parsing drops blank lines and
// trims whitespace.
func TestParseSelection(testingHandle *testing.T) {
	testCases := []struct {
		name             string
		finderOutput     string
		expectedSelected []string
	}{
		{
			name:             "EmptyOutput",
			finderOutput:     "",
			expectedSelected: []string{},
		},
		{
			name:             "SingleEntry",
			finderOutput:     "a.py\n",
			expectedSelected: []string{"a.py"},
		},
		{
			name:             "MultipleEntriesWithBlankLines",
			finderOutput:     "b/\n\na.py\n  \n",
			expectedSelected: []string{"b/", "a.py"},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			selectedEntries := parseSelection(testCase.finderOutput)
			if !reflect.DeepEqual(selectedEntries, testCase.expectedSelected) {
				testingHandle.Fatalf("expected %v, got %v", testCase.expectedSelected, selectedEntries)
			}
		})
	}
}
