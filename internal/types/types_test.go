package types

import "testing"

// TestEntryHelpers verifies the path helpers used by the filter and sorter.
func TestEntryHelpers(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		entryPath      string
		expectedIsDir  bool
		expectedDepth  int
		expectedFinal  string
		expectedParent string
	}{
		{name: "TopLevelFile", entryPath: "a.py", expectedIsDir: false, expectedDepth: 1, expectedFinal: "a.py", expectedParent: ""},
		{name: "TopLevelDirectory", entryPath: "b/", expectedIsDir: true, expectedDepth: 1, expectedFinal: "b", expectedParent: ""},
		{name: "NestedFile", entryPath: "b/x.py", expectedIsDir: false, expectedDepth: 2, expectedFinal: "x.py", expectedParent: "b/"},
		{name: "DeepFile", entryPath: "src/pkg/util.go", expectedIsDir: false, expectedDepth: 3, expectedFinal: "util.go", expectedParent: "src/pkg/"},
		{name: "NestedDirectory", entryPath: "src/pkg/", expectedIsDir: true, expectedDepth: 2, expectedFinal: "pkg", expectedParent: "src/"},
		{name: "EmptyPath", entryPath: "", expectedIsDir: false, expectedDepth: 0, expectedFinal: "", expectedParent: ""},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			if isDirectory := IsDirectoryEntry(testCase.entryPath); isDirectory != testCase.expectedIsDir {
				testingHandle.Fatalf("IsDirectoryEntry(%q) = %v", testCase.entryPath, isDirectory)
			}
			if entryDepth := EntryDepth(testCase.entryPath); entryDepth != testCase.expectedDepth {
				testingHandle.Fatalf("EntryDepth(%q) = %d, expected %d", testCase.entryPath, entryDepth, testCase.expectedDepth)
			}
			if finalSegment := FinalSegment(testCase.entryPath); finalSegment != testCase.expectedFinal {
				testingHandle.Fatalf("FinalSegment(%q) = %q, expected %q", testCase.entryPath, finalSegment, testCase.expectedFinal)
			}
			if parentPath := ParentPath(testCase.entryPath); parentPath != testCase.expectedParent {
				testingHandle.Fatalf("ParentPath(%q) = %q, expected %q", testCase.entryPath, parentPath, testCase.expectedParent)
			}
		})
	}
}

// TestFileTypeChoicesEndWithAllFiles verifies the menu keeps the unfiltered
// option in the last position, which the extension resolver relies on.
func TestFileTypeChoicesEndWithAllFiles(testingHandle *testing.T) {
	lastChoice := FileTypeChoices[len(FileTypeChoices)-1]
	if lastChoice.Extension != "" {
		testingHandle.Fatalf("last menu choice must be the all-files option, got %+v", lastChoice)
	}
	for _, choice := range FileTypeChoices[:len(FileTypeChoices)-1] {
		if choice.Extension == "" {
			testingHandle.Fatalf("only the last choice may be unfiltered, found %+v", choice)
		}
	}
}
