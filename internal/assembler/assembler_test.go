package assembler

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// TestBuildOneFileFlagPerPath verifies the invocation carries one --file
// argument pair per selected path.
func TestBuildOneFileFlagPerPath(testingHandle *testing.T) {
	selectedFiles := []string{"a.py", "b/x.py"}

	assistantCommand, buildError := Build("", selectedFiles)
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}

	if assistantCommand.Executable != DefaultAssistantExecutable {
		testingHandle.Fatalf("unexpected executable %q", assistantCommand.Executable)
	}
	expectedArguments := []string{"--file", "a.py", "--file", "b/x.py"}
	if !reflect.DeepEqual(assistantCommand.Arguments, expectedArguments) {
		testingHandle.Fatalf("expected %v, got %v", expectedArguments, assistantCommand.Arguments)
	}
}

// TestBuildDeduplicatesPreservingOrder verifies repeated selections collapse
// to one argument pair.
func TestBuildDeduplicatesPreservingOrder(testingHandle *testing.T) {
	assistantCommand, buildError := Build("", []string{"b/x.py", "a.py", "b/x.py"})
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	expectedArguments := []string{"--file", "b/x.py", "--file", "a.py"}
	if !reflect.DeepEqual(assistantCommand.Arguments, expectedArguments) {
		testingHandle.Fatalf("expected %v, got %v", expectedArguments, assistantCommand.Arguments)
	}
}

// TestBuildRejectsEmptySelection verifies an empty selection is an error the
// pipeline can surface before prompting.
func TestBuildRejectsEmptySelection(testingHandle *testing.T) {
	if _, buildError := Build("", nil); buildError == nil {
		testingHandle.Fatalf("expected error for empty selection")
	}
}

// TestBuildHonorsExecutableOverride verifies a configured assistant binary
// replaces the default.
func TestBuildHonorsExecutableOverride(testingHandle *testing.T) {
	const customExecutable = "aider-nightly"

	assistantCommand, buildError := Build(customExecutable, []string{"a.py"})
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	if assistantCommand.Executable != customExecutable {
		testingHandle.Fatalf("unexpected executable %q", assistantCommand.Executable)
	}
}

// TestLineRendersShellStyleInvocation verifies the display form of the
// assembled command.
func TestLineRendersShellStyleInvocation(testingHandle *testing.T) {
	assistantCommand, buildError := Build("", []string{"a.py", "b/x.py"})
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	expectedLine := "aider --file a.py --file b/x.py"
	if assistantCommand.Line() != expectedLine {
		testingHandle.Fatalf("expected %q, got %q", expectedLine, assistantCommand.Line())
	}
}

// TestRenderWritesHeadingAndCommand verifies the rendered output contains the
// heading followed by the full invocation.
func TestRenderWritesHeadingAndCommand(testingHandle *testing.T) {
	assistantCommand, buildError := Build("", []string{"a.py"})
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}

	var renderedOutput bytes.Buffer
	assistantCommand.Render(&renderedOutput)

	if !strings.Contains(renderedOutput.String(), generatedCommandHeading) {
		testingHandle.Fatalf("missing heading in %q", renderedOutput.String())
	}
	if !strings.Contains(renderedOutput.String(), "--file a.py") {
		testingHandle.Fatalf("missing command line in %q", renderedOutput.String())
	}
}
