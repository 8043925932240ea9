// Package assembler builds and runs the aider invocation for a final
// selection of repository files.
package assembler

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/aiderpick/internal/utils"
)

const (
	// DefaultAssistantExecutable is the pair-programming binary looked up on PATH.
	DefaultAssistantExecutable = "aider"
	// fileFlagName passes one selected path to the assistant.
	fileFlagName = "--file"

	generatedCommandHeading  = "Generated aider command:"
	assistantRunErrorFormat  = "running %s: %w"
	emptySelectionErrMessage = "no files to assemble"
)

// Command is a ready-to-run assistant invocation.
type Command struct {
	Executable string
	Arguments  []string
}

// Build assembles the assistant invocation with one --file argument per
// selected path. Duplicates are dropped while preserving order.
func Build(assistantExecutable string, selectedFiles []string) (Command, error) {
	if assistantExecutable == "" {
		assistantExecutable = DefaultAssistantExecutable
	}
	uniqueFiles := utils.DeduplicatePatterns(selectedFiles)
	if len(uniqueFiles) == 0 {
		return Command{}, fmt.Errorf(emptySelectionErrMessage)
	}
	commandArguments := make([]string, 0, len(uniqueFiles)*2)
	for _, selectedFile := range uniqueFiles {
		commandArguments = append(commandArguments, fileFlagName, selectedFile)
	}
	return Command{Executable: assistantExecutable, Arguments: commandArguments}, nil
}

// Line renders the invocation as a single shell-style line.
func (command Command) Line() string {
	return strings.Join(append([]string{command.Executable}, command.Arguments...), " ")
}

// Render writes the heading and the highlighted command line to destination.
func (command Command) Render(destination io.Writer) {
	fmt.Fprintln(destination, generatedCommandHeading)
	fmt.Fprintln(destination, color.CyanString(command.Line()))
}

// Executor runs an assembled assistant invocation. The production
// implementation hands the terminal over to the assistant process.
type Executor interface {
	Execute(executionContext context.Context, command Command) error
}

// ProcessExecutor implements Executor with os/exec, attaching the current
// standard streams so the assistant runs interactively.
type ProcessExecutor struct{}

// NewProcessExecutor constructs a ProcessExecutor.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{}
}

var _ Executor = (*ProcessExecutor)(nil)

// Execute runs the assistant until it exits, inheriting the terminal.
func (ProcessExecutor) Execute(executionContext context.Context, command Command) error {
	// #nosec G204
	assistantProcess := exec.CommandContext(executionContext, command.Executable, command.Arguments...)
	assistantProcess.Stdin = os.Stdin
	assistantProcess.Stdout = os.Stdout
	assistantProcess.Stderr = os.Stderr
	if runError := assistantProcess.Run(); runError != nil {
		return fmt.Errorf(assistantRunErrorFormat, command.Executable, runError)
	}
	return nil
}
