// Package selector drives the external fuzzy finder for interactive
// multi-selection over repository entries.
package selector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/aiderpick/internal/filter"
)

const (
	// DefaultFinderExecutable is the fuzzy finder binary looked up on PATH.
	DefaultFinderExecutable = "fzf"
	// DefaultPreviewWindow places the preview pane on the right.
	DefaultPreviewWindow = "right:60%"
	// DefaultWindowHeight limits how much of the terminal the finder uses.
	DefaultWindowHeight = "80%"
	// DefaultHeaderText explains the selection key bindings.
	DefaultHeaderText = "Select files and directories (TAB to multi-select, →/CTRL+L to expand, ←/CTRL+K to go back)"

	// defaultPreviewCommand shows a recursive listing for directories and a
	// syntax highlighted dump (bat with cat fallback) for files. The {}
	// placeholders are substituted by the fuzzy finder.
	defaultPreviewCommand = `
if [ -d {} ]; then
    echo "Directory: {}";
    cd {} && find . -type f -not -path "*/.*" | sed 's|^./||' | sort | head -200 | while read -r file; do
        echo "  $file";
    done;
else
    echo "File: {}";
    bat --style=numbers --color=always {} 2>/dev/null || cat {};
fi
`

	// maxEmbeddedInputBytes bounds the entry snapshot embedded in the
	// collapse bindings; beyond it the binding would overflow the execve
	// argument limit, so the finder reloads from the repository root instead.
	maxEmbeddedInputBytes = 60000

	togglePreviewBinding = "ctrl-p:toggle-preview"
	reloadBindingFormat  = "%s:reload(%s)"
	echoInputFormat      = `echo "%s"`
	expandKeyPrimary     = "ctrl-l"
	expandKeySecondary   = "right"
	collapseKeyPrimary   = "ctrl-k"
	collapseKeySecondary = "left"

	finderStartErrorFormat = "starting fuzzy finder %s: %w"
	finderPipeErrorFormat  = "connecting fuzzy finder input: %w"
)

// Options configures a fuzzy finder invocation.
type Options struct {
	// FinderExecutable overrides the fuzzy finder binary name.
	FinderExecutable string
	// PreviewCommand overrides the preview shell command.
	PreviewCommand string
	// PreviewWindow overrides the preview pane placement.
	PreviewWindow string
	// WindowHeight overrides the finder height.
	WindowHeight string
	// HeaderText overrides the header line.
	HeaderText string
	// SkipList feeds the reload key-binding shell commands.
	SkipList filter.SkipList
}

func (options Options) finderExecutable() string {
	if options.FinderExecutable != "" {
		return options.FinderExecutable
	}
	return DefaultFinderExecutable
}

// Selector collects an interactive multi-selection over the provided entries.
// Implementations return an empty selection, not an error, when the user
// aborts the finder.
type Selector interface {
	Select(executionContext context.Context, entries []string) ([]string, error)
}

// ProcessSelector implements Selector by launching the external fuzzy finder.
type ProcessSelector struct {
	options Options
}

// NewProcessSelector constructs a ProcessSelector with the given options.
func NewProcessSelector(options Options) *ProcessSelector {
	return &ProcessSelector{options: options}
}

var _ Selector = (*ProcessSelector)(nil)

// BuildArguments renders the full fuzzy finder argument list for the entries.
// The entry list is embedded in the collapse bindings so the finder can return
// to the original listing after expanding a directory.
func BuildArguments(entries []string, options Options) []string {
	previewCommand := options.PreviewCommand
	if previewCommand == "" {
		previewCommand = defaultPreviewCommand
	}
	previewWindow := options.PreviewWindow
	if previewWindow == "" {
		previewWindow = DefaultPreviewWindow
	}
	windowHeight := options.WindowHeight
	if windowHeight == "" {
		windowHeight = DefaultWindowHeight
	}
	headerText := options.HeaderText
	if headerText == "" {
		headerText = DefaultHeaderText
	}

	expandReloadCommand := BuildExpandReloadCommand(options.SkipList)
	joinedEntries := strings.Join(entries, "\n")
	collapseReloadCommand := fmt.Sprintf(echoInputFormat, joinedEntries)
	if len(joinedEntries) > maxEmbeddedInputBytes {
		collapseReloadCommand = BuildRootReloadCommand(options.SkipList)
	}

	return []string{
		"--multi",
		"--preview", previewCommand,
		"--preview-window", previewWindow,
		"--bind", togglePreviewBinding,
		"--bind", fmt.Sprintf(reloadBindingFormat, expandKeyPrimary, expandReloadCommand),
		"--bind", fmt.Sprintf(reloadBindingFormat, collapseKeyPrimary, collapseReloadCommand),
		"--bind", fmt.Sprintf(reloadBindingFormat, expandKeySecondary, expandReloadCommand),
		"--bind", fmt.Sprintf(reloadBindingFormat, collapseKeySecondary, collapseReloadCommand),
		"--header", headerText,
		"--layout", "reverse",
		"--height", windowHeight,
		"--ansi",
	}
}

// Select streams the entries into the fuzzy finder and returns the marked
// subset. A non-zero finder exit (abort, no match) yields an empty selection.
func (processSelector *ProcessSelector) Select(executionContext context.Context, entries []string) ([]string, error) {
	finderArguments := BuildArguments(entries, processSelector.options)
	// #nosec G204
	finderCommand := exec.CommandContext(executionContext, processSelector.options.finderExecutable(), finderArguments...)

	finderInput, pipeError := finderCommand.StdinPipe()
	if pipeError != nil {
		return nil, fmt.Errorf(finderPipeErrorFormat, pipeError)
	}
	var finderOutput bytes.Buffer
	finderCommand.Stdout = &finderOutput
	finderCommand.Stderr = os.Stderr

	if startError := finderCommand.Start(); startError != nil {
		return nil, fmt.Errorf(finderStartErrorFormat, processSelector.options.finderExecutable(), startError)
	}

	group, groupContext := errgroup.WithContext(executionContext)
	group.Go(func() error {
		defer func() {
			_ = finderInput.Close()
		}()
		return writeEntries(groupContext, finderInput, entries)
	})
	group.Go(finderCommand.Wait)

	if waitError := group.Wait(); waitError != nil {
		var exitError *exec.ExitError
		if errors.As(waitError, &exitError) {
			return nil, nil
		}
		return nil, waitError
	}

	return parseSelection(finderOutput.String()), nil
}

// writeEntries feeds one entry per line into the finder until the context is
// canceled or the finder closes its input.
func writeEntries(executionContext context.Context, destination io.Writer, entries []string) error {
	for _, entryPath := range entries {
		select {
		case <-executionContext.Done():
			return executionContext.Err()
		default:
		}
		if _, writeError := fmt.Fprintln(destination, entryPath); writeError != nil {
			// The finder exits as soon as the user confirms; a broken pipe
			// here is the normal shutdown path.
			return nil
		}
	}
	return nil
}

// parseSelection splits the finder output into trimmed non-empty lines.
func parseSelection(finderOutput string) []string {
	rawLines := strings.Split(finderOutput, "\n")
	selectedEntries := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if trimmedLine != "" {
			selectedEntries = append(selectedEntries, trimmedLine)
		}
	}
	return selectedEntries
}
