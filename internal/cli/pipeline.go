package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/temirov/aiderpick/internal/assembler"
	"github.com/temirov/aiderpick/internal/filter"
	"github.com/temirov/aiderpick/internal/selector"
	"github.com/temirov/aiderpick/internal/services/clipboard"
	"github.com/temirov/aiderpick/internal/tokenizer"
	"github.com/temirov/aiderpick/internal/types"
)

const (
	emptyListingNotice      = "No selectable files found. Exiting."
	emptySelectionNotice    = "No files selected. Exiting."
	commandCopiedNotice     = "Command copied to clipboard."
	commandNotExecutedLine  = "Command not executed."
	tokenReportFormat       = "Estimated context size: %d tokens (%s)\n"
	tokenSkippedFormat      = "Warning: could not count tokens for %s\n"
	clipboardCopyFormat     = "copying command to clipboard: %w"
	directoryExpandWarning  = "Warning: expanding %s: %v\n"
	successMark             = "✓"
)

// RepositoryLister enumerates and expands version-controlled entries. The
// gitrepo service satisfies it; pipeline tests substitute fakes.
type RepositoryLister interface {
	ListEntries(executionContext context.Context, extensionFilter string) ([]string, error)
	ExpandDirectory(executionContext context.Context, directoryEntry string) ([]string, error)
}

// PipelineOptions carries the resolved per-run settings.
type PipelineOptions struct {
	// Extension narrows the listing; empty lists every file.
	Extension string
	// ExtensionResolved is false when the interactive menu must run.
	ExtensionResolved bool
	// AssistantExecutable overrides the aider binary name.
	AssistantExecutable string
	// TokensEnabled turns on context size reporting before confirmation.
	TokensEnabled bool
	// TokenModel selects the tokenizer model for the report.
	TokenModel string
	// CopyEnabled copies the generated command line to the clipboard.
	CopyEnabled bool
	// SkipList filters the listing.
	SkipList filter.SkipList
}

// Pipeline wires the picker stages together behind narrow seams so every
// external process interaction can be faked in tests.
type Pipeline struct {
	lister       RepositoryLister
	entrySelect  selector.Selector
	executor     assembler.Executor
	copier       clipboard.Copier
	tokenCounter tokenizer.Counter
	tokenModel   string
	input        promptReader
	output       io.Writer
	errorOutput  io.Writer
	options      PipelineOptions
}

// NewPipeline constructs a Pipeline from its collaborators.
func NewPipeline(
	lister RepositoryLister,
	entrySelect selector.Selector,
	executor assembler.Executor,
	copier clipboard.Copier,
	input io.Reader,
	output io.Writer,
	errorOutput io.Writer,
	options PipelineOptions,
) *Pipeline {
	return &Pipeline{
		lister:      lister,
		entrySelect: entrySelect,
		executor:    executor,
		copier:      copier,
		input:       newPromptReader(input),
		output:      output,
		errorOutput: errorOutput,
		options:     options,
	}
}

// Run executes the full selection pipeline: menu, listing, filtering,
// sorting, interactive selection, directory expansion, command assembly, and
// confirmed execution.
func (pipeline *Pipeline) Run(executionContext context.Context) error {
	choice, choiceError := pipeline.resolveFileTypeChoice()
	if choiceError != nil {
		return choiceError
	}

	listedEntries, listError := pipeline.lister.ListEntries(executionContext, choice.Extension)
	if listError != nil {
		return listError
	}

	filteredEntries := filter.Apply(listedEntries, pipeline.options.SkipList)
	sortedEntries := filter.SortEntries(filteredEntries)
	if len(sortedEntries) == 0 {
		fmt.Fprintln(pipeline.output, emptyListingNotice)
		return nil
	}

	selectedEntries, selectError := pipeline.entrySelect.Select(executionContext, sortedEntries)
	if selectError != nil {
		return selectError
	}

	finalFiles := pipeline.expandSelection(executionContext, selectedEntries)
	if len(finalFiles) == 0 {
		fmt.Fprintln(pipeline.output, emptySelectionNotice)
		return nil
	}

	assistantCommand, buildError := assembler.Build(pipeline.options.AssistantExecutable, finalFiles)
	if buildError != nil {
		return buildError
	}
	assistantCommand.Render(pipeline.output)

	if pipeline.options.TokensEnabled {
		pipeline.reportTokenUsage(finalFiles)
	}

	if pipeline.options.CopyEnabled {
		if copyError := pipeline.copier.Copy(assistantCommand.Line()); copyError != nil {
			return fmt.Errorf(clipboardCopyFormat, copyError)
		}
		fmt.Fprintln(pipeline.output, color.GreenString(successMark)+" "+commandCopiedNotice)
	}

	if !promptConfirmation(pipeline.input, pipeline.output) {
		fmt.Fprintln(pipeline.output, commandNotExecutedLine)
		return nil
	}
	return pipeline.executor.Execute(executionContext, assistantCommand)
}

// resolveFileTypeChoice returns the flag-resolved choice or runs the menu.
func (pipeline *Pipeline) resolveFileTypeChoice() (types.FileTypeChoice, error) {
	if pipeline.options.ExtensionResolved {
		return choiceForExtension(pipeline.options.Extension), nil
	}
	return promptFileTypeChoice(pipeline.input, pipeline.output)
}

// expandSelection resolves directory entries to their contained files and
// keeps plain files as-is. The result is duplicate-free and ordered.
func (pipeline *Pipeline) expandSelection(executionContext context.Context, selectedEntries []string) []string {
	var finalFiles []string
	for _, selectedEntry := range selectedEntries {
		if !types.IsDirectoryEntry(selectedEntry) {
			finalFiles = append(finalFiles, selectedEntry)
			continue
		}
		expandedFiles, expandError := pipeline.lister.ExpandDirectory(executionContext, selectedEntry)
		if expandError != nil {
			fmt.Fprintf(pipeline.errorOutput, directoryExpandWarning, selectedEntry, expandError)
			continue
		}
		finalFiles = append(finalFiles, expandedFiles...)
	}
	return dedupePreservingOrder(finalFiles)
}

// reportTokenUsage prints the estimated token cost of the final selection.
// Counting failures degrade to warnings; the pipeline continues.
func (pipeline *Pipeline) reportTokenUsage(finalFiles []string) {
	tokenCounter := pipeline.tokenCounter
	tokenModel := pipeline.tokenModel
	if tokenCounter == nil {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(pipeline.options.TokenModel)
		if counterError != nil {
			fmt.Fprintf(pipeline.errorOutput, tokenSkippedFormat, counterError)
			return
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}
	totalTokens, skippedFiles, countError := tokenizer.CountFiles(tokenCounter, finalFiles)
	if countError != nil {
		fmt.Fprintf(pipeline.errorOutput, tokenSkippedFormat, countError)
		return
	}
	for _, skippedFile := range skippedFiles {
		fmt.Fprintf(pipeline.errorOutput, tokenSkippedFormat, skippedFile)
	}
	fmt.Fprintf(pipeline.output, tokenReportFormat, totalTokens, tokenModel)
}

// dedupePreservingOrder removes duplicate paths keeping first occurrences.
func dedupePreservingOrder(paths []string) []string {
	seenPaths := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, pathValue := range paths {
		if _, exists := seenPaths[pathValue]; exists {
			continue
		}
		seenPaths[pathValue] = struct{}{}
		result = append(result, pathValue)
	}
	return result
}
