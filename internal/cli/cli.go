// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/temirov/aiderpick/internal/assembler"
	"github.com/temirov/aiderpick/internal/config"
	"github.com/temirov/aiderpick/internal/gitrepo"
	"github.com/temirov/aiderpick/internal/selector"
	"github.com/temirov/aiderpick/internal/services/clipboard"
	"github.com/temirov/aiderpick/internal/tokenizer"
	"github.com/temirov/aiderpick/internal/utils"
)

const (
	rootUse              = "aiderpick"
	rootShortDescription = "interactive file picker for aider"
	rootLongDescription  = `aiderpick lists the files git knows about, lets you pick a subset through
an interactive fuzzy finder, and assembles the aider command that loads the
selection as pair-programming context.
Use --type to skip the file-type menu, --tokens to estimate the context size,
and --copy to place the generated command on the clipboard.`
	rootUsageExample = `  # Pick from every tracked file
  aiderpick

  # Pick only Python files, report the token cost
  aiderpick --type py --tokens

  # Copy the generated command instead of typing yes
  aiderpick --copy`

	typeFlagName    = "type"
	copyFlagName    = "copy"
	tokensFlagName  = "tokens"
	modelFlagName   = "model"
	configFlagName  = "config"
	versionFlagName = "version"
	versionTemplate = "aiderpick version: %s\n"

	typeFlagDescription    = "file extension to list (py, c, cpp, rs, js, ts, sh, all)"
	copyFlagDescription    = "copy the generated command to the clipboard"
	tokensFlagDescription  = "report the token cost of the selection"
	modelFlagDescription   = "tokenizer model used for the token report"
	configFlagDescription  = "path to a configuration file"
	versionFlagDescription = "display application version"

	notATerminalMessage = "standard output is not a terminal; the interactive picker needs one"
)

// Execute runs the aiderpick application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// rootOptions stores the flag values of the root command.
type rootOptions struct {
	extension      string
	copyEnabled    bool
	tokensEnabled  bool
	tokenModel     string
	configFilePath string
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runPicker(command, options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.extension, typeFlagName, "t", "", typeFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	rootCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runPicker resolves configuration, wires the production collaborators, and
// runs the selection pipeline.
func runPicker(command *cobra.Command, options rootOptions) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf(notATerminalMessage)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}

	pipelineOptions := resolvePipelineOptions(command, options, applicationConfiguration)

	finderOptions := selector.Options{
		FinderExecutable: applicationConfiguration.Finder.Executable,
		PreviewCommand:   applicationConfiguration.Finder.Preview,
		PreviewWindow:    applicationConfiguration.Finder.PreviewWindow,
		WindowHeight:     applicationConfiguration.Finder.Height,
		HeaderText:       applicationConfiguration.Finder.Header,
		SkipList:         pipelineOptions.SkipList,
	}

	pipeline := NewPipeline(
		gitrepo.NewService(),
		selector.NewProcessSelector(finderOptions),
		assembler.NewProcessExecutor(),
		clipboard.NewService(),
		os.Stdin,
		os.Stdout,
		os.Stderr,
		pipelineOptions,
	)
	return pipeline.Run(command.Context())
}

// resolvePipelineOptions folds flags over configuration file defaults.
func resolvePipelineOptions(command *cobra.Command, options rootOptions, applicationConfiguration config.ApplicationConfiguration) PipelineOptions {
	tokensEnabled := options.tokensEnabled
	if !command.Flags().Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	tokenModel := options.tokenModel
	if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		tokenModel = applicationConfiguration.Tokens.Model
	}

	return PipelineOptions{
		Extension:           options.extension,
		ExtensionResolved:   command.Flags().Changed(typeFlagName),
		AssistantExecutable: applicationConfiguration.Assistant.Executable,
		TokensEnabled:       tokensEnabled,
		TokenModel:          tokenModel,
		CopyEnabled:         options.copyEnabled,
		SkipList:            applicationConfiguration.Skip.EffectiveSkipList(),
	}
}

// isTerminal reports whether the file is attached to a terminal, including
// Cygwin and MSYS pseudo terminals.
func isTerminal(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
