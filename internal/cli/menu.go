package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/aiderpick/internal/types"
)

const (
	menuHeading             = "Select file type to list:"
	menuEntryFormat         = "%d. %s\n"
	menuPromptFormat        = "Enter your choice (1-%d): "
	menuInvalidChoiceNotice = "Invalid choice. Please try again."
	menuListingFormat       = "Listing %s\n"
	confirmationPrompt      = "Do you want to execute this command? (yes/no): "
	affirmativeAnswer       = "yes"
)

// promptReader reads one line of user input at a time. bufio.Reader satisfies
// it in production; tests substitute scripted readers.
type promptReader interface {
	ReadString(delimiter byte) (string, error)
}

// newPromptReader wraps an io.Reader for line-oriented prompting.
func newPromptReader(source io.Reader) promptReader {
	return bufio.NewReader(source)
}

// promptFileTypeChoice displays the numbered file-type menu and re-prompts
// until a valid selection arrives. The returned choice carries the extension
// filter for the listing.
func promptFileTypeChoice(reader promptReader, destination io.Writer) (types.FileTypeChoice, error) {
	fmt.Fprintln(destination, menuHeading)
	for choiceIndex, choice := range types.FileTypeChoices {
		fmt.Fprintf(destination, menuEntryFormat, choiceIndex+1, choice.Description)
	}

	for {
		fmt.Fprintf(destination, menuPromptFormat, len(types.FileTypeChoices))
		answerLine, readError := reader.ReadString('\n')
		if readError != nil && answerLine == "" {
			return types.FileTypeChoice{}, fmt.Errorf("reading menu choice: %w", readError)
		}
		choiceNumber, parseError := strconv.Atoi(strings.TrimSpace(answerLine))
		if parseError == nil && choiceNumber >= 1 && choiceNumber <= len(types.FileTypeChoices) {
			selectedChoice := types.FileTypeChoices[choiceNumber-1]
			fmt.Fprintf(destination, menuListingFormat, color.New(color.Bold).Sprint(selectedChoice.Description))
			return selectedChoice, nil
		}
		fmt.Fprintln(destination, menuInvalidChoiceNotice)
		if readError != nil {
			return types.FileTypeChoice{}, fmt.Errorf("reading menu choice: %w", readError)
		}
	}
}

// promptConfirmation asks for explicit approval and reports whether the user
// answered yes. Any other answer, including a read failure, declines.
func promptConfirmation(reader promptReader, destination io.Writer) bool {
	fmt.Fprint(destination, confirmationPrompt)
	answerLine, readError := reader.ReadString('\n')
	if readError != nil && answerLine == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answerLine), affirmativeAnswer)
}

// choiceForExtension resolves a --type flag value to a menu choice. The empty
// string and the literal "all" select the unfiltered listing; extensions
// outside the menu are accepted verbatim.
func choiceForExtension(extensionValue string) types.FileTypeChoice {
	normalizedExtension := strings.ToLower(strings.TrimSpace(extensionValue))
	normalizedExtension = strings.TrimPrefix(normalizedExtension, ".")
	if normalizedExtension == "" || normalizedExtension == "all" {
		return types.FileTypeChoices[len(types.FileTypeChoices)-1]
	}
	for _, choice := range types.FileTypeChoices {
		if choice.Extension == normalizedExtension {
			return choice
		}
	}
	return types.FileTypeChoice{Extension: normalizedExtension, Description: normalizedExtension + " files"}
}
