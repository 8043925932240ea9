// Package tokenizer estimates the token cost of selected context files.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	// DefaultModel is the tokenizer model assumed when none is configured.
	DefaultModel = "gpt-4o"
	// defaultEncodingName backs models tiktoken does not know directly.
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model together with the
// resolved model or encoding name. Unknown models fall back to the default
// encoding rather than failing.
func NewCounter(modelName string) (Counter, string, error) {
	resolvedModel := strings.ToLower(strings.TrimSpace(modelName))
	if resolvedModel == "" {
		resolvedModel = DefaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(resolvedModel)
	if encodingError == nil && encoding != nil {
		return modelCounter{encoding: encoding, name: resolvedModel}, resolvedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return modelCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

type modelCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter modelCounter) Name() string {
	return counter.name
}

func (counter modelCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
