package tokenizer

import (
	"errors"
	"os"
	"unicode/utf8"

	"github.com/temirov/aiderpick/internal/utils"
)

// CountResult captures the outcome of counting a file or byte slice.
// Counted is false for binary or non-UTF-8 content, which carries no
// meaningful token cost.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if len(data) == 0 {
		tokens, countError := counter.CountString("")
		if countError != nil {
			return CountResult{}, countError
		}
		return CountResult{Tokens: tokens, Counted: true}, nil
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	if !utf8.Valid(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountFile reads the file at path and estimates its token count.
func CountFile(counter Counter, path string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	fileData, readError := os.ReadFile(path)
	if readError != nil {
		return CountResult{}, readError
	}
	return CountBytes(counter, fileData)
}

// CountFiles sums the token counts of every countable file in paths. Files
// that cannot be read are skipped and reported in the second return value.
func CountFiles(counter Counter, paths []string) (int, []string, error) {
	if counter == nil {
		return 0, nil, errors.New("nil tokenizer counter")
	}
	totalTokens := 0
	var skippedPaths []string
	for _, filePath := range paths {
		countResult, countError := CountFile(counter, filePath)
		if countError != nil {
			skippedPaths = append(skippedPaths, filePath)
			continue
		}
		if countResult.Counted {
			totalTokens += countResult.Tokens
		}
	}
	return totalTokens, skippedPaths, nil
}
