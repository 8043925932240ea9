package tokenizer

import (
	"os"
	"path/filepath"
	"testing"
)

// runeCounter is a deterministic Counter for tests: one token per rune.
type runeCounter struct{}

func (runeCounter) Name() string {
	return "rune"
}

func (runeCounter) CountString(input string) (int, error) {
	return len([]rune(input)), nil
}

// TestCountBytesTextContent verifies text content is counted.
func TestCountBytesTextContent(testingHandle *testing.T) {
	countResult, countError := CountBytes(runeCounter{}, []byte("hello"))
	if countError != nil {
		testingHandle.Fatalf("CountBytes failed: %v", countError)
	}
	if !countResult.Counted || countResult.Tokens != 5 {
		testingHandle.Fatalf("unexpected result %+v", countResult)
	}
}

// TestCountBytesBinaryContentIsSkipped verifies binary data reports as not
// counted rather than failing.
func TestCountBytesBinaryContentIsSkipped(testingHandle *testing.T) {
	countResult, countError := CountBytes(runeCounter{}, []byte{0x00, 0x01, 0x02})
	if countError != nil {
		testingHandle.Fatalf("CountBytes failed: %v", countError)
	}
	if countResult.Counted {
		testingHandle.Fatalf("binary content must not be counted: %+v", countResult)
	}
}

// TestCountBytesNilCounter verifies the nil counter guard.
func TestCountBytesNilCounter(testingHandle *testing.T) {
	if _, countError := CountBytes(nil, []byte("x")); countError == nil {
		testingHandle.Fatalf("expected error for nil counter")
	}
}

// TestCountFilesSumsReadableFiles verifies totals span every readable file
// while unreadable paths are reported as skipped.
func TestCountFilesSumsReadableFiles(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	firstFilePath := filepath.Join(temporaryDirectory, "first.txt")
	secondFilePath := filepath.Join(temporaryDirectory, "second.txt")
	if writeError := os.WriteFile(firstFilePath, []byte("abc"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write fixture: %v", writeError)
	}
	if writeError := os.WriteFile(secondFilePath, []byte("de"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write fixture: %v", writeError)
	}
	missingFilePath := filepath.Join(temporaryDirectory, "missing.txt")

	totalTokens, skippedPaths, countError := CountFiles(runeCounter{}, []string{firstFilePath, secondFilePath, missingFilePath})
	if countError != nil {
		testingHandle.Fatalf("CountFiles failed: %v", countError)
	}
	if totalTokens != 5 {
		testingHandle.Fatalf("expected 5 tokens, got %d", totalTokens)
	}
	if len(skippedPaths) != 1 || skippedPaths[0] != missingFilePath {
		testingHandle.Fatalf("unexpected skipped paths %v", skippedPaths)
	}
}
