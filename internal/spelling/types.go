package spelling

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/spellscan/internal/dictionary"
)

// Lookup is the approximate-matching capability consulted for every token.
// Implementations must be safe for concurrent use when the Aggregator runs more than one worker.
type Lookup interface {
	Lookup(word string, verbosity dictionary.Verbosity) []dictionary.Suggestion
}

// FileReader reads whole files from disk.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileScanner produces a FileReport for a single path.
type FileScanner interface {
	ScanFile(executionContext context.Context, path string) (FileReport, error)
}

// MistakePair couples a token as written with the dictionary's suggested correction.
type MistakePair struct {
	Original   string `yaml:"original"`
	Suggestion string `yaml:"suggestion"`
}

// LineRecord holds the mistakes detected on one non-blank line. Mistakes is empty, not nil, for clean lines.
type LineRecord struct {
	Number   int           `yaml:"line"`
	Text     string        `yaml:"text"`
	Mistakes []MistakePair `yaml:"mistakes"`
}

// HasMistakes reports whether the line carries at least one mistake.
func (record LineRecord) HasMistakes() bool {
	return len(record.Mistakes) > 0
}

// FileReport is the outcome of scanning one file. Lines appear in file order.
type FileReport struct {
	Path  string       `yaml:"path"`
	Lines []LineRecord `yaml:"lines"`
}

// HasMistakes reports whether any line of the file carries a mistake.
func (report FileReport) HasMistakes() bool {
	for _, line := range report.Lines {
		if line.HasMistakes() {
			return true
		}
	}
	return false
}

// MistakeCount returns the number of mistake pairs across all lines.
func (report FileReport) MistakeCount() int {
	total := 0
	for _, line := range report.Lines {
		total += len(line.Mistakes)
	}
	return total
}

// Line returns the record for a 1-based line number.
func (report FileReport) Line(number int) (LineRecord, bool) {
	for _, line := range report.Lines {
		if line.Number == number {
			return line, true
		}
	}
	return LineRecord{}, false
}

// UnreadableFile records a file whose content could not be read or decoded.
type UnreadableFile struct {
	Path string
	Err  error
}

// AuditResult collects every scanned file in walk order together with the files that could not be read.
type AuditResult struct {
	Files      []FileReport
	Unreadable []UnreadableFile
}

// HasMistakes reports whether any scanned file carries a mistake.
func (result AuditResult) HasMistakes() bool {
	for _, file := range result.Files {
		if file.HasMistakes() {
			return true
		}
	}
	return false
}

// MistakeCount returns the number of mistake pairs across all files.
func (result AuditResult) MistakeCount() int {
	total := 0
	for _, file := range result.Files {
		total += file.MistakeCount()
	}
	return total
}

// ErrInvalidLine reports a nil line handed to the tokenizer.
var ErrInvalidLine = errors.New("invalid line: nil input")

// ErrUndecodableContent reports file content that is not valid UTF-8 text.
var ErrUndecodableContent = errors.New("content is not valid UTF-8")

const fileReadErrorTemplate = "unable to read %s: %v"

// FileReadError wraps a per-file read or decode failure with the offending path.
type FileReadError struct {
	Path  string
	Cause error
}

func (readError *FileReadError) Error() string {
	return fmt.Sprintf(fileReadErrorTemplate, readError.Path, readError.Cause)
}

func (readError *FileReadError) Unwrap() error {
	return readError.Cause
}
