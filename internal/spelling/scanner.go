package spelling

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/temirov/spellscan/internal/dictionary"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	lineFeedConstant             = "\n"
	carriageReturnConstant       = "\r"
	carriageReturnLineFeedString = "\r\n"
	undecodableContentTemplate   = "%w: %w"
)

var (
	utf16BigEndianByteOrderMark    = []byte{0xFE, 0xFF}
	utf16LittleEndianByteOrderMark = []byte{0xFF, 0xFE}
	lineBreakNormalizer            = strings.NewReplacer(carriageReturnLineFeedString, lineFeedConstant, carriageReturnConstant, lineFeedConstant)
)

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Scanner produces per-line mistake records for individual files.
type Scanner struct {
	lookup     Lookup
	fileReader FileReader
}

// NewScanner constructs a Scanner. A nil fileReader reads from the operating system.
func NewScanner(lookup Lookup, fileReader FileReader) *Scanner {
	if fileReader == nil {
		fileReader = osFileReader{}
	}
	return &Scanner{lookup: lookup, fileReader: fileReader}
}

// ScanFile reads path and records every non-blank line with the mistakes found on it.
// Read and decode failures are returned as *FileReadError. A cancelled context aborts the scan
// and no partial report is returned.
func (scanner *Scanner) ScanFile(executionContext context.Context, path string) (FileReport, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return FileReport{}, contextError
	}

	rawContent, readError := scanner.fileReader.ReadFile(path)
	if readError != nil {
		return FileReport{}, &FileReadError{Path: path, Cause: readError}
	}

	content, decodeError := decodeContent(rawContent)
	if decodeError != nil {
		return FileReport{}, &FileReadError{Path: path, Cause: decodeError}
	}

	return scanner.ScanContent(executionContext, path, content)
}

// ScanContent scans already decoded file content attributed to path.
func (scanner *Scanner) ScanContent(executionContext context.Context, path string, content string) (FileReport, error) {
	report := FileReport{Path: path, Lines: []LineRecord{}}

	lines := strings.Split(lineBreakNormalizer.Replace(content), lineFeedConstant)
	for lineIndex, line := range lines {
		if contextError := executionContext.Err(); contextError != nil {
			return FileReport{}, contextError
		}

		record, recorded := scanner.ScanLine(lineIndex+1, line)
		if !recorded {
			continue
		}
		report.Lines = append(report.Lines, record)
	}

	return report, nil
}

// ScanLine evaluates a single line. Blank lines are not recorded.
func (scanner *Scanner) ScanLine(number int, line string) (LineRecord, bool) {
	trimmedLine := strings.TrimSpace(line)
	if len(trimmedLine) == 0 {
		return LineRecord{}, false
	}

	record := LineRecord{Number: number, Text: trimmedLine, Mistakes: []MistakePair{}}
	for _, token := range Tokenize(trimmedLine) {
		if suggestion, misspelled := scanner.evaluateToken(token); misspelled {
			record.Mistakes = append(record.Mistakes, MistakePair{Original: token, Suggestion: suggestion})
		}
	}

	return record, true
}

// evaluateToken flags a token only when the dictionary knows a near-miss for it; words without any
// candidate are treated as correctly spelled.
func (scanner *Scanner) evaluateToken(token string) (string, bool) {
	normalizedToken := strings.ToLower(token)
	candidates := scanner.lookup.Lookup(normalizedToken, dictionary.VerbosityTop)
	if len(candidates) == 0 {
		return "", false
	}

	topTerm := candidates[0].Term
	if strings.ToLower(topTerm) == normalizedToken {
		return "", false
	}
	return topTerm, true
}

func decodeContent(rawContent []byte) (string, error) {
	hasUTF16ByteOrderMark := bytes.HasPrefix(rawContent, utf16BigEndianByteOrderMark) || bytes.HasPrefix(rawContent, utf16LittleEndianByteOrderMark)
	if !hasUTF16ByteOrderMark && !utf8.Valid(rawContent) {
		return "", ErrUndecodableContent
	}

	decodedContent, _, transformError := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), rawContent)
	if transformError != nil {
		return "", fmt.Errorf(undecodableContentTemplate, ErrUndecodableContent, transformError)
	}
	return string(decodedContent), nil
}
