package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/temirov/spellscan/internal/spelling"
)

// Severity classifies a span so sinks can style it.
type Severity int

const (
	SeverityPlain Severity = iota
	SeverityPath
	SeverityOriginal
	SeveritySuggestion
	SeverityWarning
	SeveritySuccess
)

const (
	// NoIssuesMessageConstant is printed when no scanned file contains a mistake.
	NoIssuesMessageConstant     = "No issues found."
	lineNumberPrefixTemplate    = "%-5s"
	lineNumberSuffixConstant    = ":"
	unreadableWarningTemplate   = "warning: skipped unreadable file %s: %v"
	unknownSeverityNameConstant = "unknown"
)

var severityNames = map[Severity]string{
	SeverityPlain:      "plain",
	SeverityPath:       "path",
	SeverityOriginal:   "original",
	SeveritySuggestion: "suggestion",
	SeverityWarning:    "warning",
	SeveritySuccess:    "success",
}

func (severity Severity) String() string {
	if name, known := severityNames[severity]; known {
		return name
	}
	return unknownSeverityNameConstant
}

// Span is a run of text with a single severity.
type Span struct {
	Severity Severity
	Text     string
}

// Line is one output line. An empty Line renders as a blank line.
type Line []Span

// Text concatenates the span texts without styling.
func (line Line) Text() string {
	var builder strings.Builder
	for _, span := range line {
		builder.WriteString(span.Text)
	}
	return builder.String()
}

// Format renders result into lines. Only files and lines with mistakes appear; each mistake line is
// shown as written and then with every suggestion substituted. Unreadable files become warnings and
// a summary line is emitted when nothing was flagged.
func Format(result spelling.AuditResult) []Line {
	var lines []Line

	for _, fileReport := range result.Files {
		if !fileReport.HasMistakes() {
			continue
		}

		lines = append(lines, Line{{Severity: SeverityPath, Text: fileReport.Path}})
		for _, record := range fileReport.Lines {
			if !record.HasMistakes() {
				continue
			}
			prefix := lineNumberPrefix(record.Number)
			lines = append(lines,
				Line{{Severity: SeverityOriginal, Text: prefix + record.Text}},
				Line{{Severity: SeveritySuggestion, Text: prefix + SubstituteSuggestions(record)}},
			)
		}
		lines = append(lines, Line{})
	}

	for _, unreadable := range result.Unreadable {
		lines = append(lines, Line{{Severity: SeverityWarning, Text: fmt.Sprintf(unreadableWarningTemplate, unreadable.Path, unreadableCause(unreadable.Err))}})
	}

	if !result.HasMistakes() {
		lines = append(lines, Line{{Severity: SeveritySuccess, Text: NoIssuesMessageConstant}})
	}

	return lines
}

// SubstituteSuggestions rewrites the record's text with each mistake replaced by its suggestion.
// Mistakes are matched against the line's tokens in order, so repeated words are replaced one
// occurrence per mistake. Punctuation around a replaced token and the original spacing are kept.
func SubstituteSuggestions(record spelling.LineRecord) string {
	if len(record.Mistakes) == 0 {
		return record.Text
	}

	var builder strings.Builder
	builder.Grow(len(record.Text))

	mistakeIndex := 0
	fragmentStart := -1
	flushFragment := func(fragmentEnd int) {
		fragment := record.Text[fragmentStart:fragmentEnd]
		fragmentStart = -1
		if mistakeIndex >= len(record.Mistakes) {
			builder.WriteString(fragment)
			return
		}
		tokens := spelling.Tokenize(fragment)
		if len(tokens) != 1 || tokens[0] != record.Mistakes[mistakeIndex].Original {
			builder.WriteString(fragment)
			return
		}
		builder.WriteString(replaceToken(fragment, record.Mistakes[mistakeIndex].Suggestion))
		mistakeIndex++
	}

	for characterIndex, character := range record.Text {
		if unicode.IsSpace(character) {
			if fragmentStart >= 0 {
				flushFragment(characterIndex)
			}
			builder.WriteRune(character)
			continue
		}
		if fragmentStart < 0 {
			fragmentStart = characterIndex
		}
	}
	if fragmentStart >= 0 {
		flushFragment(len(record.Text))
	}

	return builder.String()
}

// replaceToken swaps the span between the first and last alphanumeric characters of fragment.
func replaceToken(fragment string, suggestion string) string {
	firstIndex := strings.IndexFunc(fragment, isASCIIAlphanumeric)
	lastIndex := strings.LastIndexFunc(fragment, isASCIIAlphanumeric)
	if firstIndex < 0 || lastIndex < 0 {
		return fragment
	}
	return fragment[:firstIndex] + suggestion + fragment[lastIndex+1:]
}

func isASCIIAlphanumeric(character rune) bool {
	return character < unicode.MaxASCII && (unicode.IsLetter(character) || unicode.IsDigit(character))
}

func lineNumberPrefix(number int) string {
	return fmt.Sprintf(lineNumberPrefixTemplate, strconv.Itoa(number)+lineNumberSuffixConstant)
}

func unreadableCause(err error) error {
	var readError *spelling.FileReadError
	if errors.As(err, &readError) && readError.Cause != nil {
		return readError.Cause
	}
	return err
}
