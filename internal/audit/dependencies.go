package audit

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/temirov/spellscan/internal/dictionary"
	"github.com/temirov/spellscan/internal/source"
	"github.com/temirov/spellscan/internal/spelling"
)

const noColorEnvironmentVariable = "NO_COLOR"

// FileDiscoverer finds auditable files under the provided roots.
type FileDiscoverer interface {
	DiscoverFiles(roots []string, extensions []string) ([]string, error)
}

// DictionaryLoader prepares the lookup capability before any scanning begins.
type DictionaryLoader interface {
	LoadDictionary(options DictionaryOptions) (spelling.Lookup, error)
}

// RepositoryFetcher prepares a local checkout of a remote repository.
type RepositoryFetcher interface {
	Fetch(executionContext context.Context, request source.Request) (*source.Checkout, error)
}

// TerminalDetector reports whether a writer is attached to a terminal.
type TerminalDetector func(writer io.Writer) bool

// FrequencyDictionaryLoader loads a term/count frequency list from disk.
type FrequencyDictionaryLoader struct{}

// LoadDictionary builds a dictionary from options.Path.
func (FrequencyDictionaryLoader) LoadDictionary(options DictionaryOptions) (spelling.Lookup, error) {
	frequencyDictionary := dictionary.New(options.MaxEditDistance)
	if loadError := frequencyDictionary.Load(options.Path, options.TermIndex, options.CountIndex); loadError != nil {
		return nil, loadError
	}
	return frequencyDictionary, nil
}

// IsTerminal reports whether writer is an *os.File connected to a terminal and NO_COLOR is unset.
func IsTerminal(writer io.Writer) bool {
	if _, noColor := os.LookupEnv(noColorEnvironmentVariable); noColor {
		return false
	}
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	fileDescriptor := file.Fd()
	return isatty.IsTerminal(fileDescriptor) || isatty.IsCygwinTerminal(fileDescriptor)
}

func resolveColorEnabled(colorMode string, writer io.Writer, detector TerminalDetector) bool {
	switch colorMode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		if detector == nil {
			detector = IsTerminal
		}
		return detector(writer)
	}
}
