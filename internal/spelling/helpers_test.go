package spelling_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spellscan/internal/dictionary"
)

// stubLookup knows a fixed vocabulary and a fixed set of near-miss corrections.
type stubLookup struct {
	knownWords  map[string]struct{}
	corrections map[string]string
	mutex       sync.Mutex
	queries     []string
}

func newStubLookup(knownWords []string, corrections map[string]string) *stubLookup {
	known := make(map[string]struct{}, len(knownWords))
	for _, word := range knownWords {
		known[word] = struct{}{}
	}
	return &stubLookup{knownWords: known, corrections: corrections}
}

func (lookup *stubLookup) Lookup(word string, verbosity dictionary.Verbosity) []dictionary.Suggestion {
	lookup.mutex.Lock()
	lookup.queries = append(lookup.queries, word)
	lookup.mutex.Unlock()

	if _, known := lookup.knownWords[word]; known {
		return []dictionary.Suggestion{{Term: word, Distance: 0, Frequency: 100}}
	}
	if correction, found := lookup.corrections[word]; found {
		return []dictionary.Suggestion{{Term: correction, Distance: 1, Frequency: 50}}
	}
	return nil
}

func (lookup *stubLookup) recordedQueries() []string {
	lookup.mutex.Lock()
	defer lookup.mutex.Unlock()
	return append([]string{}, lookup.queries...)
}

func writeFixtureFile(testInstance *testing.T, directory string, name string, lines ...string) string {
	testInstance.Helper()

	filePath := filepath.Join(directory, name)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(testInstance, os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), 0o600))
	return filePath
}

var defaultKnownWords = []string{"this", "is", "a", "test", "hello", "world", "the", "file", "clean"}

var defaultCorrections = map[string]string{
	"tset":  "test",
	"wrold": "world",
	"teh":   "the",
}
