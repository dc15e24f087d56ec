package audit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spellscan/internal/audit"
	"github.com/temirov/spellscan/internal/dictionary"
	"github.com/temirov/spellscan/internal/source"
	"github.com/temirov/spellscan/internal/spelling"
)

const testDictionaryPathConstant = "testdata/frequency_dictionary.txt"

var errDictionaryMissing = errors.New("dictionary missing")

type recordingDiscoverer struct {
	files      []string
	err        error
	roots      [][]string
	extensions [][]string
}

func (discoverer *recordingDiscoverer) DiscoverFiles(roots []string, extensions []string) ([]string, error) {
	discoverer.roots = append(discoverer.roots, roots)
	discoverer.extensions = append(discoverer.extensions, extensions)
	return discoverer.files, discoverer.err
}

type recordingDictionaryLoader struct {
	lookup  spelling.Lookup
	err     error
	options []audit.DictionaryOptions
}

func (loader *recordingDictionaryLoader) LoadDictionary(options audit.DictionaryOptions) (spelling.Lookup, error) {
	loader.options = append(loader.options, options)
	if loader.err != nil {
		return nil, loader.err
	}
	return loader.lookup, nil
}

type mapLookup map[string]string

func (lookup mapLookup) Lookup(word string, verbosity dictionary.Verbosity) []dictionary.Suggestion {
	if correction, found := lookup[word]; found {
		return []dictionary.Suggestion{{Term: correction, Distance: 1, Frequency: 1}}
	}
	return nil
}

type stubFetcher struct {
	checkoutPath string
	err          error
	requests     []source.Request
}

func (fetcher *stubFetcher) Fetch(executionContext context.Context, request source.Request) (*source.Checkout, error) {
	fetcher.requests = append(fetcher.requests, request)
	if fetcher.err != nil {
		return nil, fetcher.err
	}
	return &source.Checkout{Path: fetcher.checkoutPath}, nil
}

func writeTree(testInstance *testing.T, files map[string]string) string {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o600))
	}
	return rootDirectory
}
