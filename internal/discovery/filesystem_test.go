package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spellscan/internal/discovery"
)

const (
	fixtureDirectoryPermissions = 0o755
	fixtureFilePermissions      = 0o600
	fixtureFileContent          = "hello world\n"
)

var defaultExtensions = []string{".txt", ".md", ".cs"}

func createFixtureTree(testInstance *testing.T, relativePaths ...string) string {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), fixtureDirectoryPermissions))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(fixtureFileContent), fixtureFilePermissions))
	}
	return rootDirectory
}

func joinAll(rootDirectory string, relativePaths ...string) []string {
	joinedPaths := make([]string, 0, len(relativePaths))
	for _, relativePath := range relativePaths {
		joinedPaths = append(joinedPaths, filepath.Join(rootDirectory, filepath.FromSlash(relativePath)))
	}
	return joinedPaths
}

func TestFilesystemFileDiscovererFiltersByExtension(testInstance *testing.T) {
	rootDirectory := createFixtureTree(
		testInstance,
		"README.md",
		"notes.json",
		"docs/guide.txt",
		"docs/image.png",
		"src/Program.cs",
		"src/program.CS",
		"src/nested/Deep.md",
	)

	testCases := []struct {
		name          string
		extensions    []string
		expectedFiles []string
	}{
		{
			name:          "default_extensions",
			extensions:    defaultExtensions,
			expectedFiles: joinAll(rootDirectory, "README.md", "docs/guide.txt", "src/Program.cs", "src/nested/Deep.md"),
		},
		{
			name:          "single_extension",
			extensions:    []string{".md"},
			expectedFiles: joinAll(rootDirectory, "README.md", "src/nested/Deep.md"),
		},
		{
			name:          "case_sensitive_extension",
			extensions:    []string{".CS"},
			expectedFiles: joinAll(rootDirectory, "src/program.CS"),
		},
		{
			name:          "no_extensions",
			extensions:    nil,
			expectedFiles: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			discoverer := discovery.NewFilesystemFileDiscoverer(nil)
			discoveredFiles, discoveryError := discoverer.DiscoverFiles([]string{rootDirectory}, testCase.extensions)
			require.NoError(testInstance, discoveryError)
			require.Equal(testInstance, testCase.expectedFiles, discoveredFiles)
		})
	}
}

func TestFilesystemFileDiscovererSkipsIgnoredDirectories(testInstance *testing.T) {
	rootDirectory := createFixtureTree(
		testInstance,
		".git/description.txt",
		"vendor/module/README.md",
		"notes.txt",
	)

	testCases := []struct {
		name               string
		ignoredDirectories []string
		expectedFiles      []string
	}{
		{
			name:               "default_ignore_list",
			ignoredDirectories: nil,
			expectedFiles:      joinAll(rootDirectory, "notes.txt", "vendor/module/README.md"),
		},
		{
			name:               "custom_ignore_list",
			ignoredDirectories: []string{".git", "vendor"},
			expectedFiles:      joinAll(rootDirectory, "notes.txt"),
		},
		{
			name:               "empty_ignore_list",
			ignoredDirectories: []string{},
			expectedFiles:      joinAll(rootDirectory, ".git/description.txt", "notes.txt", "vendor/module/README.md"),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			discoverer := discovery.NewFilesystemFileDiscoverer(testCase.ignoredDirectories)
			discoveredFiles, discoveryError := discoverer.DiscoverFiles([]string{rootDirectory}, defaultExtensions)
			require.NoError(testInstance, discoveryError)
			require.Equal(testInstance, testCase.expectedFiles, discoveredFiles)
		})
	}
}

func TestFilesystemFileDiscovererDeduplicatesOverlappingRoots(testInstance *testing.T) {
	rootDirectory := createFixtureTree(testInstance, "a.txt", "nested/b.md")

	discoverer := discovery.NewFilesystemFileDiscoverer(nil)
	discoveredFiles, discoveryError := discoverer.DiscoverFiles(
		[]string{filepath.Join(rootDirectory, "nested"), rootDirectory},
		defaultExtensions,
	)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, joinAll(rootDirectory, "nested/b.md", "a.txt"), discoveredFiles)
}

func TestFilesystemFileDiscovererRejectsUnavailableRoots(testInstance *testing.T) {
	rootDirectory := createFixtureTree(testInstance, "a.txt")

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_root", root: filepath.Join(rootDirectory, "absent")},
		{name: "file_root", root: filepath.Join(rootDirectory, "a.txt")},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			discoverer := discovery.NewFilesystemFileDiscoverer(nil)
			_, discoveryError := discoverer.DiscoverFiles([]string{testCase.root}, defaultExtensions)
			require.ErrorIs(testInstance, discoveryError, discovery.ErrRootUnavailable)
		})
	}
}

func TestFilesystemFileDiscovererWalkStopsEarly(testInstance *testing.T) {
	rootDirectory := createFixtureTree(testInstance, "a.txt", "b.txt", "c.txt")

	discoverer := discovery.NewFilesystemFileDiscoverer(nil)
	var visitedFiles []string
	for filePath, walkError := range discoverer.Walk(rootDirectory, defaultExtensions) {
		require.NoError(testInstance, walkError)
		visitedFiles = append(visitedFiles, filePath)
		if len(visitedFiles) == 2 {
			break
		}
	}
	require.Equal(testInstance, joinAll(rootDirectory, "a.txt", "b.txt"), visitedFiles)
}
