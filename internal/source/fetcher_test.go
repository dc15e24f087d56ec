package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/spellscan/internal/source"
)

const (
	testRepositoryURL   = "https://example.com/org/repository.git"
	clonedFileName      = "README.md"
	staleFileName       = "stale.txt"
	readOnlyPermissions = 0o444
	readOnlyDirectory   = 0o555
)

type recordingCloner struct {
	requests   []source.CloneOptions
	cloneError error
}

func (cloner *recordingCloner) Clone(executionContext context.Context, options source.CloneOptions) error {
	cloner.requests = append(cloner.requests, options)
	if cloner.cloneError != nil {
		return cloner.cloneError
	}
	if mkdirError := os.MkdirAll(options.CheckoutDirectory, 0o755); mkdirError != nil {
		return mkdirError
	}
	return os.WriteFile(filepath.Join(options.CheckoutDirectory, clonedFileName), []byte("hello world\n"), 0o644)
}

func createReadOnlyCheckout(testInstance *testing.T, checkoutDirectory string) {
	testInstance.Helper()

	nestedDirectory := filepath.Join(checkoutDirectory, "nested")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(checkoutDirectory, staleFileName), []byte("old"), readOnlyPermissions))
	require.NoError(testInstance, os.WriteFile(filepath.Join(nestedDirectory, staleFileName), []byte("old"), readOnlyPermissions))
	require.NoError(testInstance, os.Chmod(nestedDirectory, readOnlyDirectory))
}

func TestRemoveCheckoutClearsReadOnlyTrees(testInstance *testing.T) {
	checkoutDirectory := filepath.Join(testInstance.TempDir(), "temp_git")
	createReadOnlyCheckout(testInstance, checkoutDirectory)

	removed, removeError := source.RemoveCheckout(checkoutDirectory)
	require.NoError(testInstance, removeError)
	require.True(testInstance, removed)
	require.NoDirExists(testInstance, checkoutDirectory)

	removedAgain, secondError := source.RemoveCheckout(checkoutDirectory)
	require.NoError(testInstance, secondError)
	require.False(testInstance, removedAgain)
}

func TestRemoveCheckoutRejectsDangerousPaths(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	testCases := []struct {
		name string
		path string
	}{
		{name: "empty", path: "  "},
		{name: "filesystem_root", path: string(filepath.Separator)},
		{name: "working_directory", path: workingDirectory},
		{name: "dot", path: "."},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, removeError := source.RemoveCheckout(testCase.path)
			require.ErrorIs(testInstance, removeError, source.ErrInvalidCheckout)
		})
	}
}

func TestRemoveCheckoutRejectsAncestorsOfWorkingAndHomeDirectories(testInstance *testing.T) {
	projectDirectory := filepath.Join(testInstance.TempDir(), "project")
	workingDirectory := filepath.Join(projectDirectory, "work")
	require.NoError(testInstance, os.MkdirAll(workingDirectory, 0o755))
	keptFile := filepath.Join(workingDirectory, "notes.txt")
	require.NoError(testInstance, os.WriteFile(keptFile, []byte("keep"), 0o600))

	homeDirectory := filepath.Join(testInstance.TempDir(), "users", "auditor")
	require.NoError(testInstance, os.MkdirAll(homeDirectory, 0o755))
	testInstance.Setenv("HOME", homeDirectory)
	testInstance.Chdir(workingDirectory)

	testCases := []struct {
		name string
		path string
	}{
		{name: "parent_of_working_directory", path: ".."},
		{name: "absolute_ancestor_of_working_directory", path: projectDirectory},
		{name: "ancestor_of_home", path: filepath.Dir(homeDirectory)},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, removeError := source.RemoveCheckout(testCase.path)
			require.ErrorIs(testInstance, removeError, source.ErrInvalidCheckout)
			require.FileExists(testInstance, keptFile)
		})
	}

	siblingDirectory := filepath.Join(projectDirectory, "work-checkout")
	require.NoError(testInstance, os.MkdirAll(siblingDirectory, 0o755))
	removed, removeError := source.RemoveCheckout(siblingDirectory)
	require.NoError(testInstance, removeError)
	require.True(testInstance, removed)
	require.FileExists(testInstance, keptFile)
}

func TestFetcherReplacesPreviousCheckout(testInstance *testing.T) {
	checkoutDirectory := filepath.Join(testInstance.TempDir(), "temp_git")
	createReadOnlyCheckout(testInstance, checkoutDirectory)

	cloner := &recordingCloner{}
	fetcher := source.NewFetcher(cloner, zap.NewNop(), nil)

	checkout, fetchError := fetcher.Fetch(context.Background(), source.Request{
		RepositoryURL:     testRepositoryURL,
		CheckoutDirectory: checkoutDirectory,
		Branch:            "main",
	})
	require.NoError(testInstance, fetchError)
	defer func() { require.NoError(testInstance, checkout.Release()) }()

	require.Equal(testInstance, checkoutDirectory, checkout.Path)
	require.FileExists(testInstance, filepath.Join(checkoutDirectory, clonedFileName))
	require.NoFileExists(testInstance, filepath.Join(checkoutDirectory, staleFileName))
	require.Equal(testInstance, []source.CloneOptions{{
		RepositoryURL:     testRepositoryURL,
		CheckoutDirectory: checkoutDirectory,
		Branch:            "main",
	}}, cloner.requests)
	require.FileExists(testInstance, checkoutDirectory+".lock")
}

func TestFetcherFailures(testInstance *testing.T) {
	cloneFailure := errors.New("authentication required")

	testCases := []struct {
		name          string
		request       func(string) source.Request
		cloner        *recordingCloner
		expectedError error
	}{
		{
			name: "missing_repository",
			request: func(checkoutDirectory string) source.Request {
				return source.Request{CheckoutDirectory: checkoutDirectory}
			},
			cloner:        &recordingCloner{},
			expectedError: source.ErrMissingRepository,
		},
		{
			name: "invalid_checkout",
			request: func(string) source.Request {
				return source.Request{RepositoryURL: testRepositoryURL}
			},
			cloner:        &recordingCloner{},
			expectedError: source.ErrInvalidCheckout,
		},
		{
			name: "clone_error",
			request: func(checkoutDirectory string) source.Request {
				return source.Request{RepositoryURL: testRepositoryURL, CheckoutDirectory: checkoutDirectory}
			},
			cloner:        &recordingCloner{cloneError: cloneFailure},
			expectedError: cloneFailure,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			checkoutDirectory := filepath.Join(testInstance.TempDir(), "temp_git")
			fetcher := source.NewFetcher(testCase.cloner, zap.NewNop(), nil)

			checkout, fetchError := fetcher.Fetch(context.Background(), testCase.request(checkoutDirectory))
			require.ErrorIs(testInstance, fetchError, testCase.expectedError)
			require.Nil(testInstance, checkout)
		})
	}
}

func TestFetcherReleasesLockAfterCloneFailure(testInstance *testing.T) {
	checkoutDirectory := filepath.Join(testInstance.TempDir(), "temp_git")
	fetcher := source.NewFetcher(&recordingCloner{cloneError: errors.New("network unreachable")}, zap.NewNop(), nil)

	_, fetchError := fetcher.Fetch(context.Background(), source.Request{RepositoryURL: testRepositoryURL, CheckoutDirectory: checkoutDirectory})
	require.Error(testInstance, fetchError)

	lockChecker := flock.New(checkoutDirectory + ".lock")
	locked, lockError := lockChecker.TryLock()
	require.NoError(testInstance, lockError)
	require.True(testInstance, locked)
	require.NoError(testInstance, lockChecker.Unlock())
}

func TestFetcherWaitsForCheckoutLock(testInstance *testing.T) {
	checkoutDirectory := filepath.Join(testInstance.TempDir(), "temp_git")

	holder := flock.New(checkoutDirectory + ".lock")
	locked, lockError := holder.TryLock()
	require.NoError(testInstance, lockError)
	require.True(testInstance, locked)
	defer func() { _ = holder.Unlock() }()

	executionContext, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	cloner := &recordingCloner{}
	fetcher := source.NewFetcher(cloner, zap.NewNop(), nil)
	_, fetchError := fetcher.Fetch(executionContext, source.Request{RepositoryURL: testRepositoryURL, CheckoutDirectory: checkoutDirectory})
	require.ErrorIs(testInstance, fetchError, context.DeadlineExceeded)
	require.Empty(testInstance, cloner.requests)
}

func TestGitClonerRejectsMissingURL(testInstance *testing.T) {
	checkoutDirectory := filepath.Join(testInstance.TempDir(), "clone")
	cloneError := source.GitCloner{}.Clone(context.Background(), source.CloneOptions{CheckoutDirectory: checkoutDirectory})
	require.Error(testInstance, cloneError)
}
