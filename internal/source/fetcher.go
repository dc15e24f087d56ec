package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const (
	lockFileSuffixConstant         = ".lock"
	lockRetryDelayConstant         = 100 * time.Millisecond
	writableDirectoryPermissions   = 0o755
	writableFilePermissions        = 0o644
	invalidCheckoutErrorTemplate   = "%w: %q"
	acquireLockErrorTemplate       = "unable to lock checkout %s: %w"
	releaseLockErrorTemplate       = "unable to release checkout lock %s: %w"
	removeCheckoutErrorTemplate    = "unable to remove previous checkout %s: %w"
	resolveCheckoutErrorTemplate   = "unable to resolve checkout directory %s: %w"
	fetchStartedMessageConstant    = "cloning repository"
	previousCheckoutRemovedMessage = "removed previous checkout"
	fetchCompletedMessageConstant  = "repository ready"
	logFieldRepositoryConstant     = "repository"
	logFieldCheckoutConstant       = "checkout"
	logFieldBranchConstant         = "branch"
)

var (
	// ErrInvalidCheckout reports a checkout directory that must never be deleted.
	ErrInvalidCheckout = errors.New("invalid checkout directory")
	// ErrMissingRepository reports a fetch request without a repository URL.
	ErrMissingRepository = errors.New("repository url is required")
)

// Cloner copies a remote repository onto local disk.
type Cloner interface {
	Clone(executionContext context.Context, options CloneOptions) error
}

// Request describes which repository to fetch and where to place it.
type Request struct {
	RepositoryURL     string
	CheckoutDirectory string
	Branch            string
}

// Checkout is a prepared working tree. The checkout lock is held until Release is called.
type Checkout struct {
	Path string
	lock *flock.Flock
}

// Release unlocks the checkout.
func (checkout *Checkout) Release() error {
	if checkout == nil || checkout.lock == nil {
		return nil
	}
	if unlockError := checkout.lock.Unlock(); unlockError != nil {
		return fmt.Errorf(releaseLockErrorTemplate, checkout.lock.Path(), unlockError)
	}
	return nil
}

// Fetcher replaces a checkout directory with a fresh shallow clone.
type Fetcher struct {
	cloner   Cloner
	logger   *zap.Logger
	progress io.Writer
}

// NewFetcher constructs a Fetcher. A nil cloner uses go-git.
func NewFetcher(cloner Cloner, logger *zap.Logger, progress io.Writer) *Fetcher {
	if cloner == nil {
		cloner = GitCloner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{cloner: cloner, logger: logger, progress: progress}
}

// Fetch locks <checkout>.lock, removes any previous checkout, and clones the repository into it.
// The returned Checkout keeps the lock so a concurrent run cannot delete the tree mid-audit.
func (fetcher *Fetcher) Fetch(executionContext context.Context, request Request) (*Checkout, error) {
	if len(strings.TrimSpace(request.RepositoryURL)) == 0 {
		return nil, ErrMissingRepository
	}

	checkoutPath, resolveError := resolveCheckoutDirectory(request.CheckoutDirectory)
	if resolveError != nil {
		return nil, resolveError
	}

	if mkdirError := os.MkdirAll(filepath.Dir(checkoutPath), writableDirectoryPermissions); mkdirError != nil {
		return nil, fmt.Errorf(acquireLockErrorTemplate, checkoutPath, mkdirError)
	}

	lock := flock.New(checkoutPath + lockFileSuffixConstant)
	locked, lockError := lock.TryLockContext(executionContext, lockRetryDelayConstant)
	if lockError != nil {
		return nil, fmt.Errorf(acquireLockErrorTemplate, checkoutPath, lockError)
	}
	if !locked {
		return nil, fmt.Errorf(acquireLockErrorTemplate, checkoutPath, executionContext.Err())
	}
	checkout := &Checkout{Path: checkoutPath, lock: lock}

	removed, removeError := RemoveCheckout(checkoutPath)
	if removeError != nil {
		_ = checkout.Release()
		return nil, removeError
	}
	if removed {
		fetcher.logger.Debug(previousCheckoutRemovedMessage, zap.String(logFieldCheckoutConstant, checkoutPath))
	}

	fetcher.logger.Info(
		fetchStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, request.RepositoryURL),
		zap.String(logFieldCheckoutConstant, checkoutPath),
		zap.String(logFieldBranchConstant, request.Branch),
	)
	cloneError := fetcher.cloner.Clone(executionContext, CloneOptions{
		RepositoryURL:     request.RepositoryURL,
		CheckoutDirectory: checkoutPath,
		Branch:            request.Branch,
		Progress:          fetcher.progress,
	})
	if cloneError != nil {
		_ = checkout.Release()
		return nil, cloneError
	}

	fetcher.logger.Info(fetchCompletedMessageConstant, zap.String(logFieldCheckoutConstant, checkoutPath))
	return checkout, nil
}

// RemoveCheckout clears read-only permission bits throughout path and deletes it. A missing path is
// not an error; the returned flag reports whether anything was removed.
func RemoveCheckout(path string) (bool, error) {
	checkoutPath, resolveError := resolveCheckoutDirectory(path)
	if resolveError != nil {
		return false, resolveError
	}

	if _, statError := os.Lstat(checkoutPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(removeCheckoutErrorTemplate, checkoutPath, statError)
	}

	permissionError := filepath.WalkDir(checkoutPath, func(entryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		switch {
		case directoryEntry.IsDir():
			return os.Chmod(entryPath, writableDirectoryPermissions)
		case directoryEntry.Type().IsRegular():
			return os.Chmod(entryPath, writableFilePermissions)
		default:
			return nil
		}
	})
	if permissionError != nil {
		return false, fmt.Errorf(removeCheckoutErrorTemplate, checkoutPath, permissionError)
	}

	if removeError := os.RemoveAll(checkoutPath); removeError != nil {
		return false, fmt.Errorf(removeCheckoutErrorTemplate, checkoutPath, removeError)
	}
	return true, nil
}

func resolveCheckoutDirectory(path string) (string, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return "", fmt.Errorf(invalidCheckoutErrorTemplate, ErrInvalidCheckout, path)
	}

	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(resolveCheckoutErrorTemplate, path, absoluteError)
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(resolveCheckoutErrorTemplate, path, workingDirectoryError)
	}

	if absolutePath == filepath.Dir(absolutePath) || containsPath(absolutePath, workingDirectory) {
		return "", fmt.Errorf(invalidCheckoutErrorTemplate, ErrInvalidCheckout, path)
	}
	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && containsPath(absolutePath, filepath.Clean(homeDirectory)) {
		return "", fmt.Errorf(invalidCheckoutErrorTemplate, ErrInvalidCheckout, path)
	}
	return absolutePath, nil
}

// containsPath reports whether candidate equals directory or lies beneath it.
func containsPath(directory string, candidate string) bool {
	relativePath, relativeError := filepath.Rel(directory, candidate)
	if relativeError != nil {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}
