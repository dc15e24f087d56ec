package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
)

const (
	// DefaultIgnoredDirectoryNameConstant names the directory skipped when no ignore list is configured.
	DefaultIgnoredDirectoryNameConstant = ".git"
	rootUnavailableErrorTemplate        = "%w: %s: %w"
	rootNotDirectoryErrorTemplate       = "%w: %s is not a directory"
)

// ErrRootUnavailable reports a walk root that does not exist or cannot be opened.
var ErrRootUnavailable = errors.New("discovery root unavailable")

// FilesystemFileDiscoverer locates candidate text files on disk.
type FilesystemFileDiscoverer struct {
	ignoredDirectories map[string]struct{}
}

// NewFilesystemFileDiscoverer constructs a file discoverer backed by filepath.WalkDir.
// A nil ignore list skips .git directories; an empty non-nil list skips nothing.
func NewFilesystemFileDiscoverer(ignoredDirectoryNames []string) *FilesystemFileDiscoverer {
	if ignoredDirectoryNames == nil {
		ignoredDirectoryNames = []string{DefaultIgnoredDirectoryNameConstant}
	}

	ignoredDirectories := make(map[string]struct{}, len(ignoredDirectoryNames))
	for _, directoryName := range ignoredDirectoryNames {
		if len(directoryName) == 0 {
			continue
		}
		ignoredDirectories[directoryName] = struct{}{}
	}
	return &FilesystemFileDiscoverer{ignoredDirectories: ignoredDirectories}
}

// Walk lazily yields regular files under root whose extension is in the allow-list, in
// lexicographic order per directory. Extension matching is case-sensitive. Files are not opened.
// Unreadable subdirectories are skipped; an unavailable root is yielded as an error.
func (discoverer *FilesystemFileDiscoverer) Walk(root string, extensions []string) iter.Seq2[string, error] {
	allowedExtensions := make(map[string]struct{}, len(extensions))
	for _, extension := range extensions {
		allowedExtensions[extension] = struct{}{}
	}

	return func(yield func(string, error) bool) {
		stopped := false
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				if path == root {
					return fmt.Errorf(rootUnavailableErrorTemplate, ErrRootUnavailable, root, walkError)
				}
				if directoryEntry != nil && directoryEntry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if directoryEntry.IsDir() {
				if path == root {
					return nil
				}
				if _, ignored := discoverer.ignoredDirectories[directoryEntry.Name()]; ignored {
					return fs.SkipDir
				}
				return nil
			}

			if path == root {
				return fmt.Errorf(rootNotDirectoryErrorTemplate, ErrRootUnavailable, root)
			}

			if !directoryEntry.Type().IsRegular() {
				return nil
			}

			if _, allowed := allowedExtensions[filepath.Ext(directoryEntry.Name())]; !allowed {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
		if walkError != nil && !stopped {
			yield("", walkError)
		}
	}
}

// DiscoverFiles walks every root and returns the matching files in walk order, without duplicates
// when roots overlap.
func (discoverer *FilesystemFileDiscoverer) DiscoverFiles(roots []string, extensions []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, root := range roots {
		for filePath, walkError := range discoverer.Walk(root, extensions) {
			if walkError != nil {
				return nil, walkError
			}

			cleanedPath := filepath.Clean(filePath)
			if _, alreadySeen := seen[cleanedPath]; alreadySeen {
				continue
			}
			seen[cleanedPath] = struct{}{}
			files = append(files, filePath)
		}
	}

	return files, nil
}
