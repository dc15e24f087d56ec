package source

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	shallowCloneDepthConstant = 1
	cloneErrorTemplate        = "unable to clone %s: %w"
)

// CloneOptions describes a shallow clone.
type CloneOptions struct {
	RepositoryURL     string
	CheckoutDirectory string
	Branch            string
	Progress          io.Writer
}

// GitCloner clones repositories with go-git, without requiring a git executable.
type GitCloner struct{}

// Clone performs a depth-one clone of options.RepositoryURL into options.CheckoutDirectory.
func (GitCloner) Clone(executionContext context.Context, options CloneOptions) error {
	cloneOptions := &git.CloneOptions{
		URL:      options.RepositoryURL,
		Depth:    shallowCloneDepthConstant,
		Progress: options.Progress,
	}
	if len(options.Branch) > 0 {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(options.Branch)
		cloneOptions.SingleBranch = true
	}

	if _, cloneError := git.PlainCloneContext(executionContext, options.CheckoutDirectory, false, cloneOptions); cloneError != nil {
		return fmt.Errorf(cloneErrorTemplate, options.RepositoryURL, cloneError)
	}
	return nil
}
