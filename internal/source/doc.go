// Package source prepares a local checkout of a remote Git repository for auditing.
package source
