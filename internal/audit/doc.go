// Package audit implements the spelling audit command: it loads the frequency dictionary, optionally
// clones a repository, walks the configured roots, scans every matching file, and renders the result.
package audit
