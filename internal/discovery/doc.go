// Package discovery enumerates the files an audit should scan.
package discovery
