// Package spelling implements the scan-and-collect pipeline of spellscan.
//
// Tokenize extracts normalized words from a line, Scanner turns one file into a
// FileReport of per-line mistakes by consulting a Lookup capability, and
// Aggregator scans a sequence of files into an AuditResult, optionally across a
// bounded worker pool while preserving the input order.
package spelling
