// Package report turns audit results into display-ready spans and writes them through
// plain text, ANSI color, YAML, and SARIF sinks.
package report
