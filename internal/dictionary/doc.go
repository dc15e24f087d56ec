// Package dictionary adapts a frequency dictionary to the approximate-matching
// lookup capability consumed by the spelling pipeline.
//
// Dictionary loads "term count" records from a frequency list, trains a
// github.com/sajari/fuzzy model for candidate generation, and ranks candidates by
// edit distance and frequency. Lookups are safe for concurrent use once loading
// has finished.
package dictionary
