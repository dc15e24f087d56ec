package dictionary

import "errors"

// Verbosity controls how many candidates a lookup returns.
type Verbosity int

// Supported verbosity levels.
const (
	// VerbosityTop returns the single best candidate, or none.
	VerbosityTop Verbosity = iota
	// VerbosityClosest returns every candidate sharing the smallest edit distance.
	VerbosityClosest
	// VerbosityAll returns every candidate within the maximum edit distance.
	VerbosityAll
)

const (
	verbosityTopNameConstant     = "top"
	verbosityClosestNameConstant = "closest"
	verbosityAllNameConstant     = "all"
	verbosityUnknownNameConstant = "unknown"
)

// String returns the lower-case verbosity name.
func (verbosity Verbosity) String() string {
	switch verbosity {
	case VerbosityTop:
		return verbosityTopNameConstant
	case VerbosityClosest:
		return verbosityClosestNameConstant
	case VerbosityAll:
		return verbosityAllNameConstant
	default:
		return verbosityUnknownNameConstant
	}
}

// Suggestion is a ranked dictionary candidate for a looked-up word.
type Suggestion struct {
	Term      string
	Distance  int
	Frequency int64
}

// DefaultMaxEditDistance is the edit distance used when none is configured.
const DefaultMaxEditDistance = 2

// Default column layout of a "term count" frequency list.
const (
	DefaultTermIndex  = 0
	DefaultCountIndex = 1
)

// ErrDictionaryUnavailable reports that a dictionary could not be loaded and no lookups are possible.
var ErrDictionaryUnavailable = errors.New("dictionary unavailable")

// ErrInvalidColumnLayout reports negative or coinciding term and count column indices.
var ErrInvalidColumnLayout = errors.New("invalid dictionary column layout")
