package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sajari/fuzzy"
)

const (
	fuzzyFrequencyThresholdConstant     = 0
	scannerInitialBufferSizeConstant    = 64 * 1024
	scannerMaximumBufferSizeConstant    = 1024 * 1024
	dictionaryOpenErrorTemplate         = "%w: open %s: %w"
	dictionaryReadErrorTemplate         = "%w: read %s: %w"
	dictionaryEmptyErrorTemplate        = "%w: %s contains no usable terms"
	dictionaryColumnLayoutErrorTemplate = "%w: term column %d, count column %d"
	dictionaryReaderSourceName          = "reader"
)

// Dictionary is a frequency dictionary supporting approximate lookups.
type Dictionary struct {
	model           *fuzzy.Model
	frequencies     map[string]int64
	maxEditDistance int
}

// New constructs an empty dictionary that considers candidates up to maxEditDistance edits away.
// Non-positive distances fall back to DefaultMaxEditDistance.
func New(maxEditDistance int) *Dictionary {
	if maxEditDistance <= 0 {
		maxEditDistance = DefaultMaxEditDistance
	}

	model := fuzzy.NewModel()
	model.SetDepth(maxEditDistance)
	model.SetThreshold(fuzzyFrequencyThresholdConstant)
	model.SetUseAutocomplete(false)

	return &Dictionary{
		model:           model,
		frequencies:     make(map[string]int64),
		maxEditDistance: maxEditDistance,
	}
}

// MaxEditDistance reports the largest edit distance considered by lookups.
func (dictionary *Dictionary) MaxEditDistance() int {
	return dictionary.maxEditDistance
}

// TermCount reports the number of distinct terms loaded.
func (dictionary *Dictionary) TermCount() int {
	return len(dictionary.frequencies)
}

// Load reads a whitespace-separated frequency list from path. Records lacking either column or
// carrying a non-numeric count are skipped. A missing file or a list without usable terms is
// reported as ErrDictionaryUnavailable.
func (dictionary *Dictionary) Load(path string, termIndex int, countIndex int) error {
	file, openError := os.Open(path)
	if openError != nil {
		return fmt.Errorf(dictionaryOpenErrorTemplate, ErrDictionaryUnavailable, path, openError)
	}
	defer file.Close()

	return dictionary.load(file, path, termIndex, countIndex)
}

// LoadReader reads a frequency list from reader with the same rules as Load.
func (dictionary *Dictionary) LoadReader(reader io.Reader, termIndex int, countIndex int) error {
	return dictionary.load(reader, dictionaryReaderSourceName, termIndex, countIndex)
}

func (dictionary *Dictionary) load(reader io.Reader, sourceName string, termIndex int, countIndex int) error {
	if termIndex < 0 || countIndex < 0 || termIndex == countIndex {
		return fmt.Errorf(dictionaryColumnLayoutErrorTemplate, ErrInvalidColumnLayout, termIndex, countIndex)
	}

	requiredColumns := max(termIndex, countIndex) + 1
	loadedFrequencies := make(map[string]int64)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, scannerInitialBufferSizeConstant), scannerMaximumBufferSizeConstant)
	for scanner.Scan() {
		columns := strings.Fields(scanner.Text())
		if len(columns) < requiredColumns {
			continue
		}

		count, parseError := strconv.ParseInt(columns[countIndex], 10, 64)
		if parseError != nil || count <= 0 {
			continue
		}

		term := strings.ToLower(columns[termIndex])
		loadedFrequencies[term] += count
	}
	if scanError := scanner.Err(); scanError != nil {
		return fmt.Errorf(dictionaryReadErrorTemplate, ErrDictionaryUnavailable, sourceName, scanError)
	}

	if len(loadedFrequencies) == 0 {
		return fmt.Errorf(dictionaryEmptyErrorTemplate, ErrDictionaryUnavailable, sourceName)
	}

	for term, count := range loadedFrequencies {
		dictionary.frequencies[term] += count
		dictionary.model.SetCount(term, int(dictionary.frequencies[term]), true)
	}

	return nil
}

// Lookup returns candidates for word ordered by increasing edit distance, then decreasing frequency,
// then term. A word present in the dictionary is its own distance-zero candidate. Words without any
// candidate within the maximum edit distance yield an empty result.
func (dictionary *Dictionary) Lookup(word string, verbosity Verbosity) []Suggestion {
	normalizedWord := strings.ToLower(strings.TrimSpace(word))
	if len(normalizedWord) == 0 {
		return nil
	}

	frequency, known := dictionary.frequencies[normalizedWord]
	if known && verbosity != VerbosityAll {
		return []Suggestion{{Term: normalizedWord, Distance: 0, Frequency: frequency}}
	}

	candidates := dictionary.collectCandidates(normalizedWord)
	if len(candidates) == 0 {
		return nil
	}

	switch verbosity {
	case VerbosityTop:
		return candidates[:1]
	case VerbosityClosest:
		closestDistance := candidates[0].Distance
		closestCount := 0
		for closestCount < len(candidates) && candidates[closestCount].Distance == closestDistance {
			closestCount++
		}
		return candidates[:closestCount]
	default:
		return candidates
	}
}

// collectCandidates queries the model exhaustively; its staged mode stops at the first
// stage with any hit and can miss closer terms.
func (dictionary *Dictionary) collectCandidates(normalizedWord string) []Suggestion {
	potentialTerms := dictionary.model.Suggestions(normalizedWord, true)
	if _, known := dictionary.frequencies[normalizedWord]; known {
		potentialTerms = append(potentialTerms, normalizedWord)
	}

	seen := make(map[string]struct{}, len(potentialTerms))
	candidates := make([]Suggestion, 0, len(potentialTerms))
	for _, term := range potentialTerms {
		if _, duplicate := seen[term]; duplicate {
			continue
		}
		seen[term] = struct{}{}

		frequency, known := dictionary.frequencies[term]
		if !known {
			continue
		}

		distance := editDistance(normalizedWord, term)
		if distance > dictionary.maxEditDistance {
			continue
		}

		candidates = append(candidates, Suggestion{Term: term, Distance: distance, Frequency: frequency})
	}

	sort.Slice(candidates, func(first int, second int) bool {
		if candidates[first].Distance != candidates[second].Distance {
			return candidates[first].Distance < candidates[second].Distance
		}
		if candidates[first].Frequency != candidates[second].Frequency {
			return candidates[first].Frequency > candidates[second].Frequency
		}
		return candidates[first].Term < candidates[second].Term
	})

	return candidates
}
