package spelling

import "strings"

// Tokenize splits a trimmed line on whitespace runs and strips every character that is not an ASCII
// letter or digit from each fragment. Fragments left empty are dropped. Casing is preserved.
func Tokenize(line string) []string {
	fragments := strings.Fields(line)
	tokens := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		token := stripSpecialCharacters(fragment)
		if len(token) == 0 {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TokenizeBytes tokenizes a raw line. A nil slice is a contract violation and yields ErrInvalidLine.
func TokenizeBytes(line []byte) ([]string, error) {
	if line == nil {
		return nil, ErrInvalidLine
	}
	return Tokenize(string(line)), nil
}

func stripSpecialCharacters(fragment string) string {
	var builder strings.Builder
	builder.Grow(len(fragment))
	for index := 0; index < len(fragment); index++ {
		character := fragment[index]
		if isASCIIAlphanumeric(character) {
			builder.WriteByte(character)
		}
	}
	return builder.String()
}

func isASCIIAlphanumeric(character byte) bool {
	return ('a' <= character && character <= 'z') ||
		('A' <= character && character <= 'Z') ||
		('0' <= character && character <= '9')
}
