package scrapers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMarkerNotFound means the page carries no embedded state assignment.
	ErrMarkerNotFound = errors.New("state marker not found in document")
	// ErrNoStateObject means the marker exists but no JSON object follows it.
	ErrNoStateObject = errors.New("no JSON object after state marker")
)

// ExtractStateJSON locates the `marker = {...}` assignment each sportsbook
// embeds in a script tag and returns the brace-balanced JSON object assigned
// to it. Braces inside string literals (including escaped quotes) are
// ignored so truncation cannot happen mid-string.
func ExtractStateJSON(document, marker string) ([]byte, error) {
	idx := strings.Index(document, marker)
	if idx < 0 {
		return nil, ErrMarkerNotFound
	}
	rest := document[idx+len(marker):]

	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return nil, ErrNoStateObject
	}
	rest = rest[eq+1:]

	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return nil, ErrNoStateObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		ch := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(rest[start : i+1]), nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced braces after %q: %w", marker, ErrNoStateObject)
}
