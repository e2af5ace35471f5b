package scrapers

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractStateJSON(t *testing.T) {
	tests := []struct {
		name     string
		document string
		marker   string
		want     string
	}{
		{
			name:     "simple assignment",
			document: `<script>window.__INITIAL_STATE__ = {"a":1};</script>`,
			marker:   "window.__INITIAL_STATE__",
			want:     `{"a":1}`,
		},
		{
			name:     "nested braces",
			document: `window.INITIAL_STATE = {"a":{"b":{"c":[1,2,3]}},"d":2}; other()`,
			marker:   "window.INITIAL_STATE",
			want:     `{"a":{"b":{"c":[1,2,3]}},"d":2}`,
		},
		{
			name:     "braces inside string literals ignored",
			document: `__PRELOADED_STATE__ = {"name":"a {weird} value","x":"\"}{"};`,
			marker:   "__PRELOADED_STATE__",
			want:     `{"name":"a {weird} value","x":"\"}{"}`,
		},
		{
			name:     "no whitespace around equals",
			document: `window.__INITIAL_STATE__={"ok":true}`,
			marker:   "window.__INITIAL_STATE__",
			want:     `{"ok":true}`,
		},
		{
			name:     "trailing content after object",
			document: `window.__INITIAL_STATE__ = {"a":1}; window.other = {"b":2};`,
			marker:   "window.__INITIAL_STATE__",
			want:     `{"a":1}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractStateJSON(tc.document, tc.marker)
			if err != nil {
				t.Fatalf("ExtractStateJSON: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
			if !json.Valid(got) {
				t.Errorf("extracted payload is not valid JSON: %s", got)
			}
		})
	}
}

func TestExtractStateJSON_Errors(t *testing.T) {
	if _, err := ExtractStateJSON(`<html><body>nothing here</body></html>`, "window.__INITIAL_STATE__"); !errors.Is(err, ErrMarkerNotFound) {
		t.Errorf("missing marker: err = %v, want ErrMarkerNotFound", err)
	}
	if _, err := ExtractStateJSON(`window.__INITIAL_STATE__ = "not an object";`, "window.__INITIAL_STATE__"); !errors.Is(err, ErrNoStateObject) {
		t.Errorf("non-object assignment: err = %v, want ErrNoStateObject", err)
	}
	if _, err := ExtractStateJSON(`window.__INITIAL_STATE__ = {"truncated": {`, "window.__INITIAL_STATE__"); !errors.Is(err, ErrNoStateObject) {
		t.Errorf("unterminated object: err = %v, want ErrNoStateObject", err)
	}
}
