package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is an American odds quote. Upstream feeds publish it either as a
// signed number or as a string like "+150"; the original JSON form is kept
// verbatim for snapshots and parsed on demand for comparisons. The zero value
// means "no quote".
type Price struct {
	raw json.RawMessage
}

// NumberPrice builds a numeric quote.
func NumberPrice(v float64) Price {
	return Price{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// StringPrice builds a string quote such as "+150" or "-110".
func StringPrice(s string) Price {
	b, _ := json.Marshal(s)
	return Price{raw: b}
}

// Quoted reports whether the bookmaker published any price at all.
func (p Price) Quoted() bool {
	return p.raw != nil
}

// Numeric parses the quote as a signed number. String quotes with a leading
// "+" or "-" are accepted; anything unparsable reports false and is excluded
// from best-price selection.
func (p Price) Numeric() (float64, bool) {
	if p.raw == nil {
		return 0, false
	}
	if p.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(p.raw, &s); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	var v float64
	if err := json.Unmarshal(p.raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		p.raw = nil
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.(type) {
	case string, float64:
		p.raw = append(json.RawMessage(nil), b...)
		return nil
	}
	return fmt.Errorf("price must be a number or string, got %s", b)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.raw == nil {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// ID is an opaque upstream identifier. Feeds emit numbers or strings; both
// are normalized to their string form, empty meaning absent. This matches the
// stringified comparison the API's event_id filter performs.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}
