package model

import "encoding/json"

// Suggestion is an opaque candidate record. Raw holds the record exactly as
// received and is what gets written back; Movie is decoded from it for filtering.
type Suggestion struct {
	Raw   json.RawMessage
	Movie MovieMeta
}

func (s Suggestion) MarshalJSON() ([]byte, error) {
	if len(s.Raw) == 0 {
		return []byte("{}"), nil
	}
	return s.Raw, nil
}

type Request struct {
	Message     string
	Suggestions []*Suggestion
}

type Response struct {
	Reply       string
	Suggestions []*Suggestion
}
