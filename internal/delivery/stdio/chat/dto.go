package stdio_chat

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/humanbelnik/cinebot/internal/model"
)

// RequestDTO is the stdin document. Fields stay raw so that absent, null and
// mistyped values can be told apart.
type RequestDTO struct {
	Message     json.RawMessage `json:"message"`
	Suggestions json.RawMessage `json:"suggestions"`
}

type SuggestionDTO struct {
	Movie json.RawMessage `json:"movie"`
}

type MovieDTO struct {
	Title  json.RawMessage `json:"title"`
	Genre  json.RawMessage `json:"genre"`
	Rating json.RawMessage `json:"rating"`
	Moods  json.RawMessage `json:"moods"`
}

// ResponseDTO is the stdout document.
type ResponseDTO struct {
	Reply       string              `json:"reply"`
	Suggestions []*model.Suggestion `json:"suggestions"`
}

func ConvertFromResponse(resp model.Response) ResponseDTO {
	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []*model.Suggestion{}
	}
	return ResponseDTO{
		Reply:       resp.Reply,
		Suggestions: suggestions,
	}
}

func (r *RequestDTO) ConvertToRequest() (model.Request, error) {
	var req model.Request

	if !absent(r.Message) {
		if err := json.Unmarshal(r.Message, &req.Message); err != nil {
			return model.Request{}, fmt.Errorf("message: %w", err)
		}
	}

	if absent(r.Suggestions) {
		return req, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(r.Suggestions, &items); err != nil {
		return model.Request{}, fmt.Errorf("suggestions: %w", err)
	}

	req.Suggestions = make([]*model.Suggestion, 0, len(items))
	for i, item := range items {
		s, err := convertToSuggestion(item)
		if err != nil {
			return model.Request{}, fmt.Errorf("suggestions[%d]: %w", i, err)
		}
		req.Suggestions = append(req.Suggestions, s)
	}

	return req, nil
}

func convertToSuggestion(raw json.RawMessage) (*model.Suggestion, error) {
	if !isObject(raw) {
		return nil, fmt.Errorf("expected object, got %s", kind(raw))
	}

	var dto SuggestionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}

	echo, err := unescapeStrings(raw)
	if err != nil {
		return nil, err
	}

	s := &model.Suggestion{Raw: echo}
	if absent(dto.Movie) {
		return s, nil
	}
	if !isObject(dto.Movie) {
		return nil, fmt.Errorf("movie: expected object, got %s", kind(dto.Movie))
	}

	var movie MovieDTO
	if err := json.Unmarshal(dto.Movie, &movie); err != nil {
		return nil, fmt.Errorf("movie: %w", err)
	}

	mm, err := movie.ConvertToMovieMeta()
	if err != nil {
		return nil, fmt.Errorf("movie: %w", err)
	}
	s.Movie = mm

	return s, nil
}

func (m *MovieDTO) ConvertToMovieMeta() (model.MovieMeta, error) {
	mm := model.MovieMeta{
		Title: text(m.Title),
		Genre: text(m.Genre),
	}

	if !absent(m.Rating) {
		if err := json.Unmarshal(m.Rating, &mm.Rating); err != nil {
			return model.MovieMeta{}, fmt.Errorf("rating: %w", err)
		}
		mm.RatingLiteral = string(bytes.TrimSpace(m.Rating))
	}

	// moods are only read by mood queries, so a bad value is kept and
	// reported there instead of failing the whole request
	if !absent(m.Moods) {
		var moods []json.RawMessage
		if err := json.Unmarshal(m.Moods, &moods); err != nil {
			mm.MoodsErr = fmt.Errorf("moods: %w", err)
			return mm, nil
		}
		mm.Moods = make([]string, 0, len(moods))
		for _, mood := range moods {
			mm.Moods = append(mm.Moods, text(mood))
		}
	}

	return mm, nil
}

// unescapeStrings rewrites every string token of a valid JSON value with
// non-ASCII text written literally. Everything outside strings is copied as is.
func unescapeStrings(raw json.RawMessage) (json.RawMessage, error) {
	if bytes.IndexByte(raw, '\\') < 0 {
		return raw, nil
	}

	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '"' {
			out = append(out, raw[i])
			continue
		}

		end := i + 1
		escaped := false
		for ; end < len(raw) && raw[end] != '"'; end++ {
			if raw[end] == '\\' {
				escaped = true
				end++
			}
		}
		token := raw[i : end+1]
		i = end

		if !escaped {
			out = append(out, token...)
			continue
		}

		var str string
		if err := json.Unmarshal(token, &str); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(str); err != nil {
			return nil, err
		}
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
	}

	return out, nil
}

func absent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// text returns a JSON string unquoted, any other value as its JSON text and
// an absent value as "".
func text(raw json.RawMessage) string {
	if absent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func kind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
