package stdio_chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/humanbelnik/cinebot/internal/model"
	"github.com/humanbelnik/cinebot/internal/service/intent_classifier"
	"github.com/humanbelnik/cinebot/internal/service/reply_composer"
	usecase_suggest "github.com/humanbelnik/cinebot/internal/usecase/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

const cinemaPayload = `{
  "message": "I want a drama movie",
  "suggestions": [
    {"cinemaName": "Nile Stars Cinema", "city": "Cairo",
     "movie": {"id": "m3", "title": "Tears of Winter", "genre": "Drama", "rating": 8, "moods": ["sad", "deep"]},
     "showtimes": ["16:30", "21:30"]},
    {"cinemaName": "Nile Stars Cinema", "city": "Cairo",
     "movie": {"id": "m2", "title": "Shadow Protocol", "genre": "Action", "rating": 9, "moods": ["excited"]},
     "showtimes": ["18:00"]}
  ]
}`

func newController() *Controller {
	composer := reply_composer.New(reply_composer.WithPicker(firstPicker{}))
	uc := usecase_suggest.New(intent_classifier.New(), composer)
	return New(uc)
}

type output struct {
	Reply       string            `json:"reply"`
	Suggestions []json.RawMessage `json:"suggestions"`
}

func serve(t *testing.T, input string) (string, output) {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, newController().Serve(context.Background(), strings.NewReader(input), &out))

	var decoded output
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	return out.String(), decoded
}

func TestServeGenre(t *testing.T) {
	raw, out := serve(t, cinemaPayload)

	require.Len(t, out.Suggestions, 1)
	assert.JSONEq(t,
		`{"cinemaName": "Nile Stars Cinema", "city": "Cairo",
		  "movie": {"id": "m3", "title": "Tears of Winter", "genre": "Drama", "rating": 8, "moods": ["sad", "deep"]},
		  "showtimes": ["16:30", "21:30"]}`,
		string(out.Suggestions[0]),
	)
	assert.Equal(t,
		"تمام يا بطل ✨ لقيت 1 ترشيحات مناسبة. أعلى تقييم حالياً Tears of Winter (8). تحب أفلتر حسب السعر؟",
		out.Reply,
	)
	assert.True(t, strings.HasSuffix(raw, "}\n"))
	assert.Equal(t, 1, strings.Count(raw, "\n"))
	assert.Contains(t, raw, "أعلى تقييم")
	assert.NotContains(t, raw, `\u`)
}

func TestServeEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "{}"} {
		raw, out := serve(t, input)

		assert.Contains(t, raw, `"suggestions":[]`)
		assert.Empty(t, out.Suggestions)
		assert.Equal(t,
			"تمام يا بطل ✨ ملقتش نتائج قوية حالياً، لكن ممكن نجرب مود مختلف. تحب أفلتر حسب السعر؟",
			out.Reply,
		)
	}
}

func TestServeMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "hello"},
		{name: "truncated", input: `{"message": "hi"`},
		{name: "top level array", input: `[1, 2]`},
		{name: "message not a string", input: `{"message": 5}`},
		{name: "suggestions not a list", input: `{"suggestions": {"movie": {}}}`},
		{name: "suggestion not an object", input: `{"suggestions": ["x"]}`},
		{name: "movie not an object", input: `{"suggestions": [{"movie": "Drama"}]}`},
		{name: "rating not a number", input: `{"suggestions": [{"movie": {"rating": "high"}}]}`},
		{name: "moods not a list for a mood query", input: `{"message": "sad", "suggestions": [{"movie": {"genre": "Drama", "moods": "sad"}}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newController().Serve(context.Background(), strings.NewReader(tc.input), &out)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			assert.Zero(t, out.Len())
		})
	}
}

func TestServeIgnoresMoodsOutsideMoodQueries(t *testing.T) {
	_, out := serve(t, `{"message": "drama", "suggestions": [{"movie": {"title": "Broken Promise", "genre": "Drama", "rating": 6, "moods": "sad"}}]}`)

	require.Len(t, out.Suggestions, 1)
	assert.Contains(t, out.Reply, "Broken Promise (6)")
}

func TestServeUnescapesSuggestions(t *testing.T) {
	input := `{"message": "all movies", "suggestions": [
		{"cinemaName": "\u0633\u064a\u0646\u0645\u0627", "z": 1.50, "a": "Tom \u0026 \"Jerry\" \u003c3\n",
		 "movie": {"title": "\u0641\u064a\u0644\u0645", "genre": "Drama", "rating": 7.0, "moods": ["\u062d\u0632\u064a\u0646"]}}
	]}`

	raw, out := serve(t, input)

	require.Len(t, out.Suggestions, 1)
	assert.Equal(t,
		`{"cinemaName":"سينما","z":1.50,"a":"Tom & \"Jerry\" <3\n","movie":{"title":"فيلم","genre":"Drama","rating":7.0,"moods":["حزين"]}}`,
		string(out.Suggestions[0]),
	)
	assert.NotContains(t, raw, `\u`)
	assert.Contains(t, out.Reply, "فيلم (7.0)")
}

func TestDecodeDefaults(t *testing.T) {
	req, err := Decode([]byte(`{"suggestions": [{}, {"movie": {}}, {"movie": {"genre": null, "moods": null, "rating": null}}]}`))

	require.NoError(t, err)
	assert.Equal(t, "", req.Message)
	require.Len(t, req.Suggestions, 3)
	for _, s := range req.Suggestions {
		assert.Equal(t, model.MovieMeta{}, s.Movie)
	}
}

func TestDecodeMovie(t *testing.T) {
	req, err := Decode([]byte(`{"message": "Hi", "suggestions": [
		{"movie": {"title": "Code of Future", "genre": "Sci-Fi", "rating": 7.50, "moods": ["Curious", 3]}}
	]}`))

	require.NoError(t, err)
	assert.Equal(t, "Hi", req.Message)
	require.Len(t, req.Suggestions, 1)
	assert.Equal(t, model.MovieMeta{
		Title:         "Code of Future",
		Genre:         "Sci-Fi",
		Rating:        7.5,
		RatingLiteral: "7.50",
		Moods:         []string{"Curious", "3"},
	}, req.Suggestions[0].Movie)
	assert.Equal(t, "7.5", req.Suggestions[0].Movie.RatingString())
}

func TestServeTruncatesAndSorts(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"message": "all movies", "suggestions": [`)
	for i := range 15 {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"movie": {"title": "m", "rating": `)
		sb.WriteString(string(rune('0' + i%10)))
		sb.WriteString(`}}`)
	}
	sb.WriteString(`]}`)

	_, out := serve(t, sb.String())

	require.Len(t, out.Suggestions, usecase_suggest.DefaultLimit)
	prev := 10.0
	for _, raw := range out.Suggestions {
		var s struct {
			Movie struct {
				Rating float64 `json:"rating"`
			} `json:"movie"`
		}
		require.NoError(t, json.Unmarshal(raw, &s))
		assert.LessOrEqual(t, s.Movie.Rating, prev)
		prev = s.Movie.Rating
	}
}

func TestEncodeKeepsHTMLAndUnicode(t *testing.T) {
	var out bytes.Buffer
	resp := model.Response{
		Reply:       "<b> & مرحبا",
		Suggestions: []*model.Suggestion{{Raw: json.RawMessage(`{ "movie" : {"title": "Tom & Jerry <3"} }`)}},
	}

	require.NoError(t, Encode(&out, resp))
	assert.Equal(t, `{"reply":"<b> & مرحبا","suggestions":[{"movie":{"title":"Tom & Jerry <3"}}]}`+"\n", out.String())
}
