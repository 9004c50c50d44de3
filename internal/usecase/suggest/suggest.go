package usecase_suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/humanbelnik/cinebot/internal/model"
)

const DefaultLimit = 12

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMalformedSuggestion = errors.New("malformed suggestion")
)

// Genres accepted for a "bored" message.
var boredGenres = []model.Genre{model.GenreComedy, model.GenreAction, model.GenreSciFi}

type IntentClassifier interface {
	Classify(text string) model.Intent
}

type ReplyComposer interface {
	Compose(top []*model.Suggestion) string
}

type Usecase struct {
	classifier IntentClassifier
	composer   ReplyComposer
	limit      int

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLimit(limit int) UsecaseOption {
	return func(u *Usecase) {
		u.limit = limit
	}
}

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(classifier IntentClassifier, composer ReplyComposer, opts ...UsecaseOption) *Usecase {
	u := &Usecase{
		classifier: classifier,
		composer:   composer,
		limit:      DefaultLimit,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.limit > DefaultLimit {
		u.limit = DefaultLimit
	}
	return u
}

// Handle classifies the message, filters and ranks the suggestions and composes the reply.
func (u *Usecase) Handle(ctx context.Context, req model.Request) (model.Response, error) {
	if u.limit <= 0 {
		return model.Response{}, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}

	intent := u.classifier.Classify(req.Message)
	filtered, err := Filter(intent, req.Suggestions)
	if err != nil {
		return model.Response{}, err
	}
	top := Rank(filtered, u.limit)

	u.logger.DebugContext(ctx, "suggestions ranked",
		slog.String("intent", string(intent.Type)),
		slog.String("genre", intent.Genre),
		slog.Int("input", len(req.Suggestions)),
		slog.Int("filtered", len(filtered)),
		slog.Int("top", len(top)),
	)

	return model.Response{
		Reply:       u.composer.Compose(top),
		Suggestions: top,
	}, nil
}

// Filter selects the suggestions matching the intent. When nothing matches
// the full input list is returned. Only mood queries read the mood tags, and
// they fail with ErrMalformedSuggestion when a tag list they need is unusable.
func Filter(intent model.Intent, suggestions []*model.Suggestion) ([]*model.Suggestion, error) {
	var keep func(s *model.Suggestion) (bool, error)

	switch intent.Type {
	case model.IntentListAll:
		return suggestions, nil
	case model.IntentBored:
		keep = func(s *model.Suggestion) (bool, error) {
			for _, g := range boredGenres {
				if s.Movie.Genre == g {
					return true, nil
				}
			}
			return false, nil
		}
	case model.IntentGenre:
		keep = func(s *model.Suggestion) (bool, error) {
			return s.Movie.Genre == intent.Genre, nil
		}
	default:
		keep = func(s *model.Suggestion) (bool, error) {
			return matchesMood(s.Movie, intent.Keyword)
		}
	}

	filtered := make([]*model.Suggestion, 0, len(suggestions))
	for i, s := range suggestions {
		ok, err := keep(s)
		if err != nil {
			return nil, fmt.Errorf("%w: suggestions[%d]: %w", ErrMalformedSuggestion, i, err)
		}
		if ok {
			filtered = append(filtered, s)
		}
	}

	if len(filtered) == 0 {
		return suggestions, nil
	}
	return filtered, nil
}

// matchesMood reports whether the genre or one of the mood tags occurs inside the keyword.
// Tags are searched in the keyword, not the keyword in the tags. The tags are not
// looked at when the genre already matches.
func matchesMood(m model.MovieMeta, keyword string) (bool, error) {
	if strings.Contains(keyword, strings.ToLower(m.Genre)) {
		return true, nil
	}
	if m.MoodsErr != nil {
		return false, m.MoodsErr
	}
	for _, mood := range m.Moods {
		if strings.Contains(keyword, strings.ToLower(mood)) {
			return true, nil
		}
	}
	return false, nil
}

// Rank returns at most limit suggestions ordered by rating, highest first.
// Equal ratings keep their input order. The input slice is not modified.
func Rank(suggestions []*model.Suggestion, limit int) []*model.Suggestion {
	ranked := make([]*model.Suggestion, len(suggestions))
	copy(ranked, suggestions)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Movie.Rating > ranked[j].Movie.Rating
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
