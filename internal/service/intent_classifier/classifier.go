package intent_classifier

import (
	"regexp"
	"strings"

	"github.com/humanbelnik/cinebot/internal/model"
)

type rule struct {
	pattern *regexp.Regexp
	intent  func(value string) model.Intent
}

// Classifier maps a chat message to an intent. Rules are evaluated in order
// and the first match wins; messages matching nothing become a mood query.
type Classifier struct {
	rules []rule
}

func New() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				pattern: regexp.MustCompile(`all movies|كل الافلام|اعرض كل`),
				intent:  func(string) model.Intent { return model.ListAllIntent() },
			},
			{
				pattern: regexp.MustCompile(`زهقان|bored`),
				intent:  func(string) model.Intent { return model.BoredIntent() },
			},
			genreRule(`drama|دراما`, model.GenreDrama),
			genreRule(`romance|رومانسي`, model.GenreRomance),
			genreRule(`action|اكشن`, model.GenreAction),
			genreRule(`comedy|كوميدي`, model.GenreComedy),
		},
	}
}

func genreRule(expr string, g model.Genre) rule {
	return rule{
		pattern: regexp.MustCompile(expr),
		intent:  func(string) model.Intent { return model.GenreIntent(g) },
	}
}

func (c *Classifier) Classify(text string) model.Intent {
	value := strings.ToLower(strings.TrimSpace(text))

	for _, r := range c.rules {
		if r.pattern.MatchString(value) {
			return r.intent(value)
		}
	}

	return model.MoodIntent(value)
}
