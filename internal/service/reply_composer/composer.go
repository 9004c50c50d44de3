package reply_composer

import (
	"fmt"
	"math/rand/v2"

	"github.com/humanbelnik/cinebot/internal/model"
)

var (
	defaultOpeners = []string{
		"تمام يا بطل ✨",
		"حلو جدًا 👌",
		"عندي لك اختيارات قوية 🎬",
		"جاهز! لقيت المناسب ليك 🔥",
	}
	defaultClosers = []string{
		"تحب أفلتر حسب السعر؟",
		"ممكن أطلع لك أرخص تذاكر لو حابب.",
		"ولو حابب نوع معين قولّي وهنضيّق البحث أكثر.",
	}
)

const (
	emptyTemplate = "%s ملقتش نتائج قوية حالياً، لكن ممكن نجرب مود مختلف. %s"
	foundTemplate = "%s لقيت %d ترشيحات مناسبة. أعلى تقييم حالياً %s (%s). %s"
)

// Picker returns an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type randomPicker struct{}

func (randomPicker) IntN(n int) int {
	return rand.IntN(n)
}

type Composer struct {
	openers []string
	closers []string
	picker  Picker
}

type ComposerOption func(*Composer)

func WithPicker(p Picker) ComposerOption {
	return func(c *Composer) {
		c.picker = p
	}
}

func New(opts ...ComposerOption) *Composer {
	c := &Composer{
		openers: defaultOpeners,
		closers: defaultClosers,
		picker:  randomPicker{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the reply for the ranked list. The opener is picked before the closer.
func (c *Composer) Compose(top []*model.Suggestion) string {
	lead := c.openers[c.picker.IntN(len(c.openers))]
	tail := c.closers[c.picker.IntN(len(c.closers))]

	if len(top) == 0 {
		return fmt.Sprintf(emptyTemplate, lead, tail)
	}

	best := top[0].Movie
	return fmt.Sprintf(foundTemplate, lead, len(top), best.Title, best.RatingString(), tail)
}
