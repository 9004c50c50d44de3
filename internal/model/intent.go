package model

type IntentType string

const (
	IntentListAll IntentType = "list_all"
	IntentBored   IntentType = "bored"
	IntentGenre   IntentType = "genre"
	IntentMood    IntentType = "mood"
)

// Intent is the coarse purpose of a chat message.
// Genre is set only for IntentGenre, Keyword only for IntentMood.
type Intent struct {
	Type    IntentType
	Genre   Genre
	Keyword string
}

func ListAllIntent() Intent {
	return Intent{Type: IntentListAll}
}

func BoredIntent() Intent {
	return Intent{Type: IntentBored}
}

func GenreIntent(g Genre) Intent {
	return Intent{Type: IntentGenre, Genre: g}
}

func MoodIntent(keyword string) Intent {
	return Intent{Type: IntentMood, Keyword: keyword}
}
