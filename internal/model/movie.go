package model

import (
	"strconv"
	"strings"
)

type Genre = string

const (
	GenreDrama   Genre = "Drama"
	GenreRomance Genre = "Romance"
	GenreAction  Genre = "Action"
	GenreComedy  Genre = "Comedy"
	GenreSciFi   Genre = "Sci-Fi"
)

const EmptyRating string = "0"

// MovieMeta is the typed view of the "movie" object of a suggestion.
// Absent fields hold their defaults: empty title and genre, zero rating, no moods.
type MovieMeta struct {
	Title  string
	Genre  Genre
	Rating float64
	Moods  []string

	// MoodsErr is set when moods was present but not a list.
	MoodsErr error

	// RatingLiteral is the number exactly as it was written in the input.
	RatingLiteral string
}

// RatingString renders the rating for the reply text. Integer literals are kept
// as written, fractional values use the shortest form, whole floats keep ".0".
// Exponents below -4 or from 16 up switch to scientific notation.
func (m MovieMeta) RatingString() string {
	if m.RatingLiteral == "" {
		return EmptyRating
	}
	if !strings.ContainsAny(m.RatingLiteral, ".eE") {
		return m.RatingLiteral
	}

	sci := strconv.FormatFloat(m.Rating, 'e', -1, 64)
	if exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(m.Rating, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
