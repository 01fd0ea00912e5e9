package video

import "strings"

// Rating is the age classification of a video
type Rating string

const (
	RatingER    Rating = "ER"
	RatingL     Rating = "L"
	RatingAge10 Rating = "AGE_10"
	RatingAge12 Rating = "AGE_12"
	RatingAge14 Rating = "AGE_14"
	RatingAge16 Rating = "AGE_16"
	RatingAge18 Rating = "AGE_18"
)

var ratingLabels = map[Rating]string{
	RatingER:    "ER",
	RatingL:     "L",
	RatingAge10: "10",
	RatingAge12: "12",
	RatingAge14: "14",
	RatingAge16: "16",
	RatingAge18: "18",
}

// Ratings lists every rating in display order
func Ratings() []Rating {
	return []Rating{RatingER, RatingL, RatingAge10, RatingAge12, RatingAge14, RatingAge16, RatingAge18}
}

// Label returns the display label, e.g. "10" for AGE_10
func (r Rating) Label() string {
	return ratingLabels[r]
}

func (r Rating) String() string {
	return string(r)
}

// RatingOf looks a rating up by its label, ignoring case.
func RatingOf(label string) (Rating, bool) {
	for _, r := range Ratings() {
		if strings.EqualFold(r.Label(), label) {
			return r, true
		}
	}
	return "", false
}

// ParseRating accepts either the rating name or its label.
func ParseRating(s string) (Rating, bool) {
	for _, r := range Ratings() {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return RatingOf(s)
}
