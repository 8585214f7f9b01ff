package domain

const MaxRating = 5

type Review struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Stars splits MaxRating symbols into filled and empty ones. Ratings coming
// back from the endpoint are untrusted, so they are clamped to 0..MaxRating.
func (r Review) Stars() (filled, empty int) {
	filled = min(max(r.Rating, 0), MaxRating)
	return filled, MaxRating - filled
}
