package models

type Review struct {
	ID                int64   `json:"id"`
	CardID            int64   `json:"cardId"`
	ReviewDate        Date    `json:"reviewDate"`
	FamiliarityScore  int     `json:"familiarityScore"`
	Interval          int     `json:"interval"`
	NextReviewDate    Date    `json:"nextReviewDate"`
	ReviewTimeMinutes *int    `json:"reviewTimeMinutes,omitempty"`
	ReviewNotes       *string `json:"reviewNotes,omitempty"`
}

// ReviewSubmission is what a caller supplies when recording a review.
type ReviewSubmission struct {
	CardID            int64
	FamiliarityScore  int
	ReviewTimeMinutes *int
	ReviewNotes       *string
}

// NewerThan reports whether r is more recent than o: later review date first,
// then higher id for reviews on the same day.
func (r Review) NewerThan(o Review) bool {
	if r.ReviewDate != o.ReviewDate {
		return r.ReviewDate.After(o.ReviewDate)
	}
	return r.ID > o.ID
}
