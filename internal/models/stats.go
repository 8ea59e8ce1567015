package models

type CardStats struct {
	TotalCards         int     `json:"totalCards"`
	CardsToReviewToday int     `json:"cardsToReviewToday"`
	CompletedToday     int     `json:"completedToday"`
	DueSoon            int     `json:"dueSoon"`
	AvgFamiliarity     float64 `json:"avgFamiliarity"`
}

type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

type FamiliarityCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}
