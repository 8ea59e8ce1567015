package models

import (
	"time"

	"golang.org/x/text/cases"
)

type Card struct {
	ID        int64     `json:"id"`
	Name      string    `json:"cardName"`
	Subject   string    `json:"subject"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// CardWithReview is a card plus its most recent review, if any.
type CardWithReview struct {
	Card
	LastReview *Review `json:"lastReview,omitempty"`
}

// CardUpdate holds a partial card edit; nil fields are left unchanged.
type CardUpdate struct {
	Name    *string
	Subject *string
	Note    *string
}

type CardFilter struct {
	Subject string
	Search  string
	Limit   int
	Offset  int
}

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubjectKey is the case-folded form of a subject name. Two names with the
// same key are the same subject.
func SubjectKey(name string) string {
	return cases.Fold().String(name)
}
