package flashcard

import (
	"errors"
	"fmt"
	"math"

	"github.com/vytor/heptareview/internal/models"
)

var (
	ErrInvalidRating   = errors.New("flashcard: rating must be between 1 and 5")
	ErrInvalidInterval = errors.New("flashcard: prior interval must be at least 1 day")
)

// Rating is the familiarity score given at review time.
type Rating int

const (
	VeryHard Rating = iota + 1 // not recalled
	Hard
	Medium
	Easy
	VeryEasy // recalled effortlessly
)

var ratingNames = [...]string{
	VeryHard: "VeryHard",
	Hard:     "Hard",
	Medium:   "Medium",
	Easy:     "Easy",
	VeryEasy: "VeryEasy",
}

// IsValid reports whether r is one of the five familiarity levels.
func (r Rating) IsValid() bool {
	return r >= VeryHard && r <= VeryEasy
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

const (
	MinInterval = 1
	MaxInterval = 365

	easyBonus   = 1.3
	hardPenalty = 0.5
)

// Days until the next review for a card that has never been reviewed.
var initialIntervals = [...]int{
	VeryHard: 1,
	Hard:     2,
	Medium:   3,
	Easy:     5,
	VeryEasy: 7,
}

// Multipliers applied to the prior interval. VeryHard has none: it resets.
var growthFactors = [...]float64{
	Hard:     hardPenalty,
	Medium:   1.2,
	Easy:     1.8,
	VeryEasy: 2.5 * easyBonus,
}

// Schedule is the outcome of a review: how long to wait and until when.
type Schedule struct {
	Interval       int         `json:"interval"`
	NextReviewDate models.Date `json:"nextReviewDate"`
}

// InitialInterval returns the first interval for a never-reviewed card.
func InitialInterval(r Rating) (int, error) {
	if !r.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return initialIntervals[r], nil
}

// NextInterval grows or shrinks prior according to r, rounded to the nearest
// day and clamped to [MinInterval, MaxInterval].
func NextInterval(r Rating, prior int) (int, error) {
	if !r.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	if prior < MinInterval {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidInterval, prior)
	}
	if r == VeryHard {
		return MinInterval, nil
	}
	interval := int(math.Round(float64(prior) * growthFactors[r]))
	return clamp(interval, MinInterval, MaxInterval), nil
}

// ComputeNextReview schedules a card rated r on today. last is the card's most
// recent review, or nil when the card has never been reviewed.
func ComputeNextReview(today models.Date, r Rating, last *models.Review) (Schedule, error) {
	var (
		interval int
		err      error
	)
	if last == nil {
		interval, err = InitialInterval(r)
	} else {
		interval, err = NextInterval(r, last.Interval)
	}
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		Interval:       interval,
		NextReviewDate: today.AddDays(interval),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
