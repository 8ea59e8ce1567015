package services

import (
	"time"

	"github.com/vytor/heptareview/internal/models"
)

// TodayFunc reports the current calendar day.
type TodayFunc func() models.Date

// TodayIn returns a TodayFunc reading the wall clock in loc.
func TodayIn(loc *time.Location) TodayFunc {
	return func() models.Date {
		return models.Today(time.Now(), loc)
	}
}

// FixedDay always reports d.
func FixedDay(d models.Date) TodayFunc {
	return func() models.Date { return d }
}
