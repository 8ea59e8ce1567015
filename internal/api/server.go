package api

import (
	"context"

	"github.com/vytor/heptareview/internal/services"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	CardService    services.CardService
	ReviewService  services.ReviewService
	SubjectService services.SubjectService
	StatsService   services.StatsService
	Storage        Pinger
}
