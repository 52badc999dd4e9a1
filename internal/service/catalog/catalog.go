package catalog

import (
	"context"

	"github.com/Domenick1991/airbooking/internal/logger"
)

// FlightsInvalidator drops cached flight listings after reference data changes.
type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

func invalidate(ctx context.Context, cache FlightsInvalidator, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateFlights(ctx); err != nil {
		log.Warnf("CACHE", "failed to invalidate flights cache: %v", err)
	}
}
