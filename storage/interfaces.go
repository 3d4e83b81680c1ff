package storage

import (
	"context"

	"flight-connection/models"
)

// EstimateStorage defines the interface for persisting estimate runs
type EstimateStorage interface {
	SaveEstimate(ctx context.Context, est *models.Estimate) error
	Close() error
}

// AirlineCodeFetcher loads the airline code table from its source
type AirlineCodeFetcher interface {
	FetchAirlineCodes(ctx context.Context) ([]models.AirlineCode, error)
}
