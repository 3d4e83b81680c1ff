package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flight-connection/models"
	"flight-connection/utils"
)

// FlightFetcher loads the flight record for one flight code
type FlightFetcher interface {
	FetchFlight(ctx context.Context, code string) (*models.FlightRecord, error)
}

// EstimatorOptions tunes matching and pacing
type EstimatorOptions struct {
	Policy           ExhaustedPolicy
	TightThreshold   time.Duration
	RateLimitDelayMs int
}

// Estimator runs the whole layover estimate for a pair of flight codes
type Estimator struct {
	fetcher     FlightFetcher
	airlines    *AirlineTable
	opts        EstimatorOptions
	rateLimiter *utils.RateLimiter
	logger      *utils.Logger
	now         func() time.Time
}

// NewEstimator creates a new Estimator. airlines may be nil, in which case
// flight codes are only stripped and validated.
func NewEstimator(fetcher FlightFetcher, airlines *AirlineTable, opts EstimatorOptions, logger *utils.Logger) *Estimator {
	return &Estimator{
		fetcher:     fetcher,
		airlines:    airlines,
		opts:        opts,
		rateLimiter: utils.NewRateLimiter(opts.RateLimitDelayMs),
		logger:      logger,
		now:         time.Now,
	}
}

// ResolveCode turns user input into the ident used for the flight page lookup.
// Unknown airlines are tolerated; the flight page accepts IATA idents too.
func (e *Estimator) ResolveCode(code string) (string, error) {
	stripped := StripCode(code)
	if !flightCodeRegex.MatchString(stripped) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidFlightCode, stripped)
	}
	if e.airlines == nil {
		return stripped, nil
	}

	resolved, err := e.airlines.ICAOFlightCode(stripped)
	if errors.Is(err, models.ErrUnknownAirline) {
		e.logger.Warn("Airline of %s not in code table, looking it up as typed", stripped)
		return stripped, nil
	}
	if err != nil {
		return "", err
	}
	if resolved != stripped {
		e.logger.Debug("Resolved %s -> %s", stripped, resolved)
	}
	return resolved, nil
}

// Estimate fetches both legs, matches their histories and aggregates the result
func (e *Estimator) Estimate(ctx context.Context, leg1Code, leg2Code string) (*models.Estimate, error) {
	code1, err := e.ResolveCode(leg1Code)
	if err != nil {
		return nil, fmt.Errorf("leg 1: %w", err)
	}
	code2, err := e.ResolveCode(leg2Code)
	if err != nil {
		return nil, fmt.Errorf("leg 2: %w", err)
	}

	leg1, err := e.fetch(ctx, code1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leg 1 (%s): %w", code1, err)
	}
	leg2, err := e.fetch(ctx, code2)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leg 2 (%s): %w", code2, err)
	}

	if err := CheckRoute(leg1, leg2); err != nil {
		return nil, err
	}

	connections, err := MatchWithPolicy(leg1.History, leg2.History, e.opts.Policy)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Matched %d connections from %d leg 1 and %d leg 2 occurrences",
		len(connections), len(leg1.History), len(leg2.History))

	stats, err := Aggregate(connections, e.opts.TightThreshold)
	if err != nil {
		return nil, err
	}

	return &models.Estimate{
		ID:          uuid.New(),
		Leg1Code:    code1,
		Leg2Code:    code2,
		Leg1:        leg1,
		Leg2:        leg2,
		Connections: connections,
		Stats:       stats,
		CreatedAt:   e.now().UTC(),
	}, nil
}

func (e *Estimator) fetch(ctx context.Context, code string) (*models.FlightRecord, error) {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	record, err := e.fetcher.FetchFlight(ctx, code)
	if err != nil {
		return nil, err
	}
	e.logger.Info("%s: %s -> %s, %d completed flights (%d skipped)",
		code, record.Origin.Code, record.Destination.Code, len(record.History), record.SkippedOccurrences)
	return record, nil
}
