package services

import (
	"fmt"

	"flight-connection/models"
)

// MaxConnectionSec is the longest layover still considered a connection
const MaxConnectionSec = 24 * 60 * 60

// ExhaustedPolicy decides what happens when leg-1 occurrences remain but
// every leg-2 occurrence has been matched.
type ExhaustedPolicy int

const (
	// ExhaustedFail returns models.ErrExhaustedPool
	ExhaustedFail ExhaustedPolicy = iota
	// ExhaustedSkip returns the connections matched so far
	ExhaustedSkip
)

// CheckRoute verifies that leg 1 arrives where leg 2 departs
func CheckRoute(leg1, leg2 *models.FlightRecord) error {
	if leg1.Destination.Code != leg2.Origin.Code {
		return fmt.Errorf("%w: flight 1 arrives in %s, flight 2 departs from %s",
			models.ErrRouteMismatch, leg1.Destination.Code, leg2.Origin.Code)
	}
	return nil
}

// Match pairs every leg-1 arrival with the nearest unused leg-2 departure.
// It fails with models.ErrExhaustedPool when leg-2 occurrences run out first.
func Match(leg1, leg2 []models.Flight) ([]models.Connection, error) {
	return MatchWithPolicy(leg1, leg2, ExhaustedFail)
}

// MatchWithPolicy is Match with an explicit exhausted-pool policy.
// Neither input slice is modified.
func MatchWithPolicy(leg1, leg2 []models.Flight, policy ExhaustedPolicy) ([]models.Connection, error) {
	pool := make([]models.Flight, len(leg2))
	copy(pool, leg2)

	var connections []models.Connection
	for i, arriving := range leg1 {
		if len(pool) == 0 {
			if policy == ExhaustedSkip {
				break
			}
			return nil, fmt.Errorf("%w: no leg 2 departure left for leg 1 occurrence %d of %d",
				models.ErrExhaustedPool, i+1, len(leg1))
		}

		arrival := arriving.Arrival.Actual
		closest := 0
		closestDiff := absDiff(pool[0].Departure.Actual, arrival)
		for j := 1; j < len(pool); j++ {
			// strict less keeps the first candidate on ties
			if d := absDiff(pool[j].Departure.Actual, arrival); d < closestDiff {
				closest, closestDiff = j, d
			}
		}

		length := pool[closest].Departure.Actual - arrival
		if length < 0 || length > MaxConnectionSec {
			continue
		}

		connections = append(connections, models.Connection{
			Start: arriving.Arrival,
			End:   pool[closest].Departure,
		})
		pool = append(pool[:closest], pool[closest+1:]...)
	}

	return connections, nil
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
