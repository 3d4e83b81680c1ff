package services

import (
	"fmt"
	"time"

	"flight-connection/models"
)

// Aggregate computes averages, extremes and the number of connections shorter
// than tight (tight <= 0 disables the count).
func Aggregate(conns []models.Connection, tight time.Duration) (models.ConnectionStats, error) {
	if len(conns) == 0 {
		return models.ConnectionStats{}, fmt.Errorf("aggregate: %w", models.ErrEmptyInput)
	}

	tightSec := int64(tight / time.Second)
	stats := models.ConnectionStats{
		Count:             len(conns),
		MinLengthSec:      conns[0].Length(),
		MaxLengthSec:      conns[0].Length(),
		TightThresholdSec: tightSec,
	}

	var totalLength, totalStartDelay, totalEndDelay int64
	for _, c := range conns {
		length := c.Length()
		totalLength += length
		totalStartDelay += c.Start.Delay()
		totalEndDelay += c.End.Delay()

		if length < stats.MinLengthSec {
			stats.MinLengthSec = length
		}
		if length > stats.MaxLengthSec {
			stats.MaxLengthSec = length
		}
		if tightSec > 0 && length < tightSec {
			stats.TightCount++
		}
	}

	n := float64(len(conns))
	stats.AvgLengthSec = float64(totalLength) / n
	stats.AvgStartDelaySec = float64(totalStartDelay) / n
	stats.AvgEndDelaySec = float64(totalEndDelay) / n
	return stats, nil
}
