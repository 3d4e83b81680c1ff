package flightaware

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"flight-connection/config"
	"flight-connection/models"
	"flight-connection/utils"
)

// Scraper fetches flight pages and turns them into flight records
type Scraper struct {
	baseURL    string
	maxRetries int
	backoff    time.Duration
	loader     PageLoader
	logger     *utils.Logger
}

// NewScraper creates a new Scraper
func NewScraper(cfg *config.Config, loader PageLoader, logger *utils.Logger) *Scraper {
	return &Scraper{
		baseURL:    strings.TrimRight(cfg.FlightAwareURL, "/"),
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		loader:     loader,
		logger:     logger,
	}
}

// WithRetryBackoff overrides the base retry backoff
func (s *Scraper) WithRetryBackoff(d time.Duration) *Scraper {
	s.backoff = d
	return s
}

// FlightURL is the live flight page for code
func (s *Scraper) FlightURL(code string) string {
	return s.baseURL + "/live/flight/" + url.PathEscape(code)
}

// FetchFlight loads the flight page for code and parses its bootstrap payload.
// Only the page load is retried; a page without usable data fails at once.
func (s *Scraper) FetchFlight(ctx context.Context, code string) (*models.FlightRecord, error) {
	pageURL := s.FlightURL(code)
	s.logger.Info("Fetching flight page: %s", pageURL)

	var page string
	err := utils.RetryWithBackoff(ctx, s.maxRetries, s.backoff, func() error {
		var loadErr error
		page, loadErr = s.loader.Load(ctx, pageURL)
		return loadErr
	}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("error fetching the flight page for %s: %w", code, err)
	}

	payload, err := ExtractBootstrap(page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", code, err)
	}
	s.logger.Debug("Bootstrap payload for %s: %d bytes", code, len(payload))

	record, err := ParseFlightRecord(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", code, err)
	}
	if record.Ident == "" {
		record.Ident = code
	}
	return record, nil
}
