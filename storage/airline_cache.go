package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"flight-connection/models"
	"flight-connection/services"
	"flight-connection/utils"
)

// AirlineCache keeps the airline code table in a JSON file so the list page
// is only scraped once
type AirlineCache struct {
	filePath string
	mu       sync.Mutex
}

// NewAirlineCache creates a cache backed by filePath
func NewAirlineCache(filePath string) *AirlineCache {
	return &AirlineCache{filePath: filePath}
}

// Load reads the cached codes. ok is false when the file does not exist yet.
func (c *AirlineCache) Load() (codes []models.AirlineCode, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(c.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open airline cache: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&codes); err != nil {
		return nil, false, fmt.Errorf("failed to decode airline cache: %w", err)
	}
	return codes, true, nil
}

// Save replaces the cache file with codes
func (c *AirlineCache) Save(codes []models.AirlineCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// write to a sibling and rename so a crash never leaves half a file
	tmp := c.filePath + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(codes); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode airline cache: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close airline cache: %w", err)
	}
	if err := os.Rename(tmp, c.filePath); err != nil {
		return fmt.Errorf("failed to replace airline cache: %w", err)
	}
	return nil
}

// LoadAirlineTable builds the airline table from the cache, falling back to
// fetcher and caching its result. A cache write failure is only logged.
func LoadAirlineTable(ctx context.Context, cache *AirlineCache, fetcher AirlineCodeFetcher, logger *utils.Logger) (*services.AirlineTable, error) {
	codes, ok, err := cache.Load()
	if err != nil {
		logger.Warn("Ignoring airline cache: %v", err)
	}
	if ok && len(codes) > 0 {
		logger.Debug("Loaded %d airline codes from %s", len(codes), cache.filePath)
		return services.NewAirlineTable(codes), nil
	}

	codes, err = fetcher.FetchAirlineCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airline codes: %w", err)
	}
	if err := cache.Save(codes); err != nil {
		logger.Warn("Could not cache airline codes: %v", err)
	} else {
		logger.Info("Cached %d airline codes in %s", len(codes), cache.filePath)
	}
	return services.NewAirlineTable(codes), nil
}
