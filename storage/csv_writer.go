package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flight-connection/models"
	"flight-connection/utils"
)

var connectionHeader = []string{
	"run_id", "leg1", "leg2", "airport",
	"arrival_scheduled", "arrival_actual", "departure_scheduled", "departure_actual",
	"length_sec", "leg1_delay_sec", "leg2_delay_sec",
}

// CSVWriter appends matched connections to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// SaveEstimate implements EstimateStorage
func (w *CSVWriter) SaveEstimate(_ context.Context, est *models.Estimate) error {
	return w.WriteConnections(est)
}

// WriteConnections appends one row per connection. The header is written when
// the file is new or empty, so repeated runs accumulate in one file.
func (w *CSVWriter) WriteConnections(est *models.Estimate) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(w.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat CSV file: %w", err)
	}

	writer := csv.NewWriter(file)

	if info.Size() == 0 {
		if err := writer.Write(connectionHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	runID := est.ID.String()
	airport := est.ConnectionAirport()
	for _, c := range est.Connections {
		row := []string{
			runID,
			est.Leg1Code,
			est.Leg2Code,
			airport,
			c.Start.ScheduledTime().Format(time.RFC3339),
			c.Start.ActualTime().Format(time.RFC3339),
			c.End.ScheduledTime().Format(time.RFC3339),
			c.End.ActualTime().Format(time.RFC3339),
			strconv.FormatInt(c.Length(), 10),
			strconv.FormatInt(c.Start.Delay(), 10),
			strconv.FormatInt(c.End.Delay(), 10),
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for run %s: %v", runID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}

	w.logger.Info("Connections written to: %s (%d rows)", w.filePath, len(est.Connections))
	return nil
}

func (w *CSVWriter) Close() error {
	return nil
}
