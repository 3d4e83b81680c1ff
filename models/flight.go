package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/skypies/geo"
)

// Airport describes one end of a flight as reported by the flight page
type Airport struct {
	Code         string
	Name         string
	Timezone     string
	LocationName string
	Location     geo.Latlong
}

// Time is a scheduled/actual pair of gate times, in seconds since epoch
type Time struct {
	Scheduled int64
	Actual    int64
}

// Delay returns actual minus scheduled, in seconds (negative when early)
func (t Time) Delay() int64 {
	return t.Actual - t.Scheduled
}

func (t Time) ScheduledTime() time.Time {
	return time.Unix(t.Scheduled, 0).UTC()
}

func (t Time) ActualTime() time.Time {
	return time.Unix(t.Actual, 0).UTC()
}

// Flight is one completed historical occurrence of a flight number
type Flight struct {
	Origin      Airport
	Destination Airport
	Departure   Time
	Arrival     Time
}

// Connection is the layover between a leg-1 arrival (Start) and a leg-2 departure (End)
type Connection struct {
	Start Time
	End   Time
}

// Length returns the layover length in seconds
func (c Connection) Length() int64 {
	return c.End.Actual - c.Start.Actual
}

func (c Connection) Duration() time.Duration {
	return time.Duration(c.Length()) * time.Second
}

// LengthHoursMins splits the length into whole hours and remaining whole minutes
func (c Connection) LengthHoursMins() (int, int) {
	length := c.Length()
	return int(length / 3600), int((length % 3600) / 60)
}

// FlightRecord is everything fetched for one flight code
type FlightRecord struct {
	Ident              string // ICAO ident, e.g. "JBU217"
	IATAIdent          string // code-share display ident, e.g. "B6 217"
	Origin             Airport
	Destination        Airport
	History            []Flight
	SkippedOccurrences int // activity log entries without actual gate times
}

// DisplayIdent prefers the IATA ident used on tickets
func (r *FlightRecord) DisplayIdent() string {
	if r.IATAIdent != "" {
		return r.IATAIdent
	}
	return r.Ident
}

// DistanceKM is the great-circle distance between origin and destination
func (r *FlightRecord) DistanceKM() float64 {
	return r.Origin.Location.DistKM(r.Destination.Location)
}

// AirlineCode is one row of the airline code table
type AirlineCode struct {
	IATA    string `json:"iata_code"`
	ICAO    string `json:"icao_code"`
	Airline string `json:"airline"`
}

// ConnectionStats holds aggregate figures over a set of connections
type ConnectionStats struct {
	Count             int
	AvgLengthSec      float64
	AvgStartDelaySec  float64
	AvgEndDelaySec    float64
	MinLengthSec      int64
	MaxLengthSec      int64
	TightCount        int
	TightThresholdSec int64
}

// Estimate is the outcome of one layover estimate run
type Estimate struct {
	ID          uuid.UUID
	Leg1Code    string
	Leg2Code    string
	Leg1        *FlightRecord
	Leg2        *FlightRecord
	Connections []Connection
	Stats       ConnectionStats
	CreatedAt   time.Time
}

// ConnectionAirport is the airport where the layover happens
func (e *Estimate) ConnectionAirport() string {
	if e.Leg1 == nil {
		return ""
	}
	return e.Leg1.Destination.Code
}
