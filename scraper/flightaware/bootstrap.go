package flightaware

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/skypies/geo"

	"flight-connection/models"
)

var bootstrapRegex = regexp.MustCompile(`<script>var trackpollBootstrap = (.*?);</script>`)

// The flight page embeds its state as a JSON object assigned to
// trackpollBootstrap. Only the fields used downstream are declared; pointers
// mark values that may be absent or null.

type bootstrapPayload struct {
	Flights map[string]*rawFlight `json:"flights"`
}

type rawFlight struct {
	Ident       string          `json:"ident"`
	CodeShare   *rawCodeShare   `json:"codeShare"`
	Origin      *rawAirport     `json:"origin"`
	Destination *rawAirport     `json:"destination"`
	ActivityLog *rawActivityLog `json:"activityLog"`
}

type rawCodeShare struct {
	Ident     string `json:"ident"`
	IATAIdent string `json:"iataIdent"`
}

type rawAirport struct {
	IATA             *string   `json:"iata"`
	TZ               string    `json:"TZ"`
	FriendlyName     string    `json:"friendlyName"`
	FriendlyLocation string    `json:"friendlyLocation"`
	Coord            []float64 `json:"coord"` // [longitude, latitude]
}

type rawActivityLog struct {
	Flights []rawOccurrence `json:"flights"`
}

type rawOccurrence struct {
	GateDepartureTimes *rawGateTimes `json:"gateDepartureTimes"`
	GateArrivalTimes   *rawGateTimes `json:"gateArrivalTimes"`
}

type rawGateTimes struct {
	Scheduled *int64 `json:"scheduled"`
	Actual    *int64 `json:"actual"`
}

// ExtractBootstrap pulls the trackpollBootstrap JSON out of a flight page
func ExtractBootstrap(page string) ([]byte, error) {
	m := bootstrapRegex.FindStringSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("%w: trackpollBootstrap script not found", models.ErrNoFlightData)
	}
	return []byte(m[1]), nil
}

// ParseFlightRecord decodes the bootstrap payload into a FlightRecord.
// History keeps only occurrences with both actual gate times; the rest are
// counted in SkippedOccurrences. Missing required fields fail with
// models.ErrMalformedRecord.
func ParseFlightRecord(payload []byte) (*models.FlightRecord, error) {
	var bp bootstrapPayload
	if err := json.Unmarshal(payload, &bp); err != nil {
		return nil, fmt.Errorf("%w: decode bootstrap: %v", models.ErrMalformedRecord, err)
	}
	if len(bp.Flights) == 0 {
		return nil, fmt.Errorf("%w: bootstrap has no flights", models.ErrNoFlightData)
	}

	// map order is random; take the lowest key so repeated parses agree
	keys := make([]string, 0, len(bp.Flights))
	for k := range bp.Flights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	raw := bp.Flights[keys[0]]
	if raw == nil {
		return nil, fmt.Errorf("%w: flight %q is null", models.ErrMalformedRecord, keys[0])
	}

	origin, err := parseAirport(raw.Origin, "origin")
	if err != nil {
		return nil, err
	}
	destination, err := parseAirport(raw.Destination, "destination")
	if err != nil {
		return nil, err
	}
	if raw.ActivityLog == nil {
		return nil, fmt.Errorf("%w: missing activityLog", models.ErrMalformedRecord)
	}

	record := &models.FlightRecord{
		Ident:       raw.Ident,
		Origin:      origin,
		Destination: destination,
	}
	if raw.CodeShare != nil {
		record.IATAIdent = raw.CodeShare.IATAIdent
		if record.Ident == "" {
			record.Ident = raw.CodeShare.Ident
		}
	}

	for i, occ := range raw.ActivityLog.Flights {
		departure, depOK, err := parseGateTimes(occ.GateDepartureTimes, "gateDepartureTimes", i)
		if err != nil {
			return nil, err
		}
		arrival, arrOK, err := parseGateTimes(occ.GateArrivalTimes, "gateArrivalTimes", i)
		if err != nil {
			return nil, err
		}
		if !depOK || !arrOK {
			record.SkippedOccurrences++
			continue
		}
		record.History = append(record.History, models.Flight{
			Origin:      origin,
			Destination: destination,
			Departure:   departure,
			Arrival:     arrival,
		})
	}

	return record, nil
}

func parseAirport(a *rawAirport, field string) (models.Airport, error) {
	if a == nil {
		return models.Airport{}, fmt.Errorf("%w: missing %s", models.ErrMalformedRecord, field)
	}
	if a.IATA == nil || strings.TrimSpace(*a.IATA) == "" {
		return models.Airport{}, fmt.Errorf("%w: missing %s.iata", models.ErrMalformedRecord, field)
	}

	airport := models.Airport{
		Code:         strings.TrimSpace(*a.IATA),
		Name:         a.FriendlyName,
		Timezone:     strings.TrimPrefix(a.TZ, ":"),
		LocationName: a.FriendlyLocation,
	}
	if len(a.Coord) >= 2 {
		airport.Location = geo.Latlong{Lat: a.Coord[1], Long: a.Coord[0]}
	}
	return airport, nil
}

// parseGateTimes reports ok=false when the actual time is null, which just
// means the occurrence has not completed.
func parseGateTimes(g *rawGateTimes, field string, index int) (models.Time, bool, error) {
	if g == nil {
		return models.Time{}, false, fmt.Errorf("%w: activityLog.flights[%d] missing %s",
			models.ErrMalformedRecord, index, field)
	}
	if g.Actual == nil {
		return models.Time{}, false, nil
	}
	if g.Scheduled == nil {
		return models.Time{}, false, fmt.Errorf("%w: activityLog.flights[%d].%s has an actual but no scheduled time",
			models.ErrMalformedRecord, index, field)
	}
	return models.Time{Scheduled: *g.Scheduled, Actual: *g.Actual}, true, nil
}
