package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"flight-connection/models"
)

var (
	iataAirlineRegex = regexp.MustCompile(`^([A-Z]\d|\d[A-Z]|[A-Z]{2})$`)
	icaoAirlineRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	flightCodeRegex  = regexp.MustCompile(`^([A-Z]\d|\d[A-Z]|[A-Z]{2}|[A-Z]{3})(\d{2,4})$`)
)

// AirlineTable answers IATA/ICAO airline code questions from a table loaded
// once by the caller.
type AirlineTable struct {
	codes  []models.AirlineCode
	byIATA map[string]string
	byICAO map[string]string
}

// NewAirlineTable indexes codes. When a code appears on several rows the first
// row wins.
func NewAirlineTable(codes []models.AirlineCode) *AirlineTable {
	t := &AirlineTable{
		codes:  codes,
		byIATA: make(map[string]string, len(codes)),
		byICAO: make(map[string]string, len(codes)),
	}
	for _, c := range codes {
		iata := strings.ToUpper(strings.TrimSpace(c.IATA))
		icao := strings.ToUpper(strings.TrimSpace(c.ICAO))
		if iata != "" {
			if _, ok := t.byIATA[iata]; !ok {
				t.byIATA[iata] = icao
			}
		}
		if icao != "" {
			if _, ok := t.byICAO[icao]; !ok {
				t.byICAO[icao] = iata
			}
		}
	}
	return t
}

// Len returns the number of rows the table was built from
func (t *AirlineTable) Len() int {
	return len(t.codes)
}

// StripCode upper-cases a code and removes all whitespace
func StripCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, code)
}

func (t *AirlineTable) IsIATAAirline(code string) bool {
	if !iataAirlineRegex.MatchString(code) {
		return false
	}
	_, ok := t.byIATA[code]
	return ok
}

func (t *AirlineTable) IsICAOAirline(code string) bool {
	if !icaoAirlineRegex.MatchString(code) {
		return false
	}
	_, ok := t.byICAO[code]
	return ok
}

func (t *AirlineTable) IATAToICAOAirline(code string) (string, bool) {
	icao, ok := t.byIATA[strings.ToUpper(code)]
	return icao, ok
}

func (t *AirlineTable) ICAOToIATAAirline(code string) (string, bool) {
	iata, ok := t.byICAO[strings.ToUpper(code)]
	return iata, ok
}

// ICAOFlightCode normalises a flight code such as "b6 217" to its ICAO form
// "JBU217". Codes already using an ICAO airline are returned stripped.
func (t *AirlineTable) ICAOFlightCode(flightCode string) (string, error) {
	code := StripCode(flightCode)
	if !flightCodeRegex.MatchString(code) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidFlightCode, code)
	}
	if len(code) >= 3 && t.IsICAOAirline(code[:3]) {
		return code, nil
	}
	if t.IsIATAAirline(code[:2]) {
		if icao, _ := t.IATAToICAOAirline(code[:2]); icao != "" {
			return icao + code[2:], nil
		}
	}
	return "", fmt.Errorf("%w: no airline matches %q", models.ErrUnknownAirline, code)
}
