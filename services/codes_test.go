package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-connection/models"
)

func testAirlines() *AirlineTable {
	return NewAirlineTable([]models.AirlineCode{
		{IATA: "B6", ICAO: "JBU", Airline: "JetBlue Airways"},
		{IATA: "EY", ICAO: "ETD", Airline: "Etihad Airways"},
		{IATA: "b6", ICAO: "XXB", Airline: "Later duplicate"},
		{IATA: "", ICAO: "AAB", Airline: "Abelag Aviation"},
		{IATA: "9W", ICAO: "", Airline: "Jet Airways"},
	})
}

func TestStripCode(t *testing.T) {
	assert.Equal(t, "JBU217", StripCode("jbu217"))
	assert.Equal(t, "JBU217", StripCode("\tJBU 217\n"))
	assert.Equal(t, "JBU217", StripCode(" jbu 217\n"))
	assert.Equal(t, "", StripCode(" \t"))
}

func TestIsIATAAirline(t *testing.T) {
	a := testAirlines()

	assert.True(t, a.IsIATAAirline("B6"))
	assert.True(t, a.IsIATAAirline("9W"))
	assert.False(t, a.IsIATAAirline("XXXX"), "fails the pattern")
	assert.False(t, a.IsIATAAirline("XY"), "not in table")
}

func TestIsICAOAirline(t *testing.T) {
	a := testAirlines()

	assert.True(t, a.IsICAOAirline("JBU"))
	assert.True(t, a.IsICAOAirline("AAB"))
	assert.False(t, a.IsICAOAirline("XXXX"), "fails the pattern")
	assert.False(t, a.IsICAOAirline("XYZ"), "not in table")
}

func TestAirlineConversion(t *testing.T) {
	a := testAirlines()

	icao, ok := a.IATAToICAOAirline("B6")
	require.True(t, ok)
	assert.Equal(t, "JBU", icao, "first row wins")

	iata, ok := a.ICAOToIATAAirline("jbu")
	require.True(t, ok)
	assert.Equal(t, "B6", iata)

	_, ok = a.IATAToICAOAirline("XY")
	assert.False(t, ok)
	_, ok = a.ICAOToIATAAirline("XYZ")
	assert.False(t, ok)

	assert.Equal(t, 5, a.Len())
}

func TestAirlineConversion_RoundTrip(t *testing.T) {
	a := testAirlines()

	for _, iata := range []string{"B6", "EY"} {
		icao, ok := a.IATAToICAOAirline(iata)
		require.True(t, ok)
		back, ok := a.ICAOToIATAAirline(icao)
		require.True(t, ok)
		assert.Equal(t, iata, back)
	}
}

func TestICAOFlightCode(t *testing.T) {
	a := testAirlines()

	tests := []struct {
		name    string
		code    string
		want    string
		wantErr error
	}{
		{name: "iata code", code: "B61234", want: "JBU1234"},
		{name: "iata code with spaces", code: " b6 217 ", want: "JBU217"},
		{name: "icao code", code: "JBU1234", want: "JBU1234"},
		{name: "bad pattern", code: "XXXX12", wantErr: models.ErrInvalidFlightCode},
		{name: "too few digits", code: "B61", wantErr: models.ErrInvalidFlightCode},
		{name: "unknown airline", code: "XY123", wantErr: models.ErrUnknownAirline},
		{name: "iata airline without icao", code: "9W100", wantErr: models.ErrUnknownAirline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.ICAOFlightCode(tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
