package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-connection/models"
	"flight-connection/scraper/wikipedia"
	"flight-connection/utils"
)

const airlinePage = `<html><body>
<table class="wikitable sortable">
  <tr><th>IATA</th><th>ICAO</th><th>Airline</th><th>Call sign</th><th>Country</th></tr>
  <tr><td>B6</td><td>JBU</td><td><a href="/wiki/JetBlue">JetBlue Airways</a></td><td>JETBLUE</td><td>United States</td></tr>
  <tr><td> EY </td><td>ETD</td><td>Etihad Airways</td><td>ETIHAD</td><td>United Arab Emirates</td></tr>
  <tr><td>B6</td><td>JBU</td><td><a href="/wiki/JetBlue">JetBlue Airways</a></td><td>JETBLUE</td><td>United States</td></tr>
  <tr><td></td><td>AAB</td><td>Abelag Aviation</td><td>ABG</td><td>Belgium</td></tr>
  <tr><td colspan="5">short row</td></tr>
</table>
<table class="wikitable"><tr><th>x</th></tr><tr><td>ZZ</td><td>ZZZ</td><td>Second table</td></tr></table>
</body></html>`

func TestParseAirlineTable(t *testing.T) {
	codes, err := wikipedia.ParseAirlineTable(strings.NewReader(airlinePage))

	require.NoError(t, err)
	assert.Equal(t, []models.AirlineCode{
		{IATA: "B6", ICAO: "JBU", Airline: "JetBlue Airways"},
		{IATA: "EY", ICAO: "ETD", Airline: "Etihad Airways"},
		{IATA: "", ICAO: "AAB", Airline: "Abelag Aviation"},
	}, codes)
}

func TestParseAirlineTable_NoTable(t *testing.T) {
	_, err := wikipedia.ParseAirlineTable(strings.NewReader("<html><body><p>moved</p></body></html>"))

	require.ErrorContains(t, err, "no .wikitable")
}

func TestFetchAirlineCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/List_of_airline_codes", r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(airlinePage))
	}))
	defer srv.Close()

	s := wikipedia.NewScraper(srv.URL+"/wiki/List_of_airline_codes", 5*time.Second, utils.NewDiscardLogger())
	codes, err := s.FetchAirlineCodes(context.Background())

	require.NoError(t, err)
	assert.Len(t, codes, 3)
}

func TestFetchAirlineCodes_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := wikipedia.NewScraper(srv.URL, 5*time.Second, utils.NewDiscardLogger())
	_, err := s.FetchAirlineCodes(context.Background())

	require.ErrorContains(t, err, "status 503")
}
