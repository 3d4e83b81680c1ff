package wikipedia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"flight-connection/models"
	"flight-connection/utils"
)

// Scraper reads the "List of airline codes" table
type Scraper struct {
	url    string
	client *http.Client
	logger *utils.Logger
}

// NewScraper creates a new Scraper for the page at url
func NewScraper(url string, timeout time.Duration, logger *utils.Logger) *Scraper {
	return &Scraper{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchAirlineCodes downloads the page and parses its first wikitable
func (s *Scraper) FetchAirlineCodes(ctx context.Context) ([]models.AirlineCode, error) {
	s.logger.Info("Fetching airline code list: %s", s.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create airline list request: %w", err)
	}
	req.Header.Set("User-Agent", "flight-connection/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get airline code list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("airline code list returned status %d", resp.StatusCode)
	}

	codes, dupes, err := parseAirlineTable(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Parsed %d airline codes (%d duplicate rows dropped)", len(codes), dupes)
	return codes, nil
}

// ParseAirlineTable extracts IATA, ICAO and airline name from the first three
// columns of the first .wikitable. The header row, short rows and exact
// duplicates are dropped.
func ParseAirlineTable(r io.Reader) ([]models.AirlineCode, error) {
	codes, _, err := parseAirlineTable(r)
	return codes, err
}

func parseAirlineTable(r io.Reader) ([]models.AirlineCode, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse airline list HTML: %w", err)
	}

	table := doc.Find(".wikitable").First()
	if table.Length() == 0 {
		return nil, 0, fmt.Errorf("no .wikitable in airline list page")
	}

	seen := utils.NewSeenSet[models.AirlineCode]()
	var codes []models.AirlineCode
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		code := models.AirlineCode{
			IATA:    strings.TrimSpace(cells.Eq(0).Text()),
			ICAO:    strings.TrimSpace(cells.Eq(1).Text()),
			Airline: strings.TrimSpace(cells.Eq(2).Text()),
		}
		if !seen.Add(code) {
			return
		}
		codes = append(codes, code)
	})

	if len(codes) == 0 {
		return nil, 0, fmt.Errorf("airline list table has no rows")
	}
	return codes, seen.Repeats(), nil
}
