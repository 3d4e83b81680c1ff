package services

import (
	"fmt"
	"io"
	"strings"

	"flight-connection/models"
)

// PrintEstimateReport formats the estimate for the terminal
func PrintEstimateReport(w io.Writer, est *models.Estimate) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("LAYOVER ESTIMATE", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	for i, leg := range []*models.FlightRecord{est.Leg1, est.Leg2} {
		if leg == nil {
			continue
		}
		fmt.Fprintf(w, "\n LEG %d\n%s\n", i+1, thin)
		fmt.Fprintf(w, "  Flight %s from %s to %s\n", leg.DisplayIdent(), leg.Origin.Name, leg.Destination.Name)
		fmt.Fprintf(w, "  Route      : %s -> %s (%.0f km)\n", leg.Origin.Code, leg.Destination.Code, leg.DistanceKM())
		fmt.Fprintf(w, "  History    : %d completed flights\n", len(leg.History))
	}

	s := est.Stats
	fmt.Fprintf(w, "\n CONNECTION AT %s\n%s\n", est.ConnectionAirport(), thin)
	fmt.Fprintf(w, "  Connection stats over the last %d flights:\n", s.Count)
	fmt.Fprintf(w, "  Avg. connection time : %.2f hours\n", s.AvgLengthSec/3600)
	fmt.Fprintf(w, "  Avg. delay of leg 1  : %.2f hours\n", s.AvgStartDelaySec/3600)
	fmt.Fprintf(w, "  Avg. delay of leg 2  : %.2f hours\n", s.AvgEndDelaySec/3600)
	fmt.Fprintf(w, "  Shortest connection  : %s\n", hoursMins(s.MinLengthSec))
	fmt.Fprintf(w, "  Longest connection   : %s\n", hoursMins(s.MaxLengthSec))
	if s.TightThresholdSec > 0 {
		fmt.Fprintf(w, "  Under %s        : %d of %d\n", hoursMins(s.TightThresholdSec), s.TightCount, s.Count)
	}

	if len(est.Connections) > 0 {
		fmt.Fprintf(w, "\n CONNECTIONS\n%s\n", thin)
		fmt.Fprintf(w, "  %-17s  %-17s  %8s\n", "Arrived (UTC)", "Departed (UTC)", "Layover")
		for _, c := range est.Connections {
			fmt.Fprintf(w, "  %-17s  %-17s  %8s\n",
				c.Start.ActualTime().Format("Jan 02 15:04"),
				c.End.ActualTime().Format("Jan 02 15:04"),
				hoursMins(c.Length()))
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

// hoursMins renders seconds as "1h 05m"
func hoursMins(sec int64) string {
	return fmt.Sprintf("%dh %02dm", sec/3600, (sec%3600)/60)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}
