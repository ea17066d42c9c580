package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validOutput(format string) bool {
	return format == outputTable || format == outputJSON
}

// render writes the result in the requested format. json matches the HTTP response body.
func render(w io.Writer, format string, result *domain.ScrapeResult) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if !result.Success {
		msg := "scrape failed"
		if result.Error != nil {
			msg = *result.Error
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Flight", "From", "To", "Time", "Duration", "Notes"})
	for _, f := range result.Flights {
		t.AppendRow(table.Row{f.Date, f.FlightNumber, f.Departure, f.Arrival, f.Time, f.Duration, f.Notes})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(result.Flights)})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
