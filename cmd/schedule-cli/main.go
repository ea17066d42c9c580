// Package main is a command line client that runs one schedule scrape and prints the result.
package main

import (
	"context"

	"github.com/crewlink/crew-schedule-scraper/cmd/schedule-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
