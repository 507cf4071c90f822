// parse_event runs the tiered event description parser from the command line:
//
//	OPENAI_API_KEY=... go run ./cmd/parse_event "Movie night every friday in March"
//
// Without an API key the engine answers from the local tier alone.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"event-scheduler/internal/config"
	"event-scheduler/internal/models"
	"event-scheduler/internal/parser"
	"event-scheduler/internal/services"
)

func main() {
	showMetrics := flag.Bool("metrics", false, "print tier usage counters after parsing")
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: parse_event [-metrics] <event description>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var inference parser.Inference
	if client := services.NewOpenAIClient(cfg); client != nil {
		inference = client
		log.Printf("LLM fallback enabled (model %s)", client.Model())
	} else {
		log.Printf("No OPENAI_API_KEY set, running local tier only")
	}

	smart := parser.NewSmartParser(parser.NewLLMResolver(inference))
	event := smart.Parse(context.Background(), text)

	eventJSON, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}
	fmt.Printf("Parsed event: %s\n", eventJSON)

	if len(event.Dates) > 0 {
		fmt.Printf("Event ID: %s\n", models.GenerateEventID(event.Title, event.Dates[0]))
	}

	result := parser.ValidateParsedEvent(event)
	if result.Valid {
		fmt.Println("Validation: OK")
	} else {
		fmt.Println("Validation issues:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if *showMetrics {
		snapshot := smart.Metrics().Snapshot()
		metricsJSON, _ := json.MarshalIndent(snapshot, "", "  ")
		fmt.Printf("Metrics: %s\n", metricsJSON)
	}
}
