package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/services"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/pkg/logger"
)

func main() {
	rulesPath := flag.String("rules", "config/rating_rules.json", "path to the rating rules JSON file")
	outputPath := flag.String("output", "", "optional path to write the evaluation result as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <notes>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Determine vendor risk rating from analyst notes.")
		fmt.Fprintln(flag.CommandLine.Output(), "<notes> is a path to a text file, or the raw notes text itself.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.NewDevelopment()

	doc, err := rules.Load(*rulesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *rulesPath).Msg("failed to load rules document")
	}

	notes := loadNotes(flag.Arg(0))

	evaluator := services.NewEvaluator(doc, log)
	result := evaluator.Evaluate(notes)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, append(output, '\n'), 0o644); err != nil {
			log.Fatal().Err(err).Str("path", *outputPath).Msg("failed to write output file")
		}
	}

	fmt.Println(string(output))
}

// loadNotes treats the argument as a file path when one exists, and as
// literal notes text otherwise.
func loadNotes(arg string) string {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err == nil {
			return string(data)
		}
	}
	return arg
}
