package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"learnhub"
)

func main() {
	var (
		topic      = flag.String("topic", "", "Topic to look up (required)")
		lang       = flag.String("lang", learnhub.DefaultLanguage.Code, "Language code (en, es, hi, fr, de)")
		outputFile = flag.String("output", "", "Output file for the result JSON (default: stdout)")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Overall timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}

	cfg, err := learnhub.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(true); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := learnhub.NewLogger(cfg.Mode, *verbose || cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	transcript, err := learnhub.NewLLMLogger(cfg.LLMLogDir, "topicsearch-"+time.Now().Format("20060102-150405"))
	if err != nil {
		logger.Warn("Failed to create LLM transcript", "error", err)
	}
	defer transcript.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	articles, err := learnhub.NewGoogleArticleSearch(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
	if err != nil {
		log.Fatalf("Failed to create article search: %v", err)
	}
	videos, err := learnhub.NewYouTubeVideoSearch(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("Failed to create video search: %v", err)
	}

	gen := learnhub.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	aggregator := learnhub.NewAggregator(gen, articles, videos, nil, transcript, logger)

	fmt.Fprintf(os.Stderr, "🔎 Searching for: %s (%s)\n", *topic, *lang)

	result, err := aggregator.Aggregate(ctx, learnhub.TopicQuery{Topic: *topic, LanguageCode: *lang})
	if err != nil {
		log.Fatalf("Failed to aggregate topic: %v", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Result saved to: %s", *outputFile)
		return
	}
	fmt.Println(string(output))
}
