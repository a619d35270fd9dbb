package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/processors"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/wikidata"
	"github.com/miahuynhh/entity-relationship-extractor/server"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	addr := flag.String("addr", ":8080", "Address for the API server to listen on")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading env file %s: %v\n", *envFile, err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// A model that fails to load must abort startup; no runs are attempted.
	extractor, err := processors.NewNLPExtractor()
	if err != nil {
		logger.Fatalf("Failed to initialize NLP extractor: %v", err)
	}

	pipeline := graph.NewExtractor(extractor, wikidata.NewClient())

	srv := server.New(pipeline)
	if err := srv.Run(*addr); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
