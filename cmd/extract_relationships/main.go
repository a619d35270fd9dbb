package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/processors"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/storage"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/visualizer"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/wikidata"
)

var (
	inputFile       = flag.String("input", "", "Input text file path")
	outputFile      = flag.String("output", "", "Output file path for the relationship list")
	jsonOutput      = flag.String("json-output", "", "Optional path for a JSON snapshot of the full result")
	visualize       = flag.Bool("visualize", false, "Generate a visualization of the relationship graph")
	visualizeOutput = flag.String("viz-output", "graph_visualization.html", "Output file for the visualization")
	envFile         = flag.String("env", ".env", "Path to environment file")
	logLevel        = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Debugf("No env file loaded from %s: %v", *envFile, err)
	}

	if *inputFile == "" || *outputFile == "" {
		logger.Fatal("Input and output file paths must be specified")
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		logger.Fatalf("Failed to read input file %s: %v", *inputFile, err)
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		logger.Fatalf("Input file %s is empty", *inputFile)
	}

	extractor, err := processors.NewNLPExtractor()
	if err != nil {
		logger.Fatalf("Failed to initialize NLP extractor: %v", err)
	}

	pipeline := graph.NewExtractor(extractor, wikidata.NewClient())

	logger.Infof("Processing %d bytes of text from %s", len(text), *inputFile)
	result := pipeline.Extract(context.Background(), text)

	lines := graph.FormatTriplets(result.Triplets)
	if err := os.WriteFile(*outputFile, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		logger.Fatalf("Failed to write output file: %v", err)
	}
	logger.Infof("Found %d relationships, written to %s", len(result.Triplets), *outputFile)

	if *jsonOutput != "" {
		store := storage.NewJSONResultStore(*jsonOutput)
		if err := store.StoreResult(context.Background(), result); err != nil {
			logger.Errorf("Failed to store JSON result: %v", err)
		} else {
			logger.Infof("JSON result saved to %s", *jsonOutput)
		}
	}

	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		store, err := storage.NewNeo4jResultStore(uri, os.Getenv("NEO4J_USERNAME"), os.Getenv("NEO4J_PASSWORD"))
		if err != nil {
			logger.Errorf("Failed to connect to Neo4j: %v", err)
		} else {
			defer store.Close()
			if err := store.StoreResult(context.Background(), result); err != nil {
				logger.Errorf("Failed to store result in Neo4j: %v", err)
			} else {
				logger.Infof("Result stored in Neo4j at %s", uri)
			}
		}
	}

	if *visualize {
		viz := visualizer.NewD3Visualizer(*visualizeOutput)
		if err := viz.Visualize(result); err != nil {
			logger.Errorf("Failed to visualize relationship graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", *visualizeOutput)
		}
	}
}
