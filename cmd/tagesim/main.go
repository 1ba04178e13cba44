package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jasonKoogler/archsim/internal/config"
	"github.com/jasonKoogler/archsim/internal/tage"
)

// branchRecord is one line of the trace: an address, whether it was
// actually taken, and whether it is a conditional branch at all.
type branchRecord struct {
	address     uint64
	taken       bool
	conditional bool
}

func readBranchTrace(path string) ([]branchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []branchRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		addr, err := strconv.ParseUint(fields[0], 0, 64)
		if err != nil {
			continue
		}
		taken, err := strconv.ParseBool(fields[1])
		if err != nil {
			continue
		}
		conditional, err := strconv.ParseBool(fields[2])
		if err != nil {
			continue
		}
		records = append(records, branchRecord{address: addr, taken: taken, conditional: conditional})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func main() {
	configPath := flag.String("config", "configs/tagesim.yaml", "Path to the configuration file")
	verbose := flag.Bool("v", false, "Enable verbose output")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if *verbose {
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	logger.Println("TAGE Branch Predictor Simulator")

	cfg, err := config.LoadTageConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("	Variant: %s\n", cfg.Variant)
	fmt.Printf("	Trace: %s\n", cfg.TracePath)

	records, err := readBranchTrace(cfg.TracePath)
	if err != nil {
		logger.Fatalf("Failed to read branch trace: %v", err)
	}

	predictor := tage.NewPredictor(cfg.Variant)

	var conditionalCount, correct uint64
	for _, rec := range records {
		pred := predictor.Predict(rec.address, rec.conditional)
		if rec.conditional {
			conditionalCount++
			if pred.Taken == rec.taken {
				correct++
			}
		}
		predictor.Update(pred, rec.taken)
	}

	var accuracy float64
	if conditionalCount > 0 {
		accuracy = float64(correct) / float64(conditionalCount) * 100
	}

	fmt.Println("\nSimulation Statistics:")
	fmt.Printf("	Branches: %d\n", len(records))
	fmt.Printf("	Conditional Branches: %d\n", conditionalCount)
	fmt.Printf("	Correct Predictions: %d\n", correct)
	fmt.Printf("	Accuracy: %.2f%%\n", accuracy)
}
