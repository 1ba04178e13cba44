package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jasonKoogler/archsim/internal/config"
	"github.com/jasonKoogler/archsim/internal/procsim"
	"github.com/jasonKoogler/archsim/internal/simulator"
)

func main() {
	configPath := flag.String("config", "configs/procsim.yaml", "Path to the configuration file")
	verbose := flag.Bool("v", false, "Enable verbose output")
	showStages := flag.Bool("show-stages", false, "Show the per-cycle stage sequence")
	outPath := flag.String("out", "", "Write the per-instruction timing table to this file instead of stdout")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if *verbose {
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	logger.Println("Out-of-Order Pipeline Simulator")

	cfg, err := config.LoadProcConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("	Result buses (R): %d\n", cfg.ResultBuses)
	fmt.Printf("	Functional units: K0=%d K1=%d K2=%d\n", cfg.K0Units, cfg.K1Units, cfg.K2Units)
	fmt.Printf("	Fetch width (F): %d\n", cfg.FetchWidth)
	fmt.Printf("	Reservation-station capacity: %d\n", cfg.RSCapacity())
	fmt.Printf("	Trace: %s\n", cfg.TracePath)

	traceFile, err := os.Open(cfg.TracePath)
	if err != nil {
		logger.Fatalf("Failed to open trace file: %v", err)
	}
	defer traceFile.Close()

	sim, err := simulator.New(cfg, procsim.NewTextTraceSource(traceFile))
	if err != nil {
		logger.Fatalf("Failed to initialize simulator: %v", err)
	}

	if *showStages {
		fmt.Println("\nStage Sequence:")
		for i, stage := range sim.Driver().Stages() {
			fmt.Printf("%s", stage.Name)
			if i < len(sim.Driver().Stages())-1 {
				fmt.Print(" → ")
			}
		}
		fmt.Println()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Println("Starting simulation...")

		if err := sim.Run(); err != nil {
			logger.Fatalf("Simulation failed: %v", err)
		}

		stats := sim.GetStatistics()
		fmt.Println("\nSimulation Statistics:")
		fmt.Printf("	Total Cycles: %d\n", stats.TotalCycles)
		fmt.Printf("	Retired Instructions: %d\n", stats.RetiredInstructions)
		fmt.Printf("	Avg Instructions Fired/Cycle: %.3f\n", stats.AvgInstFired)
		fmt.Printf("	Avg Instructions Retired/Cycle: %.3f\n", stats.AvgInstRetired)
		fmt.Printf("	Avg Dispatch Queue Size: %.3f\n", stats.AvgDispSize)
		fmt.Printf("	Max Dispatch Queue Size: %d\n", stats.MaxDispSize)
		fmt.Printf("	Wall Clock: %s\n", stats.WallClock)

		out := os.Stdout
		if *outPath != "" {
			f, err := os.Create(*outPath)
			if err != nil {
				logger.Fatalf("Failed to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := sim.Driver().WriteTimingTable(out); err != nil {
			logger.Fatalf("Failed to write timing table: %v", err)
		}
	}()

	select {
	case <-sigChan:
		logger.Println("Received termination signal. Shutting down...")
		sim.Shutdown()
		<-done
		logger.Println("Simulation terminated successfully")
	case <-done:
	}
}
