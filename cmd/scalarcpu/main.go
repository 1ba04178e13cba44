package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jasonKoogler/archsim/internal/scalarcpu"
)

func main() {
	instPath := flag.String("instmem", "", "Path to the hex-per-byte instruction memory file")
	dataPath := flag.String("datamem", "", "Path to the hex-per-byte data memory file (optional)")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if *instPath == "" {
		logger.Fatal("Missing required -instmem flag")
	}

	instFile, err := os.Open(*instPath)
	if err != nil {
		logger.Fatalf("Failed to open instruction memory: %v", err)
	}
	defer instFile.Close()

	instMem, err := scalarcpu.LoadHexMemory(instFile)
	if err != nil {
		logger.Fatalf("Failed to load instruction memory: %v", err)
	}

	var dataMem []byte
	if *dataPath != "" {
		dataFile, err := os.Open(*dataPath)
		if err != nil {
			logger.Fatalf("Failed to open data memory: %v", err)
		}
		defer dataFile.Close()

		dataMem, err = scalarcpu.LoadHexMemory(dataFile)
		if err != nil {
			logger.Fatalf("Failed to load data memory: %v", err)
		}
	}

	cpu := scalarcpu.NewCPU(dataMem)
	a0, a1, err := cpu.Run(instMem)
	if err != nil {
		logger.Fatalf("Simulation failed: %v", err)
	}

	fmt.Printf("a0 = %d\na1 = %d\n", a0, a1)
}
