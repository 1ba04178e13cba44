// Package simulator wraps internal/procsim.Driver with the run/shutdown/
// statistics lifecycle cmd/procsim drives, adapted from the teacher's
// multi-core simulator.Simulator: the goroutine-per-core run loop is
// replaced by a single cooperative Tick loop (§5 mandates single-threaded,
// deterministic simulation — there is exactly one core here, not several),
// but the atomic running flag, the stop channel checked once per unit of
// work, and the mutex-guarded Statistics snapshot all carry over unchanged.
package simulator

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jasonKoogler/archsim/internal/config"
	"github.com/jasonKoogler/archsim/internal/procsim"
)

// Statistics mirrors procsim.Stats plus the wall-clock duration the
// teacher's simulator.Statistics also reports.
type Statistics struct {
	TotalCycles         uint64
	RetiredInstructions uint64
	AvgInstFired        float64
	AvgInstRetired      float64
	AvgDispSize         float64
	MaxDispSize         uint64
	WallClock           time.Duration
}

// Simulator owns one Driver and the run-lifecycle bookkeeping around it.
type Simulator struct {
	cfg    *config.ProcConfig
	driver *procsim.Driver

	running   atomic.Bool
	stopChan  chan struct{}
	closeOnce sync.Once

	stats      Statistics
	statsMutex sync.RWMutex
}

// New builds a Simulator from a validated ProcConfig and an instruction
// source (§11.1/§11.5: cmd/procsim supplies a procsim.TextTraceSource
// over cfg.TracePath).
func New(cfg *config.ProcConfig, source procsim.InstructionSource) (*Simulator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration provided")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Simulator{
		cfg:      cfg,
		driver:   procsim.NewDriver(source, cfg.ResultBuses, cfg.K0Units, cfg.K1Units, cfg.K2Units, cfg.FetchWidth),
		stopChan: make(chan struct{}),
	}, nil
}

// Run ticks the driver to completion, checking the stop channel once per
// cycle so Shutdown can interrupt a long run (§10.2's signal-handling
// texture). It returns an error only if a run is already in flight.
func (s *Simulator) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("simulation is already running")
	}
	defer s.running.Store(false)

	start := time.Now()
	for !s.driver.Done() {
		select {
		case <-s.stopChan:
			s.calculateStatistics(time.Since(start))
			return nil
		default:
			s.driver.Tick()
		}
	}

	s.calculateStatistics(time.Since(start))
	return nil
}

func (s *Simulator) calculateStatistics(wall time.Duration) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	snap := s.driver.Stats()
	s.stats = Statistics{
		TotalCycles:         snap.CycleCount,
		RetiredInstructions: snap.RetiredInstructions,
		AvgInstFired:        snap.AvgInstFired,
		AvgInstRetired:      snap.AvgInstRetired,
		AvgDispSize:         snap.AvgDispSize,
		MaxDispSize:         snap.MaxDispSize,
		WallClock:           wall,
	}
}

// GetStatistics returns a copy of the last completed run's statistics.
func (s *Simulator) GetStatistics() Statistics {
	s.statsMutex.RLock()
	defer s.statsMutex.RUnlock()
	return s.stats
}

// Driver exposes the underlying Driver, e.g. for WriteTimingTable.
func (s *Simulator) Driver() *procsim.Driver {
	return s.driver
}

// Shutdown requests that the simulation stop at the next cycle boundary,
// including one not yet started: calling Shutdown before Run pre-arms the
// stop signal, so the following Run returns immediately having ticked
// nothing. It is safe to call from a signal handler goroutine, and safe
// to call more than once.
func (s *Simulator) Shutdown() {
	s.closeOnce.Do(func() { close(s.stopChan) })
}

// Reset rebuilds the simulator against a fresh instruction source,
// discarding prior statistics and re-arming the stop channel. Unlike the
// teacher's no-argument Reset, a new source is required: a Driver's
// trace is a one-shot InstructionSource, not rewindable in place.
func (s *Simulator) Reset(source procsim.InstructionSource) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.driver = procsim.NewDriver(source, s.cfg.ResultBuses, s.cfg.K0Units, s.cfg.K1Units, s.cfg.K2Units, s.cfg.FetchWidth)
	s.running.Store(false)
	s.stopChan = make(chan struct{})
	s.closeOnce = sync.Once{}
	s.stats = Statistics{}
}
