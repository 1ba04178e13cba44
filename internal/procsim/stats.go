package procsim

import (
	"fmt"
	"io"
)

// Stats mirrors §6's CA3 stats structure. CycleCount is reported as the
// final cycle minus one, reproducing the original's off-by-one exactly
// (SPEC_FULL.md §12.1) rather than "fixing" it.
type Stats struct {
	CycleCount          uint64
	RetiredInstructions uint64
	AvgInstFired        float64
	AvgInstRetired      float64
	AvgDispSize         float64
	MaxDispSize         uint64
}

// Stats computes the final statistics structure (§6), matching
// complete_proc's averaging: total counters divided by g_cycle_count.
func (d *Driver) Stats() Stats {
	cycles := float64(d.cycle)
	if cycles == 0 {
		cycles = 1
	}

	var cycleCount uint64
	if d.cycle > 0 {
		cycleCount = d.cycle - 1
	}

	return Stats{
		CycleCount:          cycleCount,
		RetiredInstructions: d.totalInstRetired,
		AvgInstFired:        float64(d.totalInstFired) / cycles,
		AvgInstRetired:      float64(d.totalInstRetired) / cycles,
		AvgDispSize:         float64(d.totalDispSize) / cycles,
		MaxDispSize:         d.maxDispSize,
	}
}

// WriteTimingTable writes §6's exact per-tag timing output: one
// tab-separated line per tag, in tag order, "tag\tfetch\tdisp\tsched\t
// exec\tstate\n". Stages not yet reached at termination report 0.
func (d *Driver) WriteTimingTable(w io.Writer) error {
	for tag := 1; tag < len(d.instTable); tag++ {
		inst := d.instTable[tag]
		if _, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n",
			tag, inst.FetchCycle, inst.DispCycle, inst.SchedCycle, inst.ExecCycle, inst.StateCycle); err != nil {
			return err
		}
	}
	return nil
}
