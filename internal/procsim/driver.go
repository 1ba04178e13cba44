package procsim

import "sort"

// Driver is the Stage Driver (§2 item 6, §4.1): the single owning
// aggregate holding every piece of simulator state, generalizing Design
// Note §9's "encapsulate all simulator state in a single owning
// aggregate passed to every stage; no process-wide singletons." Stage
// methods are unexported and receive *Driver directly rather than being
// free functions over package globals, unlike the original C++.
type Driver struct {
	source      InstructionSource
	noMoreFetch bool
	nextTag     uint64
	fetchWidth  int
	resultBuses int

	fetchBuf  FetchBuffer
	dispatchQ DispatchQueue
	rs        *ReservationStation
	fu        *FuPools
	regs      *RegStatus

	instTable []Instruction // 1-based by tag; index 0 unused

	cycle uint64

	totalDispSize    uint64
	maxDispSize      uint64
	totalInstFired   uint64
	totalInstRetired uint64
}

// NewDriver builds a Driver with the given result-bus count, per-class
// functional-unit pool sizes, and fetch width (§6: setup_proc's r, k0,
// k1, k2, f), reading instructions from source.
func NewDriver(source InstructionSource, resultBuses, k0, k1, k2, fetchWidth int) *Driver {
	return &Driver{
		source:      source,
		nextTag:     1,
		fetchWidth:  fetchWidth,
		resultBuses: resultBuses,
		rs:          NewReservationStation(2 * (k0 + k1 + k2)),
		fu:          NewFuPools(k0, k1, k2),
		regs:        NewRegStatus(),
		instTable:   make([]Instruction, 1),
	}
}

// Cycle returns the current cycle count (incremented at the start of
// each Tick, matching the original's g_cycle_count++ placement — see
// SPEC_FULL.md §12.1's discussion of the cycle_count off-by-one).
func (d *Driver) Cycle() uint64 {
	return d.cycle
}

// Done reports whether the simulation has reached its termination
// condition (§4.1): the trace is exhausted, the dispatch queue is
// empty, no RS slot is occupied, and every functional unit is idle.
func (d *Driver) Done() bool {
	if !d.noMoreFetch {
		return false
	}
	if !d.dispatchQ.Empty() {
		return false
	}
	if d.rs.HasActive() {
		return false
	}
	if d.fu.AnyBusy() {
		return false
	}
	return true
}

// Tick executes one simulated cycle: the six stages run in the mandated
// reverse-dataflow order (§4.1), consumer before producer, so no
// instruction can traverse two stages in a single tick.
func (d *Driver) Tick() {
	d.cycle++

	rsFreeStart := d.rs.FreeCount()

	d.stageStateUpdate()
	d.stageExecuteWriteback()
	d.stageExecuteFire()
	d.stageSchedule(rsFreeStart)
	d.stageDispatch()
	d.stageFetch()

	size := uint64(d.dispatchQ.Size())
	d.totalDispSize += size
	if size > d.maxDispSize {
		d.maxDispSize = size
	}
}

// Run ticks until Done and returns the final statistics.
func (d *Driver) Run() Stats {
	for !d.Done() {
		d.Tick()
	}
	return d.Stats()
}

// growInstTable ensures the instruction table has a slot for tag.
func (d *Driver) growInstTable(tag uint64) {
	if uint64(len(d.instTable)) <= tag {
		grown := make([]Instruction, tag+1)
		copy(grown, d.instTable)
		d.instTable = grown
	}
}

// stageFetch reads up to fetchWidth instructions from the trace source
// (§4.5), assigns monotonically increasing tags starting at 1, and
// stamps FetchCycle. Once the source is exhausted, the no-more-fetch
// flag latches permanently.
func (d *Driver) stageFetch() {
	d.fetchBuf.Clear()
	if d.noMoreFetch {
		return
	}

	for i := 0; i < d.fetchWidth; i++ {
		inst, ok := d.source.Next()
		if !ok {
			d.noMoreFetch = true
			break
		}

		inst.Tag = d.nextTag
		d.nextTag++
		inst.FetchCycle = d.cycle

		d.growInstTable(inst.Tag)
		d.instTable[inst.Tag] = inst
		d.fetchBuf.Add(inst)
	}
}

// stageDispatch copies the entire fetch buffer to the tail of the
// dispatch queue and stamps DispCycle (§4.5).
func (d *Driver) stageDispatch() {
	for _, inst := range d.fetchBuf.Instructions() {
		d.dispatchQ.PushBack(inst)
		d.instTable[inst.Tag].DispCycle = d.cycle
	}
}

// stageSchedule moves instructions from the dispatch queue into RS
// slots (§4.6), admitting at most rsFreeStart instructions this cycle
// regardless of slots State-update subsequently freed (§4.1's Schedule
// admission snapshot, preserving one-cycle-per-stage).
func (d *Driver) stageSchedule(rsFreeStart int) {
	used := 0
	for !d.dispatchQ.Empty() {
		if used >= rsFreeStart {
			break
		}

		idx := d.rs.FreeIndex()
		if idx == -1 {
			break
		}

		inst := d.dispatchQ.PopFront()
		used++
		d.instTable[inst.Tag].SchedCycle = d.cycle

		entry := d.rs.Slot(idx)
		entry.Inst = rsInstFrom(inst)
		entry.Issued = false
		entry.Completed = false
		entry.FuIndex = -1
		entry.Class = ClassifyOp(inst.OpCode)

		for s := 0; s < 2; s++ {
			r := inst.SrcReg[s]
			switch {
			case r == -1:
				entry.SrcReady[s] = true
			case d.regs.Ready(r):
				entry.SrcReady[s] = true
			default:
				entry.SrcReady[s] = false
				entry.SrcTag[s] = d.regs.ProducerTag(r)
			}
		}

		if inst.DestReg != -1 {
			d.regs.MarkProducer(inst.DestReg, inst.Tag)
		}
	}

	debugAssert(used <= rsFreeStart, "admitted %d instructions but only %d slots were free at cycle start", used, rsFreeStart)
}

// stageExecuteFire dispatches ready RS entries to free functional units
// (§4.3, §4.2). Ready entries are serviced in ascending-tag order; each
// is assigned the lowest-index free FU of its type.
func (d *Driver) stageExecuteFire() {
	var ready []int
	for i := 0; i < d.rs.Len(); i++ {
		e := d.rs.Slot(i)
		if !e.free() && !e.Issued && e.SrcReady[0] && e.SrcReady[1] {
			ready = append(ready, i)
		}
	}

	sort.Slice(ready, func(a, b int) bool {
		return d.rs.Slot(ready[a]).Inst.Tag < d.rs.Slot(ready[b]).Inst.Tag
	})

	for _, idx := range ready {
		entry := d.rs.Slot(idx)
		pool := d.fu.Pool(entry.Class)
		free := d.fu.FreeIndex(entry.Class)
		if free == -1 {
			continue
		}

		pool[free].Busy = true
		pool[free].InstTag = entry.Inst.Tag
		pool[free].CyclesLeft = 1

		entry.Issued = true
		entry.FuIndex = free
		d.instTable[entry.Inst.Tag].ExecCycle = d.cycle
		d.totalInstFired++
	}
}

// stageExecuteWriteback collects every functional unit with a result
// ready to broadcast, arbitrates among them by (ExecCycle, Tag) when
// contention exceeds the result-bus count, and broadcasts the winners
// (§4.3). Losers stay busy and retry next cycle.
func (d *Driver) stageExecuteWriteback() {
	var completedTags []uint64
	for c := ClassK0; c <= ClassK2; c++ {
		pool := d.fu.Pool(c)
		for i := range pool {
			if pool[i].Busy && pool[i].InstTag != 0 && pool[i].CyclesLeft == 1 {
				completedTags = append(completedTags, pool[i].InstTag)
			}
		}
	}

	sort.Slice(completedTags, func(a, b int) bool {
		tagA, tagB := completedTags[a], completedTags[b]
		execA, execB := d.instTable[tagA].ExecCycle, d.instTable[tagB].ExecCycle
		if execA != execB {
			return execA < execB
		}
		return tagA < tagB
	})

	broadcasts := d.resultBuses
	if broadcasts > len(completedTags) {
		broadcasts = len(completedTags)
	}
	debugAssert(broadcasts <= d.resultBuses, "broadcast count %d exceeds result-bus count %d", broadcasts, d.resultBuses)

	for i := 0; i < broadcasts; i++ {
		tag := completedTags[i]

		for j := 0; j < d.rs.Len(); j++ {
			e := d.rs.Slot(j)
			if e.Inst.Tag == tag {
				e.Completed = true
				e.FuIndex = -1
				d.instTable[tag].StateCycle = d.cycle
				break
			}
		}

		for c := ClassK0; c <= ClassK2; c++ {
			pool := d.fu.Pool(c)
			for j := range pool {
				if pool[j].InstTag == tag {
					pool[j].Busy = false
					pool[j].InstTag = 0
					pool[j].CyclesLeft = 0
				}
			}
		}
	}
}

// stageStateUpdate retires completed RS entries from the previous cycle
// in ascending-tag order (§4.4): it sets the destination register's
// ready bit only if this retiring instruction is still its latest
// recorded producer, widens wakeup to every RS consumer in the
// dependency chain from this tag up to the latest producer, then resets
// the slot to free.
func (d *Driver) stageStateUpdate() {
	var completed []int
	for i := 0; i < d.rs.Len(); i++ {
		e := d.rs.Slot(i)
		if e.Completed && !e.free() {
			completed = append(completed, i)
		}
	}

	sort.Slice(completed, func(a, b int) bool {
		return d.rs.Slot(completed[a]).Inst.Tag < d.rs.Slot(completed[b]).Inst.Tag
	})

	for _, idx := range completed {
		d.totalInstRetired++

		entry := d.rs.Slot(idx)
		dest := entry.Inst.DestReg
		retiringTag := entry.Inst.Tag

		if dest != -1 {
			d.wakeupSources(dest, retiringTag)
		}

		entry.reset()
	}
}

// wakeupSources implements §4.4's CDB forwarding widening and the Open
// Question resolution in SPEC_FULL.md §12.2: a consumer e of register
// dest is marked ready if the retiring producer is still dest's latest
// recorded producer, or if e's own tag lies strictly after the retiring
// tag and no later than that latest producer's tag.
func (d *Driver) wakeupSources(dest int, retiringTag uint64) {
	latestProducer := d.regs.ProducerTag(dest)
	isLatest := d.regs.MarkReadyIfLatest(dest, retiringTag)

	for i := 0; i < d.rs.Len(); i++ {
		e := d.rs.Slot(i)
		if e.free() {
			continue
		}
		for s := 0; s < 2; s++ {
			if e.Inst.SrcReg[s] != dest {
				continue
			}
			if isLatest || (retiringTag < e.Inst.Tag && e.Inst.Tag <= latestProducer) {
				e.SrcReady[s] = true
			}
		}
	}
}
