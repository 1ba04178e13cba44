package procsim

// RsEntry is one reservation-station slot (§3). A slot is free iff
// Inst.Tag == 0.
type RsEntry struct {
	Inst RsInstruction

	SrcReady [2]bool
	SrcTag   [2]uint64

	Issued    bool
	Class     OpClass
	FuIndex   int // -1 unless Issued && !Completed
	Completed bool
}

// RsInstruction is the subset of Instruction an RS slot needs to carry;
// kept distinct from Instruction so the RS slab doesn't need to copy (and
// re-stamp) timing fields that live in the driver's instruction table.
type RsInstruction struct {
	Tag     uint64
	OpCode  int
	DestReg int
	SrcReg  [2]int
}

func rsInstFrom(inst Instruction) RsInstruction {
	return RsInstruction{Tag: inst.Tag, OpCode: inst.OpCode, DestReg: inst.DestReg, SrcReg: inst.SrcReg}
}

// free reports whether an RS entry is unoccupied.
func (e *RsEntry) free() bool {
	return e.Inst.Tag == 0
}

// reset clears an RS entry back to the free state.
func (e *RsEntry) reset() {
	*e = RsEntry{FuIndex: -1}
}

// ReservationStation is the fixed-capacity slab of in-flight instructions
// (§3). Capacity is 2*(K0+K1+K2), set once at construction.
type ReservationStation struct {
	slots []RsEntry
}

// NewReservationStation allocates a slab of the given capacity, all free.
func NewReservationStation(capacity int) *ReservationStation {
	rs := &ReservationStation{slots: make([]RsEntry, capacity)}
	for i := range rs.slots {
		rs.slots[i].FuIndex = -1
	}
	return rs
}

// Len returns the slab's fixed capacity.
func (rs *ReservationStation) Len() int {
	return len(rs.slots)
}

// Slot returns a pointer to slot i for in-place mutation.
func (rs *ReservationStation) Slot(i int) *RsEntry {
	return &rs.slots[i]
}

// FreeCount returns the number of currently unoccupied slots.
func (rs *ReservationStation) FreeCount() int {
	n := 0
	for i := range rs.slots {
		if rs.slots[i].free() {
			n++
		}
	}
	return n
}

// FreeIndex returns the lowest-index free slot, or -1 if the slab is
// full. Design Note §9 explicitly allows this linear scan at these
// sizes, provided lowest-index-first selection is preserved for
// deterministic output.
func (rs *ReservationStation) FreeIndex() int {
	for i := range rs.slots {
		if rs.slots[i].free() {
			return i
		}
	}
	return -1
}

// Occupied reports how many slots currently hold an instruction, used by
// the RS-capacity invariant (§8).
func (rs *ReservationStation) Occupied() int {
	return len(rs.slots) - rs.FreeCount()
}

// HasActive reports whether any slot is occupied, used by the
// termination check (§4.1).
func (rs *ReservationStation) HasActive() bool {
	for i := range rs.slots {
		if !rs.slots[i].free() {
			return true
		}
	}
	return false
}
