package procsim

// FuncUnit is one unit-latency functional unit (§3). Invariant:
// busy ⇔ instTag != 0.
type FuncUnit struct {
	Busy       bool
	Class      OpClass
	InstTag    uint64
	CyclesLeft int
}

// FuPools holds the three independently sized arrays of functional units
// keyed by opcode class (§2 item 2), replacing a string-keyed map with a
// small fixed-size array indexed by OpClass (Design Note §9).
type FuPools struct {
	units [3][]FuncUnit
}

// NewFuPools allocates k0/k1/k2 idle functional units of each class.
func NewFuPools(k0, k1, k2 int) *FuPools {
	p := &FuPools{}
	p.units[ClassK0] = make([]FuncUnit, k0)
	p.units[ClassK1] = make([]FuncUnit, k1)
	p.units[ClassK2] = make([]FuncUnit, k2)
	for c := range p.units {
		for i := range p.units[c] {
			p.units[c][i].Class = OpClass(c)
		}
	}
	return p
}

// Pool returns the mutable slice of functional units for class c.
func (p *FuPools) Pool(c OpClass) []FuncUnit {
	return p.units[c]
}

// SetPool replaces the slice of functional units for class c (used after
// mutating a local copy in place when Go's range-by-value would otherwise
// hide the update).
func (p *FuPools) SetPool(c OpClass, units []FuncUnit) {
	p.units[c] = units
}

// FreeIndex returns the lowest-index idle unit of class c, or -1 if none
// is free (§4.2: "lowest-index free FU of its type").
func (p *FuPools) FreeIndex(c OpClass) int {
	for i := range p.units[c] {
		if !p.units[c][i].Busy {
			return i
		}
	}
	return -1
}

// AnyBusy reports whether any functional unit, of any class, is busy.
// Used by the termination check (§4.1).
func (p *FuPools) AnyBusy() bool {
	for c := range p.units {
		for i := range p.units[c] {
			if p.units[c][i].Busy {
				return true
			}
		}
	}
	return false
}
