package procsim

// numArchRegs matches the original handout's register file: 128 entries,
// addressed 0..127. -1 in an instruction's register fields means "unused"
// and is handled by the caller before indexing into this table.
const numArchRegs = 128

// regEntry is one row of the register-status table (§3): whether the
// architectural register currently holds a committed value, and if not,
// the tag of the latest in-flight producer.
type regEntry struct {
	ready       bool
	producerTag uint64
}

// RegStatus is the register-status table. All registers start ready with
// no producer, per the original setup_proc.
type RegStatus struct {
	regs [numArchRegs]regEntry
}

// NewRegStatus returns a table with every register ready.
func NewRegStatus() *RegStatus {
	rs := &RegStatus{}
	rs.Reset()
	return rs
}

// Reset marks every register ready with no in-flight producer.
func (r *RegStatus) Reset() {
	for i := range r.regs {
		r.regs[i] = regEntry{ready: true, producerTag: 0}
	}
}

// Ready reports whether reg currently holds a committed value. Callers
// must treat reg == -1 ("no register") as always ready themselves; this
// table only knows about real register indices.
func (r *RegStatus) Ready(reg int) bool {
	return r.regs[reg].ready
}

// ProducerTag returns the tag of the latest instruction that will produce
// reg's value, valid only when Ready(reg) is false.
func (r *RegStatus) ProducerTag(reg int) uint64 {
	return r.regs[reg].producerTag
}

// MarkProducer records inst as reg's latest in-flight producer and clears
// the ready bit (§4.6: WAW — a younger producer overwrites the record).
func (r *RegStatus) MarkProducer(reg int, tag uint64) {
	r.regs[reg].ready = false
	r.regs[reg].producerTag = tag
}

// MarkReadyIfLatest sets reg ready only if tag is still its latest
// recorded producer (§4.4: "only the latest producer clears the ready
// bit"). Returns whether tag was in fact reg's latest producer.
func (r *RegStatus) MarkReadyIfLatest(reg int, tag uint64) bool {
	if r.regs[reg].producerTag != tag {
		return false
	}
	r.regs[reg].ready = true
	return true
}
