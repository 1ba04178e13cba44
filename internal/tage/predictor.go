package tage

// tageEntry is one slot of one tagged table (§4.7): a partial tag, a
// signed saturating prediction counter, and a 2-bit usefulness counter.
type tageEntry struct {
	tag int
	ctr Counter3Signed
	u   Counter2
}

// Predictor is a TAGE branch predictor parameterized by Variant (§4.7,
// §4.8, §9/§12 Open Question 3). It holds no process-wide state; every
// piece of predictor state lives on the struct, mirroring Design Note
// §9's "encapsulate all simulator state in a single owning aggregate".
type Predictor struct {
	params Params

	hist GlobalHistory
	base []Counter2

	tables [][]tageEntry

	useAltOnNA Counter4
	clock      uint64
}

// NewPredictor builds a Predictor for v with every table freshly
// initialized (§4.7's constructor: base entries start at params.BaseInit,
// tagged entries start zeroed, use_alt_on_na starts neutral at 8).
func NewPredictor(v Variant) *Predictor {
	params := v.Params()

	base := make([]Counter2, 1<<uint(params.BaseBits))
	for i := range base {
		base[i] = params.BaseInit
	}

	tables := make([][]tageEntry, params.NumTables)
	for i := range tables {
		tables[i] = make([]tageEntry, 1<<uint(params.TableBits))
	}

	return &Predictor{
		params:     params,
		base:       base,
		tables:     tables,
		useAltOnNA: params.UseAltInit,
	}
}

func (p *Predictor) tableMask() uint64 {
	return (uint64(1) << uint(p.params.TableBits)) - 1
}

func (p *Predictor) tagMask() uint64 {
	return (uint64(1) << uint(p.params.TagBits)) - 1
}

func (p *Predictor) baseMask() uint64 {
	return (uint64(1) << uint(p.params.BaseBits)) - 1
}

// Predict implements §4.7: an unconditional branch (e.g. an
// unconditional jump fed through the same trace format) predicts taken
// without touching any table. A conditional branch computes every
// table's index/tag from one history compression each, finds the
// longest-history tagged hit (the provider) and the next-longest hit (the
// alternate), and — for a newly allocated, still-unproven provider entry
// — defers to the alternate when use_alt_on_na says the alternate has
// been more reliable recently.
func (p *Predictor) Predict(pc uint64, conditional bool) Prediction {
	if !conditional {
		return Prediction{Taken: true, conditional: false}
	}

	baseIdx := int((pc >> 2) & p.baseMask())

	idx := make([]int, p.params.NumTables)
	tag := make([]int, p.params.NumTables)
	for i := 0; i < p.params.NumTables; i++ {
		h := p.hist.Compress(p.params.HistLen[i], p.params.MaxHist, p.params.CompressBoundaries)

		fold := uint32(h ^ (h >> 32))
		idx[i] = int((pc ^ uint64(fold) ^ (pc >> uint(p.params.TableBits))) & p.tableMask())

		tagFold := uint32((h >> 16) ^ (h >> 40))
		tag[i] = int((pc ^ uint64(tagFold) ^ (pc >> uint(p.params.TagBits+1))) & p.tagMask())
	}

	provider, altPred := -1, -1
	for i := p.params.NumTables - 1; i >= 0; i-- {
		if p.tables[i][idx[i]].tag == tag[i] {
			if provider == -1 {
				provider = i
			} else {
				altPred = i
				break
			}
		}
	}

	var predBit bool
	if provider >= 0 {
		pe := &p.tables[provider][idx[provider]]
		provPred := pe.ctr.Taken()

		var altBit bool
		if altPred >= 0 {
			altBit = p.tables[altPred][idx[altPred]].ctr.Taken()
		} else {
			altBit = p.base[baseIdx].Taken()
		}

		newlyAllocated := pe.u == 0 && pe.ctr.AbsValue() <= 1
		if newlyAllocated && p.useAltOnNA.Value() < 8 {
			predBit = altBit
		} else {
			predBit = provPred
		}
	} else {
		predBit = p.base[baseIdx].Taken()
	}

	return Prediction{
		Taken:       predBit,
		conditional: true,
		baseIdx:     baseIdx,
		idx:         idx,
		tag:         tag,
		provider:    provider,
		altPred:     altPred,
		predBit:     predBit,
	}
}

// Update implements §4.8: the base counter, the provider's counter, and
// (when the variant calls for it) the alternate's usefulness bit are
// trained from the real outcome; a misprediction allocates up to two new
// entries in tables with longer history than the provider; usefulness
// bits age out periodically per the variant's aging policy; and the
// global history register always advances, whether or not the branch was
// conditional.
func (p *Predictor) Update(pred Prediction, taken bool) {
	defer p.hist.Shift(taken)

	if !pred.conditional {
		return
	}

	bc := &p.base[pred.baseIdx]
	if taken {
		bc.Inc()
	} else {
		bc.Dec()
	}

	if pred.provider >= 0 {
		pe := &p.tables[pred.provider][p.idxAt(pred, pred.provider)]
		provPred := pe.ctr.Taken()

		var altBit bool
		if pred.altPred >= 0 {
			altBit = p.tables[pred.altPred][p.idxAt(pred, pred.altPred)].ctr.Taken()
		} else {
			altBit = p.base[pred.baseIdx].Taken()
		}

		if taken {
			pe.ctr.Inc()
		} else {
			pe.ctr.Dec()
		}

		if provPred != altBit {
			if provPred == taken {
				pe.u.Inc()
			} else {
				pe.u.Dec()
			}

			if p.params.UpdateAltUsefulness && pred.altPred >= 0 {
				ae := &p.tables[pred.altPred][p.idxAt(pred, pred.altPred)]
				if altBit == taken {
					ae.u.Inc()
				} else {
					ae.u.Dec()
				}
			}
		}

		newlyAllocated := pe.u == 0 && pe.ctr.AbsValue() <= 1
		if newlyAllocated && pred.altPred >= 0 {
			providerCorrect := provPred == taken
			altCorrect := altBit == taken
			if providerCorrect != altCorrect {
				if altCorrect {
					p.useAltOnNA.Dec()
				} else {
					p.useAltOnNA.Inc()
				}
			}
		}
	}

	if pred.predBit != taken {
		start := 0
		if pred.provider >= 0 {
			start = pred.provider + 1
		}

		allocated := 0
		for i := start; i < p.params.NumTables && allocated < 2; i++ {
			e := &p.tables[i][p.idxAt(pred, i)]
			if e.u == 0 {
				e.tag = pred.tag[i]
				if taken {
					e.ctr = 0
				} else {
					e.ctr = -1
				}
				e.u = 0
				allocated++
			}
		}
	}

	p.clock++
	if p.clock&p.params.AgingPeriodMask == 0 {
		p.age()
	}
}

func (p *Predictor) idxAt(pred Prediction, table int) int {
	return pred.idx[table]
}

// age implements §4.8's periodic usefulness reset, either across every
// table (VariantTuned) or rotating through one table per period
// (VariantWide).
func (p *Predictor) age() {
	switch p.params.AgingMode {
	case AgeAllTables:
		for i := range p.tables {
			for j := range p.tables[i] {
				p.tables[i][j].u.Dec()
			}
		}
	case AgeRotateOne:
		table := int((p.clock >> agingShift(p.params.AgingPeriodMask)) % uint64(p.params.NumTables))
		for j := range p.tables[table] {
			p.tables[table][j].u.Dec()
		}
	}
}

// agingShift returns the bit position one past mask's highest set bit,
// i.e. the period's log2 — used to pick which table to age next when
// rotating (3.5.h's `clock >> 17`).
func agingShift(mask uint64) uint {
	var shift uint
	for mask > 0 {
		mask >>= 1
		shift++
	}
	return shift
}
