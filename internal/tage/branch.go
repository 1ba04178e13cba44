package tage

// BranchInfo describes the branch being predicted (§6's predictor API).
type BranchInfo struct {
	Address     uint64
	Conditional bool
}

// Prediction is returned by Predict and passed back to Update verbatim.
// Carrying the provider/alternate/index state by value on the struct
// avoids the base-class downcast Design Note §9 flags in the original's
// branch_update inheritance: Predict returns a Prediction by value, and
// the caller hands it straight back with no type erasure in between.
type Prediction struct {
	Taken bool

	// Target is the predicted branch target address. Neither original
	// variant ever predicts a non-zero target (both call
	// target_prediction(0) unconditionally), so this is always 0 here
	// too; the field exists because §6's predictor API is specified to
	// return one.
	Target uint64

	conditional bool
	baseIdx     int
	idx         []int
	tag         []int
	provider    int
	altPred     int
	predBit     bool
}
