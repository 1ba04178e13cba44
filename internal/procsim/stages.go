package procsim

// StageDescriptor names one phase of the per-cycle stage sequence, for
// introspection only (e.g. cmd/procsim's -show-stages flag). This generalizes
// the teacher's pipeline.Stage/GetStages() shape (name + latency,
// queried by a CLI flag) from a uniform N-stage shift register to the
// fixed six-phase Tomasulo sequence (§4.1) — the stage logic itself lives
// in driver.go, since unlike the teacher's generic pipeline the six
// phases are not interchangeable slots of equal shape.
type StageDescriptor struct {
	Name    string
	Latency int // cycles per stage; always 1 for this model (§1 Non-goals)
}

// stageOrder is the mandated intra-cycle execution order (§4.1): reverse
// dataflow, consumer before producer, so no instruction can cross two
// stages in one tick.
var stageOrder = []StageDescriptor{
	{Name: "State-update", Latency: 1},
	{Name: "Execute-writeback", Latency: 1},
	{Name: "Execute-fire", Latency: 1},
	{Name: "Schedule", Latency: 1},
	{Name: "Dispatch", Latency: 1},
	{Name: "Fetch", Latency: 1},
}

// Stages returns the six-phase sequence in intra-cycle execution order.
func (d *Driver) Stages() []StageDescriptor {
	out := make([]StageDescriptor, len(stageOrder))
	copy(out, stageOrder)
	return out
}
