package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every resolver decision.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelSteps captures decisions plus the per-step trajectory.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelSteps:     true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// RunTrace collects step and decision records during a simulation run.
type RunTrace struct {
	Config    TraceConfig
	Steps     []StepRecord
	Decisions []DecisionRecord
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(config TraceConfig) *RunTrace {
	return &RunTrace{
		Config:    config,
		Steps:     make([]StepRecord, 0),
		Decisions: make([]DecisionRecord, 0),
	}
}

// WantsDecisions reports whether decision records should be collected.
func (rt *RunTrace) WantsDecisions() bool {
	return rt.Config.Level == TraceLevelDecisions || rt.Config.Level == TraceLevelSteps
}

// WantsSteps reports whether per-step trajectory records should be collected.
func (rt *RunTrace) WantsSteps() bool {
	return rt.Config.Level == TraceLevelSteps
}

// RecordStep appends a step trajectory record.
func (rt *RunTrace) RecordStep(record StepRecord) {
	rt.Steps = append(rt.Steps, record)
}

// RecordDecision appends a resolver decision record.
func (rt *RunTrace) RecordDecision(record DecisionRecord) {
	rt.Decisions = append(rt.Decisions, record)
}
