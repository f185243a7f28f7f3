package trace

// TraceSummary aggregates statistics from a RunTrace.
type TraceSummary struct {
	TotalSteps         int
	TotalDecisions     int
	IdleDecisions      int // decisions where no task produced a positive stimulus
	UniqueTargets      int
	TargetDistribution map[int]int // task ID -> count of decisions selecting it
	MeanStimulus       float64     // over non-idle decisions
	MaxStimulus        float64
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if rt == nil {
		return summary
	}

	summary.TotalSteps = len(rt.Steps)
	summary.TotalDecisions = len(rt.Decisions)

	totalStimulus := 0.0
	chosen := 0
	for _, d := range rt.Decisions {
		if d.ChosenTask < 0 {
			summary.IdleDecisions++
			continue
		}
		summary.TargetDistribution[d.ChosenTask]++
		totalStimulus += d.Stimulus
		chosen++
		if d.Stimulus > summary.MaxStimulus {
			summary.MaxStimulus = d.Stimulus
		}
	}
	if chosen > 0 {
		summary.MeanStimulus = totalStimulus / float64(chosen)
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
