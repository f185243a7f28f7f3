// The fuzzy decision resolver: aggregates per-criterion memberships into one
// stimulus per (robot, task) pair and performs the max-min selection.

package sim

// DecisionContext is the consistent snapshot one robot decides against.
// All robots deciding within the same step share one context, built before
// any of that step's transitions are applied.
type DecisionContext struct {
	Clock int64
	Tasks []*Task
	// TargetCounts holds, per task ID, the number of robots targeting that
	// task as of the start of the step. Read by the interference modifier.
	TargetCounts map[int]int
}

// Decision is the resolver outcome for one robot at one step.
type Decision struct {
	TaskID   int     // NoTarget when no task produced a positive stimulus
	Stimulus float64 // aggregated stimulus of the selected task; 0 for NoTarget
	// Scores holds the aggregated stimulus of every eligible task,
	// recorded for tracing. Nil when tracing is disabled.
	Scores map[int]float64
}

// None reports whether the resolver found no preferred task. This is a
// normal outcome (the robot idles), not an error.
func (d Decision) None() bool {
	return d.TaskID == NoTarget
}

// Resolver computes robot decisions from stimulus memberships.
type Resolver struct {
	Stimulus StimulusConfig
	Policy   PolicyConfig
	// KeepScores records per-task stimulus values in every Decision,
	// enabling decision tracing at the cost of one map per resolution.
	KeepScores bool
}

// NewResolver creates a Resolver for the given stimulus and policy parameters.
func NewResolver(stimulus StimulusConfig, policy PolicyConfig) *Resolver {
	return &Resolver{Stimulus: stimulus, Policy: policy}
}

// Resolve selects the task maximizing the robot's aggregated stimulus.
//
// The stimulus of a task is the fold of its per-criterion memberships under
// the configured operator; with OpMin this is the Bellman-Zadeh rule (the
// stimulus equals the minimum membership, and the selected decision
// maximizes that minimum). Tasks are scanned in ascending ID order and ties
// keep the first-encountered task, so resolution is deterministic for
// identical state. Only tasks with remaining effort are eligible; when no
// eligible task scores strictly above zero the resolver reports NoTarget.
func (rs *Resolver) Resolve(r *Robot, ctx *DecisionContext) (Decision, error) {
	best := Decision{TaskID: NoTarget}
	if rs.KeepScores {
		best.Scores = make(map[int]float64)
	}

	for _, task := range ctx.Tasks {
		if task.Completed() {
			continue
		}

		memberships, err := rs.Stimulus.Memberships(r, task, ctx.Clock)
		if err != nil {
			return Decision{TaskID: NoTarget}, err
		}

		degrees := make([]float64, 0, len(Criteria))
		for _, criterion := range Criteria {
			degrees = append(degrees, memberships[criterion])
		}
		stimulus := AggregateAll(rs.Policy.CriteriaOp, rs.Policy.OpParam, degrees)

		if rs.Policy.Interference {
			pi := interference(ctx.TargetCounts[task.ID], task.MaxRobots,
				rs.Policy.InterferenceGamma, rs.Policy.InterferenceBeta)
			stimulus = Aggregate(rs.Policy.CriteriaOp, rs.Policy.OpParam, stimulus, pi)
		}
		if rs.Policy.Inertia {
			in := inertia(r.Target, task.ID, rs.Policy.InertiaK)
			stimulus = Aggregate(OpMax, 0, stimulus, in)
		}

		if best.Scores != nil {
			best.Scores[task.ID] = stimulus
		}
		if stimulus > best.Stimulus {
			best.TaskID = task.ID
			best.Stimulus = stimulus
		}
	}

	return best, nil
}
