// sim/simulator.go
//
// The discrete-time step loop. Every step runs in two phases: all robots
// decide against a consistent snapshot of positions and remaining efforts,
// then all transitions and work decrements are applied, both in ascending
// robot ID order. The barrier keeps the outcome independent of which robot
// happens to be evaluated first within a step.

package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/BielJM1/MRTAOptima/sim/trace"
)

// RunOutcome classifies how a simulation run ended.
type RunOutcome string

const (
	// OutcomeInProgress means the termination condition has not been reached yet.
	OutcomeInProgress RunOutcome = "in-progress"
	// OutcomeCompleted means every task reached zero remaining effort.
	OutcomeCompleted RunOutcome = "completed"
	// OutcomeDidNotConverge means the step bound was exceeded before all
	// tasks completed. This is a reported run outcome, not a failure.
	OutcomeDidNotConverge RunOutcome = "did-not-converge"
)

// Simulator is the core object that holds simulation time, system state,
// and the step loop. It owns the clock; every other component reads it but
// never mutates it.
type Simulator struct {
	Clock    int64
	MaxSteps int64
	Robots   []*Robot // ascending ID order, fixed for the run
	Tasks    []*Task  // ascending ID order, fixed for the run
	Resolver *Resolver
	Metrics  *Metrics
	Outcome  RunOutcome
	// Trace, when non-nil, collects decision and trajectory records.
	Trace *trace.RunTrace

	taskByID map[int]*Task
}

// NewSimulator wires robots and tasks into a runnable simulator.
//
// Entities are normalized for convenience: robots with an empty status start
// Idle with no target, tasks with zero remaining effort and a positive ET
// start with Remaining = ET. When the run bound is not set explicitly it is
// derived as DeadlineFactor times the farthest deadline, so a pathological
// configuration (e.g. an unreachable task) still terminates.
func NewSimulator(robots []*Robot, tasks []*Task, stimulus StimulusConfig, policy PolicyConfig, run RunConfig) *Simulator {
	sort.Slice(robots, func(i, j int) bool { return robots[i].ID < robots[j].ID })
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	byID := make(map[int]*Task, len(tasks))
	maxET := 0
	farthestDeadline := int64(0)
	for _, t := range tasks {
		if t.Remaining == 0 && t.ET > 0 {
			t.Remaining = t.ET
		}
		if !t.Completed() {
			t.CompletedAt = -1
		}
		if t.ET > maxET {
			maxET = t.ET
		}
		if t.Deadline > farthestDeadline {
			farthestDeadline = t.Deadline
		}
		byID[t.ID] = t
	}
	for _, r := range robots {
		if r.Status == "" {
			r.Status = StatusIdle
			r.Target = NoTarget
		}
	}

	if stimulus.EffortScale <= 0 {
		stimulus.EffortScale = float64(maxET)
	}

	maxSteps := run.MaxSteps
	if maxSteps <= 0 {
		factor := run.DeadlineFactor
		if factor <= 0 {
			factor = DefaultRunConfig().DeadlineFactor
		}
		maxSteps = int64(math.Ceil(factor * float64(farthestDeadline)))
	}

	return &Simulator{
		Clock:    0,
		MaxSteps: maxSteps,
		Robots:   robots,
		Tasks:    tasks,
		Resolver: NewResolver(stimulus, policy),
		Outcome:  OutcomeInProgress,
		taskByID: byID,
	}
}

// Run drives the loop until every task completes or the step bound is
// exceeded, then collects final metrics. The returned error reports only
// contract violations; both normal outcomes are recorded on the Simulator.
func (s *Simulator) Run() error {
	if s.Trace != nil && s.Trace.WantsDecisions() {
		s.Resolver.KeepScores = true
	}

	outcome := OutcomeInProgress
	for outcome == OutcomeInProgress {
		var err error
		outcome, err = s.Step()
		if err != nil {
			return err
		}
	}
	s.finish(outcome)
	logrus.Infof("[step %04d] Simulation ended: %s", s.Clock, s.Outcome)
	return nil
}

// Step executes one full decide/apply cycle and advances the clock.
func (s *Simulator) Step() (RunOutcome, error) {
	s.clearCompletedTargets()

	decisions, err := s.decide()
	if err != nil {
		return OutcomeInProgress, err
	}
	s.apply(decisions)

	if s.Trace != nil && s.Trace.WantsSteps() {
		s.Trace.RecordStep(s.snapshotStep())
	}

	s.Clock++

	if s.allTasksCompleted() {
		return OutcomeCompleted, nil
	}
	if s.Clock > s.MaxSteps {
		return OutcomeDidNotConverge, nil
	}
	return OutcomeInProgress, nil
}

// clearCompletedTargets drops references to tasks that completed during the
// previous step, before the next decision cycle observes them.
func (s *Simulator) clearCompletedTargets() {
	for _, r := range s.Robots {
		if r.Target == NoTarget {
			continue
		}
		if t, ok := s.taskByID[r.Target]; !ok || t.Completed() {
			r.Target = NoTarget
		}
	}
}

// decide runs the decision cycle for every robot against one shared snapshot.
// No simulation state is mutated in this phase.
func (s *Simulator) decide() ([]Decision, error) {
	ctx := &DecisionContext{
		Clock:        s.Clock,
		Tasks:        s.Tasks,
		TargetCounts: s.targetCounts(),
	}

	decisions := make([]Decision, len(s.Robots))
	for i, r := range s.Robots {
		// A robot committed to a trip keeps its destination unless the
		// policy allows retargeting mid-transit.
		if r.Status == StatusMoving && !s.Resolver.Policy.ChangeTargetWhileMoving && r.Target != NoTarget {
			decisions[i] = Decision{TaskID: r.Target}
			continue
		}

		d, err := s.Resolver.Resolve(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("robot %d decision at step %d: %w", r.ID, s.Clock, err)
		}
		decisions[i] = d

		if s.Trace != nil && s.Trace.WantsDecisions() {
			s.Trace.RecordDecision(trace.DecisionRecord{
				RobotID:    r.ID,
				Clock:      s.Clock,
				ChosenTask: d.TaskID,
				Stimulus:   d.Stimulus,
				Scores:     d.Scores,
			})
		}
	}
	return decisions, nil
}

// apply performs every robot's state transition for this step. Work
// decrements are additive: each co-located working robot subtracts its own
// capacity, clipped at the task's remaining effort.
func (s *Simulator) apply(decisions []Decision) {
	for i, r := range s.Robots {
		d := decisions[i]
		if d.None() {
			r.Status = StatusIdle
			r.Target = NoTarget
			r.IdleSteps++
			continue
		}

		task := s.taskByID[d.TaskID]
		r.Target = task.ID

		if r.Position != task.Position {
			r.Status = StatusMoving
			r.AdvanceToward(task.Position)
			r.MovingSteps++
			continue
		}

		r.Status = StatusWorking
		r.WorkingSteps++

		work := task.Remaining
		if work > r.WorkCapacity {
			work = r.WorkCapacity
		}
		task.Remaining -= work
		r.WorkDone += work

		if task.Completed() && work > 0 {
			task.CompletedAt = s.Clock
			task.AchievedUtility = achievedUtility(task, s.Clock, s.Resolver.Stimulus.LateFactor)
			logrus.Infof("[step %04d] Task %d completed by robot %d (deadline %d)",
				s.Clock, task.ID, r.ID, task.Deadline)
		}
	}
}

// finish records the outcome and collects the final metrics snapshot.
// Tasks still incomplete after a non-converged run are force-finished at the
// current step so tardiness and utility aggregates stay comparable across
// runs; the count of forced tasks is reported separately.
func (s *Simulator) finish(outcome RunOutcome) {
	s.Outcome = outcome

	forced := 0
	if outcome == OutcomeDidNotConverge {
		for _, t := range s.Tasks {
			if t.Completed() {
				continue
			}
			forced++
			t.Remaining = 0
			t.CompletedAt = s.Clock
			t.AchievedUtility = achievedUtility(t, s.Clock, s.Resolver.Stimulus.LateFactor)
		}
	}

	s.Metrics = CollectMetrics(s)
	s.Metrics.ForcedTasks = forced
}

// achievedUtility is the reward obtained for completing a task: the full
// MaxUtility when on time, decayed by the late urgency curve otherwise.
func achievedUtility(task *Task, completedAt int64, lateFactor float64) float64 {
	if completedAt <= task.Deadline {
		return task.MaxUtility
	}
	dl := float64(task.Deadline)
	if dl <= 0 {
		return 0.0
	}
	late := float64(completedAt) - dl
	return task.MaxUtility * (lateFactor * dl) / (late + lateFactor*dl)
}

// targetCounts tallies how many robots currently target each task.
func (s *Simulator) targetCounts() map[int]int {
	counts := make(map[int]int, len(s.Tasks))
	for _, r := range s.Robots {
		if r.Target != NoTarget {
			counts[r.Target]++
		}
	}
	return counts
}

// allTasksCompleted is the global termination condition.
func (s *Simulator) allTasksCompleted() bool {
	for _, t := range s.Tasks {
		if !t.Completed() {
			return false
		}
	}
	return true
}

// snapshotStep captures the post-apply system state for tracing.
func (s *Simulator) snapshotStep() trace.StepRecord {
	record := trace.StepRecord{
		Clock:  s.Clock,
		Robots: make([]trace.RobotRecord, 0, len(s.Robots)),
		Tasks:  make([]trace.TaskRecord, 0, len(s.Tasks)),
	}
	for _, r := range s.Robots {
		record.Robots = append(record.Robots, trace.RobotRecord{
			RobotID: r.ID,
			Status:  string(r.Status),
			X:       r.Position.X,
			Y:       r.Position.Y,
			Target:  r.Target,
		})
	}
	for _, t := range s.Tasks {
		record.Tasks = append(record.Tasks, trace.TaskRecord{TaskID: t.ID, Remaining: t.Remaining})
	}
	return record
}
