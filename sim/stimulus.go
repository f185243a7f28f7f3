// Fuzzy membership functions that turn raw geometric and temporal
// observations into degrees of satisfaction per decision criterion.
// All functions here are pure: they read robot/task state and never mutate it.

package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState reports a contract violation: a component was invoked on an
// entity that violates its precondition (e.g. a stimulus requested for a
// completed task). It indicates a bug in the caller, not a runtime condition.
var ErrInvalidState = errors.New("invalid entity state")

// Criterion names one fuzzy decision criterion.
type Criterion string

const (
	// CriterionUrgency grows as the task's deadline horizon shrinks.
	CriterionUrgency Criterion = "urgency"
	// CriterionProximity grows as the robot-to-task travel time shrinks.
	CriterionProximity Criterion = "proximity"
	// CriterionWorkload grows with the task's remaining effort, so heavier
	// tasks are preferred. This orientation is fixed for the whole run.
	CriterionWorkload Criterion = "workload"
)

// Criteria is the closed, ordered set of decision criteria. The resolver
// aggregates memberships in this order; extending the set means adding a
// constant here and a case in Memberships.
var Criteria = []Criterion{CriterionUrgency, CriterionProximity, CriterionWorkload}

// membershipFloor is the smallest membership a criterion reports instead of
// a hard zero, so that min-aggregation over an eligible task stays positive.
// Matches the epsilon floor of the travelling-time fuzzy set in the
// reference experiments.
var membershipFloor = math.Nextafter(1, 2) - 1

// Memberships computes the fuzzy membership degree of every decision
// criterion for one (robot, task) pair at the given step. All degrees are
// in [0,1]. Calling it on a completed task is a contract violation.
func (c StimulusConfig) Memberships(r *Robot, task *Task, now int64) (map[Criterion]float64, error) {
	if task.Completed() {
		return nil, fmt.Errorf("%w: stimulus requested for completed task %d", ErrInvalidState, task.ID)
	}

	travel := int64(0)
	if r.Position != task.Position {
		travel = r.TravelTime(r.Position.DistanceTo(task.Position))
	}

	return map[Criterion]float64{
		CriterionUrgency:   c.urgency(task, travel, r.WorkCapacity, now),
		CriterionProximity: c.proximity(travel, task.Remaining),
		CriterionWorkload:  c.workload(task.Remaining),
	}, nil
}

// urgency implements the deadline fuzzy set. The expected completion step is
// now + travel + ceil(remaining/workCapacity); membership reaches 1 when it
// coincides with the deadline and decays on both sides, with the late side
// falling off sharply (LateFactor). A task whose deadline has already passed
// keeps a positive, clamped membership: late tasks stay completable.
func (c StimulusConfig) urgency(task *Task, travel int64, workCapacity int, now int64) float64 {
	dl := float64(task.Deadline)
	if dl <= 0 {
		// Degenerate deadline at or before step 0: maximally urgent.
		return 1.0
	}

	expectedEnd := float64(now + travel + int64(math.Ceil(float64(task.Remaining)/float64(workCapacity))))
	if expectedEnd <= dl {
		return dl / ((dl - expectedEnd) + dl)
	}
	return (c.LateFactor * dl) / ((expectedEnd - dl) + c.LateFactor*dl)
}

// proximity implements the travelling-time fuzzy set 1 - (travel/remaining)^n.
// Travel time is normalized by the task's remaining effort: a heavy task
// tolerates a longer trip. Membership is 1 at zero distance and floors at
// membershipFloor instead of vanishing.
func (c StimulusConfig) proximity(travel int64, remaining int) float64 {
	x := float64(travel) / float64(remaining)
	if x >= 1 {
		return membershipFloor
	}
	return math.Max(1-math.Pow(x, c.ProximityExponent), membershipFloor)
}

// workload is the remaining effort normalized by EffortScale, clamped to (0,1].
func (c StimulusConfig) workload(remaining int) float64 {
	if c.EffortScale <= 0 {
		return 1.0
	}
	m := float64(remaining) / c.EffortScale
	if m > 1 {
		return 1.0
	}
	return math.Max(m, membershipFloor)
}

// interference is the linear crowding membership: it decays from beta at an
// empty task to gamma at full crowding, clipped at 0.
func interference(targeting, maxRobots int, gamma, beta float64) float64 {
	return math.Max(((gamma-beta)/float64(maxRobots))*float64(targeting)+beta, 0.0)
}

// inertia grants membership k to the robot's current target and 0 to any
// other task, modeling the tendency to stay committed.
func inertia(currentTarget, taskID int, k float64) float64 {
	if currentTarget != NoTarget && currentTarget == taskID {
		return k
	}
	return 0.0
}
