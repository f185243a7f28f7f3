package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SingleTaskCompletedOnTime(t *testing.T) {
	// GIVEN a robot co-located with the only task and a second robot far away
	robots := []*Robot{
		{ID: 0, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1},
		{ID: 1, Position: Point{10, 10}, Speed: 1, WorkCapacity: 1},
	}
	tasks := []*Task{
		{ID: 0, Position: Point{0, 0}, ET: 2, Deadline: 5, MaxUtility: 1.0},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())

	// WHEN the simulation runs to completion
	err := s.Run()

	// THEN the co-located robot finishes the task in two working steps
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, s.Outcome)
	assert.Equal(t, int64(2), s.Metrics.Makespan)
	assert.Equal(t, int64(1), tasks[0].CompletedAt)
	assert.Equal(t, 1, s.Metrics.CompletedTasks)
	assert.Equal(t, 0, s.Metrics.DeadlineViolations)
	assert.Equal(t, 100.0, s.Metrics.MeanUtilityPct)
	assert.Equal(t, int64(2), robots[0].WorkingSteps)
	assert.Equal(t, int64(0), robots[0].MovingSteps)
	// the far robot spent the whole run in transit
	assert.Equal(t, int64(2), robots[1].MovingSteps)
}

func TestRun_AdditiveWorkDecrement(t *testing.T) {
	// Two co-located robots with capacities 1 and 2 clear three effort units
	// in a single step; the second robot's decrement is clipped at remaining.
	robots := []*Robot{
		{ID: 0, Position: Point{5, 5}, Speed: 1, WorkCapacity: 1},
		{ID: 1, Position: Point{5, 5}, Speed: 1, WorkCapacity: 2},
	}
	tasks := []*Task{
		{ID: 0, Position: Point{5, 5}, ET: 3, Deadline: 10, MaxUtility: 1.0},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())

	err := s.Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, s.Outcome)
	assert.Equal(t, int64(1), s.Metrics.Makespan)
	assert.Equal(t, int64(0), tasks[0].CompletedAt)
	assert.Equal(t, 3, s.Metrics.TotalWorkDone)
	assert.Equal(t, 1, robots[0].WorkDone)
	assert.Equal(t, 2, robots[1].WorkDone)
}

func TestRun_LateCompletionAccruesTardiness(t *testing.T) {
	// The single task needs three working steps but its deadline is step 1.
	robots := []*Robot{
		{ID: 0, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1},
	}
	tasks := []*Task{
		{ID: 0, Position: Point{0, 0}, ET: 3, Deadline: 1, MaxUtility: 1.0},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())

	err := s.Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, s.Outcome)
	assert.Equal(t, int64(2), tasks[0].CompletedAt)
	assert.Equal(t, 1, s.Metrics.DeadlineViolations)
	assert.Equal(t, int64(1), s.Metrics.TotalTardiness)
	assert.Equal(t, int64(1), s.Metrics.MaxTardiness)
	// a late completion earns strictly less than the full utility
	assert.Less(t, tasks[0].AchievedUtility, tasks[0].MaxUtility)
	assert.Greater(t, tasks[0].AchievedUtility, 0.0)
}

func TestRun_StepBoundForcesNonConvergedTasks(t *testing.T) {
	// A distant task and a tight explicit bound: the run must end as
	// did-not-converge with the task force-finished and counted separately.
	robots := []*Robot{
		{ID: 0, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1},
	}
	tasks := []*Task{
		{ID: 0, Position: Point{1000, 0}, ET: 5, Deadline: 10, MaxUtility: 1.0},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(),
		RunConfig{MaxSteps: 3})

	err := s.Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeDidNotConverge, s.Outcome)
	assert.Equal(t, 1, s.Metrics.ForcedTasks)
	assert.Equal(t, 1, s.Metrics.CompletedTasks)
	assert.True(t, tasks[0].Completed())
	assert.Equal(t, s.Metrics.Makespan, tasks[0].CompletedAt)
}

func TestNewSimulator_DerivesStepBoundFromFarthestDeadline(t *testing.T) {
	robots := []*Robot{{ID: 0, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1}}
	tasks := []*Task{
		{ID: 0, Position: Point{0, 0}, ET: 2, Deadline: 5},
		{ID: 1, Position: Point{10, 0}, ET: 2, Deadline: 40},
	}

	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(),
		RunConfig{DeadlineFactor: 10})

	assert.Equal(t, int64(400), s.MaxSteps)
}

func TestNewSimulator_NormalizesEntities(t *testing.T) {
	robots := []*Robot{{ID: 1, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1},
		{ID: 0, Position: Point{1, 1}, Speed: 1, WorkCapacity: 1}}
	tasks := []*Task{{ID: 0, Position: Point{0, 0}, ET: 4, Deadline: 10}}

	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())

	// robots sorted ascending, started idle with no target
	assert.Equal(t, 0, s.Robots[0].ID)
	assert.Equal(t, StatusIdle, s.Robots[0].Status)
	assert.Equal(t, NoTarget, s.Robots[0].Target)
	// remaining effort initialized from ET, completion step cleared
	assert.Equal(t, 4, s.Tasks[0].Remaining)
	assert.Equal(t, int64(-1), s.Tasks[0].CompletedAt)
	// effort scale derived from the largest ET
	assert.Equal(t, 4.0, s.Resolver.Stimulus.EffortScale)
}

func TestStep_RemainingEffortNeverIncreases(t *testing.T) {
	robots := []*Robot{
		{ID: 0, Position: Point{0, 0}, Speed: 2, WorkCapacity: 1},
		{ID: 1, Position: Point{20, 0}, Speed: 2, WorkCapacity: 2},
	}
	tasks := []*Task{
		{ID: 0, Position: Point{4, 0}, ET: 6, Deadline: 30, MaxUtility: 1.0},
		{ID: 1, Position: Point{16, 0}, ET: 8, Deadline: 30, MaxUtility: 1.0},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())

	prev := make(map[int]int, len(s.Tasks))
	for _, task := range s.Tasks {
		prev[task.ID] = task.Remaining
	}
	outcome := OutcomeInProgress
	for outcome == OutcomeInProgress {
		var err error
		outcome, err = s.Step()
		require.NoError(t, err)
		for _, task := range s.Tasks {
			assert.LessOrEqual(t, task.Remaining, prev[task.ID],
				"task %d remaining effort increased at step %d", task.ID, s.Clock)
			assert.GreaterOrEqual(t, task.Remaining, 0)
			prev[task.ID] = task.Remaining
		}
	}
	assert.Equal(t, OutcomeCompleted, outcome)
}

func TestStep_CompletedTargetsClearedBeforeDeciding(t *testing.T) {
	// A robot left targeting a task that completed must not keep the stale
	// reference into the next decision cycle.
	robots := []*Robot{{ID: 0, Position: Point{0, 0}, Speed: 1, WorkCapacity: 1}}
	tasks := []*Task{
		{ID: 0, Position: Point{50, 0}, ET: 3, Deadline: 10},
		{ID: 1, Position: Point{0, 5}, ET: 3, Deadline: 30},
	}
	s := NewSimulator(robots, tasks, DefaultStimulusConfig(), DefaultPolicyConfig(), DefaultRunConfig())
	tasks[0].Remaining = 0
	tasks[0].CompletedAt = 2
	robots[0].Status = StatusMoving
	robots[0].Target = 0

	_, err := s.Step()

	require.NoError(t, err)
	assert.Equal(t, 1, robots[0].Target)
}
