package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRNG(seed int64) *PartitionedRNG {
	return NewPartitionedRNG(NewSimulationKey(seed))
}

func TestGenerateScenario_Deterministic(t *testing.T) {
	// GIVEN two RNGs derived from the same simulation key
	cfg := DefaultScenarioConfig()
	robotsA, tasksA, err := GenerateScenario(cfg, scenarioRNG(42).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)
	robotsB, tasksB, err := GenerateScenario(cfg, scenarioRNG(42).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)

	// THEN both scenarios are identical, entity by entity
	require.Len(t, tasksB, len(tasksA))
	for i, task := range tasksA {
		assert.Equal(t, task.Position, tasksB[i].Position)
		assert.Equal(t, task.ET, tasksB[i].ET)
		assert.Equal(t, task.Deadline, tasksB[i].Deadline)
		assert.Equal(t, task.MaxUtility, tasksB[i].MaxUtility)
	}
	require.Len(t, robotsB, len(robotsA))
	for i, robot := range robotsA {
		assert.Equal(t, robot.Position, robotsB[i].Position)
		assert.Equal(t, robot.Speed, robotsB[i].Speed)
		assert.Equal(t, robot.WorkCapacity, robotsB[i].WorkCapacity)
	}
}

func TestGenerateScenario_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultScenarioConfig()
	_, tasksA, err := GenerateScenario(cfg, scenarioRNG(1).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)
	_, tasksB, err := GenerateScenario(cfg, scenarioRNG(2).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)

	assert.NotEqual(t, tasksA[0].Position, tasksB[0].Position)
}

func TestGenerateScenario_RespectsConfiguredBounds(t *testing.T) {
	cfg := DefaultScenarioConfig()
	robots, tasks, err := GenerateScenario(cfg, scenarioRNG(7).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)

	assert.Len(t, tasks, cfg.NumTasks)
	assert.Len(t, robots, cfg.NumRobots)

	for i, a := range tasks {
		assert.GreaterOrEqual(t, a.ET, cfg.MinET)
		assert.LessOrEqual(t, a.ET, cfg.MaxET)
		// deadline factor bounds, with rounding slack
		assert.GreaterOrEqual(t, float64(a.Deadline), float64(a.ET)*cfg.MinDeadlineFactor-0.5)
		assert.LessOrEqual(t, float64(a.Deadline), float64(a.ET)*cfg.MaxDeadlineFactor+0.5)
		assert.GreaterOrEqual(t, a.MaxUtility, cfg.MinUtility)
		assert.LessOrEqual(t, a.MaxUtility, cfg.MaxUtility)
		assert.Equal(t, cfg.MaxRobotsPerTask, a.MaxRobots)
		assert.Equal(t, a.ET, a.Remaining)

		for _, b := range tasks[i+1:] {
			assert.GreaterOrEqual(t, a.Position.DistanceTo(b.Position), cfg.MinTaskSeparation,
				"tasks %d and %d violate the minimum separation", a.ID, b.ID)
		}
	}

	for _, r := range robots {
		assert.Greater(t, r.Speed, 0.0)
		assert.GreaterOrEqual(t, r.WorkCapacity, cfg.MinWorkCapacity)
		assert.LessOrEqual(t, r.WorkCapacity, cfg.MaxWorkCapacity)
		assert.Equal(t, StatusIdle, r.Status)
		assert.Equal(t, NoTarget, r.Target)
	}
}

func TestGenerateScenario_RobotsStartOnDistinctTasks(t *testing.T) {
	// With no explicit start point, robots spawn on pairwise distinct tasks.
	cfg := DefaultScenarioConfig()
	require.Nil(t, cfg.Start)

	robots, tasks, err := GenerateScenario(cfg, scenarioRNG(11).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)

	seen := make(map[Point]bool)
	for _, r := range robots {
		assert.False(t, seen[r.Position], "robot %d shares a start task", r.ID)
		seen[r.Position] = true

		onTask := false
		for _, task := range tasks {
			if r.Position == task.Position {
				onTask = true
				break
			}
		}
		assert.True(t, onTask, "robot %d does not start on a task", r.ID)
	}
}

func TestGenerateScenario_ExplicitStartPoint(t *testing.T) {
	cfg := DefaultScenarioConfig()
	cfg.Start = &Point{X: 0, Y: 0}
	cfg.NumRobots = 30 // more robots than tasks is fine with an explicit start

	robots, _, err := GenerateScenario(cfg, scenarioRNG(3).ForSubsystem(SubsystemScenario))
	require.NoError(t, err)

	for _, r := range robots {
		assert.Equal(t, Point{0, 0}, r.Position)
	}
}

func TestGenerateScenario_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScenarioConfig)
	}{
		{
			name:   "no tasks",
			mutate: func(c *ScenarioConfig) { c.NumTasks = 0 },
		},
		{
			name:   "more robots than start tasks",
			mutate: func(c *ScenarioConfig) { c.NumRobots = c.NumTasks + 1 },
		},
		{
			name: "impossible placement",
			mutate: func(c *ScenarioConfig) {
				c.EnvWidth = 100
				c.EnvHeight = 100
				c.MinTaskSeparation = 500
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultScenarioConfig()
			test.mutate(&cfg)

			_, _, err := GenerateScenario(cfg, scenarioRNG(1).ForSubsystem(SubsystemScenario))

			assert.Error(t, err)
		})
	}
}
