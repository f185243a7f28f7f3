// Random scenario generation: places tasks in a bounded environment with a
// minimum pairwise separation and derives robot speeds from the resulting
// geometry, so every trip takes at least a couple of steps.

package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// placementMargin keeps tasks away from the environment border.
const placementMargin = 15.0

// maxPlacementAttempts bounds the rejection-sampling loop for task placement.
const maxPlacementAttempts = 100000

// ScenarioConfig groups randomized scenario generation parameters.
type ScenarioConfig struct {
	NumTasks  int
	NumRobots int

	EnvWidth          float64
	EnvHeight         float64
	MinTaskSeparation float64

	MinET             int     // minimum task execution time
	MaxET             int     // maximum task execution time
	MinDeadlineFactor float64 // deadline as a multiple of ET, lower bound
	MaxDeadlineFactor float64 // deadline as a multiple of ET, upper bound
	MinUtility        float64
	MaxUtility        float64
	MaxRobotsPerTask  int

	MinSpeedFactor  float64 // slowest speed as a fraction of the fastest
	MinWorkCapacity int
	MaxWorkCapacity int

	// Start, when non-nil, places every robot at the same initial position.
	// When nil, each robot starts on a randomly chosen distinct task.
	Start *Point
}

// DefaultScenarioConfig mirrors the settings of the reference experiments:
// a 640x480 environment, 20 tasks at least 100 apart, 10 robots.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		NumTasks:          20,
		NumRobots:         10,
		EnvWidth:          640,
		EnvHeight:         480,
		MinTaskSeparation: 100,
		MinET:             4,
		MaxET:             30,
		MinDeadlineFactor: 2.5,
		MaxDeadlineFactor: 4.0,
		MinUtility:        0.75,
		MaxUtility:        1.0,
		MaxRobotsPerTask:  3,
		MinSpeedFactor:    0.8,
		MinWorkCapacity:   1,
		MaxWorkCapacity:   2,
	}
}

// GenerateScenario creates the initial robot and task sets for one run.
// Identical config and RNG state produce identical scenarios.
func GenerateScenario(cfg ScenarioConfig, rng *rand.Rand) ([]*Robot, []*Task, error) {
	if cfg.NumTasks < 1 || cfg.NumRobots < 1 {
		return nil, nil, fmt.Errorf("scenario needs at least one task and one robot, got %d/%d",
			cfg.NumTasks, cfg.NumRobots)
	}
	if cfg.Start == nil && cfg.NumRobots > cfg.NumTasks {
		return nil, nil, fmt.Errorf("cannot start %d robots on %d distinct tasks", cfg.NumRobots, cfg.NumTasks)
	}

	positions, err := placeTasks(cfg, rng)
	if err != nil {
		return nil, nil, err
	}

	tasks := make([]*Task, 0, cfg.NumTasks)
	for i := 0; i < cfg.NumTasks; i++ {
		et := randIntBetween(rng, cfg.MinET, cfg.MaxET)
		deadline := int64(math.Round(float64(et) * uniformBetween(rng, cfg.MinDeadlineFactor, cfg.MaxDeadlineFactor)))
		tasks = append(tasks, &Task{
			ID:          i,
			Position:    positions[i],
			ET:          et,
			Remaining:   et,
			Deadline:    deadline,
			MaxRobots:   cfg.MaxRobotsPerTask,
			MaxUtility:  uniformBetween(rng, cfg.MinUtility, cfg.MaxUtility),
			CompletedAt: -1,
		})
	}

	// Speeds are derived from the minimum inter-task distance so that the
	// shortest possible trip still takes at least two steps.
	maxSpeed := math.Ceil(minTaskDistance(tasks) / 1.25)
	minSpeed := math.Ceil(maxSpeed * cfg.MinSpeedFactor)

	var startTasks []int
	if cfg.Start == nil {
		startTasks = rng.Perm(cfg.NumTasks)[:cfg.NumRobots]
	}

	robots := make([]*Robot, 0, cfg.NumRobots)
	for i := 0; i < cfg.NumRobots; i++ {
		pos := Point{}
		if cfg.Start != nil {
			pos = *cfg.Start
		} else {
			pos = tasks[startTasks[i]].Position
		}
		robots = append(robots, &Robot{
			ID:           i,
			Position:     pos,
			Status:       StatusIdle,
			Target:       NoTarget,
			Speed:        float64(randIntBetween(rng, int(minSpeed), int(maxSpeed))),
			WorkCapacity: randIntBetween(rng, cfg.MinWorkCapacity, cfg.MaxWorkCapacity),
		})
	}

	logrus.Debugf("Generated scenario: %d tasks, %d robots, speeds in [%.0f, %.0f]",
		len(tasks), len(robots), minSpeed, maxSpeed)
	return robots, tasks, nil
}

// placeTasks rejection-samples task positions that keep the configured
// minimum pairwise separation inside the environment margins.
func placeTasks(cfg ScenarioConfig, rng *rand.Rand) ([]Point, error) {
	positions := make([]Point, 0, cfg.NumTasks)
	attempts := 0
	for len(positions) < cfg.NumTasks {
		if attempts++; attempts > maxPlacementAttempts {
			return nil, fmt.Errorf("could not place %d tasks at separation %.0f in a %gx%g environment",
				cfg.NumTasks, cfg.MinTaskSeparation, cfg.EnvWidth, cfg.EnvHeight)
		}

		candidate := Point{
			X: placementMargin + rng.Float64()*(cfg.EnvWidth-2*placementMargin),
			Y: placementMargin + rng.Float64()*(cfg.EnvHeight-2*placementMargin),
		}
		ok := true
		for _, p := range positions {
			if candidate.DistanceTo(p) < cfg.MinTaskSeparation {
				ok = false
				break
			}
		}
		if ok {
			positions = append(positions, candidate)
		}
	}
	return positions, nil
}

// minTaskDistance returns the minimum pairwise distance between tasks,
// or 1 for a single-task scenario.
func minTaskDistance(tasks []*Task) float64 {
	if len(tasks) < 2 {
		return 1.0
	}
	minDist := math.MaxFloat64
	for i, a := range tasks {
		for _, b := range tasks[i+1:] {
			if d := a.Position.DistanceTo(b.Position); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

func randIntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniformBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
