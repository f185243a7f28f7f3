// Defines the Robot and Task records that make up the simulation state.
// Robots cycle among Idle/Moving/Working for the whole run; tasks transition
// Incomplete -> Complete exactly once and never revert.

package sim

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate in the task environment.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// RobotStatus represents the action state of a robot.
type RobotStatus string

const (
	StatusIdle    RobotStatus = "idle"
	StatusMoving  RobotStatus = "moving"
	StatusWorking RobotStatus = "working"
)

// NoTarget marks a robot that has no preferred task.
const NoTarget = -1

// Robot models a single agent in the simulation.
type Robot struct {
	ID           int
	Position     Point
	Status       RobotStatus
	Target       int     // task ID the robot is moving to or working on; NoTarget when unset
	Speed        float64 // distance covered per step while moving
	WorkCapacity int     // effort units removed per step while working

	// Per-run accounting, read by the metrics collector.
	DistanceTravelled float64
	WorkDone          int
	IdleSteps         int64
	MovingSteps       int64
	WorkingSteps      int64
}

// TravelTime returns the number of whole steps the robot needs to cover a distance.
func (r *Robot) TravelTime(distance float64) int64 {
	return int64(math.Ceil(distance / r.Speed))
}

// AdvanceToward moves the robot toward dest by at most its per-step speed,
// snapping exactly onto dest on arrival so that co-location checks are exact.
func (r *Robot) AdvanceToward(dest Point) {
	dist := r.Position.DistanceTo(dest)
	if dist <= r.Speed {
		r.DistanceTravelled += dist
		r.Position = dest
		return
	}
	u := r.Speed / dist
	r.Position.X += (dest.X - r.Position.X) * u
	r.Position.Y += (dest.Y - r.Position.Y) * u
	r.DistanceTravelled += r.Speed
}

// String returns a human-readable representation of a Robot.
func (r *Robot) String() string {
	return fmt.Sprintf("Robot: (ID: %d, Status: %s, Pos: (%.2f, %.2f), Target: %d)",
		r.ID, r.Status, r.Position.X, r.Position.Y, r.Target)
}

// Task models a unit of work placed in the environment.
type Task struct {
	ID         int
	Position   Point
	ET         int     // initial execution time (total effort)
	Remaining  int     // remaining effort; 0 means completed (terminal)
	Deadline   int64   // absolute step index after which the task is late
	MaxRobots  int     // max robots that can usefully crowd the task (interference modeling)
	MaxUtility float64 // reward for completing the task on time

	CompletedAt     int64   // step of completion; -1 while incomplete
	AchievedUtility float64 // reward actually obtained, decayed when completed late
}

// Completed reports whether the task has reached its terminal state.
func (t *Task) Completed() bool {
	return t.Remaining <= 0
}

// Tardiness returns completion step minus deadline, clipped at 0 for
// on-time tasks. Only meaningful once the task is completed.
func (t *Task) Tardiness() int64 {
	if t.CompletedAt <= t.Deadline {
		return 0
	}
	return t.CompletedAt - t.Deadline
}

// String returns a human-readable representation of a Task.
func (t *Task) String() string {
	return fmt.Sprintf("Task: (ID: %d, Pos: (%.2f, %.2f), Remaining: %d/%d, Deadline: %d)",
		t.ID, t.Position.X, t.Position.Y, t.Remaining, t.ET, t.Deadline)
}
