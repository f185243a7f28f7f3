// Package trace provides trajectory and decision recording for run analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// RobotRecord captures one robot's state at the end of a step.
type RobotRecord struct {
	RobotID int
	Status  string
	X, Y    float64
	Target  int // task ID; -1 when the robot has no target
}

// TaskRecord captures one task's remaining effort at the end of a step.
type TaskRecord struct {
	TaskID    int
	Remaining int
}

// StepRecord captures the full system state at the end of one step.
type StepRecord struct {
	Clock  int64
	Robots []RobotRecord
	Tasks  []TaskRecord
}

// DecisionRecord captures a single resolver decision.
type DecisionRecord struct {
	RobotID    int
	Clock      int64
	ChosenTask int     // -1 when the resolver reported no preferred task
	Stimulus   float64 // aggregated stimulus of the chosen task; 0 when none
	Scores     map[int]float64
}
