// Tracks run-wide effectiveness measures computed once, at termination,
// from the final robot and task states.

package sim

import "fmt"

// RobotStats aggregates one robot's accounting over the whole run.
type RobotStats struct {
	RobotID           int
	IdleSteps         int64
	MovingSteps       int64
	WorkingSteps      int64
	Utilization       float64 // fraction of steps spent moving or working
	DistanceTravelled float64
	WorkDone          int
}

// Metrics is the final snapshot of a run. Read-only output artifact;
// producing it never mutates simulation state.
type Metrics struct {
	Outcome  RunOutcome
	Makespan int64 // final value of the step counter

	CompletedTasks int
	ForcedTasks    int // tasks force-finished because the step bound was exceeded

	DeadlineViolations int
	TotalTardiness     int64
	MaxTardiness       int64

	MeanUtilityPct         float64 // mean achieved utility as a percentage of MaxUtility
	MeanTimeBeforeDeadline float64 // mean (deadline - completion step); negative when late on average

	TotalWorkDone int
	TotalDistance float64
	MeanDistance  float64

	Robots []RobotStats
}

// CollectMetrics computes the aggregate effectiveness measures from a
// finished run.
func CollectMetrics(s *Simulator) *Metrics {
	m := &Metrics{
		Outcome:  s.Outcome,
		Makespan: s.Clock,
		Robots:   make([]RobotStats, 0, len(s.Robots)),
	}

	utilityPctSum := 0.0
	timeBeforeDLSum := 0.0
	for _, t := range s.Tasks {
		if !t.Completed() {
			continue
		}
		m.CompletedTasks++
		if tardiness := t.Tardiness(); tardiness > 0 {
			m.DeadlineViolations++
			m.TotalTardiness += tardiness
			if tardiness > m.MaxTardiness {
				m.MaxTardiness = tardiness
			}
		}
		if t.MaxUtility > 0 {
			utilityPctSum += (t.AchievedUtility / t.MaxUtility) * 100
		}
		timeBeforeDLSum += float64(t.Deadline - t.CompletedAt)
	}
	if m.CompletedTasks > 0 {
		m.MeanUtilityPct = utilityPctSum / float64(m.CompletedTasks)
		m.MeanTimeBeforeDeadline = timeBeforeDLSum / float64(m.CompletedTasks)
	}

	total := s.Clock
	for _, r := range s.Robots {
		stats := RobotStats{
			RobotID:           r.ID,
			IdleSteps:         r.IdleSteps,
			MovingSteps:       r.MovingSteps,
			WorkingSteps:      r.WorkingSteps,
			DistanceTravelled: r.DistanceTravelled,
			WorkDone:          r.WorkDone,
		}
		if total > 0 {
			stats.Utilization = float64(r.MovingSteps+r.WorkingSteps) / float64(total)
		}
		m.Robots = append(m.Robots, stats)

		m.TotalWorkDone += r.WorkDone
		m.TotalDistance += r.DistanceTravelled
	}
	if len(s.Robots) > 0 {
		m.MeanDistance = m.TotalDistance / float64(len(s.Robots))
	}

	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Outcome              : %s\n", m.Outcome)
	fmt.Printf("Makespan             : %d steps\n", m.Makespan)
	fmt.Printf("Completed Tasks      : %d (forced: %d)\n", m.CompletedTasks, m.ForcedTasks)
	fmt.Printf("Deadline Violations  : %d\n", m.DeadlineViolations)
	fmt.Printf("Total Tardiness      : %d steps (max %d)\n", m.TotalTardiness, m.MaxTardiness)
	fmt.Printf("Mean Utility         : %.2f %%\n", m.MeanUtilityPct)
	fmt.Printf("Mean Time Before DL  : %.2f steps\n", m.MeanTimeBeforeDeadline)
	fmt.Printf("Total Work Done      : %d\n", m.TotalWorkDone)
	fmt.Printf("Mean Travel Distance : %.2f\n", m.MeanDistance)
	for _, r := range m.Robots {
		fmt.Printf("Robot %2d             : idle=%d moving=%d working=%d util=%.2f dist=%.2f work=%d\n",
			r.RobotID, r.IdleSteps, r.MovingSteps, r.WorkingSteps, r.Utilization, r.DistanceTravelled, r.WorkDone)
	}
}
