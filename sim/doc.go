// Package sim provides the core discrete-time simulation engine for MRTAOptima,
// a multi-robot task allocation simulator based on fuzzy response thresholds.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - entity.go: Robot and Task records, positions, and movement
//   - stimulus.go: fuzzy membership functions per decision criterion
//   - simulator.go: the step loop, the decide/apply barrier, and termination
//
// # Architecture
//
// Each step, every robot computes a fuzzy membership degree per decision
// criterion (urgency, proximity, workload) for every unfinished task. The
// Resolver aggregates those degrees into one stimulus per task with a
// t-norm (minimum by default, the Bellman-Zadeh rule) and selects the task
// maximizing the aggregated stimulus. The action state machine then moves
// the robot toward the selected task or lets it work on it.
//
// All robot decisions within a step are computed against a consistent
// snapshot of positions and remaining efforts before any of that step's
// transitions are applied, so the outcome does not depend on robot
// iteration order beyond the documented deterministic tie-breaks.
//
// Sub-packages:
//   - sim/trace: per-step trajectory and decision recording
package sim
