package sim

// StimulusConfig groups membership function parameters.
type StimulusConfig struct {
	ProximityExponent float64 // exponent n of the travelling-time fuzzy set (default 1)
	LateFactor        float64 // steepness of the urgency decay past the deadline (default 0.07)
	EffortScale       float64 // normalizer for the workload criterion; 0 = derive from max initial ET
}

// PolicyConfig groups fuzzy decision policy selection.
type PolicyConfig struct {
	CriteriaOp AggregationOp // t-norm across criteria; OpMin is the Bellman-Zadeh rule (default)
	OpParam    float64       // lambda for OpYager, wmax for OpOWA; ignored otherwise

	Interference      bool    // penalize tasks already targeted by many robots
	InterferenceGamma float64 // linear interference membership at full crowding
	InterferenceBeta  float64 // linear interference membership at zero crowding

	Inertia  bool    // favor the robot's current target among comparable tasks
	InertiaK float64 // inertia membership granted to the current target (0 <= K <= 1)

	ChangeTargetWhileMoving bool // re-resolve the decision every step even while in transit
}

// RunConfig groups simulation loop bounds.
type RunConfig struct {
	MaxSteps       int64   // hard step bound; 0 = derive from the farthest deadline
	DeadlineFactor float64 // bound = DeadlineFactor x farthest deadline when MaxSteps is 0 (default 10)
}

// NewStimulusConfig creates a StimulusConfig without injecting defaults.
func NewStimulusConfig(proximityExponent, lateFactor, effortScale float64) StimulusConfig {
	return StimulusConfig{
		ProximityExponent: proximityExponent,
		LateFactor:        lateFactor,
		EffortScale:       effortScale,
	}
}

// NewPolicyConfig creates a PolicyConfig without injecting defaults.
func NewPolicyConfig(op AggregationOp, opParam float64, interference bool, gamma, beta float64,
	inertia bool, inertiaK float64, changeTargetWhileMoving bool) PolicyConfig {
	return PolicyConfig{
		CriteriaOp:              op,
		OpParam:                 opParam,
		Interference:            interference,
		InterferenceGamma:       gamma,
		InterferenceBeta:        beta,
		Inertia:                 inertia,
		InertiaK:                inertiaK,
		ChangeTargetWhileMoving: changeTargetWhileMoving,
	}
}

// NewRunConfig creates a RunConfig without injecting defaults.
func NewRunConfig(maxSteps int64, deadlineFactor float64) RunConfig {
	return RunConfig{MaxSteps: maxSteps, DeadlineFactor: deadlineFactor}
}

// DefaultStimulusConfig returns the membership parameters used in the
// published experiments.
func DefaultStimulusConfig() StimulusConfig {
	return StimulusConfig{ProximityExponent: 1.0, LateFactor: 0.07}
}

// DefaultPolicyConfig returns the plain Bellman-Zadeh min/max policy with
// both stimulus modifiers disabled.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{CriteriaOp: OpMin, ChangeTargetWhileMoving: true}
}

// DefaultRunConfig bounds a run at ten times the farthest deadline.
func DefaultRunConfig() RunConfig {
	return RunConfig{DeadlineFactor: 10.0}
}
