package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStimulusConfig(t *testing.T) {
	cfg := NewStimulusConfig(2.0, 0.05, 30)

	assert.Equal(t, 2.0, cfg.ProximityExponent)
	assert.Equal(t, 0.05, cfg.LateFactor)
	assert.Equal(t, 30.0, cfg.EffortScale)
}

func TestNewPolicyConfig(t *testing.T) {
	cfg := NewPolicyConfig(OpYager, 1.0, true, 0.1, 0.9, true, 0.5, false)

	assert.Equal(t, OpYager, cfg.CriteriaOp)
	assert.Equal(t, 1.0, cfg.OpParam)
	assert.True(t, cfg.Interference)
	assert.Equal(t, 0.1, cfg.InterferenceGamma)
	assert.Equal(t, 0.9, cfg.InterferenceBeta)
	assert.True(t, cfg.Inertia)
	assert.Equal(t, 0.5, cfg.InertiaK)
	assert.False(t, cfg.ChangeTargetWhileMoving)
}

func TestDefaultConfigs(t *testing.T) {
	stimulus := DefaultStimulusConfig()
	assert.Equal(t, 1.0, stimulus.ProximityExponent)
	assert.Equal(t, 0.07, stimulus.LateFactor)
	assert.Equal(t, 0.0, stimulus.EffortScale)

	policy := DefaultPolicyConfig()
	assert.Equal(t, OpMin, policy.CriteriaOp)
	assert.False(t, policy.Interference)
	assert.False(t, policy.Inertia)
	assert.True(t, policy.ChangeTargetWhileMoving)

	run := DefaultRunConfig()
	assert.Equal(t, int64(0), run.MaxSteps)
	assert.Equal(t, 10.0, run.DeadlineFactor)
}
