package rivet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivet-di/rivet"
)

func TestValidateHealthyRegistry(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*Config](c)
	rivet.MustRegister[*Database](c)
	rivet.MustRegister[*Server](c)

	require.NoError(t, c.Validate(""))
}

func TestValidateMissingDependency(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*Database](c)

	err := c.Validate("")
	require.Error(t, err)
	assert.True(t, rivet.IsMissingDependency(err))
}

func TestValidateDefaultsSatisfyParameters(t *testing.T) {
	t.Parallel()

	// Config carries default tags for both fields, so it validates
	// without any provider behind it.
	c := rivet.New()
	rivet.MustRegister[*Config](c)

	require.NoError(t, c.Validate(""))
}

func TestValidateAmbiguity(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*EnglishGreeter](c)
	rivet.MustRegister[*PirateGreeter](c)
	rivet.MustRegister[*GreeterClient](c)

	err := c.Validate("")
	require.Error(t, err)
	assert.True(t, rivet.IsAmbiguousDependency(err))
}

func TestValidateMissingSettingKey(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*Tunables](c)

	err := c.Validate("")
	require.Error(t, err)
	assert.True(t, rivet.IsConfigKeyMissing(err))
}

func TestValidateSettingKeyPresent(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	require.NoError(t, c.Store().AddValues(map[string]map[string]any{
		"limits": {
			"rate":    1.0,
			"burst":   5,
			"enabled": true,
			"owner":   "ops",
		},
	}))
	rivet.MustRegister[*Tunables](c)

	require.NoError(t, c.Validate(""))
}

func TestValidateCycle(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*CycleA](c)
	rivet.MustRegister[*CycleB](c)

	err := c.Validate("")
	require.Error(t, err)
	assert.True(t, rivet.IsCircularDependency(err))
}

func TestValidatePerProfile(t *testing.T) {
	t.Parallel()

	c := rivet.New()
	rivet.MustRegister[*EnglishGreeter](c, rivet.WithProfiles("prod"))
	rivet.MustRegister[*GreeterClient](c)

	require.NoError(t, c.Validate("prod"))

	err := c.Validate("dev")
	require.Error(t, err)
	assert.True(t, rivet.IsMissingDependency(err))
}

func TestValidateSequenceNeverMissing(t *testing.T) {
	t.Parallel()

	// A slice parameter is satisfied by zero matches.
	c := rivet.New()
	rivet.MustRegister[*Broadcast](c)

	require.NoError(t, c.Validate(""))
}
