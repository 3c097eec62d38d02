package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "value")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_INT", "7")
	t.Setenv("X_DUR", "90s")

	assert.Equal(t, "value", envStr("X_STR", "fallback"))
	assert.Equal(t, "fallback", envStr("X_MISSING", "fallback"))
	assert.True(t, envBool("X_BOOL", false))
	assert.False(t, envBool("X_MISSING", false))
	assert.Equal(t, 7, envInt("X_INT", 1))
	assert.Equal(t, 1, envInt("X_MISSING", 1))
	assert.Equal(t, 90*time.Second, envDur("X_DUR", time.Minute))
	assert.Equal(t, time.Minute, envDur("X_MISSING", time.Minute))
}

func TestEnvHelpersRejectGarbage(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_INT", "seven")
	t.Setenv("X_DUR", "soon")

	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, 3, envInt("X_INT", 3))
	assert.Equal(t, time.Minute, envDur("X_DUR", time.Minute))
}
