package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Phases(t *testing.T) {
	clock := NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("pipeline", WithClock(clock))

	pt := timer.Start("parse")
	clock.Advance(150 * time.Millisecond)
	d := pt.Stop()
	assert.Equal(t, 150*time.Millisecond, d)

	pt = timer.Start("dominators")
	clock.Advance(50 * time.Millisecond)
	pt.Stop()

	assert.Equal(t, 150*time.Millisecond, timer.GetDuration("parse"))
	assert.Equal(t, 50*time.Millisecond, timer.GetDuration("dominators"))
	assert.Equal(t, 200*time.Millisecond, timer.TotalDuration())

	phases := timer.GetPhases()
	require.Len(t, phases, 2)
	assert.Equal(t, "parse", phases[0].Name)
	assert.Equal(t, "dominators", phases[1].Name)
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	clock := NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("pipeline", WithClock(clock))

	pt := timer.Start("build")
	clock.Advance(10 * time.Millisecond)
	first := pt.Stop()

	clock.Advance(time.Hour)
	second := pt.Stop()

	assert.Equal(t, first, second)
}

func TestTimer_StopUnknownPhase(t *testing.T) {
	timer := NewTimer("pipeline")
	assert.Equal(t, time.Duration(0), timer.StopPhase("never-started"))
	assert.Equal(t, time.Duration(0), timer.GetDuration("never-started"))
}
