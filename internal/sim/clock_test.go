package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockEpoch(t *testing.T) {
	c := NewClock()

	assert.Equal(t, "January", c.Month())
	assert.Equal(t, 2025, c.Year())
}

func TestClockAdvanceSteps30Days(t *testing.T) {
	c := NewClock()

	c = c.Advance()
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), c.Date())
	// Still January: a replayed month, handled by the bill upsert.
	assert.Equal(t, "January", c.Month())

	c = c.Advance()
	assert.Equal(t, "March", c.Month())
	assert.Equal(t, 2025, c.Year())
}

func TestClockIsAValue(t *testing.T) {
	c := NewClock()
	_ = c.Advance()

	// Advancing returns a new clock, the receiver is untouched.
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), c.Date())
}

func TestClockAt(t *testing.T) {
	c := ClockAt(time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "December", c.Month())
	assert.Equal(t, 2024, c.Year())
}
