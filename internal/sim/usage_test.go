package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// boundSource pins the random source to either edge of a range: IntN
// returns 0 or n-1, Float64 returns 0 or 1.
type boundSource struct{ max bool }

func (s boundSource) IntN(n int) int {
	if s.max {
		return n - 1
	}
	return 0
}

func (s boundSource) Float64() float64 {
	if s.max {
		return 1
	}
	return 0
}

func TestHoursPerDayRanges(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{"Air Conditioner", 4, 10},
		{"AC", 4, 10},
		{"Ceiling Lamp", 4, 7},
		{"Bulb", 4, 7},
		{"Refrigerator", 24, 24},
		{"Mini Fridge", 24, 24},
		{"TV", 2, 6},
		{"Television", 2, 6},
		{"Washing Machine", 0.5, 1.5},
		{"Water Heater", 1, 3},
		{"Geyser", 1, 3},
		{"Microwave", 0.25, 1},
		{"Oven", 0.25, 1},
		{"Laptop", 2, 8},
		{"Gaming PC", 2, 8},
		{"Ceiling Fan", 8, 12},
		{"Dishwasher", 0.5, 1.5},
		{"Router", 24, 24},
		{"Modem", 24, 24},
		{"Clothes Iron", 0.25, 0.75},
		{"Vacuum Cleaner", 0.25, 1},
		{"Toaster", 0.1, 0.25},
		{"Blender", 0.1, 0.3},
		{"Mixer", 0.1, 0.3},
		{"Space Heater", 1, 3}, // falls through to the default class
		{"Xbox", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.min, HoursPerDay(tt.name, boundSource{max: false}), 1e-9)
			assert.InDelta(t, tt.max, HoursPerDay(tt.name, boundSource{max: true}), 1e-9)
		})
	}
}

func TestHoursPerDayCaseInsensitive(t *testing.T) {
	assert.Equal(t, 24.0, HoursPerDay("REFRIGERATOR", boundSource{}))
	assert.Equal(t, 24.0, HoursPerDay("refrigerator", boundSource{}))
}

func TestShortKeywordsMatchWholeWordsOnly(t *testing.T) {
	// "vacuum" contains "ac" but must not be billed like an air
	// conditioner.
	assert.InDelta(t, 1.0, HoursPerDay("Vacuum Cleaner", boundSource{max: true}), 1e-9)
	assert.InDelta(t, 10.0, HoursPerDay("Bedroom AC", boundSource{max: true}), 1e-9)
}

func TestDailyKWh(t *testing.T) {
	// 150 W fridge running 24h: 3.6 kWh/day.
	assert.InDelta(t, 3.6, DailyKWh("Refrigerator", 150, boundSource{}), 1e-9)
}

func TestDailyKWhZeroPower(t *testing.T) {
	for _, name := range []string{"Air Conditioner", "Refrigerator", "Toaster", "Unknown Gadget"} {
		assert.Zero(t, DailyKWh(name, 0, boundSource{max: true}), name)
	}
}
