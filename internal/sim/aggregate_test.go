package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyUsageRefrigerator(t *testing.T) {
	devs := []Device{{Name: "Refrigerator", PowerWatts: 150}}

	units, amount := MonthlyUsage(devs, boundSource{})

	// 3.6 kWh/day * 30 days, at 7 per kWh.
	assert.Equal(t, 108.0, units)
	assert.Equal(t, 756.0, amount)
}

func TestMonthlyUsageNoDevices(t *testing.T) {
	units, amount := MonthlyUsage(nil, boundSource{})

	assert.Zero(t, units)
	assert.Zero(t, amount)
}

func TestMonthlyUsageSumsDevices(t *testing.T) {
	devs := []Device{
		{Name: "Refrigerator", PowerWatts: 150}, // 3.6 kWh/day
		{Name: "Router", PowerWatts: 10},        // 0.24 kWh/day
	}

	units, amount := MonthlyUsage(devs, boundSource{})

	assert.Equal(t, 115.2, units)
	assert.Equal(t, 806.4, amount)
}

func TestMonthlyUsageRounding(t *testing.T) {
	// 33 W modem: 0.792 kWh/day -> 23.76 units, amount 166.32.
	units, amount := MonthlyUsage([]Device{{Name: "Modem", PowerWatts: 33}}, boundSource{})

	assert.Equal(t, 23.76, units)
	assert.Equal(t, 166.32, amount)
}
