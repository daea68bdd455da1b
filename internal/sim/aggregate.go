package sim

import "math"

const (
	// Flat tariff, currency units per kWh.
	ElectricityRate = 7.0

	// Every simulated month is 30 days long.
	DaysPerMonth = 30
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyUsage sums a household's devices into monthly units (kWh) and
// the billed amount. No devices means a zero bill, not an error.
func MonthlyUsage(devices []Device, src Source) (units, amount float64) {
	var daily float64
	for _, d := range devices {
		daily += DailyKWh(d.Name, d.PowerWatts, src)
	}
	units = round2(daily * DaysPerMonth)
	amount = round2(units * ElectricityRate)
	return units, amount
}
