package sim

import "strings"

// Source is the slice of math/rand/v2.Rand the usage model needs.
// *rand.Rand satisfies it directly; tests substitute a pinned one.
type Source interface {
	IntN(n int) int
	Float64() float64
}

type hoursFn func(src Source) float64

func constHours(h float64) hoursFn {
	return func(Source) float64 { return h }
}

// uniform integer hours, inclusive on both ends
func intHours(lo, hi int) hoursFn {
	return func(src Source) float64 { return float64(lo + src.IntN(hi-lo+1)) }
}

func realHours(lo, hi float64) hoursFn {
	return func(src Source) float64 { return lo + src.Float64()*(hi-lo) }
}

type applianceClass struct {
	keywords []string
	hours    hoursFn
}

// Checked top to bottom, first keyword hit wins. Short keywords that
// appear inside longer appliance names ("ac" in "vacuum", "pc" etc.)
// are matched as whole words only.
var applianceClasses = []applianceClass{
	{[]string{"ac", "air conditioner"}, intHours(4, 10)},
	{[]string{"light", "bulb", "lamp"}, intHours(4, 7)},
	{[]string{"refrigerator", "fridge"}, constHours(24)},
	{[]string{"tv", "television"}, intHours(2, 6)},
	{[]string{"washing machine", "washer"}, realHours(0.5, 1.5)},
	{[]string{"water heater", "geyser"}, realHours(1, 3)},
	{[]string{"microwave", "oven"}, realHours(0.25, 1)},
	{[]string{"computer", "laptop", "pc"}, intHours(2, 8)},
	{[]string{"fan", "ceiling fan"}, intHours(8, 12)},
	{[]string{"dishwasher"}, realHours(0.5, 1.5)},
	{[]string{"router", "modem"}, constHours(24)},
	{[]string{"iron", "clothes iron"}, realHours(0.25, 0.75)},
	{[]string{"vacuum", "cleaner"}, realHours(0.25, 1)},
	{[]string{"toaster"}, realHours(0.1, 0.25)},
	{[]string{"blender", "mixer"}, realHours(0.1, 0.3)},
}

var defaultHours = intHours(1, 3)

func matchesKeyword(name, kw string) bool {
	if len(kw) > 2 {
		return strings.Contains(name, kw)
	}
	for _, field := range strings.Fields(name) {
		if field == kw {
			return true
		}
	}
	return false
}

// HoursPerDay estimates how long an appliance runs per simulated day.
// The name match is case-insensitive.
func HoursPerDay(name string, src Source) float64 {
	name = strings.ToLower(name)
	for _, c := range applianceClasses {
		for _, kw := range c.keywords {
			if matchesKeyword(name, kw) {
				return c.hours(src)
			}
		}
	}
	return defaultHours(src)
}

// DailyKWh converts rated power and estimated daily hours into energy.
func DailyKWh(name string, powerWatts float64, src Source) float64 {
	return powerWatts * HoursPerDay(name, src) / 1000
}
