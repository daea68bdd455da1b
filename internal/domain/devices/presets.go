package devices

// Typical rated power per appliance, watts. Used when add-device comes
// without an explicit power_usage.
var presets = map[string]float64{
	"Air Conditioner": 2000,
	"Refrigerator":    150,
	"Washing Machine": 500,
	"Television":      120,
	"Light":           60,
	"Fan":             75,
	"Water Heater":    3000,
	"Microwave":       1200,
	"Oven":            2200,
	"Computer":        200,
	"Router":          10,
	"Dishwasher":      1500,
	"Iron":            1100,
	"Vacuum Cleaner":  800,
	"Toaster":         900,
	"Blender":         400,
}

const defaultPower = 100

// PresetPower returns the preset wattage for a device name, or 100 when
// the name is unknown.
func PresetPower(name string) float64 {
	if w, ok := presets[name]; ok {
		return w
	}
	return defaultPower
}
