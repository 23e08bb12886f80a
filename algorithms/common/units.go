package common

import "math"

// Physical constants in SI units.
const (
	// SpeedOfLight in vacuum, m/s.
	SpeedOfLight = 299792458.0

	// VacuumPermeability (mu0), H/m.
	VacuumPermeability = 4 * math.Pi * 1e-7

	// VacuumPermittivity (eps0), F/m.
	VacuumPermittivity = 1 / (VacuumPermeability * SpeedOfLight * SpeedOfLight)
)

// DBToVoltageRatio converts decibels to a field-quantity (amplitude) ratio.
func DBToVoltageRatio(dB float64) float64 {
	return math.Pow(10, dB/20.0)
}

// DBToPowerRatio converts decibels to a power ratio.
func DBToPowerRatio(dB float64) float64 {
	return math.Pow(10, dB/10.0)
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
