package ephemeris

import "math"

const (
	// DefaultKeplerTolerance is the residual below which iteration stops.
	DefaultKeplerTolerance = 1e-6

	// DefaultKeplerIterations caps Newton-Raphson steps.
	DefaultKeplerIterations = 30
)

// SolveKepler returns the eccentric anomaly E (radians) satisfying
// E - e*sin(E) = M using Newton-Raphson seeded with E = M.
//
// Iteration stops once the residual magnitude drops to tolerance or after
// maxIterations steps. Failing to converge is not an error: the last estimate
// is returned and the cap bounds the work.
func SolveKepler(meanAnomaly, eccentricity, tolerance float64, maxIterations int) float64 {
	e := meanAnomaly
	delta := math.Inf(1)
	for i := 0; math.Abs(delta) > tolerance && i < maxIterations; i++ {
		delta = e - eccentricity*math.Sin(e) - meanAnomaly
		e -= delta / (1 - eccentricity*math.Cos(e))
	}
	return e
}

// TrueAnomaly converts an eccentric anomaly (radians) into the true anomaly
// (radians) for an orbit of the given eccentricity.
func TrueAnomaly(eccentricAnomaly, eccentricity float64) float64 {
	return 2 * math.Atan2(
		math.Sqrt(1+eccentricity)*math.Sin(eccentricAnomaly/2),
		math.Sqrt(1-eccentricity)*math.Cos(eccentricAnomaly/2),
	)
}
