package utils

const (
	EPSILON = 1e-9 // Infinite small value for float comparison
)

// ApproxEqual compares two floats within EPSILON.
func ApproxEqual(a, b float64) bool {
	diff := a - b
	return diff < EPSILON && diff > -EPSILON
}

// FloatRound rounds a float64 to a specified number of decimal places.
// e.g. FloatRound(3.14159, 2) => 3.14
func FloatRound(x float64, precision int) float64 {
	pow := 1.0
	for i := 0; i < precision; i++ {
		pow *= 10
	}
	return float64(int(x*pow+0.5)) / pow
}
