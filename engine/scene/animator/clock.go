package animator

import "time"

var clockEpoch = time.Now()

// nowSeconds returns seconds elapsed since the package was loaded. A
// monotonic-source clock separate from animateEntityAt's explicit-now
// overload used in tests.
func nowSeconds() float64 {
	return time.Since(clockEpoch).Seconds()
}
