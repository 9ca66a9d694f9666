package sensor

import (
	"context"
	"errors"
)

// Sentinel errors wrapped by driver adapters. Both are handled the same
// way by the publish cycle: skip this cycle, keep advertising the last
// good value.
var (
	// ErrFetch indicates the sensor sample refresh failed (bus or
	// communication fault).
	ErrFetch = errors.New("sensor fetch failed")

	// ErrRead indicates the temperature channel could not be read from
	// the fetched sample.
	ErrRead = errors.New("sensor read failed")
)

// Sensor is the southbound sensor contract. Fetch refreshes the
// device's internal sample state; ReadTemperature extracts the
// temperature channel from the last fetched sample.
type Sensor interface {
	Fetch(ctx context.Context) error
	ReadTemperature(ctx context.Context) (Reading, error)
}

// Reading is one temperature sample in device-native fixed point:
// Whole degrees plus Frac millionths of a degree. For negative
// temperatures both parts carry the sign (Whole=-5, Frac=-200000 is
// -5.2 degrees). A Reading lives for a single publish cycle.
type Reading struct {
	Whole int32
	Frac  int32
}

// Centidegrees converts the reading to hundredths of a degree as a
// 16-bit signed value. Both divisions truncate toward zero, and the
// final narrowing wraps rather than saturates; receivers rely on these
// exact semantics.
func (r Reading) Centidegrees() int16 {
	centi := r.Whole*100 + r.Frac/10000
	return int16(centi)
}
