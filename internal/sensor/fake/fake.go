// Package fake provides a scripted sensor implementation for tests.
package fake

import (
	"context"

	"github.com/sensor-beacon/stb/internal/sensor"
)

// Sensor implements sensor.Sensor with injectable behavior. Zero value
// reports 0.00 degrees and never fails.
type Sensor struct {
	Reading sensor.Reading

	// FetchErr and ReadErr, when set, fail the corresponding call.
	FetchErr error
	ReadErr  error

	// Call counters.
	FetchCalls int
	ReadCalls  int
}

func (f *Sensor) Fetch(ctx context.Context) error {
	f.FetchCalls++
	return f.FetchErr
}

func (f *Sensor) ReadTemperature(ctx context.Context) (sensor.Reading, error) {
	f.ReadCalls++
	if f.ReadErr != nil {
		return sensor.Reading{}, f.ReadErr
	}
	return f.Reading, nil
}
