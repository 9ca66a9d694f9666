// Package sim provides a simulated temperature sensor for development
// hosts without the real I²C device attached.
package sim

import (
	"context"
	"math/rand"

	"github.com/sensor-beacon/stb/internal/sensor"
)

// Sensor generates plausible indoor temperatures around a base value.
type Sensor struct {
	base int32 // centi-degrees
	last sensor.Reading
}

// New returns a simulated sensor centered on 21.50 degrees.
func New() *Sensor {
	return &Sensor{base: 2150}
}

// Fetch draws a new value within ±2 degrees of the base.
func (s *Sensor) Fetch(ctx context.Context) error {
	centi := s.base + rand.Int31n(401) - 200
	s.last = sensor.Reading{
		Whole: centi / 100,
		Frac:  (centi % 100) * 10000,
	}
	return nil
}

// ReadTemperature returns the sample produced by the last Fetch.
func (s *Sensor) ReadTemperature(ctx context.Context) (sensor.Reading, error) {
	return s.last, nil
}
