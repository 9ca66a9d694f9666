// Package bmp180 adapts a Bosch BMP180 on an I²C bus to the sensor
// contract, using the periph.io bmxx80 driver.
package bmp180

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/sensor-beacon/stb/internal/sensor"
)

// DefaultAddr is the fixed I²C address of the BMP180.
const DefaultAddr = 0x77

// Sensor drives a BMP180. Fetch and ReadTemperature are called from a
// single goroutine; the type carries no locking of its own.
type Sensor struct {
	bus  i2c.BusCloser
	dev  *bmxx80.Dev
	last physic.Env
	have bool
}

// New opens the named I²C bus (empty string selects the first
// available) and probes the device at addr.
func New(busName string, addr uint16) (*Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bmp180: host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("bmp180: open i2c bus %q: %w", busName, err)
	}
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("bmp180: probe device at %#02x: %w", addr, err)
	}
	return &Sensor{bus: bus, dev: dev}, nil
}

// Fetch triggers a measurement and stores it as the current sample.
func (s *Sensor) Fetch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", sensor.ErrFetch, err)
	}
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return fmt.Errorf("%w: %v", sensor.ErrFetch, err)
	}
	s.last = env
	s.have = true
	return nil
}

// ReadTemperature extracts the temperature channel from the last
// fetched sample as whole degrees plus millionths. Integer math only;
// truncation toward zero keeps both parts sign-consistent.
func (s *Sensor) ReadTemperature(ctx context.Context) (sensor.Reading, error) {
	if err := ctx.Err(); err != nil {
		return sensor.Reading{}, fmt.Errorf("%w: %v", sensor.ErrRead, err)
	}
	if !s.have {
		return sensor.Reading{}, fmt.Errorf("%w: no sample fetched", sensor.ErrRead)
	}
	micro := int64(s.last.Temperature-physic.ZeroCelsius) / int64(physic.MicroKelvin)
	return sensor.Reading{
		Whole: int32(micro / 1000000),
		Frac:  int32(micro % 1000000),
	}, nil
}

// Close halts the device and releases the bus.
func (s *Sensor) Close() error {
	if err := s.dev.Halt(); err != nil {
		_ = s.bus.Close()
		return fmt.Errorf("bmp180: halt: %w", err)
	}
	return s.bus.Close()
}
