package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/sensor-beacon/stb/internal/sensor"
)

func TestZeroValueNeverFails(t *testing.T) {
	f := &Sensor{}
	if err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	r, err := f.ReadTemperature(context.Background())
	if err != nil {
		t.Fatalf("ReadTemperature: %v", err)
	}
	if r != (sensor.Reading{}) {
		t.Errorf("reading = %+v, want zero", r)
	}
	if f.FetchCalls != 1 || f.ReadCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", f.FetchCalls, f.ReadCalls)
	}
}

func TestErrorInjection(t *testing.T) {
	f := &Sensor{FetchErr: sensor.ErrFetch, ReadErr: errors.New("boom")}
	if !errors.Is(f.Fetch(context.Background()), sensor.ErrFetch) {
		t.Error("fetch error not propagated")
	}
	if _, err := f.ReadTemperature(context.Background()); err == nil {
		t.Error("read error not propagated")
	}
}
