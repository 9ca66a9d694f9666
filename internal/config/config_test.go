package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Sample.InitialDelay() != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", cfg.Sample.InitialDelay())
	}
	if cfg.Sample.Period() != 5*time.Second {
		t.Errorf("Period = %v, want 5s", cfg.Sample.Period())
	}
	if cfg.Sensor.I2CAddr != 0x77 {
		t.Errorf("I2CAddr = %#02x, want 0x77", cfg.Sensor.I2CAddr)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
device:
  name: greenhouse-7
sample:
  periodSec: 30
sensor:
  backend: sim
advertise:
  intervalMs: 250
`
	path := filepath.Join(t.TempDir(), "stb.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device.Name != "greenhouse-7" {
		t.Errorf("Name = %q", cfg.Device.Name)
	}
	if cfg.Sample.PeriodSec != 30 {
		t.Errorf("PeriodSec = %d, want 30", cfg.Sample.PeriodSec)
	}
	// Unset fields keep defaults.
	if cfg.Sample.InitialDelaySec != 1 {
		t.Errorf("InitialDelaySec = %d, want default 1", cfg.Sample.InitialDelaySec)
	}
	if cfg.Sensor.Backend != BackendSimulated {
		t.Errorf("Backend = %q", cfg.Sensor.Backend)
	}
	if cfg.Advertise.Interval() != 250*time.Millisecond {
		t.Errorf("Interval = %v", cfg.Advertise.Interval())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STB_DEVICE_NAME", "attic")
	t.Setenv("STB_SAMPLE_PERIOD_SEC", "10")
	t.Setenv("STB_SENSOR_BACKEND", "sim")
	t.Setenv("STB_SENSOR_I2C_ADDR", "0x76")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Name != "attic" {
		t.Errorf("Name = %q", cfg.Device.Name)
	}
	if cfg.Sample.PeriodSec != 10 {
		t.Errorf("PeriodSec = %d", cfg.Sample.PeriodSec)
	}
	if cfg.Sensor.I2CAddr != 0x76 {
		t.Errorf("I2CAddr = %#02x", cfg.Sensor.I2CAddr)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty name", func(c *Config) { c.Device.Name = "" }, "device.name"},
		{"long name", func(c *Config) { c.Device.Name = strings.Repeat("x", 27) }, "device.name"},
		{"zero period", func(c *Config) { c.Sample.PeriodSec = 0 }, "periodSec"},
		{"negative delay", func(c *Config) { c.Sample.InitialDelaySec = -1 }, "initialDelaySec"},
		{"unknown backend", func(c *Config) { c.Sensor.Backend = "dht22" }, "backend"},
		{"zero interval", func(c *Config) { c.Advertise.IntervalMs = 0 }, "intervalMs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
