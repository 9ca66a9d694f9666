package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Sensor backends.
const (
	BackendBMP180    = "bmp180"
	BackendSimulated = "sim"
)

// An advertised complete-local-name element must fit the legacy
// advertising PDU alongside the other elements.
const maxDeviceNameLen = 26

// Config is the complete beacon configuration.
type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Sample    SampleConfig    `yaml:"sample"`
	Sensor    SensorConfig    `yaml:"sensor"`
	Advertise AdvertiseConfig `yaml:"advertise"`
	Log       LogConfig       `yaml:"log"`
}

// DeviceConfig holds the advertised identity.
type DeviceConfig struct {
	Name string `yaml:"name"`
}

// SampleConfig holds the publish cycle timing.
type SampleConfig struct {
	InitialDelaySec int `yaml:"initialDelaySec"`
	PeriodSec       int `yaml:"periodSec"`
}

// InitialDelay returns the delay before the first cycle.
func (s SampleConfig) InitialDelay() time.Duration {
	return time.Duration(s.InitialDelaySec) * time.Second
}

// Period returns the cycle period.
func (s SampleConfig) Period() time.Duration {
	return time.Duration(s.PeriodSec) * time.Second
}

// SensorConfig selects and addresses the sensor backend.
type SensorConfig struct {
	Backend string `yaml:"backend"`
	I2CBus  string `yaml:"i2cBus"`
	I2CAddr uint16 `yaml:"i2cAddr"`
}

// AdvertiseConfig holds radio-side advertising settings.
type AdvertiseConfig struct {
	IntervalMs int `yaml:"intervalMs"`
}

// Interval returns the advertising interval.
func (a AdvertiseConfig) Interval() time.Duration {
	return time.Duration(a.IntervalMs) * time.Millisecond
}

// LogConfig holds diagnostic and trace-log settings.
type LogConfig struct {
	Level           string `yaml:"level"`
	TracePath       string `yaml:"tracePath"`
	TraceMaxSizeMB  int    `yaml:"traceMaxSizeMb"`
	TraceMaxBackups int    `yaml:"traceMaxBackups"`
	TraceMaxAgeDays int    `yaml:"traceMaxAgeDays"`
}

// Default returns the built-in configuration: first sample after one
// second, then every five seconds, BMP180 on the first available bus.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{Name: "stb-beacon"},
		Sample: SampleConfig{InitialDelaySec: 1, PeriodSec: 5},
		Sensor: SensorConfig{
			Backend: BackendBMP180,
			I2CBus:  "",
			I2CAddr: 0x77,
		},
		Advertise: AdvertiseConfig{IntervalMs: 100},
		Log: LogConfig{
			Level:           "info",
			TracePath:       "logs/cycles.jsonl",
			TraceMaxSizeMB:  10,
			TraceMaxBackups: 3,
			TraceMaxAgeDays: 28,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file
// at path (empty path skips the file), and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies STB_* environment variables on top of the
// current values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STB_DEVICE_NAME"); v != "" {
		cfg.Device.Name = v
	}
	if v := os.Getenv("STB_SAMPLE_INITIAL_DELAY_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sample.InitialDelaySec = n
		}
	}
	if v := os.Getenv("STB_SAMPLE_PERIOD_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sample.PeriodSec = n
		}
	}
	if v := os.Getenv("STB_SENSOR_BACKEND"); v != "" {
		cfg.Sensor.Backend = v
	}
	if v := os.Getenv("STB_SENSOR_I2C_BUS"); v != "" {
		cfg.Sensor.I2CBus = v
	}
	if v := os.Getenv("STB_SENSOR_I2C_ADDR"); v != "" {
		if n, err := strconv.ParseUint(v, 0, 16); err == nil {
			cfg.Sensor.I2CAddr = uint16(n)
		}
	}
	if v := os.Getenv("STB_ADVERTISE_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Advertise.IntervalMs = n
		}
	}
	if v := os.Getenv("STB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STB_LOG_TRACE_PATH"); v != "" {
		cfg.Log.TracePath = v
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.Device.Name == "" {
		return fmt.Errorf("device.name must not be empty")
	}
	if len(c.Device.Name) > maxDeviceNameLen {
		return fmt.Errorf("device.name %q exceeds %d bytes", c.Device.Name, maxDeviceNameLen)
	}
	if c.Sample.PeriodSec <= 0 {
		return fmt.Errorf("sample.periodSec must be positive, got %d", c.Sample.PeriodSec)
	}
	if c.Sample.InitialDelaySec < 0 {
		return fmt.Errorf("sample.initialDelaySec must not be negative, got %d", c.Sample.InitialDelaySec)
	}
	switch c.Sensor.Backend {
	case BackendBMP180, BackendSimulated:
	default:
		return fmt.Errorf("sensor.backend %q unknown (want %s or %s)",
			c.Sensor.Backend, BackendBMP180, BackendSimulated)
	}
	if c.Advertise.IntervalMs <= 0 {
		return fmt.Errorf("advertise.intervalMs must be positive, got %d", c.Advertise.IntervalMs)
	}
	return nil
}
