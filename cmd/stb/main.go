// Command stb runs the sensor-to-broadcast temperature beacon: it
// samples a temperature sensor on a fixed period and republishes the
// reading in a connectionless BLE advertisement.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/sensor-beacon/stb/internal/beacon"
	"github.com/sensor-beacon/stb/internal/broadcast/ble"
	"github.com/sensor-beacon/stb/internal/config"
	"github.com/sensor-beacon/stb/internal/sched"
	"github.com/sensor-beacon/stb/internal/sensor"
	"github.com/sensor-beacon/stb/internal/sensor/bmp180"
	"github.com/sensor-beacon/stb/internal/sensor/sim"
	"github.com/sensor-beacon/stb/internal/tracelog"
)

const Version = "1.0.0"

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file (optional)")
		level      = flag.String("level", "", "log level (overrides config)")
	)
	flag.Parse()

	// Step 1: Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}

	// Step 2: Set up logging.
	if *level == "" {
		*level = cfg.Log.Level
	}
	if lvl, err := log.ParseLevel(*level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Fatal("failed to parse log level", "level", *level, "err", err)
	}
	log.Info("starting temperature beacon", "version", Version)

	// Step 3: Open the cycle trace log.
	trace := tracelog.NewLogger(tracelog.Options{
		Path:       cfg.Log.TracePath,
		MaxSizeMB:  cfg.Log.TraceMaxSizeMB,
		MaxBackups: cfg.Log.TraceMaxBackups,
		MaxAgeDays: cfg.Log.TraceMaxAgeDays,
	})

	// Step 4: Bring up the sensor.
	sens, cleanup, err := newSensor(cfg)
	if err != nil {
		log.Fatal("sensor not ready", "backend", cfg.Sensor.Backend, "err", err)
	}
	log.Info("sensor initialized", "backend", cfg.Sensor.Backend)

	// Step 5: Bring up the BLE stack and start advertising with a
	// zeroed value; the first cycle overwrites it.
	broadcaster := ble.New(cfg.Advertise.Interval())
	if err := broadcaster.Enable(); err != nil {
		log.Fatal("bluetooth init failed", "err", err)
	}

	pub := beacon.New(sens, broadcaster, cfg.Device.Name, log.Default())
	pub.SetTracer(trace)

	if err := broadcaster.Start(pub.Advertisement(), pub.ScanResponse()); err != nil {
		log.Fatal("advertising failed to start", "err", err)
	}
	if addr, err := broadcaster.Address(); err == nil {
		log.Info("beacon started", "address", addr, "name", cfg.Device.Name)
	} else {
		log.Info("beacon started", "name", cfg.Device.Name)
	}

	// Step 6: Arm the publish cycle.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := sched.NewRunner(cfg.Sample.InitialDelay(), cfg.Sample.Period())
	runner.Start(ctx, pub.RunCycle)
	log.Info("publish cycle armed",
		"initialDelay", cfg.Sample.InitialDelay(), "period", cfg.Sample.Period())

	// Step 7: Run until a shutdown signal arrives.
	<-ctx.Done()
	log.Info("shutting down")

	runner.Wait()
	if err := broadcaster.Stop(); err != nil {
		log.Error("error stopping advertisement", "err", err)
	}
	if cleanup != nil {
		if err := cleanup(); err != nil {
			log.Error("error closing sensor", "err", err)
		}
	}
	if err := trace.Close(); err != nil {
		log.Error("error closing trace log", "err", err)
	}
	log.Info("shutdown complete")
}

// newSensor constructs the configured sensor backend. The cleanup
// function is nil when the backend holds no resources.
func newSensor(cfg *config.Config) (sensor.Sensor, func() error, error) {
	switch cfg.Sensor.Backend {
	case config.BackendBMP180:
		s, err := bmp180.New(cfg.Sensor.I2CBus, cfg.Sensor.I2CAddr)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendSimulated:
		return sim.New(), nil, nil
	default:
		// Unreachable after config validation.
		return nil, nil, fmt.Errorf("unknown sensor backend %q", cfg.Sensor.Backend)
	}
}
