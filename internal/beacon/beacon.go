package beacon

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sensor-beacon/stb/internal/advert"
	"github.com/sensor-beacon/stb/internal/broadcast"
	"github.com/sensor-beacon/stb/internal/sensor"
)

// Cycle outcomes reported to the trace sink.
const (
	OutcomePublished    = "PUBLISHED"
	OutcomeFetchFailed  = "FETCH_FAILED"
	OutcomeReadFailed   = "READ_FAILED"
	OutcomeUpdateFailed = "UPDATE_FAILED"
)

// Tracer receives one record per publish cycle. Implementations must
// not block the cycle for long; the next tick coalesces, not queues.
type Tracer interface {
	Cycle(outcome string, centi int16, latency time.Duration)
}

// Publisher owns the service-data record. Nothing else holds a
// reference to it: the broadcast layer receives snapshots, and the
// scheduler guarantees a single cycle in flight, so the record needs no
// locking.
type Publisher struct {
	sensor      sensor.Sensor
	broadcaster broadcast.Broadcaster
	record      *advert.Record
	scanResp    []advert.Element
	logger      *log.Logger
	tracer      Tracer
}

// New creates a publisher advertising under the given device name. The
// record starts with a zero value, matching what is on air before the
// first sample lands.
func New(s sensor.Sensor, b broadcast.Broadcaster, deviceName string, logger *log.Logger) *Publisher {
	return &Publisher{
		sensor:      s,
		broadcaster: b,
		record:      advert.NewRecord(advert.ServiceUUIDWire, advert.RecordTypeTemperature),
		scanResp:    []advert.Element{advert.NameElement(deviceName)},
		logger:      logger,
	}
}

// SetTracer attaches a per-cycle trace sink. Optional.
func (p *Publisher) SetTracer(t Tracer) {
	p.tracer = t
}

// Advertisement returns the advertising data elements with the current
// record snapshot: flags plus the service-data record.
func (p *Publisher) Advertisement() []advert.Element {
	return []advert.Element{advert.FlagsElement(), p.record.Element()}
}

// ScanResponse returns the constant scan-response elements.
func (p *Publisher) ScanResponse() []advert.Element {
	return p.scanResp
}

// RunCycle executes one publish cycle: fetch, read, convert, encode,
// publish. Sensor failures abort the cycle before the record is
// touched, so the last good value stays on air. A failed broadcast
// update keeps the new value in the record for the next tick; there is
// no immediate retry.
func (p *Publisher) RunCycle(ctx context.Context) {
	start := time.Now()

	if err := p.sensor.Fetch(ctx); err != nil {
		p.logger.Error("sensor fetch failed", "err", err)
		p.trace(OutcomeFetchFailed, 0, start)
		return
	}

	reading, err := p.sensor.ReadTemperature(ctx)
	if err != nil {
		p.logger.Error("temperature read failed", "err", err)
		p.trace(OutcomeReadFailed, 0, start)
		return
	}

	centi := reading.Centidegrees()
	p.record.SetValue(centi)

	if err := p.broadcaster.UpdateAdvertisement(p.Advertisement(), p.scanResp); err != nil {
		p.logger.Error("advertisement update failed", "err", err)
		p.trace(OutcomeUpdateFailed, centi, start)
		return
	}

	p.logger.Info("advertising temperature", "celsius", advert.Degrees(centi))
	p.trace(OutcomePublished, centi, start)
}

func (p *Publisher) trace(outcome string, centi int16, start time.Time) {
	if p.tracer != nil {
		p.tracer.Cycle(outcome, centi, time.Since(start))
	}
}
