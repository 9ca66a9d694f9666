// Package ble implements the broadcast contract on top of the
// tinygo.org/x/bluetooth host stack.
package ble

import (
	"fmt"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/sensor-beacon/stb/internal/advert"
	"github.com/sensor-beacon/stb/internal/broadcast"
)

// Broadcaster drives the default BLE adapter. The stack has no
// standalone update-data call, so UpdateAdvertisement re-configures the
// running advertisement, which swaps the live data in place.
type Broadcaster struct {
	adapter  *bluetooth.Adapter
	adv      *bluetooth.Advertisement
	interval bluetooth.Duration
	started  bool
}

// New returns a broadcaster on the default adapter with the given
// advertising interval.
func New(interval time.Duration) *Broadcaster {
	return &Broadcaster{
		adapter:  bluetooth.DefaultAdapter,
		interval: bluetooth.NewDuration(interval),
	}
}

// Enable brings up the BLE stack.
func (b *Broadcaster) Enable() error {
	if err := b.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable stack: %w", err)
	}
	return nil
}

// Address returns the adapter's own address, for startup logging.
func (b *Broadcaster) Address() (string, error) {
	addr, err := b.adapter.Address()
	if err != nil {
		return "", fmt.Errorf("ble: read address: %w", err)
	}
	return addr.MAC.String(), nil
}

// Start configures the advertisement from the given elements and
// begins broadcasting.
func (b *Broadcaster) Start(ad, scanResp []advert.Element) error {
	opts, err := optionsFromElements(ad, scanResp, b.interval)
	if err != nil {
		return fmt.Errorf("ble: %w", err)
	}
	b.adv = b.adapter.DefaultAdvertisement()
	if err := b.adv.Configure(opts); err != nil {
		return fmt.Errorf("ble: configure advertisement: %w", err)
	}
	if err := b.adv.Start(); err != nil {
		return fmt.Errorf("ble: start advertising: %w", err)
	}
	b.started = true
	return nil
}

// UpdateAdvertisement re-configures the running advertisement with
// fresh data elements.
func (b *Broadcaster) UpdateAdvertisement(ad, scanResp []advert.Element) error {
	if !b.started {
		return fmt.Errorf("%w: not advertising", broadcast.ErrUpdate)
	}
	opts, err := optionsFromElements(ad, scanResp, b.interval)
	if err != nil {
		return fmt.Errorf("%w: %v", broadcast.ErrUpdate, err)
	}
	if err := b.adv.Configure(opts); err != nil {
		return fmt.Errorf("%w: %v", broadcast.ErrUpdate, err)
	}
	return nil
}

// Stop ends the broadcast.
func (b *Broadcaster) Stop() error {
	if !b.started {
		return nil
	}
	b.started = false
	if err := b.adv.Stop(); err != nil {
		return fmt.Errorf("ble: stop advertising: %w", err)
	}
	return nil
}

// optionsFromElements translates data elements into stack options. The
// flags element is accepted and dropped: the stack emits flags itself.
// The local name is taken from either structure, matching its
// scan-response placement in our layout.
func optionsFromElements(ad, scanResp []advert.Element, interval bluetooth.Duration) (bluetooth.AdvertisementOptions, error) {
	opts := bluetooth.AdvertisementOptions{Interval: interval}
	for _, e := range append(append([]advert.Element{}, ad...), scanResp...) {
		switch e.Type {
		case advert.TypeFlags:
			// Stack-owned.
		case advert.TypeNameComplete:
			opts.LocalName = string(e.Data)
		case advert.TypeServiceData128:
			if len(e.Data) < 16 {
				return opts, fmt.Errorf("service data element too short: %d bytes", len(e.Data))
			}
			uuid, err := wireUUID(e.Data[:16])
			if err != nil {
				return opts, err
			}
			opts.ServiceData = append(opts.ServiceData, bluetooth.ServiceDataElement{
				UUID: uuid,
				Data: append([]byte{}, e.Data[16:]...),
			})
		default:
			return opts, fmt.Errorf("unsupported element type %#02x", e.Type)
		}
	}
	return opts, nil
}

// wireUUID converts the 16 little-endian UUID bytes at the head of a
// service-data element into a stack UUID (big-endian construction).
func wireUUID(wire []byte) (bluetooth.UUID, error) {
	if len(wire) != 16 {
		return bluetooth.UUID{}, fmt.Errorf("uuid must be 16 bytes, got %d", len(wire))
	}
	var be [16]byte
	for i := range be {
		be[i] = wire[15-i]
	}
	return bluetooth.NewUUID(be), nil
}
