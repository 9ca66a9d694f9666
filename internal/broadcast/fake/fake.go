// Package fake provides a recording broadcaster implementation for
// tests.
package fake

import (
	"github.com/sensor-beacon/stb/internal/advert"
)

// Update is one recorded UpdateAdvertisement call, with the raw
// marshaled form of both structures snapshotted at call time.
type Update struct {
	Ad       []byte
	ScanResp []byte
}

// Broadcaster implements broadcast.Broadcaster, recording every call.
type Broadcaster struct {
	// UpdateErr, when set, fails every call. Failed calls count as
	// attempts but record no payload.
	UpdateErr error

	Attempts int
	Updates  []Update
}

func (f *Broadcaster) UpdateAdvertisement(ad, scanResp []advert.Element) error {
	f.Attempts++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.Updates = append(f.Updates, Update{
		Ad:       advert.Marshal(ad),
		ScanResp: advert.Marshal(scanResp),
	})
	return nil
}

// Calls returns the number of recorded updates.
func (f *Broadcaster) Calls() int {
	return len(f.Updates)
}

// Last returns the most recent update.
func (f *Broadcaster) Last() Update {
	return f.Updates[len(f.Updates)-1]
}
