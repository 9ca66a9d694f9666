package broadcast

import (
	"errors"

	"github.com/sensor-beacon/stb/internal/advert"
)

// ErrUpdate indicates the advertisement data could not be pushed to the
// radio, for example because advertising is not currently running. The
// caller logs it and tries again on the next tick.
var ErrUpdate = errors.New("advertisement update failed")

// Broadcaster is the southbound broadcast contract. Implementations
// read the element slices during the call only; the payload buffer
// stays owned by the caller.
type Broadcaster interface {
	// UpdateAdvertisement replaces the advertising data and the
	// scan-response data of the running advertisement.
	UpdateAdvertisement(ad []advert.Element, scanResp []advert.Element) error
}
