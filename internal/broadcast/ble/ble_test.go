package ble

import (
	"bytes"
	"testing"

	"tinygo.org/x/bluetooth"

	"github.com/sensor-beacon/stb/internal/advert"
)

func TestOptionsFromElements(t *testing.T) {
	record := advert.NewRecord(advert.ServiceUUIDWire, advert.RecordTypeTemperature)
	record.SetValue(2345)

	ad := []advert.Element{advert.FlagsElement(), record.Element()}
	scanResp := []advert.Element{advert.NameElement("stb-beacon")}

	opts, err := optionsFromElements(ad, scanResp, bluetooth.NewDuration(0))
	if err != nil {
		t.Fatalf("optionsFromElements: %v", err)
	}

	if opts.LocalName != "stb-beacon" {
		t.Errorf("LocalName = %q, want %q", opts.LocalName, "stb-beacon")
	}
	if len(opts.ServiceData) != 1 {
		t.Fatalf("ServiceData has %d elements, want 1", len(opts.ServiceData))
	}

	// The stack wants the canonical UUID; wire order must be undone.
	want := bluetooth.NewUUID(advert.ServiceUUID)
	if opts.ServiceData[0].UUID != want {
		t.Errorf("UUID = %s, want %s", opts.ServiceData[0].UUID.String(), want.String())
	}

	// Application bytes: record type + little-endian value.
	if !bytes.Equal(opts.ServiceData[0].Data, []byte{0x01, 0x29, 0x09}) {
		t.Errorf("service data = % x, want 01 29 09", opts.ServiceData[0].Data)
	}
}

func TestOptionsFromElementsRejectsUnknownType(t *testing.T) {
	_, err := optionsFromElements([]advert.Element{{Type: 0xFF}}, nil, bluetooth.NewDuration(0))
	if err == nil {
		t.Error("expected error for unsupported element type")
	}
}

func TestOptionsFromElementsRejectsShortServiceData(t *testing.T) {
	short := []advert.Element{{Type: advert.TypeServiceData128, Data: []byte{0x01, 0x02}}}
	if _, err := optionsFromElements(short, nil, bluetooth.NewDuration(0)); err == nil {
		t.Error("expected error for short service data")
	}
}

func TestWireUUIDRoundTrip(t *testing.T) {
	uuid, err := wireUUID(advert.ServiceUUIDWire[:])
	if err != nil {
		t.Fatalf("wireUUID: %v", err)
	}
	if got, want := uuid.String(), advert.ServiceUUIDString; got != want {
		t.Errorf("uuid = %s, want %s", got, want)
	}
}
