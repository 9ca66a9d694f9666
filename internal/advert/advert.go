package advert

import (
	"encoding/binary"
	"fmt"
)

// Data element types from the Bluetooth assigned numbers.
const (
	TypeFlags          = 0x01
	TypeNameComplete   = 0x09
	TypeServiceData128 = 0x21
)

// Flags element value: LE General Discoverable, BR/EDR not supported.
const (
	FlagGeneralDiscoverable = 0x02
	FlagNoBREDR             = 0x04
	FlagsValue              = FlagGeneralDiscoverable | FlagNoBREDR
)

// Record layout.
const (
	RecordLen             = 19
	recordTypeOffset      = 16
	valueOffset           = 17
	RecordTypeTemperature = 0x01
)

// ServiceUUIDString is the canonical form of the schema identifier.
const ServiceUUIDString = "ddce36f1-417c-48e1-a8ea-e286e1e5498e"

// ServiceUUID holds the schema identifier in big-endian (textual) byte order.
var ServiceUUID = [16]byte{
	0xdd, 0xce, 0x36, 0xf1,
	0x41, 0x7c,
	0x48, 0xe1,
	0xa8, 0xea,
	0xe2, 0x86, 0xe1, 0xe5, 0x49, 0x8e,
}

// ServiceUUIDWire is the same identifier in wire (little-endian) order,
// the order it occupies in the first 16 bytes of the record.
var ServiceUUIDWire = reverse16(ServiceUUID)

func reverse16(u [16]byte) [16]byte {
	var r [16]byte
	for i := range u {
		r[i] = u[15-i]
	}
	return r
}

// Record is the 19-byte service-data record: 16 bytes of schema UUID in
// wire order, one record-type byte, and a little-endian int16 value in
// hundredths of a degree. The UUID and record type are fixed at
// construction; only the value bytes ever change.
type Record struct {
	buf [RecordLen]byte
}

// NewRecord builds a record for the given schema UUID (wire order) and
// record type. The value field starts at zero.
func NewRecord(serviceWire [16]byte, recordType byte) *Record {
	r := &Record{}
	copy(r.buf[:16], serviceWire[:])
	r.buf[recordTypeOffset] = recordType
	return r
}

// SetValue overwrites the two value bytes, little-endian. No other byte
// of the record is touched.
func (r *Record) SetValue(centi int16) {
	binary.LittleEndian.PutUint16(r.buf[valueOffset:valueOffset+2], uint16(centi))
}

// Value returns the current centi-degree value.
func (r *Record) Value() int16 {
	return int16(binary.LittleEndian.Uint16(r.buf[valueOffset : valueOffset+2]))
}

// Bytes returns a snapshot copy of the record. Callers never receive a
// reference into the record's own storage.
func (r *Record) Bytes() []byte {
	out := make([]byte, RecordLen)
	copy(out, r.buf[:])
	return out
}

// Element returns the record as a 128-bit service-data element,
// snapshotting the current bytes.
func (r *Record) Element() Element {
	return Element{Type: TypeServiceData128, Data: r.Bytes()}
}

// Element is one type-tagged advertisement data element.
type Element struct {
	Type byte
	Data []byte
}

// FlagsElement returns the constant flags element.
func FlagsElement() Element {
	return Element{Type: TypeFlags, Data: []byte{FlagsValue}}
}

// NameElement returns a complete-local-name element.
func NameElement(name string) Element {
	return Element{Type: TypeNameComplete, Data: []byte(name)}
}

// Marshal concatenates elements in length-prefixed, type-tagged wire
// form: each element is emitted as {len(data)+1, type, data...}.
func Marshal(elems []Element) []byte {
	var out []byte
	for _, e := range elems {
		out = append(out, byte(len(e.Data)+1), e.Type)
		out = append(out, e.Data...)
	}
	return out
}

// Parse is the inverse of Marshal.
func Parse(raw []byte) ([]Element, error) {
	var elems []Element
	for len(raw) > 0 {
		n := int(raw[0])
		if n == 0 {
			// Zero-length structure terminates the significant part.
			break
		}
		if n+1 > len(raw) {
			return nil, fmt.Errorf("advert: truncated element: need %d bytes, have %d", n+1, len(raw))
		}
		data := make([]byte, n-1)
		copy(data, raw[2:n+1])
		elems = append(elems, Element{Type: raw[1], Data: data})
		raw = raw[n+1:]
	}
	return elems, nil
}

// DecodeServicePayload decodes the application bytes of a service-data
// element once a receiver has stripped the leading UUID: one record-type
// byte followed by the little-endian int16 centi-degree value.
func DecodeServicePayload(data []byte) (recordType byte, centi int16, err error) {
	if len(data) < 1 {
		return 0, 0, fmt.Errorf("advert: empty service payload")
	}
	recordType = data[0]
	if len(data) < 3 {
		return recordType, 0, fmt.Errorf("advert: service payload too short: %d bytes", len(data))
	}
	centi = int16(binary.LittleEndian.Uint16(data[1:3]))
	return recordType, centi, nil
}

// DecodeRecord decodes a full 19-byte record, returning its schema UUID
// (wire order), record type and centi-degree value.
func DecodeRecord(buf []byte) (serviceWire [16]byte, recordType byte, centi int16, err error) {
	if len(buf) != RecordLen {
		return serviceWire, 0, 0, fmt.Errorf("advert: record must be %d bytes, got %d", RecordLen, len(buf))
	}
	copy(serviceWire[:], buf[:16])
	recordType = buf[recordTypeOffset]
	centi = int16(binary.LittleEndian.Uint16(buf[valueOffset : valueOffset+2]))
	return serviceWire, recordType, centi, nil
}

// Degrees converts a centi-degree value to degrees Celsius.
func Degrees(centi int16) float64 {
	return float64(centi) / 100
}
