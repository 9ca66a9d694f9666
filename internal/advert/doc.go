// Package advert models the advertisement payload: the service-data
// record carrying the temperature value and the data elements that make
// up the advertising and scan-response structures.
package advert
