// Package sensor defines the temperature sensor contract consumed by
// the publish cycle, the fixed-point reading type and its conversion to
// the centi-degree wire value.
package sensor
