// Package beacon implements the sampler/publisher: on each trigger it
// fetches a sensor sample, converts it to the centi-degree wire value,
// rewrites the value bytes of the service-data record and pushes the
// refreshed advertisement to the broadcast layer.
package beacon
