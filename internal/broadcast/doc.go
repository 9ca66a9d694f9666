// Package broadcast defines the broadcast-layer contract: the publish
// cycle hands it the advertising and scan-response data elements, and
// the layer pushes them to the radio without retaining references.
package broadcast
