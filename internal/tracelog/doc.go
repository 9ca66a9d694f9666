// Package tracelog appends one JSONL record per publish cycle to a
// size-rotated file, giving the beacon a local trail of what was put
// on air and which cycles were skipped.
package tracelog
