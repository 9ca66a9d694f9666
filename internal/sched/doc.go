// Package sched provides the periodic trigger for the publish cycle: a
// ticker feeding a single-slot work queue, so tick delivery never waits
// on task latency and ticks arriving mid-task coalesce into at most one
// pending run.
package sched
