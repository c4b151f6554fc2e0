package main

import (
	statsd "gopkg.in/alexcesaro/statsd.v2"

	"github.com/railrouted/trainrouter/types"
)

// APIrequestTelemetry is a channel where something should be sent whenever an
// API request is served
var APIrequestTelemetry = make(chan interface{}, 10)

// JobTelemetry is a channel where the terminal status of every finished job
// is sent
var JobTelemetry = make(chan types.JobStatus, 10)

// StatsSender is meant to be called as a goroutine that handles sending
// telemetry to a statsd (or compatible) server
func StatsSender() {
	statsdAddress, present := secrets.Get("statsdAddress")
	statsdPrefix, present2 := secrets.Get("statsdPrefix")
	if !present || !present2 {
		return
	}

	c, err := statsd.New(statsd.Address(statsdAddress), statsd.Prefix(statsdPrefix))
	if err != nil {
		// If nothing is listening on the target port, an error is returned and
		// the returned client does nothing but is still usable. So we can
		// just log the error and go on.
		mainLog.Println(err)
	}
	defer c.Close()

	for {
		select {
		case status := <-JobTelemetry:
			switch status {
			case types.JobStatusDone:
				c.Increment("jobs_done")
			case types.JobStatusFailed:
				c.Increment("jobs_failed")
			}
		case <-APIrequestTelemetry:
			c.Increment("apicalls")
		}
	}
}
