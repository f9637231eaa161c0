// Package api provides the HTTP trigger for the reservation utilization
// bridge. A scheduler posts an invocation payload to /v1/invocations and
// receives the acknowledgment of the metric write, or an error naming the
// failed phase.
package api
