// Package telemetry records asset installations. Each event is logged and
// counted; counters can be exported to a Prometheus textfile so that a
// node exporter picks them up.
package telemetry
