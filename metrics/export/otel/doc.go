// Package otel bridges session-layer metrics into OpenTelemetry observable
// instruments. The exporter registers a single callback that reads a metrics
// snapshot on each collection cycle; nothing is pushed.
package otel
