// Package metric provides Prometheus metrics for TraceMesh.
//
// The Registry struct groups every application metric behind small
// Counter/Gauge/Histogram interfaces so that core packages stay
// decoupled from the Prometheus client types. NewRegistry wires the
// interfaces to prometheus/client_golang collectors.
//
// @req RQ-0402
// @design DS-0402
package metric
