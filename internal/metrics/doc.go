// Package metrics records configuration load and export activity.
//
// Callers hold a Recorder. NoopRecorder is the default; the watch command
// swaps in a PrometheusRecorder when --metrics-addr is set and serves it with
// HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
//
// All series use the "siteconf" namespace. The base document (no overlay) is
// reported with environment="base".
package metrics
