// Package observability provides logging and metrics support for the
// dashboard service.
//
// # Overview
//
// Logging is structured JSON via zerolog, configured through LoggingConfig.
// Metrics are Prometheus counters and histograms covering the API endpoints,
// fallback substitution, upstream bibliographic requests, and LLM calls.
// Request correlation IDs travel through context and appear on every log
// line emitted while handling a request.
package observability
