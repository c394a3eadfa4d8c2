// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the module.
const (
	// Replay metrics.
	MetricReplays        = "uci_transcript_replays_total"
	MetricLines          = "uci_transcript_lines_total"
	MetricFailures       = "uci_transcript_failures_total"
	MetricDecodeSeconds  = "uci_decode_seconds"
	MetricTranscriptSize = "uci_transcript_bytes"

	// Cache metrics.
	MetricCacheHits      = "uci_cache_hits_total"
	MetricCacheMisses    = "uci_cache_misses_total"
	MetricCacheEvictions = "uci_cache_evictions_total"
	MetricCacheSize      = "uci_cache_size"
)

// Help describes each metric. Collectors that export metrics use it for the
// help text and fall back to the metric name.
var Help = map[string]string{
	MetricReplays:        "Transcripts replayed.",
	MetricLines:          "Protocol lines decoded during replay.",
	MetricFailures:       "Protocol lines that failed to decode or round trip.",
	MetricDecodeSeconds:  "Time to decode, encode and re-decode one protocol line.",
	MetricTranscriptSize: "Size of the last replayed transcript after decompression.",
	MetricCacheHits:      "Transcript cache hits.",
	MetricCacheMisses:    "Transcript cache misses.",
	MetricCacheEvictions: "Transcripts evicted from the cache.",
	MetricCacheSize:      "Transcripts currently cached.",
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
