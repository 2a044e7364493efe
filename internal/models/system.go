package models

import "time"

// SystemMetrics is the aggregated instrumentation view served by /status.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	PlansTotal               uint64    `json:"plans_total"`
	AveragePlanDurationMs    float64   `json:"average_plan_duration_ms"`
	CombinationsTotal        uint64    `json:"combinations_total"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
