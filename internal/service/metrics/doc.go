// Package metrics computes the dashboard aggregates: engagement, impact,
// health and daily activity.
//
// The repository only returns raw sums and counts. Every ratio, the health
// bucketing and the one-decimal rounding happen here, against an injectable
// clock, so results are deterministic in tests.
package metrics
