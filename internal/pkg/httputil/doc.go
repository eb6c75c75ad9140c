// Package httputil provides shared HTTP response helpers for handlers.
//
// Handlers write every body through these helpers so JSON formatting and the
// {"error": "..."} envelope stay consistent across endpoints.
package httputil
