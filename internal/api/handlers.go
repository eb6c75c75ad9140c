package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/service/ingest"
	"github.com/ignite/impact-dashboard/internal/service/metrics"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// DefaultMaxUploadBytes caps a CSV upload when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// HandlerOptions tunes request handling.
type HandlerOptions struct {
	MaxUploadBytes    int64
	DailyActivityDays int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	ingest  *ingest.Service
	records *records.Service
	metrics *metrics.Service

	maxUpload int64
	dailyDays int
}

// NewHandlers creates a new Handlers instance
func NewHandlers(in *ingest.Service, rec *records.Service, met *metrics.Service, opts HandlerOptions) *Handlers {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handlers{
		ingest:    in,
		records:   rec,
		metrics:   met,
		maxUpload: opts.MaxUploadBytes,
		dailyDays: metrics.ClampDays(opts.DailyActivityDays),
	}
}

// errBadQuery marks a malformed query-string parameter.
var errBadQuery = errors.New("invalid query parameter")

// queryBool reads an optional boolean parameter with the same rules the CSV
// normalizer applies to cells. Absent means nil; unrecognized text is false.
func queryBool(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v := datanorm.NormalizeBoolean(raw)
	return &v
}

// queryDate parses an optional date parameter in any layout the CSV
// normalizer accepts and returns it as YYYY-MM-DD.
func queryDate(r *http.Request, name string) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", nil
	}
	d := datanorm.NormalizeDate(raw)
	if _, err := time.Parse(time.DateOnly, d); err != nil {
		return "", fmt.Errorf("%w: %s must be a date (YYYY-MM-DD, DD/MM/YYYY or YYYY/MM/DD)", errBadQuery, name)
	}
	return d, nil
}

// queryRange reads date_from and date_to.
func queryRange(r *http.Request) (from, to string, err error) {
	if from, err = queryDate(r, "date_from"); err != nil {
		return "", "", err
	}
	if to, err = queryDate(r, "date_to"); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func organization(r *http.Request) string {
	return r.URL.Query().Get("organization")
}
