package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
)

// Result is the outcome of a successful ingest.
type Result struct {
	Processed int    `json:"processed"`
	Type      string `json:"type"`
}

// Service runs the CSV ingest pipeline. It is safe for concurrent use;
// concurrent ingests of the same ids resolve as last write wins.
type Service struct {
	repo        Repository
	invalidator Invalidator
}

// Option configures a Service.
type Option func(*Service)

// WithInvalidator registers a hook that runs after any ingest that wrote rows.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

// NewService creates an ingest service backed by the given repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessCSV parses r, normalizes every row for entity and upserts the rows
// in order. A malformed file returns a *datanorm.ParseError before anything
// is written. A storage error stops at the failing row.
func (s *Service) ProcessCSV(ctx context.Context, entity domain.EntityType, r io.Reader) (Result, error) {
	p, ok := registry[entity]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	records, err := datanorm.ParseCSV(r)
	if err != nil {
		return Result{}, err
	}

	written, err := p.run(ctx, s.repo, records)
	if written > 0 {
		s.invalidate(ctx)
	}
	if err != nil {
		logger.Error("csv ingest aborted", "entity", string(entity), "written", written, "rows", len(records), "error", err)
		return Result{}, err
	}

	logger.Info("csv ingested", "entity", string(entity), "rows", written)
	return Result{Processed: written, Type: string(entity)}, nil
}

// Counts returns the number of stored rows per entity.
func (s *Service) Counts(ctx context.Context) (domain.EntityCounts, error) {
	var c domain.EntityCounts
	targets := []struct {
		entity domain.EntityType
		dst    *int
	}{
		{domain.EntityVolunteers, &c.Volunteers},
		{domain.EntityMembers, &c.Members},
		{domain.EntityShifts, &c.Shifts},
		{domain.EntityDonations, &c.Donations},
		{domain.EntityActivities, &c.Activities},
	}
	for _, t := range targets {
		n, err := s.repo.Count(ctx, registry[t.entity].table())
		if err != nil {
			return domain.EntityCounts{}, fmt.Errorf("count %s: %w", t.entity, err)
		}
		*t.dst = n
	}
	return c, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		logger.Warn("metrics cache invalidation failed", "error", err)
	}
}
