package metrics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
)

const (
	DefaultDailyActivityDays = 30
	MaxDailyActivityDays     = 365
)

// Service computes dashboard metrics. It is safe for concurrent use.
type Service struct {
	repo    Repository
	cache   Cache
	counter Counter
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCache stores computed documents in c.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithCounter supplies per-entity row counts for Stats.
func WithCounter(c Counter) Option {
	return func(s *Service) { s.counter = c }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return startOfDay(s.now().UTC())
}

// Engagement computes retention, average hours, the top five volunteers and
// the six month engagement trend.
func (s *Service) Engagement(ctx context.Context, org string) (domain.EngagementMetrics, error) {
	var out domain.EngagementMetrics
	err := s.cached(ctx, "engagement:"+org, &out, func() error {
		today := s.today()
		var (
			stats []VolunteerStat
			trend []domain.EngagementPoint
		)
		g := new(errgroup.Group)
		g.Go(func() (err error) {
			stats, err = s.repo.VolunteerStats(ctx, org)
			return wrap("volunteer stats", err)
		})
		g.Go(func() (err error) {
			trend, err = s.repo.MonthlyEngagement(ctx, org, today.AddDate(0, -6, 0))
			return wrap("engagement trend", err)
		})
		if err := g.Wait(); err != nil {
			return err
		}
		if trend == nil {
			trend = []domain.EngagementPoint{}
		}
		out = domain.EngagementMetrics{
			RetentionRate:        retentionRate(stats, today.AddDate(0, -3, 0)),
			AvgHoursPerVolunteer: avgHoursPerVolunteer(stats),
			TopPerformers:        topPerformers(stats, topPerformerN),
			EngagementTrend:      trend,
		}
		return nil
	})
	return out, err
}

// Impact computes economic value, activity efficiency, the twelve month
// donation trend and current-month resource utilization.
func (s *Service) Impact(ctx context.Context, org string) (domain.ImpactMetrics, error) {
	var out domain.ImpactMetrics
	err := s.cached(ctx, "impact:"+org, &out, func() error {
		today := s.today()
		var (
			lifetime, month ShiftTotals
			activities      ActivityTotals
			donations       []DonationMonth
			stats           []VolunteerStat
		)
		g := new(errgroup.Group)
		g.Go(func() (err error) {
			lifetime, err = s.repo.ShiftTotals(ctx, org, time.Time{})
			return wrap("shift totals", err)
		})
		g.Go(func() (err error) {
			month, err = s.repo.ShiftTotals(ctx, org, startOfMonth(today))
			return wrap("month shift totals", err)
		})
		g.Go(func() (err error) {
			activities, err = s.repo.ActivityTotals(ctx, org)
			return wrap("activity totals", err)
		})
		g.Go(func() (err error) {
			donations, err = s.repo.MonthlyDonations(ctx, org, today.AddDate(0, -12, 0))
			return wrap("donation trend", err)
		})
		g.Go(func() (err error) {
			stats, err = s.repo.VolunteerStats(ctx, org)
			return wrap("volunteer stats", err)
		})
		if err := g.Wait(); err != nil {
			return err
		}
		out = domain.ImpactMetrics{
			EconomicValue:          lifetime.Hours * HourlyRate,
			ContributingVolunteers: lifetime.Volunteers,
			ActivityEfficiency: domain.ActivityEfficiency{
				AvgParticipants: round1(ratio(activities.ParticipantsSum, float64(activities.ParticipantsReported))),
				TotalActivities: activities.Activities,
			},
			DonationTrends: donationTrend(donations),
			ResourceUtilization: domain.ResourceUtilization{
				TotalVolunteers:  len(stats),
				ActiveVolunteers: activeFlagCount(stats),
				HoursThisMonth:   month.Hours,
				AvgHoursPerShift: round1(ratio(month.Hours, float64(month.HoursReported))),
			},
		}
		return nil
	})
	return out, err
}

// Health computes recency buckets, sustainability and stale-record counts.
func (s *Service) Health(ctx context.Context, org string) (domain.HealthMetrics, error) {
	var out domain.HealthMetrics
	err := s.cached(ctx, "health:"+org, &out, func() error {
		today := s.today()
		var (
			stats     []VolunteerStat
			donations DonationTotals
			risk      domain.RiskIndicators
		)
		g := new(errgroup.Group)
		g.Go(func() (err error) {
			stats, err = s.repo.VolunteerStats(ctx, org)
			return wrap("volunteer stats", err)
		})
		g.Go(func() (err error) {
			donations, err = s.repo.DonationTotals(ctx, org)
			return wrap("donation totals", err)
		})
		g.Go(func() (err error) {
			risk, err = s.repo.StaleCounts(ctx, org, StaleCutoffs{
				Shifts:     today.AddDate(0, 0, -90),
				Donations:  today.AddDate(0, 0, -180),
				Activities: today.AddDate(0, 0, -60),
			})
			return wrap("stale counts", err)
		})
		if err := g.Wait(); err != nil {
			return err
		}
		out = domain.HealthMetrics{
			VolunteerHealth: volunteerHealth(stats, today),
			Sustainability: domain.Sustainability{
				TotalVolunteers:   len(stats),
				NewVolunteers6m:   joinedSince(stats, today.AddDate(0, -6, 0)),
				NewVolunteers12m:  joinedSince(stats, today.AddDate(0, -12, 0)),
				TotalDonations:    donations.Sum,
				AvgDonationAmount: round1(ratio(donations.Sum, float64(donations.Reported))),
			},
			RiskIndicators: risk,
		}
		return nil
	})
	return out, err
}

// Dashboard computes the three categories concurrently. The queries are
// detached from ctx cancellation: a client that disconnects does not abort
// statements already issued.
func (s *Service) Dashboard(ctx context.Context, org string) (domain.DashboardMetrics, error) {
	ctx = context.WithoutCancel(ctx)
	out := domain.DashboardMetrics{Organization: org}

	g := new(errgroup.Group)
	g.Go(func() (err error) {
		out.Engagement, err = s.Engagement(ctx, org)
		return err
	})
	g.Go(func() (err error) {
		out.Impact, err = s.Impact(ctx, org)
		return err
	})
	g.Go(func() (err error) {
		out.Health, err = s.Health(ctx, org)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardMetrics{}, err
	}
	return out, nil
}

// Basic returns the headline KPIs.
func (s *Service) Basic(ctx context.Context, org string) (domain.BasicMetrics, error) {
	d, err := s.Dashboard(ctx, org)
	if err != nil {
		return domain.BasicMetrics{}, err
	}
	return domain.BasicMetrics{
		RetentionRate:        d.Engagement.RetentionRate,
		AvgHoursPerVolunteer: d.Engagement.AvgHoursPerVolunteer,
		EconomicValue:        d.Impact.EconomicValue,
		ActiveVolunteers:     d.Health.VolunteerHealth.Active,
		AtRiskVolunteers:     d.Health.VolunteerHealth.AtRisk,
	}, nil
}

// Stats returns every category across all organizations plus row counts.
func (s *Service) Stats(ctx context.Context) (domain.OverallStats, error) {
	d, err := s.Dashboard(ctx, "")
	if err != nil {
		return domain.OverallStats{}, err
	}
	out := domain.OverallStats{Engagement: d.Engagement, Impact: d.Impact, Health: d.Health}
	if s.counter != nil {
		out.Counts, err = s.counter.Counts(ctx)
		if err != nil {
			return domain.OverallStats{}, fmt.Errorf("entity counts: %w", err)
		}
	}
	return out, nil
}

// ClampDays bounds a daily-activity window; non-positive means the default.
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDailyActivityDays
	case days > MaxDailyActivityDays:
		return MaxDailyActivityDays
	default:
		return days
	}
}

// DailyActivity returns per-day shift activity over the trailing window.
func (s *Service) DailyActivity(ctx context.Context, org string, days int) ([]domain.DailyActivity, error) {
	days = ClampDays(days)
	var out []domain.DailyActivity
	err := s.cached(ctx, fmt.Sprintf("daily:%d:%s", days, org), &out, func() error {
		rows, err := s.repo.DailyActivity(ctx, org, s.today().AddDate(0, 0, -days))
		if err != nil {
			return wrap("daily activity", err)
		}
		if rows == nil {
			rows = []domain.DailyActivity{}
		}
		out = rows
		return nil
	})
	return out, err
}

// cached serves key from the cache when present, otherwise runs compute and
// stores the result under the generation the lookup saw. Cache failures are
// logged and never fail the request.
func (s *Service) cached(ctx context.Context, key string, dst any, compute func() error) error {
	var (
		gen      int64
		writable = s.cache != nil
	)
	if s.cache != nil {
		hit, g, err := s.cache.Get(ctx, key, dst)
		switch {
		case err != nil:
			logger.Warn("metrics cache read failed", "key", key, "error", err)
			writable = false
		case hit:
			return nil
		}
		gen = g
	}
	if err := compute(); err != nil {
		return err
	}
	if writable {
		if err := s.cache.Set(ctx, key, gen, dst); err != nil {
			logger.Warn("metrics cache write failed", "key", key, "error", err)
		}
	}
	return nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
