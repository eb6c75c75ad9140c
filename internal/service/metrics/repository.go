package metrics

import (
	"context"
	"time"

	"github.com/ignite/impact-dashboard/internal/domain"
)

// Repository returns raw aggregates. An empty org means every organization.
// A zero since means no lower date bound.
type Repository interface {
	// VolunteerStats returns one row per volunteer in org with the totals of
	// all of that volunteer's shifts.
	VolunteerStats(ctx context.Context, org string) ([]VolunteerStat, error)

	// ShiftTotals aggregates shifts in org dated on or after since.
	ShiftTotals(ctx context.Context, org string, since time.Time) (ShiftTotals, error)

	// MonthlyEngagement groups shifts dated on or after since by calendar month.
	MonthlyEngagement(ctx context.Context, org string, since time.Time) ([]domain.EngagementPoint, error)

	// MonthlyDonations groups donations dated on or after since by calendar month.
	MonthlyDonations(ctx context.Context, org string, since time.Time) ([]DonationMonth, error)

	ActivityTotals(ctx context.Context, org string) (ActivityTotals, error)

	DonationTotals(ctx context.Context, org string) (DonationTotals, error)

	// StaleCounts counts rows dated strictly before each cutoff. Each table is
	// counted on its own.
	StaleCounts(ctx context.Context, org string, cutoffs StaleCutoffs) (domain.RiskIndicators, error)

	// DailyActivity groups shifts of known volunteers dated on or after since
	// by day, ascending.
	DailyActivity(ctx context.Context, org string, since time.Time) ([]domain.DailyActivity, error)
}

// VolunteerStat is one volunteer with their lifetime shift totals.
type VolunteerStat struct {
	ID         string
	Name       string
	Role       string
	Active     bool
	JoinDate   *time.Time
	TotalHours float64
	ShiftCount int
	LastShift  *time.Time
}

type ShiftTotals struct {
	Hours float64
	// Shifts counts every shift; HoursReported only those with hours set.
	Shifts        int
	HoursReported int
	Volunteers    int
}

type DonationMonth struct {
	Month    string
	Sum      float64
	Count    int
	Reported int
}

type ActivityTotals struct {
	Activities           int
	ParticipantsSum      float64
	ParticipantsReported int
}

type DonationTotals struct {
	Sum      float64
	Reported int
}

type StaleCutoffs struct {
	Shifts     time.Time
	Donations  time.Time
	Activities time.Time
}

// Cache stores computed metric documents. Get reports the generation it read
// under, including on a miss (false, gen, nil); Set writes into that
// generation so results computed across an invalidation are never served.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, int64, error)
	Set(ctx context.Context, key string, gen int64, v any) error
}

// Counter reports stored row counts per entity.
type Counter interface {
	Counts(ctx context.Context) (domain.EntityCounts, error)
}
