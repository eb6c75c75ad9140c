package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/service/metrics"
)

// MetricsRepo implements metrics.Repository against PostgreSQL. Queries
// return raw sums and counts; ratios are computed by the metrics service.
type MetricsRepo struct{ db *sql.DB }

func NewMetricsRepo(db *sql.DB) *MetricsRepo { return &MetricsRepo{db: db} }

func (r *MetricsRepo) VolunteerStats(ctx context.Context, org string) ([]metrics.VolunteerStat, error) {
	var w where
	w.addIf("v.organization = $%d", org)
	q := `SELECT v.id, v.name, v.role, v.active, v.join_date,
			COALESCE(SUM(s.hours), 0), COUNT(s.id), MAX(s.date)
		FROM volunteers v
		LEFT JOIN shifts s ON s.volunteer_id = v.id` + w.String() + `
		GROUP BY v.id, v.name, v.role, v.active, v.join_date`

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("volunteer stats: %w", err)
	}
	defer rows.Close()

	var out []metrics.VolunteerStat
	for rows.Next() {
		var (
			s              metrics.VolunteerStat
			joined, lastAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Active, &joined, &s.TotalHours, &s.ShiftCount, &lastAt); err != nil {
			return nil, fmt.Errorf("scan volunteer stats: %w", err)
		}
		s.JoinDate = nullTime(joined)
		s.LastShift = nullTime(lastAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MetricsRepo) ShiftTotals(ctx context.Context, org string, since time.Time) (metrics.ShiftTotals, error) {
	var w where
	w.addIf("organization = $%d", org)
	if !since.IsZero() {
		w.add("date >= $%d", day(since))
	}
	q := `SELECT COALESCE(SUM(hours), 0), COUNT(*), COUNT(hours), COUNT(DISTINCT NULLIF(volunteer_id, ''))
		FROM shifts` + w.String()

	var t metrics.ShiftTotals
	if err := r.db.QueryRowContext(ctx, q, w.args...).Scan(&t.Hours, &t.Shifts, &t.HoursReported, &t.Volunteers); err != nil {
		return metrics.ShiftTotals{}, fmt.Errorf("shift totals: %w", err)
	}
	return t, nil
}

func (r *MetricsRepo) MonthlyEngagement(ctx context.Context, org string, since time.Time) ([]domain.EngagementPoint, error) {
	w := sinceWhere(org, since)
	q := `SELECT to_char(date_trunc('month', date), 'YYYY-MM-DD') AS month,
			COUNT(DISTINCT volunteer_id), COALESCE(SUM(hours), 0), COUNT(*)
		FROM shifts` + w.String() + `
		GROUP BY 1 ORDER BY 1`

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("monthly engagement: %w", err)
	}
	defer rows.Close()

	var out []domain.EngagementPoint
	for rows.Next() {
		var p domain.EngagementPoint
		if err := rows.Scan(&p.Month, &p.ActiveVolunteers, &p.TotalHours, &p.TotalShifts); err != nil {
			return nil, fmt.Errorf("scan monthly engagement: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MetricsRepo) MonthlyDonations(ctx context.Context, org string, since time.Time) ([]metrics.DonationMonth, error) {
	w := sinceWhere(org, since)
	q := `SELECT to_char(date_trunc('month', date), 'YYYY-MM-DD') AS month,
			COALESCE(SUM(amount), 0), COUNT(*), COUNT(amount)
		FROM donations` + w.String() + `
		GROUP BY 1 ORDER BY 1`

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("monthly donations: %w", err)
	}
	defer rows.Close()

	var out []metrics.DonationMonth
	for rows.Next() {
		var m metrics.DonationMonth
		if err := rows.Scan(&m.Month, &m.Sum, &m.Count, &m.Reported); err != nil {
			return nil, fmt.Errorf("scan monthly donations: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MetricsRepo) ActivityTotals(ctx context.Context, org string) (metrics.ActivityTotals, error) {
	var w where
	w.addIf("organization = $%d", org)
	var t metrics.ActivityTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(participants), 0), COUNT(participants) FROM activities`+w.String(),
		w.args...,
	).Scan(&t.Activities, &t.ParticipantsSum, &t.ParticipantsReported)
	if err != nil {
		return metrics.ActivityTotals{}, fmt.Errorf("activity totals: %w", err)
	}
	return t, nil
}

func (r *MetricsRepo) DonationTotals(ctx context.Context, org string) (metrics.DonationTotals, error) {
	var w where
	w.addIf("organization = $%d", org)
	var t metrics.DonationTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(amount) FROM donations`+w.String(),
		w.args...,
	).Scan(&t.Sum, &t.Reported)
	if err != nil {
		return metrics.DonationTotals{}, fmt.Errorf("donation totals: %w", err)
	}
	return t, nil
}

// StaleCounts runs one count per table and combines them, so no table's
// count is multiplied by another's rows.
func (r *MetricsRepo) StaleCounts(ctx context.Context, org string, c metrics.StaleCutoffs) (domain.RiskIndicators, error) {
	var out domain.RiskIndicators
	for _, t := range []struct {
		table  string
		cutoff time.Time
		dst    *int
	}{
		{"shifts", c.Shifts, &out.StaleShifts},
		{"donations", c.Donations, &out.StaleDonations},
		{"activities", c.Activities, &out.StaleActivities},
	} {
		var w where
		w.add("date < $%d", day(t.cutoff))
		w.addIf("organization = $%d", org)
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.table+w.String(), w.args...).Scan(t.dst); err != nil {
			return domain.RiskIndicators{}, fmt.Errorf("stale %s: %w", t.table, err)
		}
	}
	return out, nil
}

// DailyActivity only counts shifts whose volunteer exists; org scopes by the
// volunteer's organization.
func (r *MetricsRepo) DailyActivity(ctx context.Context, org string, since time.Time) ([]domain.DailyActivity, error) {
	var w where
	w.add("s.date >= $%d", day(since))
	w.addIf("v.organization = $%d", org)
	q := `SELECT to_char(s.date, 'YYYY-MM-DD'), COUNT(DISTINCT s.volunteer_id), COALESCE(SUM(s.hours), 0), COUNT(s.id)
		FROM shifts s
		JOIN volunteers v ON v.id = s.volunteer_id` + w.String() + `
		GROUP BY s.date ORDER BY s.date`

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("daily activity: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyActivity
	for rows.Next() {
		var d domain.DailyActivity
		if err := rows.Scan(&d.Date, &d.Volunteers, &d.Hours, &d.Shifts); err != nil {
			return nil, fmt.Errorf("scan daily activity: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func sinceWhere(org string, since time.Time) *where {
	w := &where{}
	if !since.IsZero() {
		w.add("date >= $%d", day(since))
	}
	w.addIf("organization = $%d", org)
	return w
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
