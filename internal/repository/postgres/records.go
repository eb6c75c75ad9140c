package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// RecordsRepo implements records.Repository against PostgreSQL.
type RecordsRepo struct{ db *sql.DB }

func NewRecordsRepo(db *sql.DB) *RecordsRepo { return &RecordsRepo{db: db} }

var (
	volunteerSelect = `SELECT v.id, v.organization, v.name, ` + dateText("v.join_date") + `, v.active, v.role,
		COALESCE(h.total_hours, 0)
		FROM volunteers v
		LEFT JOIN (SELECT volunteer_id, SUM(hours) AS total_hours FROM shifts GROUP BY volunteer_id) h
			ON h.volunteer_id = v.id`

	memberSelect = `SELECT m.id, m.organization, m.name, ` + dateText("m.join_date") + `, m.monthly_contribution
		FROM members m`

	shiftSelect = `SELECT s.id, s.volunteer_id, s.organization, ` + dateText("s.date") + `, s.activity, s.hours, v.name
		FROM shifts s
		LEFT JOIN volunteers v ON v.id = s.volunteer_id`

	donationSelect = `SELECT d.id, d.organization, ` + dateText("d.date") + `, d.donor, d.amount
		FROM donations d`

	activitySelect = `SELECT a.id, a.organization, a.name, ` + dateText("a.date") + `, a.participants
		FROM activities a`
)

type scanner interface {
	Scan(dest ...any) error
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func scanVolunteer(s scanner) (domain.Volunteer, error) {
	var v domain.Volunteer
	err := s.Scan(&v.ID, &v.Organization, &v.Name, &v.JoinDate, &v.Active, &v.Role, &v.TotalHours)
	return v, err
}

func scanMember(s scanner) (domain.Member, error) {
	var m domain.Member
	var contrib sql.NullFloat64
	err := s.Scan(&m.ID, &m.Organization, &m.Name, &m.JoinDate, &contrib)
	m.MonthlyContribution = nullFloat(contrib)
	return m, err
}

func scanShift(s scanner) (domain.Shift, error) {
	var sh domain.Shift
	var hours sql.NullFloat64
	var name sql.NullString
	err := s.Scan(&sh.ID, &sh.VolunteerID, &sh.Organization, &sh.Date, &sh.Activity, &hours, &name)
	sh.Hours = nullFloat(hours)
	if name.Valid {
		sh.VolunteerName = &name.String
	}
	return sh, err
}

func scanDonation(s scanner) (domain.Donation, error) {
	var d domain.Donation
	var amount sql.NullFloat64
	err := s.Scan(&d.ID, &d.Organization, &d.Date, &d.Donor, &amount)
	d.Amount = nullFloat(amount)
	return d, err
}

func scanActivity(s scanner) (domain.Activity, error) {
	var a domain.Activity
	var participants sql.NullFloat64
	err := s.Scan(&a.ID, &a.Organization, &a.Name, &a.Date, &participants)
	a.Participants = nullFloat(participants)
	return a, err
}

// list runs q and scans every row with scan.
func list[T any](ctx context.Context, db *sql.DB, what, q string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// get runs q for a single row, mapping no rows to records.ErrNotFound.
func get[T any](ctx context.Context, db *sql.DB, what, q, id string, scan func(scanner) (T, error)) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, records.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return &item, nil
}

func (r *RecordsRepo) ListVolunteers(ctx context.Context, f records.VolunteerFilter) ([]domain.Volunteer, error) {
	var w where
	w.addIf("v.organization = $%d", f.Organization)
	if f.Active != nil {
		w.add("v.active = $%d", *f.Active)
	}
	return list(ctx, r.db, "volunteers", volunteerSelect+w.String()+" ORDER BY v.name, v.id", w.args, scanVolunteer)
}

func (r *RecordsRepo) GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error) {
	return get(ctx, r.db, "volunteer", volunteerSelect+" WHERE v.id = $1", id, scanVolunteer)
}

func (r *RecordsRepo) ListMembers(ctx context.Context, f records.MemberFilter) ([]domain.Member, error) {
	var w where
	w.addIf("m.organization = $%d", f.Organization)
	if f.HasContribution != nil {
		if *f.HasContribution {
			w.raw("m.monthly_contribution IS NOT NULL AND m.monthly_contribution > 0")
		} else {
			w.raw("(m.monthly_contribution IS NULL OR m.monthly_contribution = 0)")
		}
	}
	return list(ctx, r.db, "members", memberSelect+w.String()+" ORDER BY m.name, m.id", w.args, scanMember)
}

func (r *RecordsRepo) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return get(ctx, r.db, "member", memberSelect+" WHERE m.id = $1", id, scanMember)
}

func (r *RecordsRepo) ListShifts(ctx context.Context, f records.ShiftFilter) ([]domain.Shift, error) {
	var w where
	w.addIf("s.volunteer_id = $%d", f.VolunteerID)
	w.addIf("s.organization = $%d", f.Organization)
	w.addIf("s.date >= $%d", f.DateFrom)
	w.addIf("s.date <= $%d", f.DateTo)
	return list(ctx, r.db, "shifts", shiftSelect+w.String()+" ORDER BY s.date DESC NULLS LAST, s.id", w.args, scanShift)
}

func (r *RecordsRepo) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	return get(ctx, r.db, "shift", shiftSelect+" WHERE s.id = $1", id, scanShift)
}

func (r *RecordsRepo) ListDonations(ctx context.Context, f records.DateFilter) ([]domain.Donation, error) {
	w := dateWhere("d", f)
	return list(ctx, r.db, "donations", donationSelect+w.String()+" ORDER BY d.date DESC NULLS LAST, d.id", w.args, scanDonation)
}

func (r *RecordsRepo) GetDonation(ctx context.Context, id string) (*domain.Donation, error) {
	return get(ctx, r.db, "donation", donationSelect+" WHERE d.id = $1", id, scanDonation)
}

func (r *RecordsRepo) ListActivities(ctx context.Context, f records.DateFilter) ([]domain.Activity, error) {
	w := dateWhere("a", f)
	return list(ctx, r.db, "activities", activitySelect+w.String()+" ORDER BY a.date DESC NULLS LAST, a.id", w.args, scanActivity)
}

func (r *RecordsRepo) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	return get(ctx, r.db, "activity", activitySelect+" WHERE a.id = $1", id, scanActivity)
}

func (r *RecordsRepo) ActivitiesFrom(ctx context.Context, from string) ([]domain.Activity, error) {
	return list(ctx, r.db, "upcoming activities", activitySelect+" WHERE a.date >= $1 ORDER BY a.date, a.id", []any{from}, scanActivity)
}

func dateWhere(alias string, f records.DateFilter) *where {
	w := &where{}
	w.addIf(alias+".organization = $%d", f.Organization)
	w.addIf(alias+".date >= $%d", f.DateFrom)
	w.addIf(alias+".date <= $%d", f.DateTo)
	return w
}
