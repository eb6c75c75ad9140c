package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/domain"
)

const keyColumn = "id"

// idNamespace scopes generated row ids.
var idNamespace = uuid.MustParse("5f1d8c1e-3b7a-4c5e-9a51-7d0f6b3c2e90")

// Descriptor binds an entity to its table and its transform. Columns[0] is
// always the key column and Values must return one value per column, in the
// same order.
type Descriptor[T any] struct {
	Entity    domain.EntityType
	Table     string
	Columns   []string
	Transform func([]datanorm.Record) []T
	Values    func(T) []any
}

// pipeline erases the row type so descriptors of different entities can
// share one registry.
type pipeline interface {
	table() string
	run(ctx context.Context, repo Repository, records []datanorm.Record) (int, error)
}

func (d Descriptor[T]) table() string { return d.Table }

func (d Descriptor[T]) run(ctx context.Context, repo Repository, records []datanorm.Record) (int, error) {
	rows := d.Transform(records)
	for i, row := range rows {
		values := d.Values(row)
		if id, _ := values[0].(string); strings.TrimSpace(id) == "" {
			values[0] = generatedID(d.Entity, i, values[1:])
		}
		if err := repo.Upsert(ctx, d.Table, keyColumn, d.Columns, values); err != nil {
			return i, fmt.Errorf("upsert %s row %d (line %d): %w", d.Entity, i+1, records[i].Line, err)
		}
	}
	return len(rows), nil
}

// generatedID derives a stable id for a row that has none, so re-ingesting
// the same file still overwrites instead of duplicating.
func generatedID(entity domain.EntityType, index int, values []any) string {
	var b strings.Builder
	b.WriteString(string(entity))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(index))
	for _, v := range values {
		b.WriteByte(0)
		fmt.Fprint(&b, v)
	}
	return uuid.NewSHA1(idNamespace, []byte(b.String())).String()
}

// nullDate stores an empty date as NULL.
func nullDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullNumber(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

var (
	volunteers = Descriptor[domain.Volunteer]{
		Entity:    domain.EntityVolunteers,
		Table:     "volunteers",
		Columns:   []string{"id", "organization", "name", "join_date", "active", "role"},
		Transform: datanorm.TransformVolunteers,
		Values: func(v domain.Volunteer) []any {
			return []any{v.ID, v.Organization, v.Name, nullDate(v.JoinDate), v.Active, v.Role}
		},
	}

	members = Descriptor[domain.Member]{
		Entity:    domain.EntityMembers,
		Table:     "members",
		Columns:   []string{"id", "organization", "name", "join_date", "monthly_contribution"},
		Transform: datanorm.TransformMembers,
		Values: func(m domain.Member) []any {
			return []any{m.ID, m.Organization, m.Name, nullDate(m.JoinDate), nullNumber(m.MonthlyContribution)}
		},
	}

	shifts = Descriptor[domain.Shift]{
		Entity:    domain.EntityShifts,
		Table:     "shifts",
		Columns:   []string{"id", "volunteer_id", "organization", "date", "activity", "hours"},
		Transform: datanorm.TransformShifts,
		Values: func(s domain.Shift) []any {
			return []any{s.ID, s.VolunteerID, s.Organization, nullDate(s.Date), s.Activity, nullNumber(s.Hours)}
		},
	}

	donations = Descriptor[domain.Donation]{
		Entity:    domain.EntityDonations,
		Table:     "donations",
		Columns:   []string{"id", "organization", "date", "donor", "amount"},
		Transform: datanorm.TransformDonations,
		Values: func(d domain.Donation) []any {
			return []any{d.ID, d.Organization, nullDate(d.Date), d.Donor, nullNumber(d.Amount)}
		},
	}

	activities = Descriptor[domain.Activity]{
		Entity:    domain.EntityActivities,
		Table:     "activities",
		Columns:   []string{"id", "organization", "name", "date", "participants"},
		Transform: datanorm.TransformActivities,
		Values: func(a domain.Activity) []any {
			return []any{a.ID, a.Organization, a.Name, nullDate(a.Date), nullNumber(a.Participants)}
		},
	}
)

var registry = map[domain.EntityType]pipeline{
	domain.EntityVolunteers: volunteers,
	domain.EntityMembers:    members,
	domain.EntityShifts:     shifts,
	domain.EntityDonations:  donations,
	domain.EntityActivities: activities,
}
