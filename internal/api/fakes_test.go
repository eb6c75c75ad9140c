package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/service/metrics"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// memStore is an in-memory table store that serves both the ingest writes
// and the record reads. Only volunteers are materialized on read.
type memStore struct {
	mu        sync.Mutex
	tables    map[string]map[string]map[string]any
	upsertErr error

	memberFilter records.MemberFilter
	shiftFilter  records.ShiftFilter
}

func newMemStore() *memStore {
	return &memStore{tables: map[string]map[string]map[string]any{}}
}

func (m *memStore) Upsert(_ context.Context, table, key string, columns []string, values []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	row := make(map[string]any, len(columns))
	for i, c := range columns {
		row[c] = values[i]
	}
	if m.tables[table] == nil {
		m.tables[table] = map[string]map[string]any{}
	}
	m.tables[table][str(row[key])] = row
	return nil
}

func (m *memStore) Count(_ context.Context, table string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table]), nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func toVolunteer(row map[string]any) domain.Volunteer {
	active, _ := row["active"].(bool)
	return domain.Volunteer{
		ID:           str(row["id"]),
		Organization: str(row["organization"]),
		Name:         str(row["name"]),
		JoinDate:     str(row["join_date"]),
		Active:       active,
		Role:         str(row["role"]),
	}
}

func (m *memStore) ListVolunteers(_ context.Context, f records.VolunteerFilter) ([]domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Volunteer
	for _, row := range m.tables["volunteers"] {
		v := toVolunteer(row)
		if f.Organization != "" && v.Organization != f.Organization {
			continue
		}
		if f.Active != nil && v.Active != *f.Active {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetVolunteer(_ context.Context, id string) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.tables["volunteers"][id]
	if !ok {
		return nil, records.ErrNotFound
	}
	v := toVolunteer(row)
	return &v, nil
}

func (m *memStore) ListMembers(_ context.Context, f records.MemberFilter) ([]domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memberFilter = f
	return nil, nil
}

func (m *memStore) GetMember(context.Context, string) (*domain.Member, error) {
	return nil, records.ErrNotFound
}

func (m *memStore) ListShifts(_ context.Context, f records.ShiftFilter) ([]domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shiftFilter = f
	return nil, nil
}

func (m *memStore) GetShift(context.Context, string) (*domain.Shift, error) {
	return nil, records.ErrNotFound
}

func (m *memStore) ListDonations(context.Context, records.DateFilter) ([]domain.Donation, error) {
	return nil, nil
}

func (m *memStore) GetDonation(context.Context, string) (*domain.Donation, error) {
	return nil, records.ErrNotFound
}

func (m *memStore) ListActivities(context.Context, records.DateFilter) ([]domain.Activity, error) {
	return nil, nil
}

func (m *memStore) GetActivity(context.Context, string) (*domain.Activity, error) {
	return nil, records.ErrNotFound
}

func (m *memStore) ActivitiesFrom(context.Context, string) ([]domain.Activity, error) {
	return nil, nil
}

// stubAggregates returns empty aggregates, plus ten hours of shifts by one
// volunteer so impact figures are non-zero.
type stubAggregates struct {
	mu         sync.Mutex
	dailySince time.Time
	err        error
}

func (s *stubAggregates) VolunteerStats(context.Context, string) ([]metrics.VolunteerStat, error) {
	return nil, s.err
}

func (s *stubAggregates) ShiftTotals(_ context.Context, _ string, since time.Time) (metrics.ShiftTotals, error) {
	if since.IsZero() {
		return metrics.ShiftTotals{Hours: 10, Shifts: 2, HoursReported: 2, Volunteers: 1}, s.err
	}
	return metrics.ShiftTotals{}, s.err
}

func (s *stubAggregates) MonthlyEngagement(context.Context, string, time.Time) ([]domain.EngagementPoint, error) {
	return nil, s.err
}

func (s *stubAggregates) MonthlyDonations(context.Context, string, time.Time) ([]metrics.DonationMonth, error) {
	return nil, s.err
}

func (s *stubAggregates) ActivityTotals(context.Context, string) (metrics.ActivityTotals, error) {
	return metrics.ActivityTotals{}, s.err
}

func (s *stubAggregates) DonationTotals(context.Context, string) (metrics.DonationTotals, error) {
	return metrics.DonationTotals{}, s.err
}

func (s *stubAggregates) StaleCounts(context.Context, string, metrics.StaleCutoffs) (domain.RiskIndicators, error) {
	return domain.RiskIndicators{}, s.err
}

func (s *stubAggregates) DailyActivity(_ context.Context, _ string, since time.Time) ([]domain.DailyActivity, error) {
	s.mu.Lock()
	s.dailySince = since
	s.mu.Unlock()
	return nil, s.err
}
