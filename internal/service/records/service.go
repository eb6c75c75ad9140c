package records

import (
	"context"
	"time"

	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/domain"
)

// Service exposes read queries over stored entities.
type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for "upcoming".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListVolunteers(ctx context.Context, f VolunteerFilter) ([]domain.Volunteer, error) {
	return nonNil(s.repo.ListVolunteers(ctx, f))
}

func (s *Service) GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error) {
	return s.repo.GetVolunteer(ctx, id)
}

func (s *Service) VolunteersByOrganization(ctx context.Context, org string) ([]domain.Volunteer, error) {
	return s.ListVolunteers(ctx, VolunteerFilter{Organization: org})
}

func (s *Service) ListMembers(ctx context.Context, f MemberFilter) ([]domain.Member, error) {
	return nonNil(s.repo.ListMembers(ctx, f))
}

func (s *Service) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *Service) MembersByOrganization(ctx context.Context, org string) ([]domain.Member, error) {
	return s.ListMembers(ctx, MemberFilter{Organization: org})
}

// ListShifts normalizes the date bounds before querying, so DD/MM/YYYY
// filters behave like their ISO form.
func (s *Service) ListShifts(ctx context.Context, f ShiftFilter) ([]domain.Shift, error) {
	f.DateFrom = datanorm.NormalizeDate(f.DateFrom)
	f.DateTo = datanorm.NormalizeDate(f.DateTo)
	return nonNil(s.repo.ListShifts(ctx, f))
}

func (s *Service) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	return s.repo.GetShift(ctx, id)
}

func (s *Service) ShiftsByOrganization(ctx context.Context, org string) ([]domain.Shift, error) {
	return s.ListShifts(ctx, ShiftFilter{Organization: org})
}

// ShiftsByVolunteer returns one volunteer's shifts, newest first.
func (s *Service) ShiftsByVolunteer(ctx context.Context, volunteerID string) ([]domain.Shift, error) {
	return s.ListShifts(ctx, ShiftFilter{VolunteerID: volunteerID})
}

func (s *Service) ListDonations(ctx context.Context, f DateFilter) ([]domain.Donation, error) {
	return nonNil(s.repo.ListDonations(ctx, normalizeRange(f)))
}

func (s *Service) GetDonation(ctx context.Context, id string) (*domain.Donation, error) {
	return s.repo.GetDonation(ctx, id)
}

func (s *Service) DonationsByOrganization(ctx context.Context, org string) ([]domain.Donation, error) {
	return s.ListDonations(ctx, DateFilter{Organization: org})
}

func (s *Service) ListActivities(ctx context.Context, f DateFilter) ([]domain.Activity, error) {
	return nonNil(s.repo.ListActivities(ctx, normalizeRange(f)))
}

func (s *Service) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	return s.repo.GetActivity(ctx, id)
}

func (s *Service) ActivitiesByOrganization(ctx context.Context, org string) ([]domain.Activity, error) {
	return s.ListActivities(ctx, DateFilter{Organization: org})
}

// UpcomingActivities returns activities dated today or later, soonest first.
func (s *Service) UpcomingActivities(ctx context.Context) ([]domain.Activity, error) {
	today := s.now().UTC().Format("2006-01-02")
	return nonNil(s.repo.ActivitiesFrom(ctx, today))
}

func normalizeRange(f DateFilter) DateFilter {
	f.DateFrom = datanorm.NormalizeDate(f.DateFrom)
	f.DateTo = datanorm.NormalizeDate(f.DateTo)
	return f
}

// nonNil turns a nil result slice into an empty one so listings encode as [].
func nonNil[T any](rows []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}
