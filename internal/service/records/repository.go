package records

import (
	"context"

	"github.com/ignite/impact-dashboard/internal/domain"
)

// Repository defines read access to stored entities. Get* methods return
// ErrNotFound when no row has the id.
type Repository interface {
	ListVolunteers(ctx context.Context, f VolunteerFilter) ([]domain.Volunteer, error)
	GetVolunteer(ctx context.Context, id string) (*domain.Volunteer, error)

	ListMembers(ctx context.Context, f MemberFilter) ([]domain.Member, error)
	GetMember(ctx context.Context, id string) (*domain.Member, error)

	// ListShifts orders by date descending and fills VolunteerName when the
	// referenced volunteer exists.
	ListShifts(ctx context.Context, f ShiftFilter) ([]domain.Shift, error)
	GetShift(ctx context.Context, id string) (*domain.Shift, error)

	ListDonations(ctx context.Context, f DateFilter) ([]domain.Donation, error)
	GetDonation(ctx context.Context, id string) (*domain.Donation, error)

	ListActivities(ctx context.Context, f DateFilter) ([]domain.Activity, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)

	// ActivitiesFrom returns activities dated on or after from, ascending.
	ActivitiesFrom(ctx context.Context, from string) ([]domain.Activity, error)
}

// VolunteerFilter selects volunteers. Zero fields do not filter.
type VolunteerFilter struct {
	Organization string
	Active       *bool
}

// MemberFilter selects members. HasContribution true keeps members with a
// positive contribution; false keeps members with none or zero.
type MemberFilter struct {
	Organization    string
	HasContribution *bool
}

// ShiftFilter selects shifts. DateFrom and DateTo are inclusive YYYY-MM-DD.
type ShiftFilter struct {
	Organization string
	VolunteerID  string
	DateFrom     string
	DateTo       string
}

// DateFilter selects donations or activities.
type DateFilter struct {
	Organization string
	DateFrom     string
	DateTo       string
}
