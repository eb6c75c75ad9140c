package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/pkg/httputil"
	"github.com/ignite/impact-dashboard/internal/service/records"
)

// dataResponse is the envelope for record reads.
type dataResponse struct {
	Data any `json:"data"`
}

func writeList[T any](w http.ResponseWriter, rows []T, err error) {
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, dataResponse{Data: rows})
}

func writeOne[T any](w http.ResponseWriter, r *http.Request, entity domain.EntityType,
	get func(context.Context, string) (*T, error)) {
	row, err := get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, records.ErrNotFound):
		httputil.NotFound(w, entity.Singular()+" not found")
	case err != nil:
		httputil.InternalError(w, err)
	default:
		httputil.OK(w, dataResponse{Data: row})
	}
}

// Volunteers

// ListVolunteers handles GET /api/volunteers?organization=&active=
func (h *Handlers) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ListVolunteers(r.Context(), records.VolunteerFilter{
		Organization: organization(r),
		Active:       queryBool(r, "active"),
	})
	writeList(w, rows, err)
}

func (h *Handlers) GetVolunteer(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, domain.EntityVolunteers, h.records.GetVolunteer)
}

func (h *Handlers) VolunteersByOrganization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.VolunteersByOrganization(r.Context(), chi.URLParam(r, "org"))
	writeList(w, rows, err)
}

// VolunteerShifts handles GET /api/volunteers/{id}/shifts
func (h *Handlers) VolunteerShifts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ShiftsByVolunteer(r.Context(), chi.URLParam(r, "id"))
	writeList(w, rows, err)
}

// Members

// ListMembers handles GET /api/members?organization=&has_contribution=
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ListMembers(r.Context(), records.MemberFilter{
		Organization:    organization(r),
		HasContribution: queryBool(r, "has_contribution"),
	})
	writeList(w, rows, err)
}

// MembersWithContributions handles GET /api/members/contributions/with
func (h *Handlers) MembersWithContributions(w http.ResponseWriter, r *http.Request) {
	has := true
	rows, err := h.records.ListMembers(r.Context(), records.MemberFilter{HasContribution: &has})
	writeList(w, rows, err)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, domain.EntityMembers, h.records.GetMember)
}

func (h *Handlers) MembersByOrganization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.MembersByOrganization(r.Context(), chi.URLParam(r, "org"))
	writeList(w, rows, err)
}

// Shifts

// ListShifts handles GET /api/shifts?organization=&volunteer_id=&date_from=&date_to=
func (h *Handlers) ListShifts(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	rows, err := h.records.ListShifts(r.Context(), records.ShiftFilter{
		Organization: organization(r),
		VolunteerID:  r.URL.Query().Get("volunteer_id"),
		DateFrom:     from,
		DateTo:       to,
	})
	writeList(w, rows, err)
}

// ShiftsForVolunteer handles GET /api/shifts/volunteer/{volunteerId}
func (h *Handlers) ShiftsForVolunteer(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ShiftsByVolunteer(r.Context(), chi.URLParam(r, "volunteerId"))
	writeList(w, rows, err)
}

func (h *Handlers) GetShift(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, domain.EntityShifts, h.records.GetShift)
}

func (h *Handlers) ShiftsByOrganization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ShiftsByOrganization(r.Context(), chi.URLParam(r, "org"))
	writeList(w, rows, err)
}

// Donations

// ListDonations handles GET /api/donations?organization=&date_from=&date_to=
func (h *Handlers) ListDonations(w http.ResponseWriter, r *http.Request) {
	f, ok := dateFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.records.ListDonations(r.Context(), f)
	writeList(w, rows, err)
}

func (h *Handlers) GetDonation(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, domain.EntityDonations, h.records.GetDonation)
}

func (h *Handlers) DonationsByOrganization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.DonationsByOrganization(r.Context(), chi.URLParam(r, "org"))
	writeList(w, rows, err)
}

// Activities

// ListActivities handles GET /api/activities?organization=&date_from=&date_to=
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	f, ok := dateFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.records.ListActivities(r.Context(), f)
	writeList(w, rows, err)
}

func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, domain.EntityActivities, h.records.GetActivity)
}

func (h *Handlers) ActivitiesByOrganization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.ActivitiesByOrganization(r.Context(), chi.URLParam(r, "org"))
	writeList(w, rows, err)
}

// UpcomingActivities handles GET /api/activities/upcoming
func (h *Handlers) UpcomingActivities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.UpcomingActivities(r.Context())
	writeList(w, rows, err)
}

func dateFilter(w http.ResponseWriter, r *http.Request) (records.DateFilter, bool) {
	from, to, err := queryRange(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return records.DateFilter{}, false
	}
	return records.DateFilter{Organization: organization(r), DateFrom: from, DateTo: to}, true
}
