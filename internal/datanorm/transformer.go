package datanorm

import (
	"github.com/ignite/impact-dashboard/internal/domain"
)

// TransformVolunteers maps raw rows to volunteers, one output per input.
func TransformVolunteers(records []Record) []domain.Volunteer {
	out := make([]domain.Volunteer, 0, len(records))
	for _, rec := range records {
		f := MapRecord(domain.EntityVolunteers, rec)
		out = append(out, domain.Volunteer{
			ID:           f[FieldID],
			Organization: f[FieldOrganization],
			Name:         f[FieldName],
			JoinDate:     NormalizeDate(f[FieldJoinDate]),
			Active:       NormalizeBoolean(f[FieldActive]),
			Role:         f[FieldRole],
		})
	}
	return out
}

// TransformMembers maps raw rows to members, one output per input.
func TransformMembers(records []Record) []domain.Member {
	out := make([]domain.Member, 0, len(records))
	for _, rec := range records {
		f := MapRecord(domain.EntityMembers, rec)
		out = append(out, domain.Member{
			ID:                  f[FieldID],
			Organization:        f[FieldOrganization],
			Name:                f[FieldName],
			JoinDate:            NormalizeDate(f[FieldJoinDate]),
			MonthlyContribution: NormalizeNumber(f[FieldMonthlyContribution]),
		})
	}
	return out
}

// TransformShifts maps raw rows to shifts, one output per input. When the
// hours column is missing or unparsable, hours are derived from the start
// and end clock times if both are present.
func TransformShifts(records []Record) []domain.Shift {
	out := make([]domain.Shift, 0, len(records))
	for _, rec := range records {
		f := MapRecord(domain.EntityShifts, rec)
		hours := NormalizeNumber(f[FieldHours])
		if hours == nil {
			hours = hoursBetween(f[FieldStartTime], f[FieldEndTime])
		}
		out = append(out, domain.Shift{
			ID:           f[FieldID],
			VolunteerID:  f[FieldVolunteerID],
			Organization: f[FieldOrganization],
			Date:         NormalizeDate(f[FieldDate]),
			Activity:     f[FieldActivity],
			Hours:        hours,
		})
	}
	return out
}

// TransformDonations maps raw rows to donations, one output per input.
func TransformDonations(records []Record) []domain.Donation {
	out := make([]domain.Donation, 0, len(records))
	for _, rec := range records {
		f := MapRecord(domain.EntityDonations, rec)
		out = append(out, domain.Donation{
			ID:           f[FieldID],
			Organization: f[FieldOrganization],
			Date:         NormalizeDate(f[FieldDate]),
			Donor:        f[FieldDonor],
			Amount:       NormalizeNumber(f[FieldAmount]),
		})
	}
	return out
}

// TransformActivities maps raw rows to activities, one output per input.
func TransformActivities(records []Record) []domain.Activity {
	out := make([]domain.Activity, 0, len(records))
	for _, rec := range records {
		f := MapRecord(domain.EntityActivities, rec)
		out = append(out, domain.Activity{
			ID:           f[FieldID],
			Organization: f[FieldOrganization],
			Name:         f[FieldName],
			Date:         NormalizeDate(f[FieldDate]),
			Participants: NormalizeNumber(f[FieldParticipants]),
		})
	}
	return out
}
