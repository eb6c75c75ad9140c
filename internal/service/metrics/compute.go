package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/ignite/impact-dashboard/internal/domain"
)

// HourlyRate is the dollar value assigned to one volunteer hour.
const HourlyRate = 15.0

const (
	activeWithinDays = 30
	atRiskWithinDays = 90
	topPerformerN    = 5
)

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// ratio divides and returns 0 for a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// startOfDay truncates t to midnight UTC of its calendar date.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Bucket classifies a volunteer by the date of their most recent shift.
// A volunteer without shifts is inactive.
func Bucket(lastShift *time.Time, today time.Time) domain.HealthStatus {
	if lastShift == nil {
		return domain.HealthInactive
	}
	last := startOfDay(*lastShift)
	switch {
	case !last.Before(today.AddDate(0, 0, -activeWithinDays)):
		return domain.HealthActive
	case !last.Before(today.AddDate(0, 0, -atRiskWithinDays)):
		return domain.HealthAtRisk
	default:
		return domain.HealthInactive
	}
}

// topPerformers orders by total hours descending, then name, then id.
func topPerformers(stats []VolunteerStat, n int) []domain.TopPerformer {
	sorted := make([]VolunteerStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalHours != b.TotalHours {
			return a.TotalHours > b.TotalHours
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]domain.TopPerformer, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, domain.TopPerformer{
			Name:       s.Name,
			Role:       s.Role,
			TotalHours: s.TotalHours,
			ShiftCount: s.ShiftCount,
		})
	}
	return out
}

func retentionRate(stats []VolunteerStat, cutoff time.Time) float64 {
	retained := 0
	for _, s := range stats {
		if s.LastShift != nil && !startOfDay(*s.LastShift).Before(cutoff) {
			retained++
		}
	}
	return round1(ratio(float64(retained), float64(len(stats))) * 100)
}

func volunteerHealth(stats []VolunteerStat, today time.Time) domain.VolunteerHealth {
	var h domain.VolunteerHealth
	var hours float64
	var shifts int
	for _, s := range stats {
		switch Bucket(s.LastShift, today) {
		case domain.HealthActive:
			h.Active++
		case domain.HealthAtRisk:
			h.AtRisk++
		default:
			h.Inactive++
		}
		hours += s.TotalHours
		shifts += s.ShiftCount
	}
	n := float64(len(stats))
	h.AvgHoursPerVolunteer = round1(ratio(hours, n))
	h.AvgShiftsPerVolunteer = round1(ratio(float64(shifts), n))
	return h
}

func avgHoursPerVolunteer(stats []VolunteerStat) float64 {
	var total float64
	for _, s := range stats {
		total += s.TotalHours
	}
	return round1(ratio(total, float64(len(stats))))
}

func joinedSince(stats []VolunteerStat, cutoff time.Time) int {
	n := 0
	for _, s := range stats {
		if s.JoinDate != nil && !startOfDay(*s.JoinDate).Before(cutoff) {
			n++
		}
	}
	return n
}

func activeFlagCount(stats []VolunteerStat) int {
	n := 0
	for _, s := range stats {
		if s.Active {
			n++
		}
	}
	return n
}

func donationTrend(months []DonationMonth) []domain.DonationPoint {
	out := make([]domain.DonationPoint, 0, len(months))
	for _, m := range months {
		out = append(out, domain.DonationPoint{
			Month:            m.Month,
			MonthlyDonations: m.Sum,
			DonationCount:    m.Count,
			AvgDonation:      round1(ratio(m.Sum, float64(m.Reported))),
		})
	}
	return out
}
