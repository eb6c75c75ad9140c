package domain

// HealthStatus buckets a volunteer by the recency of their last shift.
type HealthStatus string

const (
	HealthActive   HealthStatus = "active"
	HealthAtRisk   HealthStatus = "at_risk"
	HealthInactive HealthStatus = "inactive"
)

// TopPerformer is one row of the engagement leaderboard.
type TopPerformer struct {
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	TotalHours float64 `json:"total_hours"`
	ShiftCount int     `json:"shift_count"`
}

// EngagementPoint is one calendar month of volunteer engagement.
type EngagementPoint struct {
	Month            string  `json:"month"` // YYYY-MM-01
	ActiveVolunteers int     `json:"active_volunteers"`
	TotalHours       float64 `json:"total_hours"`
	TotalShifts      int     `json:"total_shifts"`
}

// EngagementMetrics summarises how engaged the volunteer base is.
type EngagementMetrics struct {
	RetentionRate        float64           `json:"retentionRate"`
	AvgHoursPerVolunteer float64           `json:"avgHoursPerVolunteer"`
	TopPerformers        []TopPerformer    `json:"topPerformers"`
	EngagementTrend      []EngagementPoint `json:"engagementTrend"`
}

// DonationPoint is one calendar month of donations.
type DonationPoint struct {
	Month            string  `json:"month"`
	MonthlyDonations float64 `json:"monthly_donations"`
	DonationCount    int     `json:"donation_count"`
	AvgDonation      float64 `json:"avg_donation"`
}

// ActivityEfficiency reports participation across activities.
type ActivityEfficiency struct {
	AvgParticipants float64 `json:"avgParticipants"`
	TotalActivities int     `json:"totalActivities"`
}

// ResourceUtilization reports volunteer capacity for the current month.
type ResourceUtilization struct {
	TotalVolunteers  int     `json:"totalVolunteers"`
	ActiveVolunteers int     `json:"activeVolunteers"`
	HoursThisMonth   float64 `json:"hoursThisMonth"`
	AvgHoursPerShift float64 `json:"avgHoursPerShift"`
}

// ImpactMetrics summarises the value produced by volunteers and donors.
type ImpactMetrics struct {
	EconomicValue          float64             `json:"economicValue"`
	ContributingVolunteers int                 `json:"contributingVolunteers"`
	ActivityEfficiency     ActivityEfficiency  `json:"activityEfficiency"`
	DonationTrends         []DonationPoint     `json:"donationTrends"`
	ResourceUtilization    ResourceUtilization `json:"resourceUtilization"`
}

// VolunteerHealth counts volunteers per HealthStatus bucket.
type VolunteerHealth struct {
	Active                int     `json:"active"`
	AtRisk                int     `json:"atRisk"`
	Inactive              int     `json:"inactive"`
	AvgHoursPerVolunteer  float64 `json:"avgHoursPerVolunteer"`
	AvgShiftsPerVolunteer float64 `json:"avgShiftsPerVolunteer"`
}

// Sustainability reports volunteer growth and donation totals.
type Sustainability struct {
	TotalVolunteers   int     `json:"totalVolunteers"`
	NewVolunteers6m   int     `json:"newVolunteers6m"`
	NewVolunteers12m  int     `json:"newVolunteers12m"`
	TotalDonations    float64 `json:"totalDonations"`
	AvgDonationAmount float64 `json:"avgDonationAmount"`
}

// RiskIndicators counts stale records per table.
type RiskIndicators struct {
	StaleShifts     int `json:"staleShifts"`
	StaleDonations  int `json:"staleDonations"`
	StaleActivities int `json:"staleActivities"`
}

// HealthMetrics summarises program health and sustainability.
type HealthMetrics struct {
	VolunteerHealth VolunteerHealth `json:"volunteerHealth"`
	Sustainability  Sustainability  `json:"sustainability"`
	RiskIndicators  RiskIndicators  `json:"riskIndicators"`
}

// DashboardMetrics bundles every metric category for one organization scope.
type DashboardMetrics struct {
	Engagement   EngagementMetrics `json:"engagement"`
	Impact       ImpactMetrics     `json:"impact"`
	Health       HealthMetrics     `json:"health"`
	Organization string            `json:"organization,omitempty"`
}

// BasicMetrics is the headline KPI set shown on the landing page.
type BasicMetrics struct {
	RetentionRate        float64 `json:"retentionRate"`
	AvgHoursPerVolunteer float64 `json:"avgHoursPerVolunteer"`
	EconomicValue        float64 `json:"economicValue"`
	ActiveVolunteers     int     `json:"activeVolunteers"`
	AtRiskVolunteers     int     `json:"atRiskVolunteers"`
}

// DailyActivity is one calendar day of shift activity.
type DailyActivity struct {
	Date       string  `json:"date"`
	Volunteers int     `json:"volunteers"`
	Hours      float64 `json:"hours"`
	Shifts     int     `json:"shifts"`
}

// EntityCounts is the stored row count per entity table.
type EntityCounts struct {
	Volunteers int `json:"volunteers"`
	Members    int `json:"members"`
	Shifts     int `json:"shifts"`
	Donations  int `json:"donations"`
	Activities int `json:"activities"`
}

// OverallStats bundles metrics with raw row counts.
type OverallStats struct {
	Engagement EngagementMetrics `json:"engagement"`
	Impact     ImpactMetrics     `json:"impact"`
	Health     HealthMetrics     `json:"health"`
	Counts     EntityCounts      `json:"counts"`
}
