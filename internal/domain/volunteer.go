package domain

// Volunteer is a person who donates time to an organization.
type Volunteer struct {
	ID           string `json:"id" db:"id"`
	Organization string `json:"organization" db:"organization"`
	Name         string `json:"name" db:"name"`
	JoinDate     string `json:"join_date" db:"join_date"` // YYYY-MM-DD
	Active       bool   `json:"active" db:"active"`
	Role         string `json:"role" db:"role"`

	// TotalHours is the sum of the volunteer's shift hours. Read-only; it is
	// never written by ingestion.
	TotalHours float64 `json:"total_hours" db:"-"`
}

// Member is a paying or registered member of an organization.
type Member struct {
	ID                  string   `json:"id" db:"id"`
	Organization        string   `json:"organization" db:"organization"`
	Name                string   `json:"name" db:"name"`
	JoinDate            string   `json:"join_date" db:"join_date"`
	MonthlyContribution *float64 `json:"monthly_contribution" db:"monthly_contribution"` // nil = none recorded
}
