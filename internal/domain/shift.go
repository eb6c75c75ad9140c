package domain

// Shift is a block of volunteer work. VolunteerID is a soft reference: the
// volunteer may not exist (yet) when the shift is stored.
type Shift struct {
	ID           string   `json:"id" db:"id"`
	VolunteerID  string   `json:"volunteer_id" db:"volunteer_id"`
	Organization string   `json:"organization" db:"organization"`
	Date         string   `json:"date" db:"date"`
	Activity     string   `json:"activity" db:"activity"`
	Hours        *float64 `json:"hours" db:"hours"`

	// VolunteerName is filled on reads from the referenced volunteer and is
	// nil when that volunteer does not exist.
	VolunteerName *string `json:"volunteer_name" db:"-"`
}

// Donation is a single gift received by an organization.
type Donation struct {
	ID           string   `json:"id" db:"id"`
	Organization string   `json:"organization" db:"organization"`
	Date         string   `json:"date" db:"date"`
	Donor        string   `json:"donor" db:"donor"`
	Amount       *float64 `json:"amount" db:"amount"`
}

// Activity is an event or program run by an organization.
type Activity struct {
	ID           string   `json:"id" db:"id"`
	Organization string   `json:"organization" db:"organization"`
	Name         string   `json:"name" db:"name"`
	Date         string   `json:"date" db:"date"`
	Participants *float64 `json:"participants" db:"participants"`
}
