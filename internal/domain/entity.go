package domain

// EntityType names one of the five ingestible record kinds. The value doubles
// as the table name and the `type` field of an ingestion result.
type EntityType string

const (
	EntityVolunteers EntityType = "volunteers"
	EntityMembers    EntityType = "members"
	EntityShifts     EntityType = "shifts"
	EntityDonations  EntityType = "donations"
	EntityActivities EntityType = "activities"
)

// AllEntities lists every entity type in dependency order (volunteers before
// the shifts that reference them).
var AllEntities = []EntityType{
	EntityVolunteers,
	EntityMembers,
	EntityShifts,
	EntityDonations,
	EntityActivities,
}

// ParseEntityType returns the entity type for s and whether it is known.
func ParseEntityType(s string) (EntityType, bool) {
	for _, e := range AllEntities {
		if string(e) == s {
			return e, true
		}
	}
	return "", false
}

// Singular returns the human-readable singular label, e.g. "Volunteer".
func (e EntityType) Singular() string {
	switch e {
	case EntityVolunteers:
		return "Volunteer"
	case EntityMembers:
		return "Member"
	case EntityShifts:
		return "Shift"
	case EntityDonations:
		return "Donation"
	case EntityActivities:
		return "Activity"
	default:
		return string(e)
	}
}
