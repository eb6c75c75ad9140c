package datanorm

import (
	"strings"

	"github.com/ignite/impact-dashboard/internal/domain"
)

// CanonicalField is a normalized field name shared by every import source.
type CanonicalField string

const (
	FieldID                  CanonicalField = "id"
	FieldOrganization        CanonicalField = "organization"
	FieldName                CanonicalField = "name"
	FieldJoinDate            CanonicalField = "join_date"
	FieldActive              CanonicalField = "active"
	FieldRole                CanonicalField = "role"
	FieldMonthlyContribution CanonicalField = "monthly_contribution"
	FieldVolunteerID         CanonicalField = "volunteer_id"
	FieldDate                CanonicalField = "date"
	FieldActivity            CanonicalField = "activity"
	FieldHours               CanonicalField = "hours"
	FieldStartTime           CanonicalField = "start_time"
	FieldEndTime             CanonicalField = "end_time"
	FieldDonor               CanonicalField = "donor"
	FieldAmount              CanonicalField = "amount"
	FieldParticipants        CanonicalField = "participants"
)

// sharedAliases apply to every entity.
var sharedAliases = map[string]CanonicalField{
	"id":           FieldID,
	"organization": FieldOrganization,
	"organizacion": FieldOrganization,
	"organización": FieldOrganization,
	"org":          FieldOrganization,
}

// entityAliases maps lowercase header names to canonical fields per entity.
// The Spanish headers are the ones the dashboard's CSV templates use.
var entityAliases = map[domain.EntityType]map[string]CanonicalField{
	domain.EntityVolunteers: {
		"name":           FieldName,
		"nombre":         FieldName,
		"join_date":      FieldJoinDate,
		"fecha_registro": FieldJoinDate,
		"active":         FieldActive,
		"activo":         FieldActive,
		"role":           FieldRole,
		"rol":            FieldRole,
	},
	domain.EntityMembers: {
		"name":                 FieldName,
		"nombre":               FieldName,
		"join_date":            FieldJoinDate,
		"fecha_ingreso":        FieldJoinDate,
		"monthly_contribution": FieldMonthlyContribution,
		"contribucion_mensual": FieldMonthlyContribution,
	},
	domain.EntityShifts: {
		"volunteer_id":  FieldVolunteerID,
		"voluntario_id": FieldVolunteerID,
		"date":          FieldDate,
		"fecha":         FieldDate,
		"activity":      FieldActivity,
		"actividad":     FieldActivity,
		"hours":         FieldHours,
		"horas":         FieldHours,
		"start_time":    FieldStartTime,
		"hora_inicio":   FieldStartTime,
		"end_time":      FieldEndTime,
		"hora_fin":      FieldEndTime,
	},
	domain.EntityDonations: {
		"date":    FieldDate,
		"fecha":   FieldDate,
		"donor":   FieldDonor,
		"donante": FieldDonor,
		"amount":  FieldAmount,
		"monto":   FieldAmount,
	},
	domain.EntityActivities: {
		"name":          FieldName,
		"nombre":        FieldName,
		"date":          FieldDate,
		"fecha":         FieldDate,
		"fecha_inicio":  FieldDate,
		"participants":  FieldParticipants,
		"participantes": FieldParticipants,
	},
}

// canonicalHeader lowercases and trims a header, removing stray quotes.
func canonicalHeader(h string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(h)), "\"'")
}

// ResolveField maps a raw header to its canonical field for the entity.
func ResolveField(entity domain.EntityType, header string) (CanonicalField, bool) {
	h := canonicalHeader(header)
	if f, ok := sharedAliases[h]; ok {
		return f, true
	}
	f, ok := entityAliases[entity][h]
	return f, ok
}

// MapRecord projects a parsed record onto the canonical fields of an entity.
// Columns without an alias are dropped. When two headers resolve to the same
// field (e.g. "fecha" and "fecha_inicio"), the first non-empty value wins in
// header order.
func MapRecord(entity domain.EntityType, rec Record) map[CanonicalField]string {
	out := make(map[CanonicalField]string, len(rec.Values))
	for _, h := range rec.Headers {
		field, ok := ResolveField(entity, h)
		if !ok {
			continue
		}
		if cur, seen := out[field]; seen && strings.TrimSpace(cur) != "" {
			continue
		}
		out[field] = rec.Values[h]
	}
	return out
}

// KnownHeaders reports how many of the given headers resolve for an entity.
// The classifier uses it to pick the best-matching entity.
func KnownHeaders(entity domain.EntityType, headers []string) int {
	n := 0
	for _, h := range headers {
		if _, ok := entityAliases[entity][canonicalHeader(h)]; ok {
			n++
		}
	}
	return n
}
