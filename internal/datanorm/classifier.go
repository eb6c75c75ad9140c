package datanorm

import (
	"path"
	"strings"

	"github.com/ignite/impact-dashboard/internal/domain"
)

// Classifier determines which entity a CSV file holds from its name and
// header row.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

var fileKeywords = []struct {
	entity   domain.EntityType
	keywords []string
}{
	{domain.EntityShifts, []string{"shift", "turno"}},
	{domain.EntityMembers, []string{"member", "miembro", "socio"}},
	{domain.EntityDonations, []string{"donation", "donacion", "donación"}},
	{domain.EntityActivities, []string{"activit", "actividad"}},
	{domain.EntityVolunteers, []string{"volunteer", "voluntario"}},
}

// Classify returns the entity for a file. The base name is checked first and
// the volunteer keyword is tried last, since it also qualifies the other
// entities ("volunteer_shifts.csv", "voluntario_actividades.csv"); otherwise the entity whose aliases match the most headers wins. The second
// return value is false when nothing matched.
func (c *Classifier) Classify(key string, headerRow []string) (domain.EntityType, bool) {
	name := strings.ToLower(path.Base(key))
	for _, fk := range fileKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(name, kw) {
				return fk.entity, true
			}
		}
	}

	best, bestScore := domain.EntityType(""), 0
	for _, e := range domain.AllEntities {
		if score := KnownHeaders(e, headerRow); score > bestScore {
			best, bestScore = e, score
		}
	}
	return best, bestScore > 0
}
