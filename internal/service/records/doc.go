// Package records is the read side for stored entities: filtered listings,
// lookups by id and the per-organization views used by the dashboard pages.
package records
