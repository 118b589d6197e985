package model

import "time"

// IncidentStatus mirrors the incident system's OpsItem status field.
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "Open"
	IncidentStatusInProgress IncidentStatus = "InProgress"
	IncidentStatusResolved   IncidentStatus = "Resolved"
)

// Incident is a queried (not owned) record from the incident system.
type Incident struct {
	ID          string
	Title       string
	Description string
	Status      IncidentStatus
	CreatedTime time.Time
}

// Open reports whether the incident has not yet been restored. The incident
// system is the source of truth; no local state is kept.
func (i Incident) Open() bool {
	return i.Status != IncidentStatusResolved
}
