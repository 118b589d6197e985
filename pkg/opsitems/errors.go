package opsitems

import "errors"

var (
	ErrIncidentNotFound = errors.New("incident not found")
)
