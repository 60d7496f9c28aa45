package domain

import "time"

// Dataset is the catalog's handle for an ensured dataset.
// Identity is assigned by the catalog, never by the importer.
type Dataset struct {
	ID       string
	OrgID    string
	Name     string
	DeviceID string
	Created  time.Time
}
