package models

import "time"

// BackupVersion tags exported snapshots for forward compatibility checks
const BackupVersion = "1.0"

// BackupData is the portable snapshot of the maintenance collection.
// A nil Maintenances slice means the payload is malformed; an empty
// collection exports as an empty slice.
type BackupData struct {
	Maintenances []WorkOrder `json:"maintenances"`
	ExportDate   time.Time   `json:"export_date"`
	Version      string      `json:"version"`
}
