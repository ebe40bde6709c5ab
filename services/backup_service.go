package services

import (
	"fmt"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/storage"
	"property-dashboard-server/types"
)

// BackupService serializes the full maintenance collection to and from a
// portable snapshot
type BackupService struct {
	store *storage.MaintenanceStore
	audit Audit
}

// NewBackupService creates an import/export adapter over the store
func NewBackupService(store *storage.MaintenanceStore, audit Audit) *BackupService {
	if audit == nil {
		audit = NoopAudit{}
	}
	return &BackupService{store: store, audit: audit}
}

// ExportData returns a full snapshot of the collection
func (s *BackupService) ExportData() models.BackupData {
	return models.BackupData{
		Maintenances: s.store.LoadAll(),
		ExportDate:   time.Now(),
		Version:      models.BackupVersion,
	}
}

// ImportData overwrites the entire collection with the snapshot (no merge,
// no dedup) and returns the count imported
func (s *BackupService) ImportData(data models.BackupData) (int, error) {
	if data.Maintenances == nil {
		return 0, &types.InvalidDataError{Reason: "maintenances collection is missing"}
	}

	if err := s.store.SaveAll(data.Maintenances); err != nil {
		return 0, err
	}

	count := len(data.Maintenances)
	s.audit.Log("maintenance_imported", fmt.Sprintf("Imported %d work orders (snapshot version %s)", count, data.Version))
	return count, nil
}
