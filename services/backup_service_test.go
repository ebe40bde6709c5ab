package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dashboard-server/events"
	"property-dashboard-server/models"
	"property-dashboard-server/storage"
	"property-dashboard-server/types"
)

func newBackupFixture(t *testing.T) (*BackupService, *storage.MaintenanceStore, *fakeAudit) {
	t.Helper()
	store := storage.NewMaintenanceStore(storage.NewMemoryBackend(), events.NewBus())
	audit := &fakeAudit{}
	return NewBackupService(store, audit), store, audit
}

func TestExportSnapshotsCollection(t *testing.T) {
	backup, store, _ := newBackupFixture(t)

	orders := []models.WorkOrder{
		{ID: 1, Category: models.CategoryPlumbing, Description: "Perdita", Status: models.StatusPending},
		{ID: 2, Category: models.CategoryHeating, Description: "Caldaia", Status: models.StatusCompleted},
	}
	require.NoError(t, store.SaveAll(orders))

	data := backup.ExportData()

	assert.Equal(t, models.BackupVersion, data.Version)
	assert.False(t, data.ExportDate.IsZero())
	require.Len(t, data.Maintenances, 2)
	assert.Equal(t, orders[1].Description, data.Maintenances[1].Description)
}

func TestExportEmptyCollectionIsNotNil(t *testing.T) {
	backup, _, _ := newBackupFixture(t)

	data := backup.ExportData()

	assert.NotNil(t, data.Maintenances)
	assert.Empty(t, data.Maintenances)
}

func TestImportOverwritesCollection(t *testing.T) {
	backup, store, audit := newBackupFixture(t)
	require.NoError(t, store.SaveAll([]models.WorkOrder{{ID: 99, Description: "vecchio"}}))

	count, err := backup.ImportData(models.BackupData{
		Maintenances: []models.WorkOrder{
			{ID: 1, Category: models.CategoryOther, Description: "importato"},
		},
		Version: models.BackupVersion,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	loaded := store.LoadAll()
	require.Len(t, loaded, 1)
	assert.Equal(t, "importato", loaded[0].Description)
	assert.Contains(t, audit.kinds, "maintenance_imported")
}

func TestImportRejectsMissingCollection(t *testing.T) {
	backup, store, _ := newBackupFixture(t)
	require.NoError(t, store.SaveAll([]models.WorkOrder{{ID: 1, Description: "esistente"}}))

	_, err := backup.ImportData(models.BackupData{Version: models.BackupVersion})

	var invalidData *types.InvalidDataError
	require.ErrorAs(t, err, &invalidData)
	// The existing collection must be untouched
	assert.Len(t, store.LoadAll(), 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	backup, store, _ := newBackupFixture(t)

	cost := 130.0
	original := []models.WorkOrder{
		{ID: 5, Category: models.CategoryElectrical, Description: "Presa", Status: models.StatusCompleted, FinalCost: &cost, CompletedDate: "2026-08-10"},
	}
	require.NoError(t, store.SaveAll(original))

	snapshot := backup.ExportData()
	require.NoError(t, store.SaveAll([]models.WorkOrder{}))

	count, err := backup.ImportData(snapshot)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	restored := store.LoadAll()
	require.Len(t, restored, 1)
	assert.Equal(t, original[0].ID, restored[0].ID)
	require.NotNil(t, restored[0].FinalCost)
	assert.Equal(t, cost, *restored[0].FinalCost)
}
