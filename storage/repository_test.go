package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dashboard-server/events"
	"property-dashboard-server/models"
	"property-dashboard-server/types"
)

func newTestRepository(t *testing.T) *WorkOrderRepository {
	t.Helper()
	store := NewMaintenanceStore(NewMemoryBackend(), events.NewBus())
	return NewWorkOrderRepository(store)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newTestRepository(t)

	order, err := repo.Create(models.WorkOrderCreate{
		Category:    models.CategoryPlumbing,
		Description: "Perdita sotto il lavello",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PriorityMedium, order.Priority)
	assert.Equal(t, time.Now().Format(models.DateLayout), order.RequestDate)
	assert.Empty(t, order.CompletedDate)
	assert.Nil(t, order.FinalCost)
	assert.NotNil(t, order.Photos)
	assert.Empty(t, order.Photos)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Positive(t, order.ID)
}

func TestCreateKeepsExplicitFields(t *testing.T) {
	repo := newTestRepository(t)

	order, err := repo.Create(models.WorkOrderCreate{
		Category:      models.CategoryHeating,
		Priority:      models.PriorityUrgent,
		Description:   "Caldaia spenta",
		RequestDate:   "2026-08-01",
		ScheduledDate: "2026-08-03",
		AssignedTo:    "Mario Rossi",
		EstimatedCost: 250,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityUrgent, order.Priority)
	assert.Equal(t, "2026-08-01", order.RequestDate)
	assert.Equal(t, "2026-08-03", order.ScheduledDate)
	assert.Equal(t, "Mario Rossi", order.AssignedTo)
	assert.Equal(t, 250.0, order.EstimatedCost)
}

func TestCreateAssignsUniqueMonotonicIDs(t *testing.T) {
	repo := newTestRepository(t)

	seen := map[int64]bool{}
	var previous int64
	for i := 0; i < 5; i++ {
		order, err := repo.Create(models.WorkOrderCreate{
			Category:    models.CategoryOther,
			Description: "Intervento generico",
		})
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "duplicate id %d", order.ID)
		assert.Greater(t, order.ID, previous)
		seen[order.ID] = true
		previous = order.ID
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(12345)

	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(12345), notFound.ID)
}

func TestFiltersMatchAndSentinel(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Create(models.WorkOrderCreate{Category: models.CategoryPlumbing, Description: "a"})
	require.NoError(t, err)
	_, err = repo.Create(models.WorkOrderCreate{Category: models.CategoryElectrical, Priority: models.PriorityHigh, Description: "b"})
	require.NoError(t, err)

	assert.Len(t, repo.FilterByCategory("plumbing"), 1)
	assert.Len(t, repo.FilterByCategory("heating"), 0)
	assert.Len(t, repo.FilterByCategory("all"), 2)
	assert.Len(t, repo.FilterByCategory(""), 2)
	assert.Len(t, repo.FilterByStatus("pending"), 2)
	assert.Len(t, repo.FilterByPriority("high"), 1)
}

func TestFilterAllOnEmptyCollection(t *testing.T) {
	repo := newTestRepository(t)

	orders := repo.FilterByStatus("all")

	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newTestRepository(t)

	created, err := repo.Create(models.WorkOrderCreate{
		Category:      models.CategoryLocksmith,
		Description:   "Serratura bloccata",
		EstimatedCost: 80,
	})
	require.NoError(t, err)

	assigned := "Luigi Bianchi"
	updated, err := repo.Update(created.ID, models.WorkOrderUpdate{AssignedTo: &assigned})
	require.NoError(t, err)

	assert.Equal(t, assigned, updated.AssignedTo)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.EstimatedCost, updated.EstimatedCost)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateNotFound(t *testing.T) {
	repo := newTestRepository(t)

	notes := "irrilevante"
	_, err := repo.Update(99, models.WorkOrderUpdate{Notes: &notes})

	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteRemovesRecord(t *testing.T) {
	repo := newTestRepository(t)

	order, err := repo.Create(models.WorkOrderCreate{Category: models.CategoryOther, Description: "da rimuovere"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(order.ID))

	_, err = repo.GetByID(order.ID)
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Empty(t, repo.GetAll())
}

func TestDeleteNotFound(t *testing.T) {
	repo := newTestRepository(t)

	var notFound *types.NotFoundError
	assert.ErrorAs(t, repo.Delete(42), &notFound)
}

func TestNextIDSkipsExistingIDs(t *testing.T) {
	store := NewMaintenanceStore(NewMemoryBackend(), events.NewBus())
	future := time.Now().Add(time.Hour).UnixMilli()
	require.NoError(t, store.SaveAll([]models.WorkOrder{{ID: future}}))

	repo := NewWorkOrderRepository(store)
	order, err := repo.Create(models.WorkOrderCreate{Category: models.CategoryOther, Description: "dopo import"})
	require.NoError(t, err)

	assert.Equal(t, future+1, order.ID)
}
