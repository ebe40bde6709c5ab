package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dashboard-server/events"
	"property-dashboard-server/models"
	"property-dashboard-server/storage"
)

func TestStorageLedgerAppendsEntries(t *testing.T) {
	ledger := NewStorageLedger(storage.NewMemoryBackend())

	first, err := ledger.CreateExpense(models.LedgerEntry{
		Amount:      150,
		Category:    models.LedgerCategoryMaintenance,
		Description: "Manutenzione: Sostituzione sifone",
		Date:        "2026-08-15",
	})
	require.NoError(t, err)
	second, err := ledger.CreateExpense(models.LedgerEntry{
		Amount:   80,
		Category: models.LedgerCategoryMaintenance,
		Date:     "2026-08-16",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LedgerTypeExpense, first.Type)
	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	entries := ledger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 150.0, entries[0].Amount)
	assert.Equal(t, 80.0, entries[1].Amount)
}

func TestStorageLedgerForcesExpenseType(t *testing.T) {
	ledger := NewStorageLedger(storage.NewMemoryBackend())

	entry, err := ledger.CreateExpense(models.LedgerEntry{
		Type:   models.LedgerTypeIncome,
		Amount: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, models.LedgerTypeExpense, entry.Type)
}

func TestStorageLedgerEmptyOnFreshBackend(t *testing.T) {
	ledger := NewStorageLedger(storage.NewMemoryBackend())

	assert.Empty(t, ledger.Entries())
}

func TestBusNotifierPublishesTemplates(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(events.TopicNotification)
	notifier := NewBusNotifier(bus)

	order := &models.WorkOrder{
		ID:          42,
		Category:    models.CategoryPlumbing,
		Priority:    models.PriorityHigh,
		Description: "Perdita dal soffitto",
	}
	notifier.NotifyNewWorkOrder(order)

	event := <-ch
	message, ok := event.Payload.(NotificationMessage)
	require.True(t, ok)
	assert.Equal(t, ChannelMaintenance, message.Channel)
	assert.Equal(t, "maintenance_created", message.Type)
	assert.Contains(t, message.Title, "Idraulica")
	assert.Contains(t, message.Body, "Alta")
	assert.Equal(t, int64(42), message.WorkOrderID)

	cost := 130.0
	order.FinalCost = &cost
	notifier.NotifyWorkOrderCompleted(order)

	event = <-ch
	message, ok = event.Payload.(NotificationMessage)
	require.True(t, ok)
	assert.Equal(t, ChannelAdmin, message.Channel)
	assert.Equal(t, "maintenance_completed", message.Type)
	assert.Contains(t, message.Body, "130.00")
}
