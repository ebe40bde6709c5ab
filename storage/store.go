package storage

import (
	"encoding/json"
	"log"

	"property-dashboard-server/events"
	"property-dashboard-server/models"
	"property-dashboard-server/types"
)

// MaintenanceKey is the backend key holding the work-order collection
const MaintenanceKey = "maintenances"

// MaintenanceStore round-trips the whole work-order collection against the
// backend. The backend has no partial-update primitive, so every save
// overwrites the full collection; this bounds the store to collections the
// backend can hold in full.
type MaintenanceStore struct {
	backend Backend
	bus     *events.Bus
	key     string
}

// NewMaintenanceStore creates a store over the given backend and event bus
func NewMaintenanceStore(backend Backend, bus *events.Bus) *MaintenanceStore {
	return &MaintenanceStore{
		backend: backend,
		bus:     bus,
		key:     MaintenanceKey,
	}
}

// LoadAll reads the collection. Missing key and malformed data are absorbed:
// the error is logged and an empty collection returned, never an error.
func (s *MaintenanceStore) LoadAll() []models.WorkOrder {
	raw, found, err := s.backend.Get(s.key)
	if err != nil {
		log.Printf("❌ Failed to read %s collection: %v", s.key, err)
		return []models.WorkOrder{}
	}
	if !found {
		return []models.WorkOrder{}
	}

	var orders []models.WorkOrder
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Printf("❌ Malformed %s collection, starting empty: %v", s.key, err)
		return []models.WorkOrder{}
	}
	if orders == nil {
		orders = []models.WorkOrder{}
	}
	return orders
}

// SaveAll overwrites the collection and publishes maintenance:changed on
// success. Write failures are logged and returned; the caller decides
// whether to retry or alert the user.
func (s *MaintenanceStore) SaveAll(orders []models.WorkOrder) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return &types.StorageError{Op: "encode", Key: s.key, Err: err}
	}

	if err := s.backend.Set(s.key, raw); err != nil {
		log.Printf("❌ Failed to save %s collection: %v", s.key, err)
		return err
	}

	s.bus.Publish(events.TopicMaintenanceChanged, nil)
	return nil
}
