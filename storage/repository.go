package storage

import (
	"sync"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/types"
)

// WorkOrderRepository owns the materialized work-order collection for the
// duration of each operation. Reads go through LoadAll on every call; the
// read-modify-write in Update is last-write-wins across callers.
type WorkOrderRepository struct {
	store *MaintenanceStore

	mu     sync.Mutex
	lastID int64
}

// NewWorkOrderRepository creates a repository over the given store
func NewWorkOrderRepository(store *MaintenanceStore) *WorkOrderRepository {
	return &WorkOrderRepository{store: store}
}

// GetAll returns the full collection
func (r *WorkOrderRepository) GetAll() []models.WorkOrder {
	return r.store.LoadAll()
}

// GetByID returns the work order with the given id
func (r *WorkOrderRepository) GetByID(id int64) (*models.WorkOrder, error) {
	for _, order := range r.store.LoadAll() {
		if order.ID == id {
			found := order
			return &found, nil
		}
	}
	return nil, &types.NotFoundError{Resource: "work order", ID: id}
}

// FilterByStatus returns orders with the given status; "all" (or empty)
// bypasses the filter
func (r *WorkOrderRepository) FilterByStatus(status string) []models.WorkOrder {
	return r.filter(func(o models.WorkOrder) bool {
		return string(o.Status) == status
	}, status)
}

// FilterByCategory returns orders with the given category; "all" (or empty)
// bypasses the filter
func (r *WorkOrderRepository) FilterByCategory(category string) []models.WorkOrder {
	return r.filter(func(o models.WorkOrder) bool {
		return string(o.Category) == category
	}, category)
}

// FilterByPriority returns orders with the given priority; "all" (or empty)
// bypasses the filter
func (r *WorkOrderRepository) FilterByPriority(priority string) []models.WorkOrder {
	return r.filter(func(o models.WorkOrder) bool {
		return string(o.Priority) == priority
	}, priority)
}

func (r *WorkOrderRepository) filter(keep func(models.WorkOrder) bool, sentinel string) []models.WorkOrder {
	orders := r.store.LoadAll()
	if sentinel == "" || sentinel == "all" {
		return orders
	}

	matched := []models.WorkOrder{}
	for _, order := range orders {
		if keep(order) {
			matched = append(matched, order)
		}
	}
	return matched
}

// Create assigns an id and timestamps, applies defaults and persists.
// Required-field validation is the lifecycle controller's responsibility.
func (r *WorkOrderRepository) Create(req models.WorkOrderCreate) (*models.WorkOrder, error) {
	orders := r.store.LoadAll()
	now := time.Now()

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	requestDate := req.RequestDate
	if requestDate == "" {
		requestDate = now.Format(models.DateLayout)
	}

	order := models.WorkOrder{
		ID:            r.nextID(now, orders),
		Category:      req.Category,
		Priority:      priority,
		Description:   req.Description,
		RequestDate:   requestDate,
		ScheduledDate: req.ScheduledDate,
		Status:        models.StatusPending,
		AssignedTo:    req.AssignedTo,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
		Photos:        []models.WorkOrderPhoto{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	orders = append(orders, order)
	if err := r.store.SaveAll(orders); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update shallow-merges the patch over the existing record and refreshes
// updated_at
func (r *WorkOrderRepository) Update(id int64, patch models.WorkOrderUpdate) (*models.WorkOrder, error) {
	orders := r.store.LoadAll()
	for i := range orders {
		if orders[i].ID != id {
			continue
		}

		applyPatch(&orders[i], patch)
		orders[i].UpdatedAt = time.Now()

		if err := r.store.SaveAll(orders); err != nil {
			return nil, err
		}
		updated := orders[i]
		return &updated, nil
	}
	return nil, &types.NotFoundError{Resource: "work order", ID: id}
}

// Delete hard-removes the record from the collection
func (r *WorkOrderRepository) Delete(id int64) error {
	orders := r.store.LoadAll()
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders = append(orders[:i], orders[i+1:]...)
		return r.store.SaveAll(orders)
	}
	return &types.NotFoundError{Resource: "work order", ID: id}
}

// nextID derives a timestamp id that is strictly greater than both the last
// issued id and any id already in the collection, so ids stay unique and
// monotonic even for creates within the same millisecond.
func (r *WorkOrderRepository) nextID(now time.Time, orders []models.WorkOrder) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := now.UnixMilli()
	for _, order := range orders {
		if order.ID >= id {
			id = order.ID + 1
		}
	}
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func applyPatch(order *models.WorkOrder, patch models.WorkOrderUpdate) {
	if patch.Category != nil {
		order.Category = *patch.Category
	}
	if patch.Priority != nil {
		order.Priority = *patch.Priority
	}
	if patch.Description != nil {
		order.Description = *patch.Description
	}
	if patch.RequestDate != nil {
		order.RequestDate = *patch.RequestDate
	}
	if patch.ScheduledDate != nil {
		order.ScheduledDate = *patch.ScheduledDate
	}
	if patch.CompletedDate != nil {
		order.CompletedDate = *patch.CompletedDate
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		order.AssignedTo = *patch.AssignedTo
	}
	if patch.EstimatedCost != nil {
		order.EstimatedCost = *patch.EstimatedCost
	}
	if patch.FinalCost != nil {
		order.FinalCost = patch.FinalCost
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if patch.Photos != nil {
		order.Photos = *patch.Photos
	}
	if patch.StartedAt != nil {
		order.StartedAt = patch.StartedAt
	}
}
