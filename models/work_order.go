package models

import (
	"time"
)

// DateLayout is the wire format for calendar-date fields (request, scheduled,
// completed). Timestamps use RFC3339 via encoding/json as usual.
const DateLayout = "2006-01-02"

// WorkOrderCategory is the fixed set of maintenance categories
type WorkOrderCategory string

const (
	CategoryPlumbing   WorkOrderCategory = "plumbing"
	CategoryElectrical WorkOrderCategory = "electrical"
	CategoryHeating    WorkOrderCategory = "heating"
	CategoryLocksmith  WorkOrderCategory = "locksmith"
	CategoryAppliances WorkOrderCategory = "appliances"
	CategoryOther      WorkOrderCategory = "other"
)

// AllCategories lists every known category in display order
var AllCategories = []WorkOrderCategory{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryHeating,
	CategoryLocksmith,
	CategoryAppliances,
	CategoryOther,
}

// CategoryLabels maps category keys to display labels used by notification templates
var CategoryLabels = map[WorkOrderCategory]string{
	CategoryPlumbing:   "Idraulica",
	CategoryElectrical: "Elettricità",
	CategoryHeating:    "Riscaldamento",
	CategoryLocksmith:  "Fabbro",
	CategoryAppliances: "Elettrodomestici",
	CategoryOther:      "Altro",
}

// IsValidCategory reports whether c belongs to the closed category set
func IsValidCategory(c WorkOrderCategory) bool {
	_, ok := CategoryLabels[c]
	return ok
}

// WorkOrderPriority represents the urgency of a work order
type WorkOrderPriority string

const (
	PriorityLow    WorkOrderPriority = "low"
	PriorityMedium WorkOrderPriority = "medium"
	PriorityHigh   WorkOrderPriority = "high"
	PriorityUrgent WorkOrderPriority = "urgent"
)

// PriorityLabels maps priority keys to display labels used by notification templates
var PriorityLabels = map[WorkOrderPriority]string{
	PriorityLow:    "Bassa",
	PriorityMedium: "Media",
	PriorityHigh:   "Alta",
	PriorityUrgent: "Urgente",
}

// IsValidPriority reports whether p belongs to the closed priority set
func IsValidPriority(p WorkOrderPriority) bool {
	_, ok := PriorityLabels[p]
	return ok
}

// WorkOrderStatus represents the lifecycle state of a work order
type WorkOrderStatus string

const (
	StatusPending    WorkOrderStatus = "pending"
	StatusInProgress WorkOrderStatus = "in-progress"
	StatusCompleted  WorkOrderStatus = "completed"
	StatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrderPhoto is a single photo attached to a work order. Photos are
// append-only in practice; order is preserved.
type WorkOrderPhoto struct {
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// WorkOrder represents a single maintenance request tracked through its
// lifecycle. Records are stored as one serialized collection, so field tags
// are plain JSON rather than gorm column mappings.
type WorkOrder struct {
	ID            int64             `json:"id"`
	Category      WorkOrderCategory `json:"category"`
	Priority      WorkOrderPriority `json:"priority"`
	Description   string            `json:"description"`
	RequestDate   string            `json:"request_date"`
	ScheduledDate string            `json:"scheduled_date,omitempty"`
	CompletedDate string            `json:"completed_date,omitempty"`
	Status        WorkOrderStatus   `json:"status"`
	AssignedTo    string            `json:"assigned_to,omitempty"`
	EstimatedCost float64           `json:"estimated_cost"`
	FinalCost     *float64          `json:"final_cost,omitempty"`
	Notes         string            `json:"notes"`
	Photos        []WorkOrderPhoto  `json:"photos"`
	StartedAt     *time.Time        `json:"started_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CostOrEstimate returns the final cost when set, falling back to the estimate
func (o *WorkOrder) CostOrEstimate() float64 {
	if o.FinalCost != nil {
		return *o.FinalCost
	}
	return o.EstimatedCost
}

// IsOpen reports whether the order still needs work
func (o *WorkOrder) IsOpen() bool {
	return o.Status == StatusPending || o.Status == StatusInProgress
}

// WorkOrderCreate represents the request structure for creating a work order
type WorkOrderCreate struct {
	Category      WorkOrderCategory `json:"category" binding:"required"`
	Priority      WorkOrderPriority `json:"priority"`
	Description   string            `json:"description" binding:"required"`
	RequestDate   string            `json:"request_date"`
	ScheduledDate string            `json:"scheduled_date"`
	AssignedTo    string            `json:"assigned_to"`
	EstimatedCost float64           `json:"estimated_cost"`
	Notes         string            `json:"notes"`
}

// WorkOrderUpdate is a shallow-merge patch over an existing work order.
// Only non-nil fields are applied; id and created_at are immutable.
type WorkOrderUpdate struct {
	Category      *WorkOrderCategory `json:"category"`
	Priority      *WorkOrderPriority `json:"priority"`
	Description   *string            `json:"description"`
	RequestDate   *string            `json:"request_date"`
	ScheduledDate *string            `json:"scheduled_date"`
	CompletedDate *string            `json:"completed_date"`
	Status        *WorkOrderStatus   `json:"status"`
	AssignedTo    *string            `json:"assigned_to"`
	EstimatedCost *float64           `json:"estimated_cost"`
	FinalCost     *float64           `json:"final_cost"`
	Notes         *string            `json:"notes"`
	Photos        *[]WorkOrderPhoto  `json:"photos"`
	StartedAt     *time.Time         `json:"started_at"`
}

// WorkOrderComplete represents the request structure for completing a work order
type WorkOrderComplete struct {
	FinalCost *float64 `json:"final_cost"`
	Notes     string   `json:"notes"`
}
