package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/storage"
	"property-dashboard-server/types"
)

// MaintenanceService is the work-order lifecycle controller. It enforces the
// allowed status transitions and fans out the side effects attached to each
// one. Collaborators are injected; nil means no-op.
type MaintenanceService struct {
	repo     *storage.WorkOrderRepository
	ledger   Ledger
	notifier Notifier
	audit    Audit
}

// NewMaintenanceService creates a lifecycle controller over the repository
func NewMaintenanceService(repo *storage.WorkOrderRepository, ledger Ledger, notifier Notifier, audit Audit) *MaintenanceService {
	if ledger == nil {
		ledger = NoopLedger{}
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if audit == nil {
		audit = NoopAudit{}
	}
	return &MaintenanceService{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		audit:    audit,
	}
}

// Create validates required fields, persists a pending work order and
// notifies the maintenance channel fire-and-forget
func (s *MaintenanceService) Create(req models.WorkOrderCreate) (*models.WorkOrder, error) {
	if req.Category == "" {
		return nil, &types.ValidationError{Field: "category"}
	}
	if !models.IsValidCategory(req.Category) {
		return nil, &types.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", req.Category)}
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, &types.ValidationError{Field: "description"}
	}
	if req.Priority != "" && !models.IsValidPriority(req.Priority) {
		return nil, &types.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", req.Priority)}
	}

	order, err := s.repo.Create(req)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyNewWorkOrder(order)
	s.audit.Log("maintenance_created", fmt.Sprintf("Work order %d created (%s, %s)", order.ID, order.Category, order.Priority))

	return order, nil
}

// Start moves a pending work order to in-progress. Any other starting status
// fails with an InvalidTransitionError and performs no mutation.
func (s *MaintenanceService) Start(id int64) (*models.WorkOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusPending {
		return nil, &types.InvalidTransitionError{ID: id, From: string(order.Status), To: string(models.StatusInProgress)}
	}

	now := time.Now()
	status := models.StatusInProgress
	return s.repo.Update(id, models.WorkOrderUpdate{
		Status:    &status,
		StartedAt: &now,
	})
}

// Complete closes a work order: status completed, completed date today, final
// cost from the request falling back to the estimate. The status update is
// persisted first; the ledger post and the admin notification follow as a
// best-effort, non-transactional boundary — a ledger failure is logged and
// does not roll back the work order.
func (s *MaintenanceService) Complete(id int64, req models.WorkOrderComplete) (*models.WorkOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	cost := order.EstimatedCost
	if req.FinalCost != nil {
		cost = *req.FinalCost
	}
	today := time.Now().Format(models.DateLayout)
	status := models.StatusCompleted

	patch := models.WorkOrderUpdate{
		Status:        &status,
		CompletedDate: &today,
		FinalCost:     &cost,
	}
	if req.Notes != "" {
		patch.Notes = &req.Notes
	}

	updated, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}

	if cost > 0 {
		entry := models.LedgerEntry{
			Type:        models.LedgerTypeExpense,
			Amount:      cost,
			Category:    models.LedgerCategoryMaintenance,
			Description: fmt.Sprintf("Manutenzione: %s", updated.Description),
			Date:        today,
			Notes:       fmt.Sprintf("Ordine di lavoro #%d", updated.ID),
		}
		if _, err := s.ledger.CreateExpense(entry); err != nil {
			log.Printf("⚠️ Failed to post expense for work order %d: %v", updated.ID, err)
		}
	}

	s.notifier.NotifyWorkOrderCompleted(updated)
	s.audit.Log("maintenance_completed", fmt.Sprintf("Work order %d completed, cost %.2f", updated.ID, cost))

	return updated, nil
}

// Cancel sets the cancelled status. No ledger or notification side effects
// are attached to cancellation.
func (s *MaintenanceService) Cancel(id int64) (*models.WorkOrder, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	status := models.StatusCancelled
	return s.repo.Update(id, models.WorkOrderUpdate{Status: &status})
}

// Update shallow-merges the patch over the work order
func (s *MaintenanceService) Update(id int64, patch models.WorkOrderUpdate) (*models.WorkOrder, error) {
	updated, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.audit.Log("maintenance_updated", fmt.Sprintf("Work order %d updated", id))
	return updated, nil
}

// Delete hard-removes the work order from the collection
func (s *MaintenanceService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.audit.Log("maintenance_deleted", fmt.Sprintf("Work order %d deleted", id))
	return nil
}

// AddPhoto appends a photo to the work order via the generic update path
func (s *MaintenanceService) AddPhoto(id int64, url, caption string) (*models.WorkOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	photos := append(order.Photos, models.WorkOrderPhoto{
		URL:        url,
		Caption:    caption,
		UploadedAt: time.Now(),
	})
	return s.repo.Update(id, models.WorkOrderUpdate{Photos: &photos})
}
