package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-dashboard-server/models"
	"property-dashboard-server/services"
	"property-dashboard-server/storage"
	"property-dashboard-server/types"
)

// MaintenanceHandler bundles the collaborators the maintenance routes need
type MaintenanceHandler struct {
	Service *services.MaintenanceService
	Stats   *services.StatsService
	Repo    *storage.WorkOrderRepository
	Backup  *services.BackupService
}

// RegisterMaintenanceRoutes registers all work-order routes
func RegisterMaintenanceRoutes(router *gin.RouterGroup, h *MaintenanceHandler) {
	router.POST("", h.createWorkOrder)
	router.GET("", h.listWorkOrders)
	router.GET("/stats", h.getStats)
	router.GET("/costs-by-category", h.getCostsByCategory)
	router.GET("/:id", h.getWorkOrder)
	router.PUT("/:id", h.updateWorkOrder)
	router.DELETE("/:id", h.deleteWorkOrder)
	router.POST("/:id/start", h.startWorkOrder)
	router.POST("/:id/complete", h.completeWorkOrder)
	router.POST("/:id/cancel", h.cancelWorkOrder)
	router.POST("/:id/photos", h.addPhoto)
}

// parseID normalizes the lookup key to an integer; ids compare numerically
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work order ID"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	var transitionErr *types.InvalidTransitionError
	var invalidDataErr *types.InvalidDataError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidDataErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Maintenance operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// createWorkOrder creates a new maintenance work order
func (h *MaintenanceHandler) createWorkOrder(c *gin.Context) {
	var req models.WorkOrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Work order created successfully",
		"work_order": order,
	})
}

// listWorkOrders returns the collection, optionally filtered by status,
// category or priority ("all" bypasses a filter)
func (h *MaintenanceHandler) listWorkOrders(c *gin.Context) {
	orders := h.Repo.GetAll()

	if status := c.Query("status"); status != "" {
		orders = filterOrders(orders, status, func(o models.WorkOrder) string { return string(o.Status) })
	}
	if category := c.Query("category"); category != "" {
		orders = filterOrders(orders, category, func(o models.WorkOrder) string { return string(o.Category) })
	}
	if priority := c.Query("priority"); priority != "" {
		orders = filterOrders(orders, priority, func(o models.WorkOrder) string { return string(o.Priority) })
	}

	c.JSON(http.StatusOK, gin.H{
		"work_orders": orders,
		"total_count": len(orders),
	})
}

func filterOrders(orders []models.WorkOrder, want string, field func(models.WorkOrder) string) []models.WorkOrder {
	if want == "all" {
		return orders
	}
	matched := []models.WorkOrder{}
	for _, order := range orders {
		if field(order) == want {
			matched = append(matched, order)
		}
	}
	return matched
}

// getWorkOrder returns a specific work order by ID
func (h *MaintenanceHandler) getWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.Repo.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_order": order})
}

// updateWorkOrder shallow-merges a patch over the work order
func (h *MaintenanceHandler) updateWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.WorkOrderUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Service.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Work order updated successfully",
		"work_order": order,
	})
}

// deleteWorkOrder hard-removes a work order
func (h *MaintenanceHandler) deleteWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work order deleted successfully"})
}

// startWorkOrder moves a pending work order to in-progress
func (h *MaintenanceHandler) startWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.Service.Start(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Work started successfully",
		"work_order": order,
	})
}

// completeWorkOrder closes a work order and posts the expense entry
func (h *MaintenanceHandler) completeWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.WorkOrderComplete
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	order, err := h.Service.Complete(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Work completed successfully",
		"work_order": order,
	})
}

// cancelWorkOrder sets the cancelled status
func (h *MaintenanceHandler) cancelWorkOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.Service.Cancel(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Work order cancelled",
		"work_order": order,
	})
}

// addPhoto appends a photo reference to the work order
func (h *MaintenanceHandler) addPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		URL     string `json:"url" binding:"required"`
		Caption string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Service.AddPhoto(id, req.URL, req.Caption)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Photo added successfully",
		"work_order": order,
	})
}

// getStats returns the trailing-window operational statistics
func (h *MaintenanceHandler) getStats(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{"stats": h.Stats.GetStats(days)})
}

// getCostsByCategory returns completed-order cost sums per category
func (h *MaintenanceHandler) getCostsByCategory(c *gin.Context) {
	months := 12
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = parsed
	}

	c.JSON(http.StatusOK, gin.H{"costs": h.Stats.GetCostsByCategory(months)})
}
