package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-dashboard-server/models"
)

// RegisterBackupRoutes registers export/import endpoints
func RegisterBackupRoutes(router *gin.RouterGroup, h *MaintenanceHandler) {
	router.GET("/export", h.exportData)
	router.POST("/import", h.importData)
}

// exportData returns a full snapshot of the maintenance collection
func (h *MaintenanceHandler) exportData(c *gin.Context) {
	c.JSON(http.StatusOK, h.Backup.ExportData())
}

// importData overwrites the collection with the posted snapshot
func (h *MaintenanceHandler) importData(c *gin.Context) {
	var data models.BackupData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.Backup.ImportData(data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Import completed successfully",
		"imported_count": count,
	})
}
