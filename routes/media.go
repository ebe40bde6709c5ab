package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterMediaRoutes adds the photo upload endpoint: the image goes to
// Cloudinary, the returned URL is appended to the work order's photos.
func RegisterMediaRoutes(rg *gin.RouterGroup, h *MaintenanceHandler) {
	rg.POST("/:id/photos/upload", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
			return
		}

		header, _ := c.FormFile("photo")
		caption := c.PostForm("caption")

		if header == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file provided"})
			return
		}
		if !validateImageFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid photo"})
			return
		}

		// Ensure the work order exists before uploading anything
		if _, err := h.Repo.GetByID(id); err != nil {
			respondError(c, err)
			return
		}

		cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
		apiKey := os.Getenv("CLOUDINARY_API_KEY")
		apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

		if cloudName == "" || apiKey == "" || apiSecret == "" {
			log.Printf("❌ Cloudinary environment variables not set")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary not configured"})
			return
		}

		cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
		cld, err := cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			log.Printf("❌ Failed to initialize Cloudinary: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary initialization failed"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not read file"})
			return
		}
		defer file.Close()

		ow := true
		uf := true
		up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
			Folder:         "maintenance/" + strconv.FormatInt(id, 10),
			PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
			Overwrite:      &ow,
			UniqueFilename: &uf,
			ResourceType:   "image",
		})
		if err != nil {
			log.Printf("❌ Photo upload failed for work order %d: %v", id, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo upload failed"})
			return
		}

		order, err := h.Service.AddPhoto(id, up.SecureURL, caption)
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("✅ Photo uploaded for work order %d: %s", id, up.SecureURL)

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"photo_url":  up.SecureURL,
			"work_order": order,
		})
	})
}
