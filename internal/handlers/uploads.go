package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gctplacement/placetrack-backend/internal/services"
	"github.com/gin-gonic/gin"
)

var allowedAttachmentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
}

// UploadAttachment stores an experience attachment and returns its URL.
func UploadAttachment(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "No file provided"})
			return
		}

		if file.Size > maxSize {
			c.JSON(413, gin.H{
				"success": false,
				"message": fmt.Sprintf("File too large. Maximum size is %d MB", maxSize/(1024*1024)),
			})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedAttachmentExts[ext] {
			c.JSON(400, gin.H{"success": false, "message": "File type not allowed"})
			return
		}

		path, err := services.UploadFile(file, "experiences")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to upload file: " + err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success":  true,
			"fileName": path,
			"fileUrl":  services.FileURL(path),
		})
	}
}
