package api

import (
	"errors"   // Sentinel error checks
	"io"       // Reading the uploaded file
	"net/http" // HTTP status codes

	"hoststore/internal/avatar"     // Bounded blob storage
	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Resolved identity

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// maxUploadBytes caps the raw upload before encoding (2MB)
const maxUploadBytes = 2 << 20

// UploadAvatarHandler stores the uploaded image through the blob store and
// saves the resulting URL on the caller's user row
func UploadAvatarHandler(db *gorm.DB, store avatar.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		file, err := c.FormFile("file")     // Multipart file field
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		mimeType := file.Header.Get("Content-Type") // Declared MIME type
		if !avatar.AllowedType(mimeType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, WebP, and GIF are allowed"})
			return
		}
		// Raw cap before any encoding
		if file.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File size must be less than 2MB"})
			return
		}
		src, err := file.Open() // Open the uploaded file
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src) // Read the image bytes
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		// Store through the backend; the encoded cap may still reject it
		url, err := store.Store(data, mimeType)
		if err != nil {
			if errors.Is(err, avatar.ErrPayloadTooLarge) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large after encoding"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to store image"})
			return
		}
		// Save the URL on the user row
		if err := db.Model(&domain.User{}).Where("id = ?", ident.UserID).
			Update("avatar", url).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Avatar uploaded successfully", "avatar": url})
	}
}

// DeleteAvatarHandler clears the caller's avatar
func DeleteAvatarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		// Null out the avatar column
		if err := db.Model(&domain.User{}).Where("id = ?", ident.UserID).
			Update("avatar", nil).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove avatar"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Avatar removed successfully"})
	}
}
