package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"stayledger/services/storage"

	"github.com/gin-gonic/gin"
)

// RoomImages is the room image service used by StorageHandler.
type RoomImages interface {
	Upload(ctx context.Context, roomNumber string, file io.Reader) (*storage.RoomImage, error)
	List(ctx context.Context, roomNumber string) ([]storage.RoomImage, error)
	Delete(ctx context.Context, roomNumber, imageID string) error
}

// allowedImageTypes defines the accepted upload content types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// StorageHandler handles room image endpoints.
type StorageHandler struct {
	Images RoomImages
}

func NewStorageHandler(images RoomImages) *StorageHandler {
	return &StorageHandler{Images: images}
}

// UploadFileHandler stores the multipart "file" field as an image of the room.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !allowedImageTypes[ct] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type", "detail": ct})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "Failed to read upload", err)
		return
	}
	defer file.Close()

	img, err := h.Images.Upload(c.Request.Context(), c.Param("number"), file)
	if err != nil {
		respondError(c, "Failed to upload image", err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (h *StorageHandler) ListImagesHandler(c *gin.Context) {
	images, err := h.Images.List(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, "Failed to list images", err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteImageHandler removes an image. Image IDs contain slashes, so the route uses a wildcard.
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	imageID := strings.TrimPrefix(c.Param("imageID"), "/")
	if imageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image id required"})
		return
	}
	if err := h.Images.Delete(c.Request.Context(), c.Param("number"), imageID); err != nil {
		respondError(c, "Failed to delete image", err)
		return
	}
	c.Status(http.StatusNoContent)
}
