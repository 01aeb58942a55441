package storage

import (
	"context"
	"io"
)

// ImageStore keeps binary images and serves them by public ID.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Delete(ctx context.Context, publicID string) error
	URL(publicID string) (string, error)
}

// RoomImage is an image reference returned to clients.
type RoomImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
