package storage

import (
	"context"
	"fmt"
	"io"

	roomRepo "stayledger/database/repository/room"
	roomImageRepo "stayledger/database/repository/roomimage"

	"go.uber.org/zap"
)

const roomImageFolder = "rooms"

// RoomImageService attaches stored images to rooms.
type RoomImageService struct {
	Store  ImageStore
	Images roomImageRepo.RoomImageRepository
	Rooms  roomRepo.RoomRepository
	Logger *zap.Logger
}

func (s *RoomImageService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Upload stores an image for an existing room.
func (s *RoomImageService) Upload(ctx context.Context, roomNumber string, file io.Reader) (*RoomImage, error) {
	if _, err := s.Rooms.GetByNumber(ctx, roomNumber); err != nil {
		return nil, err
	}

	id, err := s.Store.Upload(ctx, file, roomImageFolder+"/"+roomNumber)
	if err != nil {
		return nil, err
	}
	if err := s.Images.AddImage(ctx, roomNumber, id); err != nil {
		// The stored file would otherwise be orphaned.
		if derr := s.Store.Delete(ctx, id); derr != nil {
			s.log().Warn("failed to remove orphaned image", zap.String("imageId", id), zap.Error(derr))
		}
		return nil, err
	}

	url, err := s.Store.URL(id)
	if err != nil {
		return nil, err
	}
	return &RoomImage{ID: id, URL: url}, nil
}

// List returns the images of a room with their delivery URLs.
func (s *RoomImageService) List(ctx context.Context, roomNumber string) ([]RoomImage, error) {
	set, err := s.Images.GetByRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	images := make([]RoomImage, 0, len(set.ImageIDs))
	for _, id := range set.ImageIDs {
		url, err := s.Store.URL(id)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", id, err)
		}
		images = append(images, RoomImage{ID: id, URL: url})
	}
	return images, nil
}

// Delete detaches an image from a room and removes the stored file.
func (s *RoomImageService) Delete(ctx context.Context, roomNumber, imageID string) error {
	if err := s.Images.RemoveImage(ctx, roomNumber, imageID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, imageID); err != nil {
		s.log().Warn("image detached but not deleted from store", zap.String("imageId", imageID), zap.Error(err))
	}
	return nil
}
