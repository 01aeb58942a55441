package roomImageRepo

import (
	"context"
	"fmt"
	"time"

	"stayledger/database"
	"stayledger/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoomImageRepository keeps the image IDs attached to each room.
type RoomImageRepository interface {
	AddImage(ctx context.Context, roomNumber, imageID string) error
	RemoveImage(ctx context.Context, roomNumber, imageID string) error
	GetByRoom(ctx context.Context, roomNumber string) (*models.RoomImages, error)
}

type MongoRoomImageRepo struct {
	coll *mongo.Collection
}

func NewMongoRoomImageRepo() RoomImageRepository {
	return &MongoRoomImageRepo{coll: database.DB().Collection("room_images")}
}

func (r *MongoRoomImageRepo) AddImage(ctx context.Context, roomNumber, imageID string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"roomNumber": roomNumber},
		bson.M{"$addToSet": bson.M{"imageIds": imageID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add image to room %s: %w", roomNumber, err)
	}
	return nil
}

func (r *MongoRoomImageRepo) RemoveImage(ctx context.Context, roomNumber, imageID string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"roomNumber": roomNumber},
		bson.M{"$pull": bson.M{"imageIds": imageID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove image from room %s: %w", roomNumber, err)
	}
	if res.ModifiedCount == 0 {
		return fmt.Errorf("image %s on room %s: %w", imageID, roomNumber, database.ErrNotFound)
	}
	return nil
}

// GetByRoom returns an empty image set when the room has none.
func (r *MongoRoomImageRepo) GetByRoom(ctx context.Context, roomNumber string) (*models.RoomImages, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	images := models.RoomImages{RoomNumber: roomNumber}
	err := r.coll.FindOne(ctx, bson.M{"roomNumber": roomNumber}).Decode(&images)
	if err != nil && database.TranslateError(err) != database.ErrNotFound {
		return nil, fmt.Errorf("failed to fetch images for room %s: %w", roomNumber, err)
	}
	return &images, nil
}
