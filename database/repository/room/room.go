package roomRepo

import (
	"context"
	"fmt"
	"time"

	"stayledger/database"
	"stayledger/models"
	"stayledger/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	SetStatus(ctx context.Context, roomNumber string, status models.RoomStatus) error
	FindByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error)
}

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

func NewMongoRoomRepo() RoomRepository {
	repo := &MongoRoomRepo{coll: database.DB().Collection("rooms")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("rooms: failed to create indexes: %v", err)
	}
	return repo
}

func (r *MongoRoomRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "roomNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create room indexes: %w", err)
	}
	return nil
}

func (r *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("failed to create room %s: %w", room.RoomNumber, database.TranslateError(err))
	}
	return nil
}

func (r *MongoRoomRepo) GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"roomNumber": roomNumber}).Decode(&room); err != nil {
		return nil, fmt.Errorf("failed to fetch room %s: %w", roomNumber, database.TranslateError(err))
	}
	return &room, nil
}

func (r *MongoRoomRepo) Update(ctx context.Context, room *models.Room) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	room.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"roomNumber": room.RoomNumber}, room)
	if err != nil {
		return fmt.Errorf("failed to update room %s: %w", room.RoomNumber, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update room %s: %w", room.RoomNumber, database.ErrNotFound)
	}
	return nil
}

func (r *MongoRoomRepo) SetStatus(ctx context.Context, roomNumber string, status models.RoomStatus) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"roomNumber": roomNumber},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set status of room %s: %w", roomNumber, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to set status of room %s: %w", roomNumber, database.ErrNotFound)
	}
	return nil
}

func (r *MongoRoomRepo) FindByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("error finding rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %w", err)
	}
	return rooms, nil
}
