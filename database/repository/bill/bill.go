package billRepo

import (
	"context"
	"fmt"
	"time"

	"stayledger/database"
	"stayledger/models"
	"stayledger/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UtilityBillRepository stores the flat per-room electricity figures.
type UtilityBillRepository interface {
	Create(ctx context.Context, bill *models.UtilityBill) error
	GetByID(ctx context.Context, id string) (*models.UtilityBill, error)
	// GetLatestByRoom returns the most recent bill recorded for a room.
	GetLatestByRoom(ctx context.Context, roomNumber string) (*models.UtilityBill, error)
	Update(ctx context.Context, bill *models.UtilityBill) error
}

type mongoUtilityBillRepo struct {
	coll *mongo.Collection
}

func NewMongoUtilityBillRepo() UtilityBillRepository {
	repo := &mongoUtilityBillRepo{coll: database.DB().Collection("utility_bills")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("utility_bills: failed to create indexes: %v", err)
	}
	return repo
}

func (r *mongoUtilityBillRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roomNumber", Value: 1}, {Key: "month", Value: -1}}, Options: options.Index().SetName("room_month_idx")},
	})
	if err != nil {
		return fmt.Errorf("failed to create utility bill indexes: %w", err)
	}
	return nil
}

func (r *mongoUtilityBillRepo) Create(ctx context.Context, bill *models.UtilityBill) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt
	if _, err := r.coll.InsertOne(ctx, bill); err != nil {
		return fmt.Errorf("failed to create utility bill: %w", database.TranslateError(err))
	}
	return nil
}

func (r *mongoUtilityBillRepo) GetByID(ctx context.Context, id string) (*models.UtilityBill, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var bill models.UtilityBill
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bill); err != nil {
		return nil, fmt.Errorf("failed to fetch utility bill %s: %w", id, database.TranslateError(err))
	}
	return &bill, nil
}

func (r *mongoUtilityBillRepo) GetLatestByRoom(ctx context.Context, roomNumber string) (*models.UtilityBill, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "month", Value: -1}, {Key: "createdAt", Value: -1}})
	var bill models.UtilityBill
	if err := r.coll.FindOne(ctx, bson.M{"roomNumber": roomNumber}, opts).Decode(&bill); err != nil {
		return nil, fmt.Errorf("failed to fetch utility bill for room %s: %w", roomNumber, database.TranslateError(err))
	}
	return &bill, nil
}

func (r *mongoUtilityBillRepo) Update(ctx context.Context, bill *models.UtilityBill) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	bill.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": bill.ID}, bill)
	if err != nil {
		return fmt.Errorf("failed to update utility bill %s: %w", bill.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update utility bill %s: %w", bill.ID, database.ErrNotFound)
	}
	return nil
}
