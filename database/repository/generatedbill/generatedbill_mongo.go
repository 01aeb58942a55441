package generatedBillRepo

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

// MongoGeneratedBillRepo implements GeneratedBillRepository using MongoDB.
type MongoGeneratedBillRepo struct {
	coll *mongo.Collection
}

func NewMongoGeneratedBillRepo() GeneratedBillRepository {
	repo := &MongoGeneratedBillRepo{coll: database.DB().Collection("generated_bills")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("generated_bills: failed to create indexes: %v", err)
	}
	return repo
}

func (r *MongoGeneratedBillRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{
				{Key: "booking.id", Value: 1},
				{Key: "month", Value: 1},
				{Key: "kind", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("booking_month_kind_uniq"),
		},
		{Keys: bson.D{{Key: "month", Value: 1}, {Key: "deliveryStatus", Value: 1}}},
		{Keys: bson.D{{Key: "booking.checkOut", Value: 1}, {Key: "deliveryStatus", Value: 1}}},
		{Keys: bson.D{{Key: "tenant.id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create generated bill indexes: %w", err)
	}
	return nil
}

func (r *MongoGeneratedBillRepo) Save(ctx context.Context, bill *models.GeneratedBill) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, bill); err != nil {
		return fmt.Errorf("failed to save generated bill for booking %s (%s): %w",
			bill.Booking.ID, bill.Month, database.TranslateError(err))
	}
	return nil
}

func (r *MongoGeneratedBillRepo) GetByID(ctx context.Context, id string) (*models.GeneratedBill, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var bill models.GeneratedBill
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bill); err != nil {
		return nil, fmt.Errorf("failed to fetch generated bill %s: %w", id, database.TranslateError(err))
	}
	return &bill, nil
}

// List returns all bills, or only those of month when it is non-empty.
func (r *MongoGeneratedBillRepo) List(ctx context.Context, month string) ([]models.GeneratedBill, error) {
	filter := bson.M{}
	if month != "" {
		filter["month"] = month
	}
	return r.find(ctx, filter)
}

func (r *MongoGeneratedBillRepo) ListByTenant(ctx context.Context, tenantID string) ([]models.GeneratedBill, error) {
	return r.find(ctx, bson.M{"tenant.id": tenantID})
}

func (r *MongoGeneratedBillRepo) FindByMonthAndDeliveryStatus(ctx context.Context, month string, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	return r.find(ctx, bson.M{"month": month, "deliveryStatus": status})
}

func (r *MongoGeneratedBillRepo) FindByCheckOutDateAndDeliveryStatus(ctx context.Context, date time.Time, status models.DeliveryStatus) ([]models.GeneratedBill, error) {
	return r.find(ctx, bson.M{"booking.checkOut": utils.DateOf(date), "deliveryStatus": status})
}

func (r *MongoGeneratedBillRepo) ExistsForPeriod(ctx context.Context, bookingID, month string, kind models.BillKind) (bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx,
		bson.M{"booking.id": bookingID, "month": month, "kind": kind},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check generated bill for booking %s (%s): %w", bookingID, month, err)
	}
	return n > 0, nil
}

func (r *MongoGeneratedBillRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"deliveryStatus": models.DeliverySent, "sentAt": sentAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark generated bill %s sent: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to mark generated bill %s sent: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoGeneratedBillRepo) find(ctx context.Context, filter bson.M) ([]models.GeneratedBill, error) {
	ctx, cancel := database.NewContext(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding generated bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []models.GeneratedBill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("error decoding generated bills: %w", err)
	}
	return bills, nil
}
