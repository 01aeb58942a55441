package orderRepo

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

// OrderRepository stores payment orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.PaymentOrder) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.PaymentOrder, error)
	ListByBill(ctx context.Context, generatedBillID string) ([]models.PaymentOrder, error)
	Update(ctx context.Context, order *models.PaymentOrder) error
}

type MongoOrderRepo struct {
	coll *mongo.Collection
}

func NewMongoOrderRepo() OrderRepository {
	repo := &MongoOrderRepo{coll: database.DB().Collection("payment_orders")}
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "gatewayOrderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "generatedBillId", Value: 1}}},
	})
	if err != nil {
		utils.GetLogger().Sugar().Warnf("payment_orders: failed to create indexes: %v", err)
	}
	return repo
}

func (r *MongoOrderRepo) Create(ctx context.Context, order *models.PaymentOrder) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create payment order: %w", database.TranslateError(err))
	}
	return nil
}

func (r *MongoOrderRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.PaymentOrder, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var order models.PaymentOrder
	if err := r.coll.FindOne(ctx, bson.M{"gatewayOrderId": gatewayOrderID}).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to fetch payment order %s: %w", gatewayOrderID, database.TranslateError(err))
	}
	return &order, nil
}

func (r *MongoOrderRepo) ListByBill(ctx context.Context, generatedBillID string) ([]models.PaymentOrder, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"generatedBillId": generatedBillID})
	if err != nil {
		return nil, fmt.Errorf("error finding payment orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.PaymentOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("error decoding payment orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrderRepo) Update(ctx context.Context, order *models.PaymentOrder) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	order.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update payment order %s: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update payment order %s: %w", order.ID, database.ErrNotFound)
	}
	return nil
}
