package repository

import (
	"context"
	"time"

	"go-commerce-gql/internal/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindByAccount(ctx context.Context, accountID string) ([]model.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int32) (*model.Product, error)
	EnsureIndexes(ctx context.Context) error
}

type productRepo struct {
	col *mongo.Collection
}

func NewProductRepo(col *mongo.Collection) ProductRepository {
	return &productRepo{col}
}

func (r *productRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "account_id", Value: 1}},
		},
	})
	return errors.Wrap(err, "create product indexes")
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert product")
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product by id")
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.col.FindOne(ctx, bson.M{"sku": sku}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product by sku")
	}
	return &product, nil
}

func (r *productRepo) FindByAccount(ctx context.Context, accountID string) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products by account")
	}
	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// DecrementStock atomically takes quantity units off the product's stock,
// but only if enough stock is on hand. The condition and the write are one
// storage operation, so concurrent purchases can never drive stock below
// zero. Returns the updated product, or nil when the condition did not
// hold (product gone or insufficient stock).
func (r *productRepo) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int32) (*model.Product, error) {
	filter := bson.M{
		"_id":   id,
		"stock": bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product model.Product
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "decrement stock")
	}
	return &product, nil
}
