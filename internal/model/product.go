package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2"`
	SKU       string             `bson:"sku" json:"sku" validate:"required"`
	Stock     int32              `bson:"stock" json:"stock" validate:"gte=0"`
	AccountID string             `bson:"account_id" json:"account_id" validate:"required"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateProductInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	SKU       string `json:"sku" validate:"required"`
	Stock     int32  `json:"stock" validate:"gte=0"`
	AccountID string `json:"accountId" validate:"required"`
}

type PurchaseProductInput struct {
	AccountID string `json:"accountId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int32  `json:"quantity"`
}

// PurchaseResult is the typed outcome of a purchase. Quantity and stock
// failures come back here instead of as raised errors so callers do not
// need to catch anything for the common insufficient-stock case.
type PurchaseResult struct {
	Success bool
	Message string
	Product *Product
}
