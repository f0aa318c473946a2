package service

import (
	"context"
	"fmt"
	"strings"

	"go-commerce-gql/internal/apperr"
	"go-commerce-gql/internal/model"
	"go-commerce-gql/internal/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, input model.CreateProductInput) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	ByAccount(ctx context.Context, accountID string) ([]model.Product, error)
	Purchase(ctx context.Context, input model.PurchaseProductInput) (*model.PurchaseResult, error)
}

type productService struct {
	products repository.ProductRepository
	accounts repository.AccountRepository
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, accounts repository.AccountRepository, log *zap.Logger) ProductService {
	return &productService{
		products: products,
		accounts: accounts,
		log:      log,
	}
}

func (s *productService) Create(ctx context.Context, input model.CreateProductInput) (*model.Product, error) {
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	s.log.Info("creating product", zap.String("sku", input.SKU), zap.String("name", input.Name))

	// Validation order is fixed: referenced account first, then SKU.
	if err := s.accountExists(ctx, input.AccountID); err != nil {
		return nil, err
	}

	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	existing, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		s.log.Error("product lookup failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.log.Warn("duplicate sku", zap.String("sku", sku))
		return nil, duplicateSKUErr(sku)
	}

	product := &model.Product{
		Name:      strings.TrimSpace(input.Name),
		SKU:       sku,
		Stock:     input.Stock,
		AccountID: input.AccountID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			s.log.Warn("duplicate sku", zap.String("sku", sku))
			return nil, duplicateSKUErr(sku)
		}
		s.log.Error("product create failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("product created", zap.String("id", product.ID.Hex()), zap.String("sku", product.SKU))
	return product, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewNotFound("product", id)
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		s.log.Error("product lookup failed", zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, apperr.NewNotFound("product", id)
	}
	return product, nil
}

func (s *productService) ByAccount(ctx context.Context, accountID string) ([]model.Product, error) {
	if err := s.accountExists(ctx, accountID); err != nil {
		return nil, err
	}

	products, err := s.products.FindByAccount(ctx, accountID)
	if err != nil {
		s.log.Error("product list failed", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Purchase decrements stock for a product. Missing account or product are
// raised as validation errors; quantity and stock failures come back as a
// typed result so the common insufficient-stock case needs no error
// handling on the caller's side.
func (s *productService) Purchase(ctx context.Context, input model.PurchaseProductInput) (*model.PurchaseResult, error) {
	s.log.Info("processing purchase",
		zap.String("productId", input.ProductID),
		zap.Int32("quantity", input.Quantity))

	if err := s.accountExists(ctx, input.AccountID); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		s.log.Warn("product not found", zap.String("productId", input.ProductID))
		return nil, apperr.NewValidation("the specified product does not exist", "productId")
	}
	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		s.log.Error("product lookup failed", zap.Error(err))
		return nil, err
	}
	if product == nil {
		s.log.Warn("product not found", zap.String("productId", input.ProductID))
		return nil, apperr.NewValidation("the specified product does not exist", "productId")
	}

	if input.Quantity <= 0 {
		s.log.Warn("invalid quantity", zap.Int32("quantity", input.Quantity))
		return &model.PurchaseResult{
			Success: false,
			Message: "quantity must be greater than 0",
		}, nil
	}

	if product.Stock < input.Quantity {
		s.log.Warn("insufficient stock",
			zap.Int32("available", product.Stock),
			zap.Int32("requested", input.Quantity))
		return insufficientStock(product.Stock), nil
	}

	// Atomic conditional decrement. The stock check above only shapes the
	// message; the storage-level condition is what makes concurrent
	// purchases safe.
	updated, err := s.products.DecrementStock(ctx, oid, input.Quantity)
	if err != nil {
		s.log.Error("stock decrement failed", zap.Error(err))
		return nil, err
	}
	if updated == nil {
		// A concurrent purchase won the race. Re-read for the current
		// availability so the message stays accurate.
		current, err := s.products.FindByID(ctx, oid)
		if err != nil {
			s.log.Error("product lookup failed", zap.Error(err))
			return nil, err
		}
		available := int32(0)
		if current != nil {
			available = current.Stock
		}
		s.log.Warn("insufficient stock",
			zap.Int32("available", available),
			zap.Int32("requested", input.Quantity))
		return insufficientStock(available), nil
	}

	s.log.Info("purchase completed",
		zap.String("productId", updated.ID.Hex()),
		zap.Int32("quantity", input.Quantity),
		zap.Int32("newStock", updated.Stock))

	return &model.PurchaseResult{
		Success: true,
		Message: "purchase completed successfully",
		Product: updated,
	}, nil
}

func (s *productService) accountExists(ctx context.Context, accountID string) error {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		s.log.Warn("account not found", zap.String("accountId", accountID))
		return accountMissingErr()
	}
	account, err := s.accounts.FindByID(ctx, oid)
	if err != nil {
		s.log.Error("account lookup failed", zap.Error(err))
		return err
	}
	if account == nil {
		s.log.Warn("account not found", zap.String("accountId", accountID))
		return accountMissingErr()
	}
	return nil
}

func insufficientStock(available int32) *model.PurchaseResult {
	return &model.PurchaseResult{
		Success: false,
		Message: fmt.Sprintf("insufficient stock, available: %d", available),
	}
}

func accountMissingErr() error {
	return apperr.NewValidation("the specified account does not exist", "accountId")
}

func duplicateSKUErr(sku string) error {
	return apperr.NewValidation(fmt.Sprintf("the SKU %s is already in use", sku), "sku")
}
