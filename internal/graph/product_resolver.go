package graph

import (
	"context"
	"time"

	"go-commerce-gql/internal/apperr"
	"go-commerce-gql/internal/model"

	"github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
)

type productResolver struct {
	product *model.Product
	root    *Resolver
}

func (r *productResolver) ID() graphql.ID {
	return graphql.ID(r.product.ID.Hex())
}

func (r *productResolver) Name() string {
	return r.product.Name
}

func (r *productResolver) SKU() string {
	return r.product.SKU
}

func (r *productResolver) Stock() int32 {
	return r.product.Stock
}

func (r *productResolver) AccountID() graphql.ID {
	return graphql.ID(r.product.AccountID)
}

// Account resolves the weak account reference. A dangling reference
// yields null rather than an error.
func (r *productResolver) Account(ctx context.Context) (*accountResolver, error) {
	account, err := r.root.accounts.Get(ctx, r.product.AccountID)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, r.root.boundary("product.account", err)
	}
	return &accountResolver{account: account}, nil
}

func (r *productResolver) CreatedAt() string {
	return r.product.CreatedAt.Format(time.RFC3339)
}

func (r *productResolver) UpdatedAt() string {
	return r.product.UpdatedAt.Format(time.RFC3339)
}

type purchaseResponseResolver struct {
	result *model.PurchaseResult
	root   *Resolver
}

func (r *purchaseResponseResolver) Success() bool {
	return r.result.Success
}

func (r *purchaseResponseResolver) Message() string {
	return r.result.Message
}

func (r *purchaseResponseResolver) Product() *productResolver {
	if r.result.Product == nil {
		return nil
	}
	return &productResolver{product: r.result.Product, root: r.root}
}
