package graph

import (
	"context"

	"go-commerce-gql/internal/model"
	"go-commerce-gql/internal/service"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

// Resolver is the root of the schema; every Query and Mutation field is
// a method on it. Services are injected at construction, no ambient
// state.
type Resolver struct {
	accounts service.AccountService
	products service.ProductService
	log      *zap.Logger
}

func NewResolver(accounts service.AccountService, products service.ProductService, log *zap.Logger) *Resolver {
	return &Resolver{
		accounts: accounts,
		products: products,
		log:      log,
	}
}

type accountArgs struct {
	ID graphql.ID
}

type accountsArgs struct {
	Page    *int32
	PerPage *int32
	Name    *string
}

type createAccountArgs struct {
	Input model.CreateAccountInput
}

func (r *Resolver) Account(ctx context.Context, args accountArgs) (*accountResolver, error) {
	account, err := r.accounts.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.boundary("account", err)
	}
	return &accountResolver{account: account}, nil
}

func (r *Resolver) Accounts(ctx context.Context, args accountsArgs) (*accountConnectionResolver, error) {
	list, err := r.accounts.List(ctx, args.Page, args.PerPage, args.Name)
	if err != nil {
		return nil, r.boundary("accounts", err)
	}
	return &accountConnectionResolver{list: list}, nil
}

func (r *Resolver) CreateAccount(ctx context.Context, args createAccountArgs) (*accountResolver, error) {
	account, err := r.accounts.Create(ctx, args.Input)
	if err != nil {
		return nil, r.boundary("createAccount", err)
	}
	return &accountResolver{account: account}, nil
}

type productArgs struct {
	ID graphql.ID
}

type productsByAccountArgs struct {
	AccountID graphql.ID
}

type createProductArgs struct {
	Input model.CreateProductInput
}

type purchaseProductArgs struct {
	Input model.PurchaseProductInput
}

func (r *Resolver) Product(ctx context.Context, args productArgs) (*productResolver, error) {
	product, err := r.products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.boundary("product", err)
	}
	return &productResolver{product: product, root: r}, nil
}

func (r *Resolver) ProductsByAccount(ctx context.Context, args productsByAccountArgs) ([]*productResolver, error) {
	products, err := r.products.ByAccount(ctx, string(args.AccountID))
	if err != nil {
		return nil, r.boundary("productsByAccount", err)
	}
	resolvers := make([]*productResolver, len(products))
	for i := range products {
		resolvers[i] = &productResolver{product: &products[i], root: r}
	}
	return resolvers, nil
}

func (r *Resolver) CreateProduct(ctx context.Context, args createProductArgs) (*productResolver, error) {
	product, err := r.products.Create(ctx, args.Input)
	if err != nil {
		return nil, r.boundary("createProduct", err)
	}
	return &productResolver{product: product, root: r}, nil
}

func (r *Resolver) PurchaseProduct(ctx context.Context, args purchaseProductArgs) (*purchaseResponseResolver, error) {
	result, err := r.products.Purchase(ctx, args.Input)
	if err != nil {
		return nil, r.boundary("purchaseProduct", err)
	}
	return &purchaseResponseResolver{result: result, root: r}, nil
}
