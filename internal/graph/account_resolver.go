package graph

import (
	"time"

	"go-commerce-gql/internal/model"

	"github.com/graph-gophers/graphql-go"
)

type accountResolver struct {
	account *model.Account
}

func (r *accountResolver) ID() graphql.ID {
	return graphql.ID(r.account.ID.Hex())
}

func (r *accountResolver) Name() string {
	return r.account.Name
}

func (r *accountResolver) Email() string {
	return r.account.Email
}

func (r *accountResolver) CreatedAt() string {
	return r.account.CreatedAt.Format(time.RFC3339)
}

func (r *accountResolver) UpdatedAt() string {
	return r.account.UpdatedAt.Format(time.RFC3339)
}

type accountConnectionResolver struct {
	list *model.AccountList
}

func (r *accountConnectionResolver) Accounts() []*accountResolver {
	resolvers := make([]*accountResolver, len(r.list.Accounts))
	for i := range r.list.Accounts {
		resolvers[i] = &accountResolver{account: &r.list.Accounts[i]}
	}
	return resolvers
}

func (r *accountConnectionResolver) TotalCount() int32 {
	return int32(r.list.TotalCount)
}
