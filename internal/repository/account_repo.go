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
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
// Services translate it into the matching validation error, which closes
// the check-then-write race on email and SKU uniqueness.
var ErrDuplicateKey = errors.New("duplicate key")

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context, page model.PageArgs, name string) ([]model.Account, int64, error)
	EnsureIndexes(ctx context.Context) error
}

type accountRepo struct {
	col *mongo.Collection
}

func NewAccountRepo(col *mongo.Collection) AccountRepository {
	return &accountRepo{col}
}

func (r *accountRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}},
		},
	})
	return errors.Wrap(err, "create account indexes")
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	now := time.Now().UTC()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert account")
	}
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error) {
	var account model.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find account by id")
	}
	return &account, nil
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find account by email")
	}
	return &account, nil
}

// List fetches one page and the total count matching the filter. The two
// reads are independent, so they run concurrently. A name filter uses the
// text index, not substring matching.
func (r *accountRepo) List(ctx context.Context, page model.PageArgs, name string) ([]model.Account, int64, error) {
	filter := bson.M{}
	if name != "" {
		filter["$text"] = bson.M{"$search": name}
	}

	var (
		accounts []model.Account
		total    int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSkip(page.Skip()).
			SetLimit(page.Limit()).
			SetSort(bson.D{{Key: "created_at", Value: -1}})
		cur, err := r.col.Find(ctx, filter, opts)
		if err != nil {
			return errors.Wrap(err, "find accounts")
		}
		return errors.Wrap(cur.All(ctx, &accounts), "decode accounts")
	})
	g.Go(func() error {
		var err error
		total, err = r.col.CountDocuments(ctx, filter)
		return errors.Wrap(err, "count accounts")
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, total, nil
}
