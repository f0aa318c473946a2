package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-commerce-gql/internal/erp"
	"go-commerce-gql/internal/model"
	"go-commerce-gql/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the mongo implementations: duplicate-key errors on unique
// fields and an atomic conditional decrement.

type memAccountRepo struct {
	mu       sync.Mutex
	accounts []model.Account
	findErr  error
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{}
}

func (m *memAccountRepo) Create(_ context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateKey
		}
	}
	account.ID = primitive.NewObjectID()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.UpdatedAt = account.CreatedAt
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *memAccountRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memAccountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.accounts {
		if m.accounts[i].Email == email {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memAccountRepo) List(_ context.Context, page model.PageArgs, name string) ([]model.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []model.Account
	for _, a := range m.accounts {
		if name == "" || strings.Contains(strings.ToLower(a.Name), strings.ToLower(name)) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := page.Skip()
	if start > int64(len(matched)) {
		start = int64(len(matched))
	}
	end := start + page.Limit()
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], total, nil
}

func (m *memAccountRepo) EnsureIndexes(context.Context) error { return nil }

type memProductRepo struct {
	mu       sync.Mutex
	products []model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{}
}

func (m *memProductRepo) Create(_ context.Context, product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.SKU == product.SKU {
			return repository.ErrDuplicateKey
		}
	}
	product.ID = primitive.NewObjectID()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.UpdatedAt = product.CreatedAt
	m.products = append(m.products, *product)
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].SKU == sku {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) FindByAccount(_ context.Context, accountID string) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []model.Product{}
	for _, p := range m.products {
		if p.AccountID == accountID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// DecrementStock holds the lock across check and write, mirroring the
// single-operation guarantee of the mongo implementation.
func (m *memProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int32) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id && m.products[i].Stock >= quantity {
			m.products[i].Stock -= quantity
			m.products[i].UpdatedAt = time.Now().UTC()
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) EnsureIndexes(context.Context) error { return nil }

// fakePartnerClient records ERP calls for the account sync tests.
type fakePartnerClient struct {
	mu       sync.Mutex
	partners []erp.Partner
	created  []erp.Partner
	updated  []int64
	findErr  string
}

func (f *fakePartnerClient) FindPartnerByEmail(email string) erp.Response[[]erp.Partner] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != "" {
		return erp.Response[[]erp.Partner]{Error: f.findErr}
	}
	var matched []erp.Partner
	for _, p := range f.partners {
		if p.Email == email {
			matched = append(matched, p)
		}
	}
	return erp.Response[[]erp.Partner]{Success: true, Data: matched}
}

func (f *fakePartnerClient) CreatePartner(partner erp.Partner) erp.Response[int64] {
	f.mu.Lock()
	defer f.mu.Unlock()
	partner.ID = int64(len(f.created) + 1)
	f.created = append(f.created, partner)
	return erp.Response[int64]{Success: true, Data: partner.ID}
}

func (f *fakePartnerClient) UpdatePartner(id int64, _ map[string]interface{}) erp.Response[bool] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return erp.Response[bool]{Success: true, Data: true}
}

func (f *fakePartnerClient) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakePartnerClient) updatedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updated)
}
