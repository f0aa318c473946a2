package service

import (
	"context"
	"strings"

	"go-commerce-gql/internal/apperr"
	"go-commerce-gql/internal/config"
	"go-commerce-gql/internal/erp"
	"go-commerce-gql/internal/model"
	"go-commerce-gql/internal/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AccountService interface {
	Create(ctx context.Context, input model.CreateAccountInput) (*model.Account, error)
	Get(ctx context.Context, id string) (*model.Account, error)
	List(ctx context.Context, page, perPage *int32, name *string) (*model.AccountList, error)
}

type accountService struct {
	repo     repository.AccountRepository
	erp      erp.PartnerClient // nil when the integration is disabled
	defaults config.Pagination
	log      *zap.Logger
}

func NewAccountService(repo repository.AccountRepository, erpc erp.PartnerClient, defaults config.Pagination, log *zap.Logger) AccountService {
	return &accountService{
		repo:     repo,
		erp:      erpc,
		defaults: defaults,
		log:      log,
	}
}

func (s *accountService) Create(ctx context.Context, input model.CreateAccountInput) (*model.Account, error) {
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	s.log.Info("creating account", zap.String("name", input.Name), zap.String("email", email))

	// Friendly pre-check. The unique index on email is the actual
	// guarantee: a concurrent create slipping past this lookup fails on
	// insert and is reported identically.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("account lookup failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.log.Warn("duplicate email", zap.String("email", email))
		return nil, duplicateEmailErr()
	}

	account := &model.Account{
		Name:  strings.TrimSpace(input.Name),
		Email: email,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			s.log.Warn("duplicate email", zap.String("email", email))
			return nil, duplicateEmailErr()
		}
		s.log.Error("account create failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("account created", zap.String("id", account.ID.Hex()), zap.String("email", account.Email))

	if s.erp != nil {
		go s.syncPartner(account.Name, account.Email)
	}

	return account, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*model.Account, error) {
	s.log.Info("looking up account", zap.String("id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.log.Warn("account not found", zap.String("id", id))
		return nil, apperr.NewNotFound("account", id)
	}

	account, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		s.log.Error("account lookup failed", zap.Error(err))
		return nil, err
	}
	if account == nil {
		s.log.Warn("account not found", zap.String("id", id))
		return nil, apperr.NewNotFound("account", id)
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context, page, perPage *int32, name *string) (*model.AccountList, error) {
	args := model.PageArgs{Page: s.defaults.Page, PerPage: s.defaults.PerPage}
	if page != nil {
		args.Page = *page
	}
	if perPage != nil {
		args.PerPage = *perPage
	}
	if !args.Valid() {
		return nil, apperr.NewValidation("page and perPage must be 1 or greater", "page", "perPage")
	}

	filter := ""
	if name != nil {
		filter = strings.TrimSpace(*name)
	}

	s.log.Info("listing accounts",
		zap.Int32("page", args.Page),
		zap.Int32("perPage", args.PerPage),
		zap.String("nameFilter", filter))

	accounts, total, err := s.repo.List(ctx, args, filter)
	if err != nil {
		s.log.Error("account list failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("accounts retrieved",
		zap.Int64("totalCount", total),
		zap.Int("returned", len(accounts)))

	return &model.AccountList{Accounts: accounts, TotalCount: total}, nil
}

// syncPartner mirrors a new account into the ERP partner directory:
// look the partner up by email, create it when absent, refresh the name
// when present. Best effort; failures are logged and never surfaced.
func (s *accountService) syncPartner(name, email string) {
	found := s.erp.FindPartnerByEmail(email)
	if !found.Success {
		s.log.Warn("erp partner lookup failed", zap.String("email", email), zap.String("error", found.Error))
		return
	}

	if len(found.Data) == 0 {
		created := s.erp.CreatePartner(erp.Partner{Name: name, Email: email})
		if !created.Success {
			s.log.Warn("erp partner create failed", zap.String("email", email), zap.String("error", created.Error))
			return
		}
		s.log.Info("erp partner created", zap.String("email", email), zap.Int64("partnerId", created.Data))
		return
	}

	updated := s.erp.UpdatePartner(found.Data[0].ID, map[string]interface{}{"name": name})
	if !updated.Success {
		s.log.Warn("erp partner update failed", zap.String("email", email), zap.String("error", updated.Error))
		return
	}
	s.log.Info("erp partner updated", zap.String("email", email), zap.Int64("partnerId", found.Data[0].ID))
}

func duplicateEmailErr() error {
	return apperr.NewValidation("an account with this email already exists", "email")
}
