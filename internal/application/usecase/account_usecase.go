package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/pkg/id"
)

// AccountUseCase CRUD de cuentas (Payal, Dealer, Retailer, Company).
type AccountUseCase struct {
	repo repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// Create crea una cuenta.
func (uc *AccountUseCase) Create(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if !entity.ValidAccountType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.Account{
		ID:        id.New(id.PrefixAccount),
		Name:      in.Name,
		Type:      in.Type,
		Contact:   in.Contact,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByID obtiene una cuenta; nil si no existe.
func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Update actualiza los campos enviados.
func (uc *AccountUseCase) Update(ctx context.Context, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.Type != nil {
		if !entity.ValidAccountType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		account.Type = *in.Type
	}
	if in.Contact != nil {
		account.Contact = *in.Contact
	}
	if in.Address != nil {
		account.Address = *in.Address
	}
	account.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista cuentas; accountType vacío = todas.
func (uc *AccountUseCase) List(ctx context.Context, accountType string, limit, offset int) (*dto.AccountListResponse, error) {
	if accountType != "" && !entity.ValidAccountType(accountType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, accountType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.AccountListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		Contact:   a.Contact,
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
