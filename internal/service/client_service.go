package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

type ClientService struct {
	ClientRepo repository.ClientRepository
	cache      cache.Cache
}

func NewClientService(clientRepo repository.ClientRepository, c cache.Cache) *ClientService {
	return &ClientService{
		ClientRepo: clientRepo,
		cache:      c,
	}
}

// Create registers a client. createdBy is the operator recording it, if known.
func (s *ClientService) Create(ctx context.Context, req domain.CreateClientRequest, createdBy *int64) (*domain.Client, error) {
	if err := s.ensureNationalIDFree(ctx, req.NationalID); err != nil {
		return nil, err
	}

	now := time.Now()
	client := &domain.Client{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		UserID:     createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, s.writeError(err, req.NationalID)
	}

	invalidateReports(ctx, s.cache)
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapClientNotFound(id) })
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	if updated.NationalID != existing.NationalID {
		if err := s.ensureNationalIDFree(ctx, updated.NationalID); err != nil {
			return nil, err
		}
	}

	if err := s.ClientRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(id)
		}
		return nil, s.writeError(err, updated.NationalID)
	}

	return &updated, nil
}

// Delete removes the client together with its loans and their payments.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.ClientRepo.Delete(ctx, id); err != nil {
		return storeError(err, func() *customError.BusinessError { return customError.WrapClientNotFound(id) })
	}

	invalidateReports(ctx, s.cache)
	return nil
}

func (s *ClientService) ensureNationalIDFree(ctx context.Context, nationalID string) error {
	_, err := s.ClientRepo.GetByNationalID(ctx, nationalID)
	switch {
	case err == nil:
		return customError.WrapDuplicateNationalID(nationalID)
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return customError.WrapDatabaseError(err)
	}
}

// writeError covers the race where another request took the national id
// between the lookup and the write.
func (s *ClientService) writeError(err error, nationalID string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return customError.WrapDuplicateNationalID(nationalID)
	}
	return customError.WrapDatabaseError(err)
}
