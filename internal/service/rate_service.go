package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

type RateService struct {
	RateRepo repository.RateRepository
	now      func() time.Time
}

func NewRateService(rateRepo repository.RateRepository) *RateService {
	return &RateService{
		RateRepo: rateRepo,
		now:      time.Now,
	}
}

func (s *RateService) Create(ctx context.Context, req domain.CreateRateRequest) (*domain.Rate, error) {
	rate := &domain.Rate{
		Value: req.Value,
		Date:  s.now(),
	}

	if err := s.RateRepo.Create(ctx, rate); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rate, nil
}

// Latest returns the most recent rate, or nil when none has been recorded.
func (s *RateService) Latest(ctx context.Context) (*domain.Rate, error) {
	rate, err := s.RateRepo.GetLatest(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rate, nil
}

func (s *RateService) List(ctx context.Context) ([]*domain.Rate, error) {
	rates, err := s.RateRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rates, nil
}

// Update corrects a recorded value. Loans keep the value they captured.
func (s *RateService) Update(ctx context.Context, id int64, patch domain.RatePatch) (*domain.Rate, error) {
	notFound := func() *customError.BusinessError { return customError.WrapRateNotFound(id) }

	existing, err := s.RateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, notFound)
	}

	updated := patch.Apply(*existing)
	if err := s.RateRepo.Update(ctx, &updated); err != nil {
		return nil, storeError(err, notFound)
	}
	return &updated, nil
}
