package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/segyhp/loan-backoffice/internal/auth"
	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/repository"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
}

type UserService struct {
	UserRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		UserRepo: userRepo,
		tokens:   tokens,
	}
}

// Create registers an operator. The role defaults to operador.
func (s *UserService) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	_, err := s.UserRepo.GetByNationalID(ctx, req.NationalID)
	if err == nil {
		return nil, customError.WrapDuplicateNationalID(req.NationalID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, customError.WrapInternal("hash password", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleOperator
	}

	now := time.Now()
	user := &domain.User{
		Name:         req.Name,
		NationalID:   req.NationalID,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, customError.WrapDuplicateNationalID(req.NationalID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.UserRepo.GetByNationalID(ctx, req.NationalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapInvalidCredentials()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, customError.WrapInvalidCredentials()
	}

	principal := user.Principal()
	token, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, customError.WrapInternal("issue token", err)
	}

	return &domain.LoginResponse{AccessToken: token, User: principal}, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapUserNotFound(id) })
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	if updated.NationalID != existing.NationalID {
		_, err := s.UserRepo.GetByNationalID(ctx, updated.NationalID)
		if err == nil {
			return nil, customError.WrapDuplicateNationalID(updated.NationalID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, customError.WrapInternal("hash password", err)
		}
		updated.PasswordHash = hash
	}

	if err := s.UserRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, customError.WrapDuplicateNationalID(updated.NationalID)
		}
		return nil, storeError(err, func() *customError.BusinessError { return customError.WrapUserNotFound(id) })
	}
	return &updated, nil
}

// Delete removes the user; clients it registered keep existing unattributed.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return storeError(err, func() *customError.BusinessError { return customError.WrapUserNotFound(id) })
	}
	return nil
}
