package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, national_id, password_hash, role, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, national_id, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		user.Name,
		user.NationalID,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user,
		`SELECT `+userColumns+` FROM users WHERE national_id = $1`, nationalID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &users,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, national_id = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1
	`

	user.UpdatedAt = time.Now()
	res, err := executor(ctx, r.db).ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.NationalID,
		user.PasswordHash,
		user.Role,
		user.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}

	return expectAffected(res)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(res)
}
