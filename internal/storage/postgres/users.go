package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, email, name, password_hash, role, active, created_at`

func insertUser(ctx context.Context, q querier, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, name, password_hash, role, active)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := user
	err := q.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role, user.Active).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	return insertUser(ctx, r.storage.pool, user)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
