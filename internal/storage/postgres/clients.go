package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type clientRepository struct {
	storage *Storage
}

const clientColumns = `id, organization_id, user_id, name, phone, email, notes, created_at`

func scanClient(row pgx.Row) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.OrganizationID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt)
	return c, err
}

func (r *clientRepository) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	const query = `INSERT INTO clients (organization_id, name, phone, email, notes)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := client
	err := r.storage.pool.QueryRow(ctx, query, client.OrganizationID, client.Name, client.Phone, client.Email, client.Notes).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *clientRepository) Get(ctx context.Context, orgID, id int64) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE organization_id=$1 AND id=$2`
	c, err := scanClient(r.storage.pool.QueryRow(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *clientRepository) GetByUserID(ctx context.Context, userID int64) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE user_id=$1`
	c, err := scanClient(r.storage.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, orgID int64) ([]model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE organization_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Client, error) {
		return scanClient(row)
	})
}

func (r *clientRepository) Update(ctx context.Context, client model.Client) (*model.Client, error) {
	const query = `UPDATE clients SET name=$1, phone=$2, email=$3, notes=$4
                   WHERE organization_id=$5 AND id=$6 RETURNING user_id, created_at`
	updated := client
	err := r.storage.pool.QueryRow(ctx, query, client.Name, client.Phone, client.Email, client.Notes, client.OrganizationID, client.ID).
		Scan(&updated.UserID, &updated.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &updated, nil
}

func (r *clientRepository) AttachUser(ctx context.Context, orgID, clientID int64, user model.User) (*model.User, error) {
	var created *model.User
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var linked *int64
		const lockQuery = `SELECT user_id FROM clients WHERE organization_id=$1 AND id=$2 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, orgID, clientID).Scan(&linked); err != nil {
			return notFound(err)
		}
		if linked != nil {
			return domainErrors.ErrAlreadyExists
		}

		var err error
		created, err = insertUser(ctx, tx, user)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE clients SET user_id=$1 WHERE id=$2`, created.ID, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
