package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type measurementRepository struct {
	storage *Storage
}

func (r *measurementRepository) Create(ctx context.Context, m model.Measurement) (*model.Measurement, error) {
	const query = `INSERT INTO measurements (organization_id, client_id, label, entries, taken_at)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	entries, err := encodeEntries(m.Values)
	if err != nil {
		return nil, err
	}
	created := m
	if err := r.storage.pool.QueryRow(ctx, query, m.OrganizationID, m.ClientID, m.Label, entries, m.TakenAt).Scan(&created.ID); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *measurementRepository) ListByClient(ctx context.Context, orgID, clientID int64) ([]model.Measurement, error) {
	const query = `SELECT id, organization_id, client_id, label, entries, taken_at
                   FROM measurements WHERE organization_id=$1 AND client_id=$2 ORDER BY taken_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orgID, clientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Measurement, error) {
		var (
			m   model.Measurement
			raw []byte
		)
		if err := row.Scan(&m.ID, &m.OrganizationID, &m.ClientID, &m.Label, &raw, &m.TakenAt); err != nil {
			return m, err
		}
		values, err := decodeEntries(raw)
		m.Values = values
		return m, err
	})
}

func encodeEntries(values map[string]float64) ([]byte, error) {
	if values == nil {
		values = map[string]float64{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode measurement entries: %w", err)
	}
	return raw, nil
}

func decodeEntries(raw []byte) (map[string]float64, error) {
	values := map[string]float64{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode measurement entries: %w", err)
	}
	return values, nil
}
