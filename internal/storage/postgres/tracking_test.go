package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

var trackingRowColumns = []string{"id", "token", "client_id", "organization_id", "active", "last_used_at", "expires_at", "created_at"}

func TestTrackingRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &trackingRepository{storage: storage}
	ctx := context.Background()

	now := time.Now()
	expires := now.Add(24 * time.Hour)
	token := model.TrackingToken{Token: "tok-1", ClientID: 3, OrganizationID: 1, ExpiresAt: &expires}

	mock.ExpectQuery("INSERT INTO tracking_tokens").WithArgs("tok-1", int64(3), int64(1), &expires).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "active", "created_at"}).AddRow(int64(6), true, now))
	created, err := repo.Create(ctx, token)
	if err != nil || created.ID != 6 || !created.Active {
		t.Fatalf("unexpected token: %+v err=%v", created, err)
	}

	mock.ExpectQuery("INSERT INTO tracking_tokens").WithArgs("tok-1", int64(3), int64(1), &expires).WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(ctx, token); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM tracking_tokens WHERE token=").WithArgs("tok-1").WillReturnRows(
		pgxmockv3.NewRows(trackingRowColumns).AddRow(int64(6), "tok-1", int64(3), int64(1), true, nil, &expires, now))
	got, err := repo.GetByToken(ctx, "tok-1")
	if err != nil || got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) || got.LastUsedAt != nil {
		t.Fatalf("unexpected token: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM tracking_tokens WHERE token=").WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByToken(ctx, "nope"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM tracking_tokens WHERE organization_id=").WithArgs(int64(1), int64(3)).WillReturnRows(
		pgxmockv3.NewRows(trackingRowColumns).
			AddRow(int64(6), "tok-1", int64(3), int64(1), true, nil, nil, now).
			AddRow(int64(7), "tok-2", int64(3), int64(1), false, &now, nil, now))
	tokens, err := repo.ListByClient(ctx, 1, 3)
	if err != nil || len(tokens) != 2 || tokens[1].Active {
		t.Fatalf("unexpected tokens: %v err=%v", tokens, err)
	}

	mock.ExpectExec("UPDATE tracking_tokens SET active=FALSE").WithArgs(int64(1), int64(6)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.Deactivate(ctx, 1, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE tracking_tokens SET active=FALSE").WithArgs(int64(2), int64(6)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.Deactivate(ctx, 2, 6); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE tracking_tokens SET last_used_at").WithArgs(now, int64(6)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.Touch(ctx, 6, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE tracking_tokens SET last_used_at").WithArgs(now, int64(6)).WillReturnError(errors.New("touch"))
	if err := repo.Touch(ctx, 6, now); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
