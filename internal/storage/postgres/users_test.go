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

var userRowColumns = []string{"id", "email", "name", "password_hash", "role", "active", "created_at"}

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}
	ctx := context.Background()

	createdAt := time.Now()
	input := model.User{Email: "ama@example.com", Name: "Ama", PasswordHash: "hash", Role: model.RoleTailor, Active: true}

	insertArgs := []any{"ama@example.com", "Ama", "hash", model.RoleTailor, true}
	mock.ExpectQuery("INSERT INTO users").WithArgs(insertArgs...).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))
	user, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "ama@example.com" || !user.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs(insertArgs...).WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(ctx, input); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs(insertArgs...).WillReturnError(errors.New("other"))
	if _, err := repo.Create(ctx, input); err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected raw error, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("ama@example.com").WillReturnRows(
		pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ama@example.com", "Ama", "hash", model.RoleTailor, true, createdAt))
	user, err = repo.GetByEmail(ctx, "ama@example.com")
	if err != nil || user.Role != model.RoleTailor || !user.Active {
		t.Fatalf("unexpected user: %+v err=%v", user, err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ama@example.com", "Ama", "hash", model.RoleAdmin, false, createdAt))
	user, err = repo.GetByID(ctx, 1)
	if err != nil || user.Role != model.RoleAdmin || user.Active {
		t.Fatalf("unexpected user: %+v err=%v", user, err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(ctx, 2); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectExec("UPDATE users SET active").WithArgs(false, int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.SetActive(ctx, 1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET active").WithArgs(true, int64(9)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.SetActive(ctx, 9, true); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE users SET active").WithArgs(true, int64(1)).WillReturnError(errors.New("exec"))
	if err := repo.SetActive(ctx, 1, true); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
