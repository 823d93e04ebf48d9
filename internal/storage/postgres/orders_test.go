package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

var orderRowColumns = []string{"id", "organization_id", "client_id", "title", "description", "total_amount", "paid_amount", "status", "due_date", "created_at", "updated_at"}

func orderRow(rows *pgxmockv3.Rows, id int64, status model.OrderStatus, now time.Time) *pgxmockv3.Rows {
	return rows.AddRow(id, int64(1), int64(3), "Kente gown", "", decimal.RequireFromString("450.00"), decimal.RequireFromString("150.00"), status, nil, now, now)
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	now := time.Now()
	due := now.Add(72 * time.Hour)
	input := model.Order{OrganizationID: 1, ClientID: 3, Title: "Kente gown", TotalAmount: decimal.RequireFromString("450.00"), Status: model.OrderStatusPending, DueDate: &due}

	createArgs := []any{int64(1), int64(3), "Kente gown", "", pgxmockv3.AnyArg(), model.OrderStatusPending, &due}
	mock.ExpectQuery("INSERT INTO orders").WithArgs(createArgs...).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "paid_amount", "created_at", "updated_at"}).AddRow(int64(10), decimal.Zero, now, now))
	order, err := repo.Create(ctx, input)
	if err != nil || order.ID != 10 || !order.PaidAmount.IsZero() || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("INSERT INTO orders").WithArgs(createArgs...).WillReturnError(errors.New("insert"))
	if _, err := repo.Create(ctx, input); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM orders WHERE organization_id=").WithArgs(int64(1), int64(10)).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 10, model.OrderStatusReady, now))
	order, err := repo.Get(ctx, 1, 10)
	if err != nil || order.Status != model.OrderStatusReady || !order.TotalAmount.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("FROM orders WHERE organization_id=").WithArgs(int64(2), int64(10)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(ctx, 2, 10); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(10)).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 10, model.OrderStatusPending, now))
	if order, err := repo.GetByID(ctx, 10); err != nil || order.ID != 10 {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(11)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	rows := pgxmockv3.NewRows(orderRowColumns)
	orderRow(rows, 10, model.OrderStatusPending, now)
	orderRow(rows, 11, model.OrderStatusReady, now)
	mock.ExpectQuery("FROM orders WHERE organization_id=\\$1 ORDER BY").WithArgs(int64(1)).WillReturnRows(rows)
	orders, err := repo.List(ctx, 1, "")
	if err != nil || len(orders) != 2 {
		t.Fatalf("unexpected orders: %v err=%v", orders, err)
	}

	mock.ExpectQuery("AND status=").WithArgs(int64(1), model.OrderStatusReady).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 11, model.OrderStatusReady, now))
	orders, err = repo.List(ctx, 1, model.OrderStatusReady)
	if err != nil || len(orders) != 1 || orders[0].ID != 11 {
		t.Fatalf("unexpected filtered orders: %v err=%v", orders, err)
	}

	mock.ExpectQuery("AND client_id=").WithArgs(int64(1), int64(3)).
		WillReturnRows(orderRow(pgxmockv3.NewRows(orderRowColumns), 10, model.OrderStatusPending, now).RowError(0, errors.New("row err")))
	if _, err := repo.ListByClient(ctx, 1, 3); err == nil {
		t.Fatal("expected row error")
	}

	mock.ExpectQuery("AND client_id=").WithArgs(int64(1), int64(4)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByClient(ctx, 1, 4); err == nil {
		t.Fatal("expected query error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectExec("UPDATE orders SET status").WithArgs(model.OrderStatusInProgress, int64(1), int64(10)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateStatus(ctx, 1, 10, model.OrderStatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status").WithArgs(model.OrderStatusInProgress, int64(2), int64(10)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateStatus(ctx, 2, 10, model.OrderStatusInProgress); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status").WithArgs(model.OrderStatusReady, int64(1), int64(10)).WillReturnError(errors.New("exec"))
	if err := repo.UpdateStatus(ctx, 1, 10, model.OrderStatusReady); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
