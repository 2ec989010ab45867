package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"go-orderdesk/internal/orderdesk/data"
	"go-orderdesk/pkg/logging"
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/select_orders.sql
var selectOrdersQuery string

func (db *DBRepository) GetAllOrders(ctx context.Context) ([]data.Order, error) {
	rows, err := db.storage.Query(ctx, selectOrdersQuery)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		order := data.Order{}
		err := rows.Scan(
			&order.ID,
			&order.ItemNames,
			&order.TotalPrice,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, order)
	}
	if err = rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	db.logger.DebugCtx(ctx, "orders selected", zap.Int("count", len(result)))
	return result, nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, orderID string) (data.Order, error) {
	order := data.Order{}
	err := db.storage.QueryValue(
		ctx,
		selectOrderQuery,
		[]any{orderID},
		[]any{&order.ID, &order.ItemNames, &order.TotalPrice, &order.Status, &order.CreatedAt},
	)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}
	return order, nil
}

//go:embed sql/delete_order.sql
var deleteOrderQuery string

func (db *DBRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tag, err := db.storage.Exec(ctx, deleteOrderQuery, orderID)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrOrderNotFound
	}
	return nil
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

//go:embed sql/insert_order_item.sql
var insertOrderItemQuery string

// InsertOrder stores the order with its items. Callers wanting atomicity run
// it inside a transaction.
func (db *DBRepository) InsertOrder(ctx context.Context, order *data.Order) error {
	_, err := db.storage.Exec(
		ctx,
		insertOrderQuery,
		order.ID,
		order.TotalPrice,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return handleSQLError(err)
	}
	for position, name := range order.ItemNames {
		if _, err := db.storage.Exec(ctx, insertOrderItemQuery, order.ID, position, name); err != nil {
			return handleSQLError(err)
		}
	}
	return nil
}

func handleSQLError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return data.ErrOrderNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return data.ErrUniqueConstraintViolation
		}
	}
	return fmt.Errorf("sql query failed: %w", err)
}
