package products

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &fakeRows{rows: [][]any{
				{int64(2), "Monitor", "300.00", true},
				{int64(1), "Mouse", "19.99", false},
			}}, nil
		}

		products, err := repository.List(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 2)
		require.Equal(t, int64(2), products[0].ID)
		require.True(t, products[0].Price.Equal(decimal.NewFromInt(300)))
		require.False(t, products[1].Availability)
		require.Contains(t, normalizeSQL(database.lastQuery), "ORDER BY id DESC")
		require.NotContains(t, database.lastQuery, "created_at")
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &fakeRows{}, nil
		}

		products, err := repository.List(context.Background())

		require.NoError(t, err)
		require.NotNil(t, products)
		require.Empty(t, products)
	})

	t.Run("query error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		queryErr := errors.New("query failed")
		database.queryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, queryErr
		}

		products, err := repository.List(context.Background())

		require.ErrorIs(t, err, queryErr)
		require.Nil(t, products)
	})

	t.Run("scan error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		rows := &fakeRows{rows: [][]any{{int64(1), "Mouse", "1.00", true}}, scanErr: errors.New("scan")}
		database.queryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return rows, nil
		}

		products, err := repository.List(context.Background())

		require.Error(t, err)
		require.Nil(t, products)
		require.True(t, rows.closed)
	})

	t.Run("rows error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("rows error")}, nil
		}

		products, err := repository.List(context.Background())

		require.Error(t, err)
		require.Nil(t, products)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(10), "Monitor", "300.50", true}}
		}

		product, err := repository.GetByID(context.Background(), 10)

		require.NoError(t, err)
		require.Equal(t, int64(10), product.ID)
		require.Equal(t, "Monitor", product.Name)
		require.Equal(t, "300.5", product.Price.String())
		require.True(t, product.Availability)
		require.Equal(t, []any{int64(10)}, database.lastArgs)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		}

		_, err := repository.GetByID(context.Background(), 2000)

		require.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("other errors are not a not found", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		dbErr := errors.New("query failed")
		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: dbErr}
		}

		product, err := repository.GetByID(context.Background(), 11)

		require.ErrorIs(t, err, dbErr)
		require.NotErrorIs(t, err, ErrorNotFound)
		require.Equal(t, Product{}, product)
	})

	t.Run("unparseable price", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(1), "Monitor", "abc", true}}
		}

		_, err := repository.GetByID(context.Background(), 1)

		require.Error(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	t.Run("defaults availability to true", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(1), "Mouse - Testing", "50.00", true}}
		}

		product, err := repository.Create(context.Background(), CreateProductInput{
			Name:  "Mouse - Testing",
			Price: decimal.NewFromInt(50),
		})

		require.NoError(t, err)
		require.Equal(t, int64(1), product.ID)
		require.Contains(t, database.lastQuery, "INSERT INTO products")
		require.Equal(t, []any{"Mouse - Testing", "50", true}, database.lastArgs)
	})

	t.Run("explicit availability", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(2), "Teclado", "25.50", false}}
		}

		availability := false
		_, err := repository.Create(context.Background(), CreateProductInput{
			Name:         "Teclado",
			Price:        decimal.RequireFromString("25.50"),
			Availability: &availability,
		})

		require.NoError(t, err)
		require.Equal(t, false, database.lastArgs[2])
	})

	t.Run("check violation is a store error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		pgErr := &pgconn.PgError{Code: "23514"}
		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: pgErr}
		}

		_, err := repository.Create(context.Background(), CreateProductInput{Name: "x", Price: decimal.NewFromInt(1)})

		var target *pgconn.PgError
		require.ErrorAs(t, err, &target)
		require.NotErrorIs(t, err, ErrorNotFound)
	})
}

func TestRepository_Replace(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(20), "Nuevo", "12.00", false}}
		}

		product, err := repository.Replace(context.Background(), 20, ReplaceProductInput{
			Name:         "Nuevo",
			Price:        decimal.NewFromInt(12),
			Availability: false,
		})

		require.NoError(t, err)
		require.Equal(t, Product{ID: 20, Name: "Nuevo", Price: decimal.RequireFromString("12.00"), Availability: false}, product)
		require.Contains(t, database.lastQuery, "UPDATE products")
		require.Equal(t, []any{"Nuevo", "12", false, int64(20)}, database.lastArgs)
	})

	t.Run("row vanished maps to not found", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		}

		_, err := repository.Replace(context.Background(), 21, ReplaceProductInput{Name: "x", Price: decimal.NewFromInt(1)})

		require.ErrorIs(t, err, ErrorNotFound)
	})
}

func TestRepository_ToggleAvailability(t *testing.T) {
	t.Run("negates in sql", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(30), "Monitor", "1.00", false}}
		}

		product, err := repository.ToggleAvailability(context.Background(), 30)

		require.NoError(t, err)
		require.False(t, product.Availability)
		require.Contains(t, normalizeSQL(database.lastQuery), "availability = NOT availability")
		require.Equal(t, []any{int64(30)}, database.lastArgs)
	})

	t.Run("other error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		dbErr := errors.New("db failed")
		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: dbErr}
		}

		_, err := repository.ToggleAvailability(context.Background(), 31)

		require.ErrorIs(t, err, dbErr)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{values: []any{int64(40)}}
		}

		err := repository.Delete(context.Background(), 40)

		require.NoError(t, err)
		require.Contains(t, database.lastQuery, "DELETE FROM products")
		require.Equal(t, []any{int64(40)}, database.lastArgs)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		}

		err := repository.Delete(context.Background(), 41)

		require.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("other error is returned", func(t *testing.T) {
		database := &fakeDB{}
		repository := NewRepository(database)

		dbErr := errors.New("db failed")
		database.queryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &fakeRow{err: dbErr}
		}

		err := repository.Delete(context.Background(), 42)

		require.ErrorIs(t, err, dbErr)
	})
}

type fakeDB struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	lastQuery string
	lastArgs  []any
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryRowFn == nil {
		return &fakeRow{err: errors.New("unexpected QueryRow call")}
	}
	return db.queryRowFn(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.queryFn(ctx, sql, args...)
}

type fakeRow struct {
	values []any
	err    error
}

func (row *fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	return assignValues(dest, row.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	closed  bool
	err     error
	scanErr error
}

func (rows *fakeRows) Close() {
	rows.closed = true
}

func (rows *fakeRows) Err() error {
	return rows.err
}

func (rows *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (rows *fakeRows) Next() bool {
	if rows.closed || rows.idx >= len(rows.rows) {
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.scanErr != nil {
		return rows.scanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func (rows *fakeRows) Values() ([]any, error) {
	return nil, errors.New("not implemented")
}

func (rows *fakeRows) RawValues() [][]byte {
	return nil
}

func (rows *fakeRows) Conn() *pgx.Conn {
	return nil
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		destValue := reflect.ValueOf(d)
		if destValue.Kind() != reflect.Ptr {
			return fmt.Errorf("dest %d is not a pointer", i)
		}
		if values[i] == nil {
			destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
			continue
		}
		destValue.Elem().Set(reflect.ValueOf(values[i]).Convert(destValue.Elem().Type()))
	}
	return nil
}

func normalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
