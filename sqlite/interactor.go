// Package sqlite executes rendered statements against a SQLite database and
// generates the DDL for schema table definitions.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/storefront/core/persistence"
	"go.uber.org/zap"
)

// dbRunner abstracts the methods of *sql.DB used by the interactor so that a
// *sql.Conn or *sql.Tx can stand in for it.
type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Interactor runs SQL text with positional parameters. It implements
// persistence.Executor and persistence.TableManager.
type Interactor struct {
	db      dbRunner
	logger  *zap.Logger
	options *Options
}

var (
	_ persistence.Executor     = (*Interactor)(nil)
	_ persistence.TableManager = (*Interactor)(nil)
)

// NewInteractor creates an Interactor over db.
func NewInteractor(db *sql.DB, logger *zap.Logger, options *Options) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &Interactor{
		db:      db,
		logger:  logger,
		options: options,
	}
}

// runner returns the connection statements run on.
func (i *Interactor) runner() dbRunner {
	return i.db
}

// readRows reads all rows into persistence.Rows. TEXT values that the driver
// hands back as []byte are converted to string.
func readRows(rows *sql.Rows) ([]persistence.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := []persistence.Row{}
	for rows.Next() {
		row := make(persistence.Row, len(columns))
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return results, nil
}

// Query executes a row-returning statement.
func (i *Interactor) Query(ctx context.Context, sqlQuery string, params ...any) ([]persistence.Row, error) {
	i.logger.Debug("Executing SQL query", zap.String("sql", sqlQuery), zap.Any("params", params))

	rows, err := i.runner().QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		i.logger.Error("Failed to execute query", zap.Error(err), zap.String("sql", sqlQuery))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return readRows(rows)
}

// Exec executes a statement that returns no rows.
func (i *Interactor) Exec(ctx context.Context, sqlQuery string, params ...any) (persistence.Result, error) {
	i.logger.Debug("Executing SQL statement", zap.String("sql", sqlQuery), zap.Any("params", params))

	result, err := i.runner().ExecContext(ctx, sqlQuery, params...)
	if err != nil {
		i.logger.Error("Failed to execute statement", zap.Error(err), zap.String("sql", sqlQuery))
		return persistence.Result{}, fmt.Errorf("failed to execute statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Result{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return persistence.Result{}, fmt.Errorf("failed to read last insert id: %w", err)
	}
	return persistence.Result{RowsAffected: affected, LastInsertID: lastID}, nil
}
