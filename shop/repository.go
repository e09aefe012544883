package shop

import (
	"context"
	"fmt"

	"github.com/asaidimu/storefront/core/persistence"
	"github.com/asaidimu/storefront/core/statement"
	"go.uber.org/zap"
)

// repository renders statements against its default table and runs them
// through the executor, one statement per call.
type repository struct {
	name    string
	builder statement.Builder
	exec    persistence.Executor
	logger  *zap.Logger
}

func newRepository(name string, registry *statement.Registry, exec persistence.Executor, logger *zap.Logger) repository {
	return repository{
		name:    name,
		builder: registry.Builder(name),
		exec:    exec,
		logger:  logger.With(zap.String("repository", name)),
	}
}

// render builds cfg and checks that params fills every placeholder.
func (r repository) render(cfg statement.Config, params []any) (string, error) {
	sql, err := r.builder.Build(cfg)
	if err != nil {
		return "", fmt.Errorf("%s: failed to build %s: %w", r.name, cfg.Operation, err)
	}
	want, err := statement.PlaceholderCount(cfg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}
	if want != len(params) {
		return "", fmt.Errorf("%s: %w: %d placeholders, %d params in %q", r.name, ErrParamCount, want, len(params), sql)
	}
	return sql, nil
}

func (r repository) query(ctx context.Context, cfg statement.Config, params ...any) ([]persistence.Row, error) {
	cfg.Operation = statement.OperationSelect
	sql, err := r.render(cfg, params)
	if err != nil {
		return nil, err
	}
	rows, err := r.exec.Query(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return rows, nil
}

// first returns the first row of the query, or ErrNotFound.
func (r repository) first(ctx context.Context, cfg statement.Config, params ...any) (persistence.Row, error) {
	rows, err := r.query(ctx, cfg, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (r repository) run(ctx context.Context, cfg statement.Config, params ...any) (persistence.Result, error) {
	sql, err := r.render(cfg, params)
	if err != nil {
		return persistence.Result{}, err
	}
	res, err := r.exec.Exec(ctx, sql, params...)
	if err != nil {
		return persistence.Result{}, fmt.Errorf("%s: %w", r.name, err)
	}
	return res, nil
}

func (r repository) insert(ctx context.Context, table string, columns []string, params ...any) (int64, error) {
	res, err := r.run(ctx, statement.Config{
		Operation: statement.OperationInsert,
		Table:     table,
		Columns:   statement.Cols(columns...),
	}, params...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertID, nil
}

func (r repository) update(ctx context.Context, cfg statement.Config, params ...any) (int64, error) {
	cfg.Operation = statement.OperationUpdate
	res, err := r.run(ctx, cfg, params...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func (r repository) delete(ctx context.Context, cfg statement.Config, params ...any) (int64, error) {
	cfg.Operation = statement.OperationDelete
	res, err := r.run(ctx, cfg, params...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
