package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/asaidimu/storefront/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	rows    []Row
	err     error
	created []string
}

func (f *fakeExecutor) Query(ctx context.Context, sql string, params ...any) ([]Row, error) {
	return f.rows, f.err
}

func (f *fakeExecutor) Exec(ctx context.Context, sql string, params ...any) (Result, error) {
	if f.err != nil {
		return Result{}, f.err
	}
	return Result{RowsAffected: 2, LastInsertID: 7}, nil
}

func (f *fakeExecutor) CreateTable(ctx context.Context, table schema.TableDefinition) error {
	f.created = append(f.created, table.Name)
	return f.err
}

func (f *fakeExecutor) DropTable(ctx context.Context, name string) error {
	return f.err
}

type recorder struct {
	mu     sync.Mutex
	events []StatementEvent
}

func (r *recorder) record(ctx context.Context, e StatementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) snapshot() []StatementEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StatementEvent(nil), r.events...)
}

func TestObservedExecutor_QueryEvents(t *testing.T) {
	inner := &fakeExecutor{rows: []Row{{"id": int64(1)}, {"id": int64(2)}}}
	exec, err := NewObservedExecutor(inner, nil)
	require.NoError(t, err)

	rec := &recorder{}
	id := exec.RegisterSubscription(RegisterSubscriptionOptions{Event: QuerySuccess, Callback: rec.record})
	assert.NotEmpty(t, id)

	rows, err := exec.Query(context.Background(), "SELECT * FROM t WHERE id=?", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.Len(t, rec.snapshot(), 1)
	event := rec.snapshot()[0]
	assert.Equal(t, QuerySuccess, event.Type)
	assert.Equal(t, "SELECT * FROM t WHERE id=?", event.SQL)
	assert.Equal(t, []any{1}, event.Params)
	assert.Equal(t, 2, event.Output)
	assert.NotNil(t, event.Duration)
	assert.Nil(t, event.Error)
}

func TestObservedExecutor_FailedEvents(t *testing.T) {
	inner := &fakeExecutor{err: errors.New("boom")}
	exec, err := NewObservedExecutor(inner, nil)
	require.NoError(t, err)

	rec := &recorder{}
	exec.RegisterSubscription(RegisterSubscriptionOptions{Event: ExecFailed, Callback: rec.record})

	_, err = exec.Exec(context.Background(), "DELETE FROM t")
	assert.EqualError(t, err, "boom")

	require.Len(t, rec.snapshot(), 1)
	event := rec.snapshot()[0]
	require.NotNil(t, event.Error)
	assert.Equal(t, "boom", *event.Error)
}

func TestObservedExecutor_ExecResult(t *testing.T) {
	exec, err := NewObservedExecutor(&fakeExecutor{}, nil)
	require.NoError(t, err)

	res, err := exec.Exec(context.Background(), "UPDATE t SET a=?", 1)
	require.NoError(t, err)
	assert.Equal(t, Result{RowsAffected: 2, LastInsertID: 7}, res)
}

func TestObservedExecutor_TableEvents(t *testing.T) {
	inner := &fakeExecutor{}
	exec, err := NewObservedExecutor(inner, nil)
	require.NoError(t, err)

	rec := &recorder{}
	exec.RegisterSubscription(RegisterSubscriptionOptions{Event: TableCreateSuccess, Callback: rec.record})

	require.NoError(t, exec.CreateTable(context.Background(), schema.TableDefinition{Name: "users"}))
	assert.Equal(t, []string{"users"}, inner.created)

	require.Len(t, rec.snapshot(), 1)
	require.NotNil(t, rec.snapshot()[0].Table)
	assert.Equal(t, "users", *rec.snapshot()[0].Table)
}

type queryOnly struct{ Executor }

func TestObservedExecutor_TableManagerRequired(t *testing.T) {
	exec, err := NewObservedExecutor(queryOnly{&fakeExecutor{}}, nil)
	require.NoError(t, err)
	assert.Error(t, exec.CreateTable(context.Background(), schema.TableDefinition{Name: "t"}))
	assert.Error(t, exec.DropTable(context.Background(), "t"))
}

func TestObservedExecutor_Subscriptions(t *testing.T) {
	exec, err := NewObservedExecutor(&fakeExecutor{}, nil)
	require.NoError(t, err)

	label := "audit"
	rec := &recorder{}
	id := exec.RegisterSubscription(RegisterSubscriptionOptions{Event: ExecStart, Label: &label, Callback: rec.record})

	subs := exec.Subscriptions()
	require.Len(t, subs, 1)
	assert.Equal(t, id, subs[0].ID)
	assert.Equal(t, ExecStart, subs[0].Event)
	assert.Equal(t, &label, subs[0].Label)

	exec.UnregisterSubscription(id)
	exec.UnregisterSubscription("unknown")
	assert.Empty(t, exec.Subscriptions())

	_, err = exec.Exec(context.Background(), "DELETE FROM t")
	require.NoError(t, err)
	assert.Empty(t, rec.snapshot())
}
