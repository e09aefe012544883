package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/storefront/core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableManager is implemented by executors that can create and drop tables.
type TableManager interface {
	CreateTable(ctx context.Context, table schema.TableDefinition) error
	DropTable(ctx context.Context, name string) error
}

// ObservedExecutor wraps an Executor and emits a StatementEvent before and
// after every statement.
type ObservedExecutor struct {
	executor      Executor
	bus           *events.TypedEventBus[StatementEvent]
	logger        *zap.Logger
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

var (
	_ Executor     = (*ObservedExecutor)(nil)
	_ Observable   = (*ObservedExecutor)(nil)
	_ TableManager = (*ObservedExecutor)(nil)
)

// NewObservedExecutor creates an event-emitting wrapper around executor.
func NewObservedExecutor(executor Executor, logger *zap.Logger) (*ObservedExecutor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus, err := events.NewTypedEventBus[StatementEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}
	return &ObservedExecutor{
		executor:      executor,
		bus:           bus,
		logger:        logger,
		subscriptions: map[string]*SubscriptionInfo{},
	}, nil
}

// emitEvent is a helper method to emit events
func (e *ObservedExecutor) emitEvent(event StatementEvent) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}

// withEventEmission wraps an operation with start, success, and failure events
func (e *ObservedExecutor) withEventEmission(
	operation string,
	table string,
	sql string,
	params []any,
	startEventType StatementEventType,
	successEventType StatementEventType,
	failedEventType StatementEventType,
	fn func() (any, error),
) (any, error) {
	startTime := time.Now()
	e.emitEvent(NewEvent(startEventType, operation, table, sql, params, nil, nil, startTime))

	result, err := fn()
	if err != nil {
		e.emitEvent(NewEvent(failedEventType, operation, table, sql, params, nil, err, startTime))
		return nil, err
	}

	e.emitEvent(NewEvent(successEventType, operation, table, sql, params, result, nil, startTime))
	return result, nil
}

// Query runs a row-returning statement. The success event carries the row
// count.
func (e *ObservedExecutor) Query(ctx context.Context, sql string, params ...any) ([]Row, error) {
	var rows []Row
	_, err := e.withEventEmission("query", "", sql, params, QueryStart, QuerySuccess, QueryFailed,
		func() (any, error) {
			var err error
			rows, err = e.executor.Query(ctx, sql, params...)
			return len(rows), err
		},
	)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec runs a statement that returns no rows. The success event carries the
// number of rows affected.
func (e *ObservedExecutor) Exec(ctx context.Context, sql string, params ...any) (Result, error) {
	var res Result
	_, err := e.withEventEmission("exec", "", sql, params, ExecStart, ExecSuccess, ExecFailed,
		func() (any, error) {
			var err error
			res, err = e.executor.Exec(ctx, sql, params...)
			return res.RowsAffected, err
		},
	)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// CreateTable delegates to the wrapped executor when it manages tables.
func (e *ObservedExecutor) CreateTable(ctx context.Context, table schema.TableDefinition) error {
	tm, ok := e.executor.(TableManager)
	if !ok {
		return fmt.Errorf("executor %T cannot create tables", e.executor)
	}
	_, err := e.withEventEmission("create_table", table.Name, "", nil, TableCreateStart, TableCreateSuccess, TableCreateFailed,
		func() (any, error) {
			return nil, tm.CreateTable(ctx, table)
		},
	)
	return err
}

// DropTable delegates to the wrapped executor when it manages tables.
func (e *ObservedExecutor) DropTable(ctx context.Context, name string) error {
	tm, ok := e.executor.(TableManager)
	if !ok {
		return fmt.Errorf("executor %T cannot drop tables", e.executor)
	}
	_, err := e.withEventEmission("drop_table", name, "", nil, TableDropStart, TableDropSuccess, TableDropFailed,
		func() (any, error) {
			return nil, tm.DropTable(ctx, name)
		},
	)
	return err
}

// RegisterSubscription subscribes options.Callback to options.Event and
// returns the subscription id.
func (e *ObservedExecutor) RegisterSubscription(options RegisterSubscriptionOptions) string {
	e.subMu.Lock()
	unsubscribe := e.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()
	e.subscriptions[id] = &SubscriptionInfo{
		ID:          id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	e.subMu.Unlock()

	e.logger.Debug("Registered subscription", zap.String("id", id), zap.String("event", string(options.Event)))
	e.emitEvent(StatementEvent{
		Type:      SubscriptionRegister,
		Timestamp: time.Now().UnixMilli(),
		Operation: "register_subscription",
		Output:    map[string]any{"subscriptionId": id},
	})
	return id
}

// UnregisterSubscription removes a subscription. Unknown ids are ignored.
func (e *ObservedExecutor) UnregisterSubscription(id string) {
	e.subMu.Lock()
	info := e.subscriptions[id]
	if info != nil {
		info.Unsubscribe()
		delete(e.subscriptions, id)
	}
	e.subMu.Unlock()

	if info == nil {
		return
	}
	e.emitEvent(StatementEvent{
		Type:      SubscriptionUnregister,
		Timestamp: time.Now().UnixMilli(),
		Operation: "unregister_subscription",
		Context:   map[string]any{"subscriptionId": id},
	})
}

// Subscriptions returns the registered subscriptions.
func (e *ObservedExecutor) Subscriptions() []SubscriptionInfo {
	e.subMu.RLock()
	defer e.subMu.RUnlock()
	out := make([]SubscriptionInfo, 0, len(e.subscriptions))
	for _, info := range e.subscriptions {
		out = append(out, *info)
	}
	return out
}
