package persistence

import (
	"context"
)

// StatementEventType defines the possible event types for statement execution.
type StatementEventType string

const (
	QueryStart             StatementEventType = "statement:query:start"
	QuerySuccess           StatementEventType = "statement:query:success"
	QueryFailed            StatementEventType = "statement:query:failed"
	ExecStart              StatementEventType = "statement:exec:start"
	ExecSuccess            StatementEventType = "statement:exec:success"
	ExecFailed             StatementEventType = "statement:exec:failed"
	TableCreateStart       StatementEventType = "table:create:start"
	TableCreateSuccess     StatementEventType = "table:create:success"
	TableCreateFailed      StatementEventType = "table:create:failed"
	TableDropStart         StatementEventType = "table:drop:start"
	TableDropSuccess       StatementEventType = "table:drop:success"
	TableDropFailed        StatementEventType = "table:drop:failed"
	SubscriptionRegister   StatementEventType = "subscription:register"
	SubscriptionUnregister StatementEventType = "subscription:unregister"
)

// StatementEvent is emitted around every statement an interactor runs.
type StatementEvent struct {
	Type      StatementEventType `json:"type"`               // The type of event (e.g., 'statement:query:start').
	Timestamp int64              `json:"timestamp"`          // Unix milliseconds.
	Operation string             `json:"operation"`          // query, exec, create_table, ...
	Table     *string            `json:"table,omitempty"`    // Table affected, when known.
	SQL       string             `json:"sql,omitempty"`      // Statement text as sent to the driver.
	Params    []any              `json:"params,omitempty"`   // Bound values in placeholder order.
	Output    any                `json:"output,omitempty"`   // Row count or rows affected.
	Error     *string            `json:"error,omitempty"`    // Error message if the statement failed.
	Duration  *int64             `json:"duration,omitempty"` // Duration in milliseconds.
	Context   map[string]any     `json:"context,omitempty"`
}

type EventCallbackFunction func(ctx context.Context, event StatementEvent) error

// SubscriptionInfo describes a registered subscription.
type SubscriptionInfo struct {
	ID          string             `json:"id"`
	Event       StatementEventType `json:"event"`
	Label       *string            `json:"label,omitempty"`
	Description *string            `json:"description,omitempty"`
	Unsubscribe func()             `json:"-"`
}

// RegisterSubscriptionOptions defines options for registering a subscription.
type RegisterSubscriptionOptions struct {
	Event       StatementEventType `json:"event"`
	Label       *string            `json:"label,omitempty"`
	Description *string            `json:"description,omitempty"`
	Callback    EventCallbackFunction
}

// Row is one result row keyed by column name (or alias). TEXT columns are
// returned as string, INTEGER as int64, REAL as float64, NULL as nil.
type Row map[string]any

// Result reports the outcome of a statement that returns no rows.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Executor runs rendered SQL with its parameters bound in placeholder order.
// Each call is a single statement; there is no transaction spanning calls.
type Executor interface {
	Query(ctx context.Context, sql string, params ...any) ([]Row, error)
	Exec(ctx context.Context, sql string, params ...any) (Result, error)
}

// Observable is implemented by executors that publish StatementEvents.
type Observable interface {
	RegisterSubscription(options RegisterSubscriptionOptions) string
	UnregisterSubscription(id string)
	Subscriptions() []SubscriptionInfo
}
