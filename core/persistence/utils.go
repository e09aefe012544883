package persistence

import (
	"time"
)

// NewEvent builds a StatementEvent stamped with the current time. A non-zero
// startTime also records the elapsed duration.
func NewEvent(
	eventType StatementEventType,
	operation string,
	table string,
	sql string,
	params []any,
	output any,
	err error,
	startTime time.Time,
) StatementEvent {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	var tablePtr *string
	if table != "" {
		tablePtr = &table
	}

	var errStr *string
	if err != nil {
		s := err.Error()
		errStr = &s
	}

	return StatementEvent{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Operation: operation,
		Table:     tablePtr,
		SQL:       sql,
		Params:    params,
		Output:    output,
		Error:     errStr,
		Duration:  duration,
	}
}
