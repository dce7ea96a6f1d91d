package reqctx

import "context"

type ctxKey string

const (
	keyRID     ctxKey = "req_rid"
	keyHabitID ctxKey = "req_habit_id"
)

// WithRID stores a correlation id for external-call logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithHabitID stores the habit id for external-call logs.
func WithHabitID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, keyHabitID, id)
}

// HabitID returns the habit id if present.
func HabitID(ctx context.Context) uint64 {
	v, _ := ctx.Value(keyHabitID).(uint64)
	return v
}
