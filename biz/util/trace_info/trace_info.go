package trace_info

import "context"

type logIDKey struct{}

func WithLogID(ctx context.Context, logID string) context.Context {
	return context.WithValue(ctx, logIDKey{}, logID)
}

// GetLogID returns "" when ctx carries no log id.
func GetLogID(ctx context.Context) string {
	logID, _ := ctx.Value(logIDKey{}).(string)
	return logID
}
