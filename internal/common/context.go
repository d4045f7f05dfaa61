package common

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID   contextKey = "run_id"
	ContextKeyProject contextKey = "project"
)

// WithRunID adds a batch run ID to the context
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the run ID from context
func RunIDFromContext(ctx context.Context) uuid.UUID {
	if runID, ok := ctx.Value(ContextKeyRunID).(uuid.UUID); ok {
		return runID
	}
	return uuid.Nil
}

// WithProject adds the current project name to the context
func WithProject(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyProject, name)
}

// ProjectFromContext extracts the current project name from context
func ProjectFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyProject).(string); ok {
		return name
	}
	return ""
}
