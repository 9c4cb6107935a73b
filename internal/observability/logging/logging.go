package logging

import (
	"context"
	"regexp"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the component that emitted a log line.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextKey int

const (
	moduleKey contextKey = iota
	requestIDKey
	runIDKey
)

func WithModule(ctx context.Context, m Module) context.Context {
	return context.WithValue(ctx, moduleKey, m)
}

func ModuleFromContext(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey).(Module)
	return m, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRunID tags every log line of one reminder check run.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// ValidateAndExtractRequestID returns id when it is safe to log and
// propagate, or "" otherwise.
func ValidateAndExtractRequestID(id string) string {
	if !requestIDPattern.MatchString(id) {
		return ""
	}
	return id
}
