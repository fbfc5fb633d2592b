package probe

import (
	"context"
	"log/slog"
)

// maxBodyBytes caps how much of a response body is handed to a Validator.
const maxBodyBytes = 1 << 20

func contextOrBackground(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func defaultHTTPStatusExpectation(status int) bool {
	return status >= 200 && status < 300
}
