// Package logger sets up structured JSON logging on log/slog with the
// level taken from server configuration, plus helpers for carrying a
// request-scoped logger through context.
package logger
