// Package log builds the application's slog loggers. A handler wrapper
// truncates oversized string attributes so page bodies and link dumps
// cannot flood the log output.
package log
