// Package logging builds the slog loggers used across podhaul. It offers a
// human-oriented console handler for interactive runs, a JSON handler for
// machine consumption, typed attribute helpers, and a no-op logger for tests.
package logging
